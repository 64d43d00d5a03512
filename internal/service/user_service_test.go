package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/rvega1204/job-manager/internal/apperr"
	"github.com/rvega1204/job-manager/internal/auth"
	dom "github.com/rvega1204/job-manager/internal/domain"
)

// mockUserRepo counts calls so tests can assert the store was never touched.
type mockUserRepo struct {
	createCalls int
	getCalls    int
	createFn    func(ctx context.Context, u dom.User) (dom.User, error)
	getFn       func(ctx context.Context, email string) (dom.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	m.createCalls++
	return m.createFn(ctx, u)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	m.getCalls++
	return m.getFn(ctx, email)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager([]byte("test-secret"), time.Hour)
}

func TestRegister_Success(t *testing.T) {
	var stored dom.User
	repo := &mockUserRepo{
		createFn: func(_ context.Context, u dom.User) (dom.User, error) {
			u.ID = primitive.NewObjectID()
			stored = u
			return u, nil
		},
	}
	tokens := testTokens()
	svc := NewUserService(repo, tokens, bcrypt.MinCost)

	u, token, err := svc.Register(context.Background(), "  Alice  ", "Alice@Example.COM", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", stored.Email)

	// The store never sees the plaintext, only a verifiable bcrypt hash.
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	ownerID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), ownerID)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{"missing name", "", "a@b.com", "pw"},
		{"name too long", strings.Repeat("x", 51), "a@b.com", "pw"},
		{"missing email", "A", "", "pw"},
		{"email without at", "A", "ab.com", "pw"},
		{"email without tld", "A", "a@bcom", "pw"},
		{"missing password", "A", "a@b.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{}
			svc := NewUserService(repo, testTokens(), bcrypt.MinCost)

			_, _, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindValidationFailed))
			assert.Zero(t, repo.createCalls, "failed validation must not reach the store")
		})
	}
}

func TestRegister_NameBoundary(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(_ context.Context, u dom.User) (dom.User, error) {
			u.ID = primitive.NewObjectID()
			return u, nil
		},
	}
	svc := NewUserService(repo, testTokens(), bcrypt.MinCost)

	_, _, err := svc.Register(context.Background(), strings.Repeat("x", 50), "a@b.com", "pw")
	assert.NoError(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(_ context.Context, u dom.User) (dom.User, error) {
			return dom.User{}, mongo.WriteException{
				WriteErrors: mongo.WriteErrors{{Code: 11000}},
			}
		},
	}
	svc := NewUserService(repo, testTokens(), bcrypt.MinCost)

	_, _, err := svc.Register(context.Background(), "A", "a@b.com", "pw")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindDuplicateEmail))
}

func TestLogin_MissingFieldsSkipStore(t *testing.T) {
	tests := []struct {
		name            string
		email, password string
	}{
		{"missing email", "", "pw"},
		{"missing password", "a@b.com", ""},
		{"missing both", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepo{}
			svc := NewUserService(repo, testTokens(), bcrypt.MinCost)

			_, _, err := svc.Login(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.KindMissingCredentials))
			assert.Zero(t, repo.getCalls, "missing credentials must fail before any store access")
		})
	}
}

// Unknown email and wrong password must be indistinguishable so accounts
// cannot be enumerated.
func TestLogin_EnumerationSafety(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	unknownRepo := &mockUserRepo{
		getFn: func(_ context.Context, _ string) (dom.User, error) {
			return dom.User{}, mongo.ErrNoDocuments
		},
	}
	wrongPwRepo := &mockUserRepo{
		getFn: func(_ context.Context, _ string) (dom.User, error) {
			return dom.User{ID: primitive.NewObjectID(), Name: "A", PasswordHash: string(hash)}, nil
		},
	}

	_, _, errUnknown := NewUserService(unknownRepo, testTokens(), bcrypt.MinCost).
		Login(context.Background(), "nobody@b.com", "whatever")
	_, _, errWrongPw := NewUserService(wrongPwRepo, testTokens(), bcrypt.MinCost).
		Login(context.Background(), "a@b.com", "wrong")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.Equal(t, apperr.KindOf(errUnknown), apperr.KindOf(errWrongPw))
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	userID := primitive.NewObjectID()
	repo := &mockUserRepo{
		getFn: func(_ context.Context, email string) (dom.User, error) {
			assert.Equal(t, "a@b.com", email)
			return dom.User{ID: userID, Name: "A", Email: email, PasswordHash: string(hash)}, nil
		},
	}
	tokens := testTokens()
	svc := NewUserService(repo, tokens, bcrypt.MinCost)

	u, token, err := svc.Login(context.Background(), "A@b.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)

	ownerID, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.Hex(), ownerID)
}
