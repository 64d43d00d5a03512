package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/rvega1204/job-manager/internal/apperr"
	"github.com/rvega1204/job-manager/internal/auth"
	dom "github.com/rvega1204/job-manager/internal/domain"
	"github.com/rvega1204/job-manager/internal/repo"
)

const maxNameLen = 50

// emailPattern is deliberately loose: local@domain.tld, nothing more.
var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// UserService handles registration and login. Each call is independent;
// there is no session state.
type UserService struct {
	repo       repo.UserRepo
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewUserService returns a new UserService. bcryptCost <= 0 falls back to
// the bcrypt default (10).
func NewUserService(r repo.UserRepo, tokens *auth.TokenManager, bcryptCost int) *UserService {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{repo: r, tokens: tokens, bcryptCost: bcryptCost}
}

// Register validates the fields, stores the user with a hashed password and
// issues a token. The plaintext password never reaches the store.
func (s *UserService) Register(ctx context.Context, name, email, password string) (dom.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateUser(name, email, password); err != nil {
		return dom.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return dom.User{}, "", err
	}

	u, err := s.repo.Create(ctx, dom.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dom.User{}, "", apperr.New(apperr.KindDuplicateEmail, "Email already in use")
		}
		return dom.User{}, "", err
	}

	token, err := s.tokens.Issue(u.ID.Hex())
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password return the exact same error so accounts cannot be
// enumerated. Missing fields fail before any store access.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, string, error) {
	if email == "" || password == "" {
		return dom.User{}, "", apperr.New(apperr.KindMissingCredentials, "Please provide email and password")
	}

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return dom.User{}, "", apperr.New(apperr.KindInvalidCredentials, "Invalid Credentials")
		}
		return dom.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, "", apperr.New(apperr.KindInvalidCredentials, "Invalid Credentials")
	}

	token, err := s.tokens.Issue(u.ID.Hex())
	if err != nil {
		return dom.User{}, "", err
	}
	return u, token, nil
}

func validateUser(name, email, password string) error {
	if name == "" {
		return apperr.New(apperr.KindValidationFailed, "Username is required")
	}
	if len(name) > maxNameLen {
		return apperr.New(apperr.KindValidationFailed, "Username cannot exceed 50 characters")
	}
	if email == "" {
		return apperr.New(apperr.KindValidationFailed, "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperr.New(apperr.KindValidationFailed, "Please fill a valid email address")
	}
	if password == "" {
		return apperr.New(apperr.KindValidationFailed, "Password is required")
	}
	return nil
}
