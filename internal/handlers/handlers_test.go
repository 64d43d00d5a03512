package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/rvega1204/job-manager/internal/auth"
	dom "github.com/rvega1204/job-manager/internal/domain"
	"github.com/rvega1204/job-manager/internal/service"
)

// memUserRepo is an in-memory UserRepo honoring the unique-email contract.
type memUserRepo struct {
	mu       sync.Mutex
	getCalls int
	byEmail  map[string]dom.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]dom.User)}
}

func (m *memUserRepo) Create(_ context.Context, u dom.User) (dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byEmail[u.Email]; exists {
		return dom.User{}, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	u.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	u, ok := m.byEmail[email]
	if !ok {
		return dom.User{}, mongo.ErrNoDocuments
	}
	return u, nil
}

// memJobRepo is an in-memory JobRepo with the same owner-scoped matching as
// the mongo implementation: a filter miss is ErrNoDocuments whether the job
// is absent or owned by someone else.
type memJobRepo struct {
	mu    sync.Mutex
	seq   int
	jobs  map[primitive.ObjectID]dom.Job
	order map[primitive.ObjectID]int
}

func newMemJobRepo() *memJobRepo {
	return &memJobRepo{jobs: make(map[primitive.ObjectID]dom.Job), order: make(map[primitive.ObjectID]int)}
}

func (m *memJobRepo) Create(_ context.Context, j dom.Job) (dom.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	j.CreatedAt = now
	j.UpdatedAt = now
	m.jobs[j.ID] = j
	m.order[j.ID] = m.seq
	m.seq++
	return j, nil
}

func (m *memJobRepo) match(ownerID, id primitive.ObjectID) (dom.Job, bool) {
	j, ok := m.jobs[id]
	if !ok || j.CreatedBy != ownerID {
		return dom.Job{}, false
	}
	return j, true
}

func (m *memJobRepo) GetByID(_ context.Context, ownerID, id primitive.ObjectID) (dom.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.match(ownerID, id)
	if !ok {
		return dom.Job{}, mongo.ErrNoDocuments
	}
	return j, nil
}

func (m *memJobRepo) List(_ context.Context, ownerID primitive.ObjectID) ([]dom.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var list []dom.Job
	for _, j := range m.jobs {
		if j.CreatedBy == ownerID {
			list = append(list, j)
		}
	}
	sort.Slice(list, func(a, b int) bool {
		return m.order[list[a].ID] < m.order[list[b].ID]
	})
	return list, nil
}

func (m *memJobRepo) Update(_ context.Context, ownerID, id primitive.ObjectID, patch dom.Job) (dom.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.match(ownerID, id)
	if !ok {
		return dom.Job{}, mongo.ErrNoDocuments
	}
	j.Company = patch.Company
	j.Position = patch.Position
	j.Status = patch.Status
	j.UpdatedAt = time.Now().UTC()
	m.jobs[id] = j
	return j, nil
}

func (m *memJobRepo) Delete(_ context.Context, ownerID, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.match(ownerID, id); !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.jobs, id)
	delete(m.order, id)
	return nil
}

type testEnv struct {
	router *gin.Engine
	users  *memUserRepo
	jobs   *memJobRepo
	tokens *auth.TokenManager
}

// newTestEnv wires the real handlers, services and middlewares over the
// in-memory repos, mirroring the app's route setup.
func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	users := newMemUserRepo()
	jobs := newMemJobRepo()
	userSvc := service.NewUserService(users, tokens, bcrypt.MinCost)
	jobSvc := service.NewJobService(jobs, nil)

	r := gin.New()
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Route does not exist")
	})

	api := r.Group("/api/v1")
	ah := NewAuthHandler(userSvc)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)

	protected := api.Group("", auth.RequireToken(tokens))
	jh := NewJobHandler(jobSvc)
	validateID := auth.ValidateObjectID(auth.ObjectIDConfig{ParamName: "id"})
	protected.GET("/jobs", jh.List)
	protected.POST("/jobs", jh.Create)
	protected.GET("/jobs/:id", validateID, jh.GetByID)
	protected.PATCH("/jobs/:id", validateID, jh.Update)
	protected.DELETE("/jobs/:id", validateID, jh.Delete)

	return &testEnv{router: r, users: users, jobs: jobs, tokens: tokens}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user and returns its bearer token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": password,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: got %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.Token
}
