package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RamirezDiego7/ligatec/config"
	"github.com/RamirezDiego7/ligatec/internal/user"
)

// fakeAuthRepo is an in-memory AuthRepository. lookupErr simulates a
// storage failure on email lookups.
type fakeAuthRepo struct {
	usersByEmail map[string]*user.User
	lookupErr    error
	tokens       []*user.RefreshToken
	nextID       uint
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{usersByEmail: map[string]*user.User{}}
}

func (f *fakeAuthRepo) CreateUser(u *user.User) error {
	f.nextID++
	u.ID = f.nextID
	f.usersByEmail[u.Email] = u
	return nil
}

func (f *fakeAuthRepo) GetUserByEmail(email string) (*user.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if u, ok := f.usersByEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) GetUserByID(id uint) (*user.User, error) {
	for _, u := range f.usersByEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) UpdateUser(u *user.User) error {
	f.usersByEmail[u.Email] = u
	return nil
}

func (f *fakeAuthRepo) SaveRefreshToken(token *user.RefreshToken) error {
	f.tokens = append(f.tokens, token)
	return nil
}

func (f *fakeAuthRepo) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	for _, rt := range f.tokens {
		if rt.Token == tokenString && !rt.Revoked {
			return rt, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) InvalidateRefreshToken(tokenString string) error {
	for _, rt := range f.tokens {
		if rt.Token == tokenString {
			rt.Revoked = true
		}
	}
	return nil
}

func (f *fakeAuthRepo) InvalidateAllRefreshTokensForUser(userID uint) error {
	for _, rt := range f.tokens {
		if rt.UserID == userID {
			rt.Revoked = true
		}
	}
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = "test-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	cfg.JWT.RefreshTokenExpiryDays = 7
	return cfg
}

func registerRouter(repo AuthRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewAuthController(repo, testConfig())
	r.POST("/auth/register", controller.Register)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_CreatesPlayer(t *testing.T) {
	repo := newFakeAuthRepo()
	r := registerRouter(repo)

	w := postJSON(t, r, "/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret-password"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := repo.usersByEmail["ana@example.com"]
	require.NotNil(t, created)
	assert.Equal(t, user.RolePlayer, created.Role)
	assert.NotEqual(t, "secret-password", created.Password, "password must be stored hashed")
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	repo := newFakeAuthRepo()
	require.NoError(t, repo.CreateUser(&user.User{Name: "Ana", Email: "ana@example.com"}))
	r := registerRouter(repo)

	w := postJSON(t, r, "/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret-password"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_StorageFailureIsNotConflict(t *testing.T) {
	// A broken email lookup must surface as a server failure, not as
	// "email already exists".
	repo := newFakeAuthRepo()
	repo.lookupErr = errors.New("connection refused")
	r := registerRouter(repo)

	w := postJSON(t, r, "/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secret-password"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, repo.usersByEmail, "no user may be created on a failed lookup")
}
