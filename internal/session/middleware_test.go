package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/RamirezDiego7/ligatec/internal/middleware"
	"github.com/RamirezDiego7/ligatec/internal/user"
)

// gatedRouter builds an engine with a guarded route behind Resolve plus the
// given gate. userID zero leaves the request unauthenticated. The returned
// flag records whether the guarded handler ran.
func gatedRouter(t *testing.T, getter UserGetter, userID uint, gate gin.HandlerFunc) (*gin.Engine, *bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handled := false
	r := gin.New()
	grp := r.Group("/")
	grp.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(middleware.AuthUserIDKey, userID)
		}
		c.Next()
	})
	grp.Use(Resolve(NewResolver(getter)), gate)
	grp.GET("/guarded", func(c *gin.Context) {
		handled = true
		c.Status(http.StatusOK)
	})
	return r, &handled
}

func getGuarded(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_PlayerIsForbidden(t *testing.T) {
	getter := &fakeUserGetter{users: map[uint]*user.User{
		7: {Matricula: "A01234567", Role: user.RolePlayer},
	}}
	r, handled := gatedRouter(t, getter, 7, RequireAdmin())

	w := getGuarded(r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, *handled, "guarded content must never be produced for a player")
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	getter := &fakeUserGetter{users: map[uint]*user.User{
		7: {Matricula: "A01234567", Role: user.RoleAdmin},
	}}
	r, handled := gatedRouter(t, getter, 7, RequireAdmin())

	w := getGuarded(r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *handled)
}

func TestRequireCompleteProfile_BlocksMissingMatricula(t *testing.T) {
	getter := &fakeUserGetter{users: map[uint]*user.User{
		7: {Name: "Ana", Role: user.RolePlayer}, // no matricula yet
	}}
	r, handled := gatedRouter(t, getter, 7, RequireCompleteProfile())

	w := getGuarded(r)

	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.False(t, *handled)
}

func TestRequireCompleteProfile_PassesCompleteProfile(t *testing.T) {
	getter := &fakeUserGetter{users: map[uint]*user.User{
		7: {Matricula: "A01234567", Role: user.RolePlayer},
	}}
	r, handled := gatedRouter(t, getter, 7, RequireCompleteProfile())

	w := getGuarded(r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *handled)
}

func TestResolve_NoIdentityIsUnauthorized(t *testing.T) {
	r, handled := gatedRouter(t, &fakeUserGetter{}, 0, RequireAdmin())

	w := getGuarded(r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, *handled)
}

func TestResolve_StorageFailureIsServerErrorNotUnauthorized(t *testing.T) {
	getter := &fakeUserGetter{err: errors.New("connection refused")}
	r, handled := gatedRouter(t, getter, 7, RequireAdmin())

	w := getGuarded(r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEqual(t, http.StatusUnauthorized, w.Code, "a storage failure must not look like a login problem")
	assert.False(t, *handled)
}
