package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"bootcamper/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestExtractTokenFromHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	c, _ := testContext(req)
	assert.Equal(t, "header-token", extractToken(c))
}

func TestExtractTokenFromCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})

	c, _ := testContext(req)
	assert.Equal(t, "cookie-token", extractToken(c))
}

func TestExtractTokenHeaderWinsOverCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: "token", Value: "cookie-token"})

	c, _ := testContext(req)
	assert.Equal(t, "header-token", extractToken(c))
}

func TestExtractTokenMissing(t *testing.T) {
	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "", extractToken(c))
}

func TestExtractTokenIgnoresNonBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	c, _ := testContext(req)
	assert.Equal(t, "", extractToken(c))
}

func TestRequireAuthWithoutCredential(t *testing.T) {
	c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))

	RequireAuth()(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestRequireAuthWithGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")

	c, w := testContext(req)
	RequireAuth()(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	SetPrincipal(c, models.User{ID: primitive.NewObjectID(), Role: models.RolePublisher})

	RequireRoles(models.RolePublisher, models.RoleAdmin)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRolesRejectsUnlistedRole(t *testing.T) {
	c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	SetPrincipal(c, models.User{ID: primitive.NewObjectID(), Role: models.RoleUser})

	RequireRoles(models.RolePublisher, models.RoleAdmin)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not authorized")
}

func TestRequireRolesAdminIsNotImplicit(t *testing.T) {
	c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))
	SetPrincipal(c, models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})

	RequireRoles(models.RoleUser)(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRolesWithoutPrincipal(t *testing.T) {
	c, w := testContext(httptest.NewRequest(http.MethodGet, "/", nil))

	RequireRoles(models.RoleUser)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPrincipalRoundTrip(t *testing.T) {
	c, _ := testContext(httptest.NewRequest(http.MethodGet, "/", nil))

	_, ok := Principal(c)
	require.False(t, ok)

	user := models.User{ID: primitive.NewObjectID(), Name: "Jess", Role: models.RoleUser}
	SetPrincipal(c, user)

	got, ok := Principal(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
}
