package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/proman-app/proman/internal/api/constants"
	"github.com/proman-app/proman/internal/logging"
	"github.com/proman-app/proman/internal/models"
	"github.com/proman-app/proman/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, role models.UserRole, allowed ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, logging.InitLogger(&logging.Config{
		File:       filepath.Join(t.TempDir(), "test.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		user := &models.User{Role: role}
		user.ID = 1
		c.Set(constants.ContextKeyUser, user)
	})
	router.GET("/guarded", NewRoleMiddleware().RequireRole(allowed...), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestRequireRoleAllows(t *testing.T) {
	router := setupRouter(t, models.RoleAdmin, models.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleDenies(t *testing.T) {
	router := setupRouter(t, models.RoleTeamMember, models.RoleAdmin)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// A coarse-gate rejection and a fine-gate rejection must be byte-identical
// so a caller cannot probe which check turned them away.
func TestRoleDenialMatchesResourceDenial(t *testing.T) {
	router := setupRouter(t, models.RoleTeamMember, models.RoleAdmin)

	coarse := httptest.NewRecorder()
	router.ServeHTTP(coarse, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	fineRouter := gin.New()
	fineRouter.GET("/resource", func(c *gin.Context) {
		utils.HandleDenied(c)
	})
	fine := httptest.NewRecorder()
	fineRouter.ServeHTTP(fine, httptest.NewRequest(http.MethodGet, "/resource", nil))

	assert.Equal(t, fine.Code, coarse.Code)
	assert.JSONEq(t, fine.Body.String(), coarse.Body.String())
}

func TestRequireRoleWithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, logging.InitLogger(&logging.Config{
		File:       filepath.Join(t.TempDir(), "test.log"),
		MaxSize:    1,
		MaxBackups: 1,
		MaxAge:     1,
	}))
	router := gin.New()
	router.GET("/guarded", NewRoleMiddleware().RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
