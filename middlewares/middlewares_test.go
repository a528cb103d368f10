package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"communitypulse-be/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	loaded  session.Session
	cleared bool
}

func (f *fakeStore) Save(c *gin.Context, s session.Session) error { return nil }
func (f *fakeStore) Load(c *gin.Context) session.Session          { return f.loaded }
func (f *fakeStore) Clear(c *gin.Context)                         { f.cleared = true }

func useStore(t *testing.T, s session.Store) {
	t.Helper()
	old := session.Default
	session.Default = s
	t.Cleanup(func() { session.Default = old })
}

func perform(router *gin.Engine, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func okHandler(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func TestRequireAuthBlocksAnonymous(t *testing.T) {
	useStore(t, &fakeStore{})

	router := gin.New()
	router.GET("/private", LoadSession(), RequireAuth(), okHandler)

	rec := perform(router, "/private")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	useStore(t, &fakeStore{loaded: session.New("u1", "Ada", false)})

	router := gin.New()
	router.GET("/private", LoadSession(), RequireAuth(), okHandler)

	rec := perform(router, "/private")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAdminBlocksAnonymous(t *testing.T) {
	useStore(t, &fakeStore{})

	router := gin.New()
	router.GET("/admin", LoadSession(), RequireAdmin(), okHandler)

	rec := perform(router, "/admin")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminSignsOutNonAdmins(t *testing.T) {
	store := &fakeStore{loaded: session.New("u1", "Ada", false)}
	useStore(t, store)

	router := gin.New()
	router.GET("/admin", LoadSession(), RequireAdmin(), okHandler)

	rec := perform(router, "/admin")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.True(t, store.cleared, "non-admin session is cleared on the spot")
}

func TestRequireAdminPassesAdmins(t *testing.T) {
	store := &fakeStore{loaded: session.New("u1", "Ada", true)}
	useStore(t, store)

	router := gin.New()
	router.GET("/admin", LoadSession(), RequireAdmin(), okHandler)

	rec := perform(router, "/admin")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, store.cleared)
}

func TestLoadSessionExposesSessionToHandlers(t *testing.T) {
	useStore(t, &fakeStore{loaded: session.New("u7", "Grace", false)})

	router := gin.New()
	router.GET("/whoami", LoadSession(), func(c *gin.Context) {
		c.String(http.StatusOK, session.FromContext(c).Name())
	})

	rec := perform(router, "/whoami")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Grace", rec.Body.String())
}
