package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func savedCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == CookieName {
			return ck
		}
	}
	t.Fatalf("no %s cookie set", CookieName)
	return nil
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(testSecret, "", false)

	c, w := testContext()
	require.NoError(t, store.Save(c, New("u-123", "Ada", true)))
	ck := savedCookie(t, w)
	assert.True(t, ck.HttpOnly)

	c2, _ := testContext()
	c2.Request.AddCookie(ck)
	got := store.Load(c2)

	assert.True(t, got.Authenticated())
	assert.Equal(t, "u-123", got.UserID())
	assert.Equal(t, "Ada", got.Name())
	assert.True(t, got.IsAdmin())
}

func TestCookieStoreAcceptsBearerToken(t *testing.T) {
	store := NewCookieStore(testSecret, "", false)

	c, w := testContext()
	require.NoError(t, store.Save(c, New("u-456", "Grace", false)))
	token := savedCookie(t, w).Value

	c2, _ := testContext()
	c2.Request.Header.Set("Authorization", "Bearer "+token)
	got := store.Load(c2)

	assert.Equal(t, "u-456", got.UserID())
	assert.False(t, got.IsAdmin())
}

func TestCookieStoreRejectsGarbage(t *testing.T) {
	store := NewCookieStore(testSecret, "", false)

	c, _ := testContext()
	c.Request.Header.Set("Authorization", "Bearer not-a-token")

	assert.Equal(t, Session{}, store.Load(c))
}

func TestAdminFlagNeverSurvivesForeignSignature(t *testing.T) {
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-789",
		"name":    "Mallory",
		"admin":   true,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	store := NewCookieStore(testSecret, "", false)
	c, _ := testContext()
	c.Request.Header.Set("Authorization", "Bearer "+signed)

	got := store.Load(c)
	assert.False(t, got.Authenticated())
	assert.False(t, got.IsAdmin())
}

func TestExpiredTokenYieldsAnonymousSession(t *testing.T) {
	stale := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u-123",
		"admin":   true,
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := stale.SignedString([]byte(testSecret))
	require.NoError(t, err)

	store := NewCookieStore(testSecret, "", false)
	c, _ := testContext()
	c.Request.Header.Set("Authorization", "Bearer "+signed)

	assert.Equal(t, Session{}, store.Load(c))
}

func TestClearExpiresTheCookie(t *testing.T) {
	store := NewCookieStore(testSecret, "", false)

	c, w := testContext()
	store.Clear(c)

	ck := savedCookie(t, w)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge)
}

func TestNewWithoutUserIDIsAnonymous(t *testing.T) {
	s := New("", "Nobody", true)

	assert.False(t, s.Authenticated())
	assert.False(t, s.IsAdmin())
	assert.Empty(t, s.Name())
}

func TestFromContextDefaultsToAnonymous(t *testing.T) {
	c, _ := testContext()

	assert.Equal(t, Session{}, FromContext(c))

	Inject(c, New("u-1", "Ida", false))
	assert.Equal(t, "u-1", FromContext(c).UserID())
}
