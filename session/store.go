package session

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// CookieName is the cookie the browser client keeps its token in. The same
// token is accepted as a Bearer header for non-browser callers.
const CookieName = "auth_token"

// tokenTTL is how long a signed token stays verifiable.
const tokenTTL = 72 * time.Hour

// Store persists sessions between requests. Load never fails: anything it
// cannot verify comes back as the anonymous session.
type Store interface {
	Save(c *gin.Context, s Session) error
	Load(c *gin.Context) Session
	Clear(c *gin.Context)
}

// Default is the store the HTTP layer talks to. main wires it once config is
// loaded; tests may swap in a fake.
var Default Store

// CookieStore signs sessions into HS256 JWTs carried by the auth cookie.
type CookieStore struct {
	secret     []byte
	domain     string
	production bool
}

func NewCookieStore(secret, domain string, production bool) *CookieStore {
	return &CookieStore{
		secret:     []byte(secret),
		domain:     domain,
		production: production,
	}
}

func (cs *CookieStore) Save(c *gin.Context, s Session) error {
	if len(cs.secret) == 0 {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": s.UserID(),
		"name":    s.Name(),
		"admin":   s.IsAdmin(),
		"exp":     time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(cs.secret)
	if err != nil {
		return err
	}

	domain := cs.domain
	// For production, don't set domain to allow cross-origin cookies
	if cs.production {
		domain = ""
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		MaxAge:   3600, // 1 hour
		Path:     "/",
		Domain:   domain,
		Secure:   cs.production,         // false for HTTP (dev), true for HTTPS (prod)
		HttpOnly: true,                  // still protect from JS access
		SameSite: http.SameSiteNoneMode, // Required for cross-origin cookies in production
	})
	return nil
}

func (cs *CookieStore) Load(c *gin.Context) Session {
	raw := cs.rawToken(c)
	if raw == "" {
		return Session{}
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return cs.secret, nil
	})
	if err != nil || !token.Valid {
		return Session{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}
	}

	userID, _ := claims["user_id"].(string)
	name, _ := claims["name"].(string)
	admin, _ := claims["admin"].(bool)
	return New(userID, name, admin)
}

func (cs *CookieStore) Clear(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", cs.domain, cs.production, true)
}

// rawToken prefers the auth cookie and falls back to the Authorization
// header, with or without the "Bearer " prefix.
func (cs *CookieStore) rawToken(c *gin.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.Request.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return header[7:]
	}
	return header
}
