// Package session holds the signed-in user's identity for the life of one
// request. Handlers read an immutable Session value; how sessions persist
// between requests sits behind the Store port.
package session

import "github.com/gin-gonic/gin"

// contextKey is where the auth middleware parks the request's Session.
const contextKey = "session"

// Session is a read-only view of who is making the request. The zero value
// is the anonymous session: not authenticated, never admin.
type Session struct {
	userID string
	name   string
	admin  bool
}

// New builds an authenticated session. An empty userID yields the anonymous
// session no matter what else is passed.
func New(userID, name string, admin bool) Session {
	if userID == "" {
		return Session{}
	}
	return Session{userID: userID, name: name, admin: admin}
}

func (s Session) UserID() string { return s.userID }

func (s Session) Name() string { return s.name }

// Authenticated reports whether a signed-in user is behind the request.
func (s Session) Authenticated() bool { return s.userID != "" }

// IsAdmin is only ever true for an authenticated session.
func (s Session) IsAdmin() bool { return s.userID != "" && s.admin }

// Inject parks s on the request context for FromContext to find.
func Inject(c *gin.Context, s Session) {
	c.Set(contextKey, s)
}

// FromContext returns the Session the auth middleware loaded, or the
// anonymous session when there is none.
func FromContext(c *gin.Context) Session {
	if v, ok := c.Get(contextKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{}
}
