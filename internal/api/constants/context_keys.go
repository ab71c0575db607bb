package constants

// Context keys set by the auth middleware and read by handlers
const (
	ContextKeyUser    = "user"
	ContextKeyUserID  = "userID"
	ContextKeySession = "session"
)

// SessionCookieName is the cookie carrying the session token
const SessionCookieName = "proman_session"
