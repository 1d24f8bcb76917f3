package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "sharvari-site context key " + string(c)
}

const (
	// UserIDKey holds the signed-in user's uid.
	UserIDKey = contextKey("userID")
	// UserEmailKey holds the signed-in user's email.
	UserEmailKey = contextKey("userEmail")
	// RoleKey holds the resolved role state of the request.
	RoleKey = contextKey("role")
	// TokenKey holds the raw bearer token.
	TokenKey = contextKey("token")
	// ClaimsKey holds the parsed token claims.
	ClaimsKey = contextKey("claims")
	// RequestIDKey holds the request id set by the requestid middleware.
	RequestIDKey = contextKey("requestID")
	// ComponentKey and OperationKey are used by the logger.
	ComponentKey = contextKey("component")
	OperationKey = contextKey("operation")
	// PageIDKey holds the page being edited.
	PageIDKey = contextKey("pageID")
)
