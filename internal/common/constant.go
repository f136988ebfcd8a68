package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the session
// token on outbound requests.
const AccessTokenHeaderName = "access_token"

// SessionCookieName is the HTTP cookie carrying the session token.
const SessionCookieName = "session_token"

// AdminUsername is the reserved administrator account provisioned at startup.
const AdminUsername = "admin"

// NotAvailable is shown in place of a logout time for a session that is
// still open.
const NotAvailable = "N/A"
