package httpx

// sessionCookieName is the cookie carrying the opaque session identifier.
const sessionCookieName = "session_id"

// Route targets used by handlers when redirecting.
const (
	pathHome    = "/"
	pathSignup  = "/signup"
	pathLogin   = "/login"
	pathMembers = "/members"
	pathAdmin   = "/admin"
)
