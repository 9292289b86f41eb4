package domain

type SessionState string

const (
	SessionAnonymous            SessionState = "anonymous"
	SessionAuthenticating       SessionState = "authenticating"
	SessionAuthenticatedPending SessionState = "authenticated_pending"
	SessionAuthenticatedReady   SessionState = "authenticated_ready"
)

func (s SessionState) Authenticated() bool {
	return s == SessionAuthenticatedPending || s == SessionAuthenticatedReady
}

// Session is a point-in-time view of the client session. IsAuthenticated
// implies a non-empty Token; User may be nil while authenticated.
type Session struct {
	State           SessionState
	IsAuthenticated bool
	Token           string
	User            *UserProfile
	Loading         bool
	Generation      uint64
	ProfileErr      error
}

func AnonymousSession(generation uint64) Session {
	return Session{State: SessionAnonymous, Generation: generation}
}

func (s Session) IsAdmin() bool {
	return s.IsAuthenticated && s.User != nil && s.User.IsAdmin()
}

func (s Session) Clone() Session {
	s.User = s.User.Clone()
	return s
}
