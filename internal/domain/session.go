package domain

// SessionContext is the request-scoped result of a successful guard check.
// AccessToken and RefreshToken are the freshly rotated pair superseding the
// one the caller presented; the caller is expected to persist them
// client-side. The value is never stored server-side.
type SessionContext struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
