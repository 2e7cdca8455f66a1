// Package auth exchanges identity-provider tokens for signed session
// cookies and extracts the verified caller identity on later requests.
package auth

// Identity is a verified caller: the provider's stable subject plus the
// email claim when present.
type Identity struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
}

// Key returns the identifier that posts and comments are attributed to.
// Email is preferred when the provider supplies one.
func (i Identity) Key() string {
	if i.Email != "" {
		return i.Email
	}
	return i.Subject
}
