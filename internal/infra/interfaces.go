package infra

import "context"

// Identity is the authenticated caller resolved from a bearer credential by
// the external auth service.
type Identity struct {
	UserID uint64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

func (i Identity) IsAdmin() bool { return i.Role == "admin" }

type AuthVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

var _ AuthVerifier = (*AuthClient)(nil)
