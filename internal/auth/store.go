package auth

import (
	"errors"
	"strings"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const RoleAdmin = "admin"

type User struct {
	ID    string
	Email string
	Hash  []byte
	Role  string
}

// Verifier checks a login attempt against stored credentials.
type Verifier interface {
	Verify(email, password string) (User, error)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
