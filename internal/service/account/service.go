package account

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrNotFound indicates the account does not exist.
var ErrNotFound = errors.New("account not found")

// Account is the registered-user record. It is owned by the registration
// workflow; this package only reads it.
type Account struct {
	UID        string
	Username   string
	Email      string
	FirstName  string
	LastName   string
	Admin      bool
	DateJoined time.Time
}

// FullName joins the name parts, or returns "" when both are empty.
func (a *Account) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}

// Directory provides read access to accounts.
type Directory interface {
	Get(ctx context.Context, uid string) (*Account, error)
	GetByUsername(ctx context.Context, username string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
}
