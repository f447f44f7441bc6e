// Package directory stores user accounts for login and registration.
//
// A Directory is append and lookup only: accounts are never updated or
// removed once saved.
package directory

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyRegistered is returned by Save when the account is taken.
	ErrAlreadyRegistered = errors.New("already registered user")
)

type User struct {
	Account  string
	Password string
	Email    string
}

func (u User) CheckPassword(password string) bool {
	return u.Password == password
}

// Directory is safe for concurrent use. Save must be an atomic
// insert-if-absent so that two registrations of one account cannot both
// succeed.
type Directory interface {
	FindByAccount(ctx context.Context, account string) (User, error)
	Save(ctx context.Context, u User) error
}
