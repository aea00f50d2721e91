// Package account defines the authentication capability used by the user and
// password routes, and a stub implementation that accepts every request.
package account

import (
	"context"
	"errors"
)

// Sentinel error kinds for account operations, one per Authenticator method.
var (
	ErrAuthFailed         = errors.New("authentication failed")
	ErrRegistrationFailed = errors.New("registration failed")
	ErrResetLinkFailed    = errors.New("password reset link failed")
	ErrResetFailed        = errors.New("password reset failed")
)

// Credentials identify a user logging in.
type Credentials struct {
	Email    string
	Username string
	Password string
}

// Registration carries the fields needed to create an account.
type Registration struct {
	Email    string
	Name     string
	Password string
}

// PasswordReset carries a reset token and the replacement password.
type PasswordReset struct {
	Email       string
	Token       string
	NewPassword string
}

// Session is the result of a successful authentication.
type Session struct {
	Subject string
}

// Authenticator is the capability behind the account actions.
type Authenticator interface {
	Authenticate(ctx context.Context, c Credentials) (Session, error)
	Register(ctx context.Context, r Registration) error
	SendPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, r PasswordReset) error
}

// stubAuthenticator succeeds unconditionally. It stands in until a real
// credential store exists.
type stubAuthenticator struct{}

// NewStub returns an Authenticator that accepts every request.
func NewStub() Authenticator {
	return stubAuthenticator{}
}

func (stubAuthenticator) Authenticate(_ context.Context, c Credentials) (Session, error) {
	subject := c.Email
	if subject == "" {
		subject = c.Username
	}
	return Session{Subject: subject}, nil
}

func (stubAuthenticator) Register(context.Context, Registration) error { return nil }

func (stubAuthenticator) SendPasswordReset(context.Context, string) error { return nil }

func (stubAuthenticator) ResetPassword(context.Context, PasswordReset) error { return nil }
