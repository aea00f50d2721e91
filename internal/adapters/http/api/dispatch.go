package api

import (
	"context"
	"net/http"

	"github.com/okian/dataatlas/internal/domain/account"
	"github.com/okian/dataatlas/pkg/logger"
	"github.com/okian/dataatlas/pkg/metrics"
)

// Action names accepted in the "action" body field.
const (
	ActionLogin          = "login"
	ActionRegister       = "register"
	ActionForgotPassword = "forgot_password"
	ActionResetPassword  = "reset_password"
)

// Status values carried in action responses.
const (
	statusSuccessful   = "Successful"
	statusUnsuccessful = "Unsuccessful"
)

// invalidActionKey is kept byte-for-byte for client compatibility.
const invalidActionKey = "message: "

// ActionResponse is the body of every recognised action.
type ActionResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// actionFunc performs one named action against a decoded body.
type actionFunc func(ctx context.Context, body map[string]any) error

type action struct {
	run     actionFunc
	success ActionResponse
	failure ActionResponse
}

// Dispatcher selects an action by name from a fixed table.
type Dispatcher struct {
	route   string
	actions map[string]action
	logger  logger.Logger
}

// Dispatch runs the named action and returns the status code and body to
// send. Unknown names yield 400 with the invalid action body.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, body map[string]any) (int, any) {
	a, ok := d.actions[name]
	if !ok {
		metrics.RecordAction(d.route, "invalid", "rejected")
		d.logger.Warn(ctx, "invalid action",
			logger.String("route", d.route),
			logger.String("action", name),
			logger.Error(NewKind("api.dispatch", ErrInvalidAction)),
		)
		return http.StatusBadRequest, map[string]string{invalidActionKey: "Invalid action"}
	}

	if err := a.run(ctx, body); err != nil {
		metrics.RecordAction(d.route, name, "failure")
		d.logger.Warn(ctx, "action failed", logger.String("action", name), logger.Error(err))
		return http.StatusOK, a.failure
	}
	metrics.RecordAction(d.route, name, "success")
	return http.StatusOK, a.success
}

// Actions lists the names the dispatcher accepts.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.actions))
	for name := range d.actions {
		names = append(names, name)
	}
	return names
}

// NewUserDispatcher handles login and register.
func NewUserDispatcher(auth account.Authenticator, l logger.Logger) *Dispatcher {
	return &Dispatcher{
		route:  "user",
		logger: orNop(l),
		actions: map[string]action{
			ActionLogin: {
				run: func(ctx context.Context, body map[string]any) error {
					_, err := auth.Authenticate(ctx, account.CredentialsFromBody(body))
					return err
				},
				success: ActionResponse{Message: "Login successful", Status: statusSuccessful},
				failure: ActionResponse{Message: "Login unsuccessful", Status: statusUnsuccessful},
			},
			ActionRegister: {
				run: func(ctx context.Context, body map[string]any) error {
					return auth.Register(ctx, account.RegistrationFromBody(body))
				},
				success: ActionResponse{Message: "Resgisteration successful", Status: statusSuccessful},
				failure: ActionResponse{Message: "Registration Failed", Status: statusUnsuccessful},
			},
		},
	}
}

// NewPasswordDispatcher handles forgot_password and reset_password.
func NewPasswordDispatcher(auth account.Authenticator, l logger.Logger) *Dispatcher {
	return &Dispatcher{
		route:  "password",
		logger: orNop(l),
		actions: map[string]action{
			ActionForgotPassword: {
				run: func(ctx context.Context, body map[string]any) error {
					return auth.SendPasswordReset(ctx, account.EmailFromBody(body))
				},
				success: ActionResponse{Message: "Password reset link sent to your email", Status: statusSuccessful},
				failure: ActionResponse{Message: "Failed to send password reset link", Status: statusUnsuccessful},
			},
			ActionResetPassword: {
				run: func(ctx context.Context, body map[string]any) error {
					return auth.ResetPassword(ctx, account.PasswordResetFromBody(body))
				},
				success: ActionResponse{Message: "Password reset successful", Status: statusSuccessful},
				failure: ActionResponse{Message: "Password reset failed", Status: statusUnsuccessful},
			},
		},
	}
}

func orNop(l logger.Logger) logger.Logger {
	if l == nil {
		return logger.Nop()
	}
	return l
}
