// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/dataatlas/internal/domain/account"
	"github.com/okian/dataatlas/internal/domain/search"
	"github.com/okian/dataatlas/pkg/logger"
	"github.com/okian/dataatlas/pkg/metrics"
)

// Service implements the API dependencies: account actions, search intake
// and stats.
type Service struct {
	mu sync.RWMutex

	auth     account.Authenticator
	searcher search.Searcher

	started   bool
	startedAt time.Time

	logins          atomic.Int64
	registrations   atomic.Int64
	resetLinks      atomic.Int64
	resets          atomic.Int64
	accountFailures atomic.Int64
	searches        atomic.Int64
	searchFailures  atomic.Int64

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithAuthenticator replaces the stub authenticator.
func WithAuthenticator(a account.Authenticator) Option {
	return func(s *Service) {
		if a != nil {
			s.auth = a
		}
	}
}

// WithSearcher replaces the no-op search collaborator.
func WithSearcher(sr search.Searcher) Option {
	return func(s *Service) {
		if sr != nil {
			s.searcher = sr
		}
	}
}

// New constructs a Service backed by the stub authenticator and the no-op
// searcher unless options say otherwise.
func New(opts ...Option) *Service {
	s := &Service{
		auth:     account.NewStub(),
		searcher: search.NewNoop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start marks the service ready. It is idempotent.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "account service started")
	return nil
}

// Stop marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "account service stopped")
}

// Authenticate verifies credentials through the configured authenticator.
func (s *Service) Authenticate(ctx context.Context, c account.Credentials) (account.Session, error) {
	sess, err := s.auth.Authenticate(ctx, c)
	if err != nil {
		return account.Session{}, s.fail(ctx, "login", account.ErrAuthFailed, err)
	}
	s.logins.Add(1)
	s.log().Debug(ctx, "login accepted")
	return sess, nil
}

// Register creates an account through the configured authenticator.
func (s *Service) Register(ctx context.Context, r account.Registration) error {
	if err := s.auth.Register(ctx, r); err != nil {
		return s.fail(ctx, "register", account.ErrRegistrationFailed, err)
	}
	s.registrations.Add(1)
	s.log().Debug(ctx, "registration accepted")
	return nil
}

// SendPasswordReset requests a reset link for email.
func (s *Service) SendPasswordReset(ctx context.Context, email string) error {
	if err := s.auth.SendPasswordReset(ctx, email); err != nil {
		return s.fail(ctx, "forgot_password", account.ErrResetLinkFailed, err)
	}
	s.resetLinks.Add(1)
	s.log().Debug(ctx, "password reset link requested")
	return nil
}

// ResetPassword applies a password reset.
func (s *Service) ResetPassword(ctx context.Context, r account.PasswordReset) error {
	if err := s.auth.ResetPassword(ctx, r); err != nil {
		return s.fail(ctx, "reset_password", account.ErrResetFailed, err)
	}
	s.resets.Add(1)
	s.log().Debug(ctx, "password reset applied")
	return nil
}

// Submit hands a parsed search request to the search collaborator.
func (s *Service) Submit(ctx context.Context, r search.Request) error {
	if err := s.searcher.Submit(ctx, r); err != nil {
		s.searchFailures.Add(1)
		metrics.RecordSearchIntake("failed")
		s.log().Error(ctx, "search submit failed", logger.Error(err))
		return err
	}
	s.searches.Add(1)
	metrics.RecordSearchIntake("accepted")
	s.log().Debug(ctx, "search request accepted",
		logger.String("category", r.Category),
		logger.String("task", r.Task),
	)
	return nil
}

// GetStats returns service counters for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started, startedAt := s.started, s.startedAt
	s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         started,
		"logins":          s.logins.Load(),
		"registrations":   s.registrations.Load(),
		"resetLinks":      s.resetLinks.Load(),
		"passwordResets":  s.resets.Load(),
		"accountFailures": s.accountFailures.Load(),
		"searches":        s.searches.Load(),
		"searchFailures":  s.searchFailures.Load(),
	}
	if started {
		stats["uptimeSeconds"] = int64(time.Since(startedAt).Seconds())
	}
	return stats
}

// fail counts a failed account action and tags err with the action's kind.
func (s *Service) fail(ctx context.Context, action string, kind, err error) error {
	s.accountFailures.Add(1)
	if !errors.Is(err, kind) {
		err = fmt.Errorf("%w: %w", kind, err)
	}
	s.log().Warn(ctx, "account action failed", logger.String("action", action), logger.Error(err))
	return err
}

// log returns the service logger, falling back to the global one when the
// service was used before Start.
func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}
