// Package session authenticates a user against the merged dataset and
// answers read-only queries on their behalf.
//
// Example usage:
//
//	svc := session.New(records, session.WithAdminRoles("admin"))
//	sess, err := svc.Authenticate("600700800", "secret")
//	if errors.IsInvalidLogin(err) {
//	    fmt.Println("Invalid login")
//	    return
//	}
//	err = sess.Run(ctx, "print-children", os.Stdout, nil)
package session

import (
	"context"
	"fmt"

	"github.com/agentstation/roster/pkg/accounts"
	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

// Service answers lookups over an immutable dataset.
type Service struct {
	records    []accounts.Record
	adminRoles map[string]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithAdminRoles replaces the set of roles granting elevated access.
// Calling it with no roles keeps the current set.
func WithAdminRoles(roles ...string) Option {
	return func(s *Service) {
		if len(roles) == 0 {
			return
		}
		s.adminRoles = make(map[string]struct{}, len(roles))
		for _, r := range roles {
			s.adminRoles[r] = struct{}{}
		}
	}
}

// New creates a Service over records. The slice is not copied and must not
// be modified while the service is in use.
func New(records []accounts.Record, opts ...Option) *Service {
	s := &Service{
		records:    records,
		adminRoles: map[string]struct{}{constants.DefaultAdminRole: {}},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Records returns the dataset.
func (s *Service) Records() []accounts.Record {
	return s.records
}

// IsAdminRole reports whether role grants elevated access.
func (s *Service) IsAdminRole(role string) bool {
	_, ok := s.adminRoles[role]
	return ok
}

// FindByLogin returns the first record whose email or phone equals login.
func (s *Service) FindByLogin(login string) (*accounts.Record, bool) {
	for i := range s.records {
		if s.records[i].MatchesLogin(login) {
			return &s.records[i], true
		}
	}
	return nil, false
}

// Authenticate checks login and password. Unknown logins and wrong
// passwords fail the same way.
func (s *Service) Authenticate(login, password string) (*Session, error) {
	user, ok := s.FindByLogin(login)
	if !ok || user.Password != password {
		logging.Debug().Str("login", login).Bool("found", ok).Msg("Authentication failed")
		return nil, errors.NewAuthenticationError(login, errors.ErrInvalidLogin, "login or password does not match")
	}
	logging.Debug().Str("login", login).Str("role", user.Role).Msg("Authenticated")
	return &Session{service: s, user: user, login: login}, nil
}

// Session is an authenticated user.
type Session struct {
	service *Service
	user    *accounts.Record
	login   string
}

// User returns the authenticated record.
func (s *Session) User() accounts.Record {
	return *s.user
}

// Login returns the login the session was opened with.
func (s *Session) Login() string {
	return s.login
}

// HasElevatedRole reports whether the user's role is in the admin set.
func (s *Session) HasElevatedRole() bool {
	return s.service.IsAdminRole(s.user.Role)
}

func (s *Session) requireElevated(query string) error {
	if s.HasElevatedRole() {
		return nil
	}
	return errors.NewAuthenticationError(s.login, errors.ErrAccessDenied,
		query+" requires an elevated role")
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrCanceled, err)
	}
	return nil
}
