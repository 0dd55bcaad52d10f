// Package services contains the application services of the ticket tracker
// client: the credential/session manager and the ticket repository. Both are
// backed by the same durable key-value store and are the only code that
// touches its keys.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/tickettrack/internal/client/models"
	"github.com/dmitrijs2005/tickettrack/internal/client/storage"
	"github.com/dmitrijs2005/tickettrack/internal/common"
	"github.com/dmitrijs2005/tickettrack/internal/cryptox"
	"github.com/dmitrijs2005/tickettrack/internal/logging"
)

// Storage keys owned by the auth service.
const (
	usersKey   = "users"
	sessionKey = "user"
)

// SessionState is the lifecycle of the session manager. Every process starts
// in StateLoading; Restore moves it to Anonymous or Authenticated, and
// register/login/logout switch between those two. There is no way back to
// Loading short of a restart.
type SessionState string

const (
	StateLoading       SessionState = "loading"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// AuthService owns the registered-account registry and the current session.
//
// Contract:
//   - Register: create an account, establish and persist the session.
//   - Login: authenticate by (email, secret), establish and persist the session.
//   - Logout: clear the session; idempotent.
//   - Restore: one-shot rehydration of the persisted session on process start.
//   - Current: synchronous read of the in-memory session. The boolean is false
//     until Restore has run; callers must not treat a nil session as
//     "logged out" before that.
//
// Register and Login simulate a remote round-trip: they pause for the
// configured latency before touching the store. The pause is cut short if ctx
// is cancelled, but the operation itself still runs to completion — callers
// always get a full result or a full failure, never a partial one.
type AuthService interface {
	Register(ctx context.Context, name, email string, secret []byte) (*models.Session, error)
	Login(ctx context.Context, email string, secret []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	Current() (*models.Session, bool)
	State() SessionState
}

type authService struct {
	store   storage.Store
	log     logging.Logger
	latency time.Duration
	now     func() time.Time

	state   SessionState
	session *models.Session
}

// NewAuthService constructs an AuthService over the given store. latency is
// the simulated remote-call delay applied to Register and Login; pass 0 to
// disable it (tests do).
func NewAuthService(store storage.Store, log logging.Logger, latency time.Duration) AuthService {
	return &authService{
		store:   store,
		log:     log,
		latency: latency,
		now:     time.Now,
		state:   StateLoading,
	}
}

func (a *authService) State() SessionState {
	return a.state
}

func (a *authService) Current() (*models.Session, bool) {
	return a.session, a.state != StateLoading
}

// Restore rehydrates the session from the store. Calling it again after the
// initial rehydration is a no-op. A malformed persisted session is treated as
// corrupt: the key is removed and the state becomes Anonymous.
func (a *authService) Restore(ctx context.Context) error {
	if a.state != StateLoading {
		return nil
	}

	raw, ok, err := a.store.Get(ctx, sessionKey)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		a.state = StateAnonymous
		return nil
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		a.log.Warn(ctx, "persisted session is corrupt, resetting", "error", err)
		if err := a.store.Delete(ctx, sessionKey); err != nil {
			return fmt.Errorf("failed to reset corrupt session: %w", err)
		}
		a.state = StateAnonymous
		return nil
	}

	a.session = &sess
	a.state = StateAuthenticated
	return nil
}

func (a *authService) Register(ctx context.Context, name, email string, secret []byte) (*models.Session, error) {
	a.delay(ctx)

	accounts, err := a.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.Email == email {
			return nil, common.ErrDuplicateEmail
		}
	}

	hash, err := cryptox.HashSecret(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash secret: %w", err)
	}

	account := models.Account{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		SecretHash: hash,
		CreatedAt:  a.now().UTC(),
	}

	if err := a.saveAccounts(ctx, append(accounts, account)); err != nil {
		return nil, err
	}

	return a.establishSession(ctx, account)
}

func (a *authService) Login(ctx context.Context, email string, secret []byte) (*models.Session, error) {
	a.delay(ctx)

	accounts, err := a.loadAccounts(ctx)
	if err != nil {
		return nil, err
	}

	for _, acc := range accounts {
		if acc.Email != email {
			continue
		}
		if err := cryptox.VerifySecret(secret, acc.SecretHash); err != nil {
			if !errors.Is(err, cryptox.ErrMismatch) {
				a.log.Warn(ctx, "stored secret hash is malformed", "account_id", acc.ID, "error", err)
			}
			// Same error for a wrong secret and a malformed hash: callers
			// must not be able to distinguish failure causes.
			return nil, common.ErrInvalidCredentials
		}
		return a.establishSession(ctx, acc)
	}

	return nil, common.ErrInvalidCredentials
}

// Logout clears the in-memory session and removes the persisted record.
// Safe to call with no active session.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.store.Delete(ctx, sessionKey); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	a.session = nil
	a.state = StateAnonymous
	return nil
}

// establishSession persists the account's projection under the session key
// and makes it the in-memory session.
func (a *authService) establishSession(ctx context.Context, account models.Account) (*models.Session, error) {
	sess := account.Projection()

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := a.store.Set(ctx, sessionKey, string(data)); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	a.session = &sess
	a.state = StateAuthenticated
	return &sess, nil
}

// loadAccounts reads the full account registry. A missing key is an empty
// registry; a malformed value is reset to empty rather than failing the call.
func (a *authService) loadAccounts(ctx context.Context) ([]models.Account, error) {
	raw, ok, err := a.store.Get(ctx, usersKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		a.log.Warn(ctx, "account registry is corrupt, resetting", "error", err)
		if err := a.saveAccounts(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return accounts, nil
}

func (a *authService) saveAccounts(ctx context.Context, accounts []models.Account) error {
	if accounts == nil {
		accounts = []models.Account{}
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	if err := a.store.Set(ctx, usersKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist accounts: %w", err)
	}
	return nil
}

// delay pauses for the configured latency, returning early if ctx is done.
func (a *authService) delay(ctx context.Context) {
	if a.latency <= 0 {
		return
	}
	t := time.NewTimer(a.latency)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
