// Package services contains the application services of the aipulse client:
// credential/session management, read tracking, and the content fetchers over
// the provider port.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dkoval85/aipulse/internal/common"
	"github.com/dkoval85/aipulse/internal/logging"
	"github.com/dkoval85/aipulse/internal/models"
	"github.com/dkoval85/aipulse/internal/storage"
)

// AuthService manages the credential store and the single session record.
//
// Contract:
//   - Register: create an account, auto-login, return the public view.
//   - Login: verify credentials, overwrite the session.
//   - Logout: remove the session; idempotent.
//   - CurrentSession: pure read; malformed session data counts as absent.
//
// Every mutation writes through to durable storage before returning.
type AuthService interface {
	Register(ctx context.Context, email, secret string) (models.Account, error)
	Login(ctx context.Context, email, secret string) (models.Account, error)
	Logout(ctx context.Context) error
	CurrentSession(ctx context.Context) (models.Account, bool, error)
}

type authService struct {
	kv  storage.KV
	log logging.Logger
}

// NewAuthService constructs an AuthService over the given KV store.
func NewAuthService(kv storage.KV, log logging.Logger) AuthService {
	return &authService{kv: kv, log: log}
}

// loadUsers reads the credential store. A malformed store is logged and
// treated as empty rather than surfaced.
func (a *authService) loadUsers(ctx context.Context) (map[string]models.StoredAccount, error) {
	data, err := a.kv.Get(ctx, storage.KeyUsers)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	users := make(map[string]models.StoredAccount)
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		a.log.Warn(ctx, "credential store is malformed, treating as empty", "err", err)
		return make(map[string]models.StoredAccount), nil
	}
	return users, nil
}

func (a *authService) saveUsers(ctx context.Context, users map[string]models.StoredAccount) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	return a.kv.Set(ctx, storage.KeyUsers, data)
}

func (a *authService) saveSession(ctx context.Context, account models.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return a.kv.Set(ctx, storage.KeySession, data)
}

func (a *authService) Register(ctx context.Context, email, secret string) (models.Account, error) {
	users, err := a.loadUsers(ctx)
	if err != nil {
		return models.Account{}, err
	}

	if _, exists := users[email]; exists {
		return models.Account{}, common.ErrDuplicateAccount
	}

	// The secret is stored verbatim. Documented toy behavior; not to be
	// extended into real credential handling.
	stored := models.StoredAccount{
		Email:  email,
		Name:   localPart(email),
		Secret: secret,
	}
	users[email] = stored

	if err := a.saveUsers(ctx, users); err != nil {
		return models.Account{}, err
	}

	account := stored.Public()
	if err := a.saveSession(ctx, account); err != nil {
		return models.Account{}, err
	}

	a.log.Info(ctx, "account registered", "email", email)
	return account, nil
}

func (a *authService) Login(ctx context.Context, email, secret string) (models.Account, error) {
	users, err := a.loadUsers(ctx)
	if err != nil {
		return models.Account{}, err
	}

	stored, exists := users[email]
	if !exists || stored.Secret != secret {
		return models.Account{}, common.ErrInvalidCredentials
	}

	account := stored.Public()
	if err := a.saveSession(ctx, account); err != nil {
		return models.Account{}, err
	}

	a.log.Info(ctx, "login", "email", email)
	return account, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.kv.Delete(ctx, storage.KeySession)
}

func (a *authService) CurrentSession(ctx context.Context) (models.Account, bool, error) {
	data, err := a.kv.Get(ctx, storage.KeySession)
	if err != nil {
		return models.Account{}, false, fmt.Errorf("load session: %w", err)
	}
	if len(data) == 0 {
		return models.Account{}, false, nil
	}

	var account models.Account
	if err := json.Unmarshal(data, &account); err != nil || account.Email == "" {
		a.log.Warn(ctx, "session record is malformed, ignoring", "err", err)
		return models.Account{}, false, nil
	}
	return account, true, nil
}

// localPart derives the default display name from an email address.
func localPart(email string) string {
	return strings.SplitN(email, "@", 2)[0]
}
