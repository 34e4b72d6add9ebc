// Package accounts owns the durable set of registered accounts and the
// authentication, sign-up and profile-update rules over it. The account
// table is persisted as one JSON record in the key-value store and always
// rewritten in full. Passwords never leave this package: every returned
// account is stripped.
package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"rchat/pkg/logger"
	"rchat/pkg/models"
	"rchat/pkg/store"
	"rchat/pkg/telemetry"
	"rchat/pkg/utils"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; the two cases are deliberately indistinguishable so login
	// attempts cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrNotFound           = errors.New("user not found")
	ErrWrongPassword      = errors.New("incorrect current password")
	ErrRateLimited        = errors.New("too many login attempts; try again later")
)

// Updates carries the optional profile-update fields. Empty fields are
// left unchanged.
type Updates struct {
	Name        string
	NewPassword string
}

// Authenticate matches username case-insensitively and the password
// exactly. It returns the stripped account, or ErrInvalidCredentials with
// no further detail. Repeated attempts against one username are rate
// limited.
func Authenticate(username, password string) (models.Account, error) {
	if !loginLimiter.Allow(strings.ToLower(username)) {
		telemetry.LoginsTotal.WithLabelValues("rate_limited").Inc()
		logger.Warn("login_rate_limited", "username", username)
		return models.Account{}, ErrRateLimited
	}
	accts, err := loadAll()
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accts {
		if strings.EqualFold(a.Username, username) && a.Password == password {
			telemetry.LoginsTotal.WithLabelValues("ok").Inc()
			logger.Info("login_ok", "user_id", a.ID)
			return a.Stripped(), nil
		}
	}
	telemetry.LoginsTotal.WithLabelValues("invalid").Inc()
	logger.Info("login_failed", "username", username)
	return models.Account{}, ErrInvalidCredentials
}

// Create registers a new account. The username must be unique
// case-insensitively and the password must satisfy the policy in
// ValidatePassword. The returned account is stripped.
func Create(name, username, password string) (models.Account, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(username) == "" {
		return models.Account{}, errors.New("name and username are required")
	}
	if err := ValidatePassword(password); err != nil {
		return models.Account{}, err
	}
	accts, err := loadAll()
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accts {
		if strings.EqualFold(a.Username, username) {
			return models.Account{}, ErrDuplicateUsername
		}
	}
	acct := models.Account{
		ID:       utils.GenAccountID(),
		Name:     name,
		Username: username,
		Password: password,
		Avatar:   utils.AvatarURL(username),
	}
	if err := saveAll(append(accts, acct)); err != nil {
		return models.Account{}, err
	}
	telemetry.AccountsCreated.Inc()
	logger.Info("account_created", "user_id", acct.ID, "username", username)
	return acct.Stripped(), nil
}

// Update applies profile changes after verifying the current password.
// The current password is checked even when no field changes. When neither
// the name nor the password actually differs the call succeeds as a no-op
// and nothing is persisted.
func Update(id, currentPassword string, upd Updates) (models.Account, error) {
	accts, err := loadAll()
	if err != nil {
		return models.Account{}, err
	}
	idx := -1
	for i, a := range accts {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return models.Account{}, ErrNotFound
	}
	acct := accts[idx]
	if acct.Password != currentPassword {
		return models.Account{}, ErrWrongPassword
	}

	changed := false
	if upd.Name != "" && upd.Name != acct.Name {
		acct.Name = upd.Name
		changed = true
	}
	if upd.NewPassword != "" && upd.NewPassword != acct.Password {
		if err := ValidatePassword(upd.NewPassword); err != nil {
			return models.Account{}, err
		}
		acct.Password = upd.NewPassword
		changed = true
	}
	if !changed {
		return acct.Stripped(), nil
	}

	accts[idx] = acct
	if err := saveAll(accts); err != nil {
		return models.Account{}, err
	}
	logger.Info("account_updated", "user_id", acct.ID)
	return acct.Stripped(), nil
}

// ListOthers returns every registered account except the given one, for
// contact discovery. All entries are stripped.
func ListOthers(excludingID string) ([]models.Account, error) {
	accts, err := loadAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Account, 0, len(accts))
	for _, a := range accts {
		if a.ID == excludingID {
			continue
		}
		out = append(out, a.Stripped())
	}
	return out, nil
}

// Get returns the stripped account for an id, or ErrNotFound.
func Get(id string) (models.Account, error) {
	accts, err := loadAll()
	if err != nil {
		return models.Account{}, err
	}
	for _, a := range accts {
		if a.ID == id {
			return a.Stripped(), nil
		}
	}
	return models.Account{}, ErrNotFound
}

// loadAll reads the full account table. On first access it seeds the
// default accounts and persists them before returning. A corrupted record
// is a load error; credentials are never silently reinitialized.
func loadAll() ([]models.Account, error) {
	b, err := store.GetAccounts()
	if err != nil {
		if store.IsNotFound(err) {
			seeded := seedAccounts()
			if err := saveAll(seeded); err != nil {
				return nil, err
			}
			logger.Info("accounts_seeded", "count", len(seeded))
			return seeded, nil
		}
		return nil, err
	}
	var accts []models.Account
	if err := json.Unmarshal(b, &accts); err != nil {
		return nil, fmt.Errorf("invalid account table: %w", err)
	}
	return accts, nil
}

func saveAll(accts []models.Account) error {
	b, err := json.Marshal(accts)
	if err != nil {
		return fmt.Errorf("failed to marshal accounts: %w", err)
	}
	return store.SaveAccounts(b)
}

// EnsureSeed persists the default accounts when none exist yet. It is
// idempotent and safe to call at every startup.
func EnsureSeed() error {
	_, err := loadAll()
	return err
}
