package store

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"

	"rchat/pkg/logger"
	"rchat/pkg/telemetry"
)

var (
	db     *pebble.DB
	dbPath string
)

// Key layout (string keys, JSON values):
//
//	accounts                  -> []models.Account, passwords included
//	conversations:<userID>    -> []models.Conversation
const (
	accountsKey         = "accounts"
	conversationsPrefix = "conversations:"
)

// Open opens (or creates) a Pebble database at the given path and keeps a
// process-wide handle for the other packages. It must be called once before
// any read or write.
func Open(path string) error {
	var err error
	logger.Info("opening_pebble_db", "path", path)
	db, err = pebble.Open(path, &pebble.Options{})
	if err != nil {
		logger.Error("pebble_open_failed", "path", path, "err", err)
		return err
	}
	dbPath = path
	logger.Info("pebble_opened", "path", path)
	return nil
}

// Close closes the opened pebble DB if present.
func Close() error {
	if db == nil {
		return nil
	}
	if err := db.Close(); err != nil {
		return err
	}
	db = nil
	dbPath = ""
	logger.Info("pebble_closed")
	return nil
}

// Ready reports whether the store is opened and ready.
func Ready() bool {
	return db != nil
}

// IsNotFound reports whether err means the requested key has no value.
func IsNotFound(err error) bool {
	return errors.Is(err, pebble.ErrNotFound)
}

// GetAccounts returns the serialized account table, or a not-found error
// when no accounts have been persisted yet.
func GetAccounts() ([]byte, error) {
	return getKey(accountsKey)
}

// SaveAccounts overwrites the full serialized account table.
func SaveAccounts(data []byte) error {
	return saveKey(accountsKey, data)
}

// GetConversations returns the serialized conversation snapshot for a user,
// or a not-found error for a first-time user.
func GetConversations(userID string) ([]byte, error) {
	return getKey(conversationsPrefix + userID)
}

// SaveConversations overwrites the full conversation snapshot for a user.
// The write is synced; there is no merge with concurrent writers, the last
// save wins.
func SaveConversations(userID string, data []byte) error {
	return saveKey(conversationsPrefix+userID, data)
}

// ListConversationUsers returns the user ids that have a persisted
// conversation snapshot.
func ListConversationUsers() ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	prefix := []byte(conversationsPrefix)
	iter, err := db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, err
	}
	defer iter.Close()
	var out []string
	for iter.SeekGE(prefix); iter.Valid(); iter.Next() {
		if !bytes.HasPrefix(iter.Key(), prefix) {
			break
		}
		k := append([]byte(nil), iter.Key()...)
		out = append(out, string(k[len(prefix):]))
	}
	return out, iter.Error()
}

func getKey(key string) ([]byte, error) {
	if db == nil {
		return nil, fmt.Errorf("pebble not opened; call store.Open first")
	}
	v, closer, err := db.Get([]byte(key))
	if err != nil {
		if !IsNotFound(err) {
			logger.Error("get_key_failed", "key", key, "err", err)
		}
		return nil, err
	}
	if closer != nil {
		defer closer.Close()
	}
	out := append([]byte(nil), v...)
	logger.Debug("get_key_ok", "key", key, "len", len(out))
	return out, nil
}

func saveKey(key string, value []byte) error {
	if db == nil {
		return fmt.Errorf("pebble not opened; call store.Open first")
	}
	if err := db.Set([]byte(key), value, pebble.Sync); err != nil {
		logger.Error("save_key_failed", "key", key, "err", err)
		return err
	}
	telemetry.StoreWrites.Inc()
	logger.Debug("save_key_ok", "key", key, "len", len(value))
	return nil
}
