package inkpress

import (
	"database/sql"
	"errors"
	"fmt"
)

// Counter namespaces. Entries and comments allocate indices independently.
const (
	nsEntries  = "entries"
	nsComments = "comments"
)

// nextIndex allocates the next index for a namespace inside the caller's
// transaction: it reads the current counter value (creating the row at zero
// on first use), returns that value, and writes back value+1. Because both
// the counter advance and the entity insert commit together, no index is
// ever allocated without its entity and no entity exists without its index
// having been durably allocated.
func nextIndex(tx *sql.Tx, namespace string) (int64, error) {
	var value int64
	err := tx.QueryRow(`SELECT value FROM counters WHERE name = ?`, namespace).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.Exec(`INSERT INTO counters (name, value) VALUES (?, 1)`, namespace); err != nil {
			return 0, fmt.Errorf("create counter %q: %w", namespace, err)
		}
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("read counter %q: %w", namespace, err)
	}
	if _, err := tx.Exec(`UPDATE counters SET value = value + 1 WHERE name = ?`, namespace); err != nil {
		return 0, fmt.Errorf("advance counter %q: %w", namespace, err)
	}
	return value, nil
}

// CounterValue reports how many indices have been allocated under namespace.
func (s *Store) CounterValue(namespace string) (int64, error) {
	var value int64
	err := s.db.QueryRow(`SELECT value FROM counters WHERE name = ?`, namespace).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return value, err
}
