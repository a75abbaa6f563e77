package inkpress

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NormalizeTags lower-cases, trims, and deduplicates a tag list. Callers
// must pass tags through here before any store call so the ledger only ever
// sees set semantics; a duplicate tag within one entry counts once. Commas
// are stripped because the stored encoding is comma-delimited.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		t = strings.ReplaceAll(t, ",", "")
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// bumpTags increments the ref count for each tag, creating rows on first use.
func bumpTags(tx *sql.Tx, tags []string) error {
	for _, tag := range tags {
		_, err := tx.Exec(`
			INSERT INTO tags (name, ref_count) VALUES (?, 1)
			ON CONFLICT(name) DO UPDATE SET ref_count = ref_count + 1`, tag)
		if err != nil {
			return fmt.Errorf("bump tag %q: %w", tag, err)
		}
	}
	return nil
}

// dropTags decrements the ref count for each tag. A tag whose count would
// fall below one is deleted outright rather than persisted at zero.
func dropTags(tx *sql.Tx, tags []string) error {
	for _, tag := range tags {
		var count int64
		err := tx.QueryRow(`SELECT ref_count FROM tags WHERE name = ?`, tag).Scan(&count)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read tag %q: %w", tag, err)
		}
		if count < 2 {
			_, err = tx.Exec(`DELETE FROM tags WHERE name = ?`, tag)
		} else {
			_, err = tx.Exec(`UPDATE tags SET ref_count = ref_count - 1 WHERE name = ?`, tag)
		}
		if err != nil {
			return fmt.Errorf("drop tag %q: %w", tag, err)
		}
	}
	return nil
}

// reconcileTags applies a tag-set change: +1 for every added tag, -1 (or
// deletion at zero) for every removed tag. Kept tags are untouched.
func reconcileTags(tx *sql.Tx, oldTags, newTags []string) error {
	oldSet := make(map[string]struct{}, len(oldTags))
	for _, t := range oldTags {
		oldSet[t] = struct{}{}
	}
	newSet := make(map[string]struct{}, len(newTags))
	for _, t := range newTags {
		newSet[t] = struct{}{}
	}
	var added, removed []string
	for _, t := range newTags {
		if _, ok := oldSet[t]; !ok {
			added = append(added, t)
		}
	}
	for _, t := range oldTags {
		if _, ok := newSet[t]; !ok {
			removed = append(removed, t)
		}
	}
	if err := bumpTags(tx, added); err != nil {
		return err
	}
	return dropTags(tx, removed)
}

// ListTags returns all tags. No ordering is guaranteed; display code sorts.
func (s *Store) ListTags() ([]Tag, error) {
	rows, err := s.db.Query(`SELECT name, ref_count FROM tags`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.Name, &t.RefCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
