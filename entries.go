package inkpress

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateEntry allocates the next entry index, bumps the tag ledger, and
// inserts the entry, all in one transaction. Tags must already be
// normalized (NormalizeTags). The allocated index is returned.
func (s *Store) CreateEntry(author, title, content, html string, tags []string) (int64, error) {
	if strings.TrimSpace(title) == "" {
		return 0, fmt.Errorf("%w: empty title", ErrInvalidArgument)
	}
	var index int64
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		index, err = nextIndex(tx, nsEntries)
		if err != nil {
			return err
		}
		if err := bumpTags(tx, tags); err != nil {
			return err
		}
		now := encodeTime(time.Now())
		_, err = tx.Exec(`
			INSERT INTO entries (idx, author, title, content, html, tags, published_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			index, author, title, content, html, encodeTags(tags), now, now)
		return err
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// UpdateEntry overwrites title, content, and html, reconciles the tag
// ledger against the entry's previous tag set, and bumps the updated
// timestamp. Returns ErrNotFound when no entry has the index.
func (s *Store) UpdateEntry(index int64, title, content, html string, tags []string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidArgument)
	}
	return s.withTx(func(tx *sql.Tx) error {
		var oldTagString string
		err := tx.QueryRow(`SELECT tags FROM entries WHERE idx = ?`, index).Scan(&oldTagString)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: entry %d", ErrNotFound, index)
		}
		if err != nil {
			return err
		}
		if err := reconcileTags(tx, decodeTags(oldTagString), tags); err != nil {
			return err
		}
		_, err = tx.Exec(`
			UPDATE entries SET title = ?, content = ?, html = ?, tags = ?, updated_at = ?
			WHERE idx = ?`,
			title, content, html, encodeTags(tags), encodeTime(time.Now()), index)
		return err
	})
}

// GetEntry returns the entry with the given index, or ErrNotFound.
func (s *Store) GetEntry(index int64) (Entry, error) {
	row := s.db.QueryRow(`
		SELECT idx, author, title, content, html, tags, published_at, updated_at
		FROM entries WHERE idx = ?`, index)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: entry %d", ErrNotFound, index)
	}
	return e, err
}

// PageEntries returns up to batchSize entries ordered by index descending.
// A nil start means "from the newest"; otherwise results are bounded by
// idx <= *start. A non-empty tag restricts results to entries carrying it.
// Non-positive batch sizes and negative cursors are ErrInvalidArgument.
func (s *Store) PageEntries(start *int64, batchSize int, tag string) (Page[Entry], error) {
	if err := checkBatchSize(batchSize); err != nil {
		return Page[Entry]{}, err
	}
	if err := checkCursor(start); err != nil {
		return Page[Entry]{}, err
	}

	query := `SELECT idx, author, title, content, html, tags, published_at, updated_at FROM entries`
	var conds []string
	var args []any
	if start != nil {
		conds = append(conds, `idx <= ?`)
		args = append(args, *start)
	}
	if tag != "" {
		conds = append(conds, `instr(lower(tags), ',' || ? || ',') > 0`)
		args = append(args, strings.ToLower(strings.TrimSpace(tag)))
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY idx DESC LIMIT ?`
	args = append(args, batchSize+1)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return Page[Entry]{}, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return Page[Entry]{}, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return Page[Entry]{}, err
	}
	return trimPage(entries, batchSize), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var tags, published, updated string
	err := row.Scan(&e.Index, &e.Author, &e.Title, &e.Content, &e.HTML, &tags, &published, &updated)
	if err != nil {
		return Entry{}, err
	}
	e.Tags = decodeTags(tags)
	e.Published = decodeTime(published)
	e.Updated = decodeTime(updated)
	return e, nil
}
