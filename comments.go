package inkpress

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// CreateComment allocates the next comment index and appends the comment.
// The parent entry must exist; posting against a missing entry is
// ErrNotFound. The rendered HTML is stored as given; sanitization is the
// comment handler's job.
func (s *Store) CreateComment(entryIndex int64, author, website, html string) (int64, error) {
	if strings.TrimSpace(author) == "" {
		return 0, fmt.Errorf("%w: empty author", ErrInvalidArgument)
	}
	if strings.TrimSpace(html) == "" {
		return 0, fmt.Errorf("%w: empty comment", ErrInvalidArgument)
	}
	var index int64
	err := s.withTx(func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRow(`SELECT 1 FROM entries WHERE idx = ?`, entryIndex).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: entry %d", ErrNotFound, entryIndex)
		}
		if err != nil {
			return err
		}
		index, err = nextIndex(tx, nsComments)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO comments (idx, entry_idx, author, website, html, published_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			index, entryIndex, author, website, html, encodeTime(time.Now()))
		return err
	})
	if err != nil {
		return 0, err
	}
	return index, nil
}

// PageComments returns up to batchSize comments for an entry ordered by
// index descending, bounded by idx <= *start when a cursor is given.
func (s *Store) PageComments(entryIndex int64, start *int64, batchSize int) (Page[Comment], error) {
	if err := checkBatchSize(batchSize); err != nil {
		return Page[Comment]{}, err
	}
	if err := checkCursor(start); err != nil {
		return Page[Comment]{}, err
	}

	query := `SELECT idx, entry_idx, author, website, html, published_at
		FROM comments WHERE entry_idx = ?`
	args := []any{entryIndex}
	if start != nil {
		query += ` AND idx <= ?`
		args = append(args, *start)
	}
	query += ` ORDER BY idx DESC LIMIT ?`
	args = append(args, batchSize+1)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return Page[Comment]{}, err
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		var published string
		if err := rows.Scan(&c.Index, &c.EntryIndex, &c.Author, &c.Website, &c.HTML, &published); err != nil {
			return Page[Comment]{}, err
		}
		c.Published = decodeTime(published)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return Page[Comment]{}, err
	}
	return trimPage(comments, batchSize), nil
}

// CountComments recounts an entry's comments by paging with a bounded batch
// size. When the scan hits the limit with more comments remaining, exact is
// false and the count is a floor of the true total.
func (s *Store) CountComments(entryIndex int64, scanLimit int) (count int, exact bool, err error) {
	page, err := s.PageComments(entryIndex, nil, scanLimit)
	if err != nil {
		return 0, false, err
	}
	return len(page.Items), page.Extra == nil, nil
}
