package inkpress

import (
	"fmt"
	"strconv"
)

// Page is one batch of a descending-index listing. When more results exist
// beyond Items, Extra holds the first item of the next page; its index is
// the cursor to pass as start on the next request. A nil Extra marks the
// last page. Fetching batch size + 1 and peeling the extra item avoids a
// separate count query.
type Page[T any] struct {
	Items []T
	Extra *T
}

// trimPage peels the look-ahead item off a batchSize+1 result set.
func trimPage[T any](items []T, batchSize int) Page[T] {
	if len(items) > batchSize {
		extra := items[batchSize]
		return Page[T]{Items: items[:batchSize], Extra: &extra}
	}
	return Page[T]{Items: items}
}

// checkBatchSize rejects non-positive batch sizes. The store deliberately
// treats batch size zero as a caller error instead of returning an empty
// page, so a miscomputed page size fails loudly.
func checkBatchSize(batchSize int) error {
	if batchSize <= 0 {
		return fmt.Errorf("%w: batch size %d", ErrInvalidArgument, batchSize)
	}
	return nil
}

// checkCursor rejects negative start cursors; indices start at zero.
func checkCursor(start *int64) error {
	if start != nil && *start < 0 {
		return fmt.Errorf("%w: start cursor %d", ErrInvalidArgument, *start)
	}
	return nil
}

// ParseCursor converts a "start" query parameter into an optional cursor.
// An empty string means "from the newest"; anything that is not a
// non-negative integer is ErrInvalidArgument, never silently clamped.
func ParseCursor(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: start cursor %q", ErrInvalidArgument, raw)
	}
	return &n, nil
}
