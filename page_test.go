package inkpress

import (
	"errors"
	"fmt"
	"testing"
)

func entryIndices(page Page[Entry]) []int64 {
	out := make([]int64, len(page.Items))
	for i, e := range page.Items {
		out[i] = e.Index
	}
	return out
}

func TestPageEntriesNewestFirst(t *testing.T) {
	s := setupTestStore(t)
	for i := 0; i < 10; i++ {
		mustCreateEntry(t, s, fmt.Sprintf("entry %d", i))
	}

	page, err := s.PageEntries(nil, 3, "")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	got := entryIndices(page)
	if len(got) != 3 || got[0] != 9 || got[1] != 8 || got[2] != 7 {
		t.Errorf("first page = %v, want [9 8 7]", got)
	}
	if page.Extra == nil || page.Extra.Index != 6 {
		t.Fatalf("Extra = %+v, want index 6", page.Extra)
	}

	next := page.Extra.Index
	page, err = s.PageEntries(&next, 3, "")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	got = entryIndices(page)
	if len(got) != 3 || got[0] != 6 || got[1] != 5 || got[2] != 4 {
		t.Errorf("second page = %v, want [6 5 4]", got)
	}
	if page.Extra == nil || page.Extra.Index != 3 {
		t.Errorf("Extra = %+v, want index 3", page.Extra)
	}
}

func TestPageEntriesExactBatchHasNoExtra(t *testing.T) {
	s := setupTestStore(t)
	for i := 0; i < 4; i++ {
		mustCreateEntry(t, s, "entry")
	}

	page, err := s.PageEntries(nil, 4, "")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	if len(page.Items) != 4 {
		t.Errorf("items = %d, want 4", len(page.Items))
	}
	if page.Extra != nil {
		t.Errorf("Extra = %+v, want nil on the last page", page.Extra)
	}
}

func TestPageEntriesOneBeyondBatchHasExtra(t *testing.T) {
	s := setupTestStore(t)
	for i := 0; i < 5; i++ {
		mustCreateEntry(t, s, "entry")
	}

	page, err := s.PageEntries(nil, 4, "")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	if len(page.Items) != 4 {
		t.Errorf("items = %d, want 4", len(page.Items))
	}
	if page.Extra == nil || page.Extra.Index != 0 {
		t.Errorf("Extra = %+v, want the oldest entry (index 0)", page.Extra)
	}
}

func TestPageEntriesEmptySource(t *testing.T) {
	s := setupTestStore(t)

	page, err := s.PageEntries(nil, 10, "")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	if len(page.Items) != 0 || page.Extra != nil {
		t.Errorf("page = %+v, want empty with nil Extra", page)
	}
}

func TestPageEntriesByTag(t *testing.T) {
	s := setupTestStore(t)
	mustCreateEntry(t, s, "a", "go")
	mustCreateEntry(t, s, "b", "rust")
	mustCreateEntry(t, s, "c", "go", "web")

	page, err := s.PageEntries(nil, 10, "go")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	got := entryIndices(page)
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("tag page = %v, want [2 0]", got)
	}

	// Tag matching is case-insensitive at the filter boundary.
	page, err = s.PageEntries(nil, 10, "GO")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("tag page (upper) = %d items, want 2", len(page.Items))
	}

	page, err = s.PageEntries(nil, 10, "missing")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("tag page (missing) = %d items, want 0", len(page.Items))
	}
}

func TestPageEntriesTagFilterWithCursor(t *testing.T) {
	s := setupTestStore(t)
	for i := 0; i < 6; i++ {
		if i%2 == 0 {
			mustCreateEntry(t, s, "even", "go")
		} else {
			mustCreateEntry(t, s, "odd", "rust")
		}
	}

	// "go" entries are 0, 2, 4; from cursor 3 only 2 and 0 remain.
	start := int64(3)
	page, err := s.PageEntries(&start, 10, "go")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	got := entryIndices(page)
	if len(got) != 2 || got[0] != 2 || got[1] != 0 {
		t.Errorf("filtered page = %v, want [2 0]", got)
	}
}

func TestPageEntriesRejectsBadArguments(t *testing.T) {
	s := setupTestStore(t)
	mustCreateEntry(t, s, "entry")

	if _, err := s.PageEntries(nil, 0, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("batch size 0: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := s.PageEntries(nil, -3, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("batch size -3: expected ErrInvalidArgument, got %v", err)
	}
	neg := int64(-1)
	if _, err := s.PageEntries(&neg, 10, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative cursor: expected ErrInvalidArgument, got %v", err)
	}
}

func TestPageEntriesCursorBeyondNewest(t *testing.T) {
	s := setupTestStore(t)
	mustCreateEntry(t, s, "only")

	// A cursor above the newest index is valid: the bound is idx <= start.
	start := int64(1000)
	page, err := s.PageEntries(&start, 10, "")
	if err != nil {
		t.Fatalf("PageEntries failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Errorf("items = %d, want 1", len(page.Items))
	}
}

func TestPageCommentsScopedToEntry(t *testing.T) {
	s := setupTestStore(t)
	first := mustCreateEntry(t, s, "first")
	second := mustCreateEntry(t, s, "second")

	for i := 0; i < 3; i++ {
		if _, err := s.CreateComment(first, "alice", "", "<p>on first</p>"); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}
	if _, err := s.CreateComment(second, "bob", "", "<p>on second</p>"); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	page, err := s.PageComments(first, nil, 10)
	if err != nil {
		t.Fatalf("PageComments failed: %v", err)
	}
	if len(page.Items) != 3 {
		t.Errorf("comments on first = %d, want 3", len(page.Items))
	}
	for _, cm := range page.Items {
		if cm.EntryIndex != first {
			t.Errorf("comment %d belongs to entry %d, want %d", cm.Index, cm.EntryIndex, first)
		}
	}
}

func TestPageCommentsCursor(t *testing.T) {
	s := setupTestStore(t)
	entry := mustCreateEntry(t, s, "entry")
	for i := 0; i < 5; i++ {
		if _, err := s.CreateComment(entry, "alice", "", "<p>hi</p>"); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}

	page, err := s.PageComments(entry, nil, 2)
	if err != nil {
		t.Fatalf("PageComments failed: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Index != 4 || page.Items[1].Index != 3 {
		t.Errorf("first page indices = %v", page.Items)
	}
	if page.Extra == nil || page.Extra.Index != 2 {
		t.Fatalf("Extra = %+v, want index 2", page.Extra)
	}

	next := page.Extra.Index
	page, err = s.PageComments(entry, &next, 2)
	if err != nil {
		t.Fatalf("PageComments failed: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].Index != 2 || page.Items[1].Index != 1 {
		t.Errorf("second page = %+v", page.Items)
	}
}

func TestParseCursor(t *testing.T) {
	tests := []struct {
		input   string
		want    *int64
		wantErr bool
	}{
		{"", nil, false},
		{"0", ptr(int64(0)), false},
		{"42", ptr(int64(42)), false},
		{"-1", nil, true},
		{"abc", nil, true},
		{"4.2", nil, true},
	}
	for _, tt := range tests {
		got, err := ParseCursor(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseCursor(%q) err = %v, want ErrInvalidArgument", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCursor(%q) failed: %v", tt.input, err)
			continue
		}
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("ParseCursor(%q) = %d, want nil", tt.input, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("ParseCursor(%q) = %v, want %d", tt.input, got, *tt.want)
		}
	}
}

func ptr[T any](v T) *T { return &v }

func TestTrimPage(t *testing.T) {
	page := trimPage([]int{5, 4, 3, 2}, 3)
	if len(page.Items) != 3 || page.Extra == nil || *page.Extra != 2 {
		t.Errorf("trimPage = %+v", page)
	}

	page = trimPage([]int{5, 4, 3}, 3)
	if len(page.Items) != 3 || page.Extra != nil {
		t.Errorf("trimPage exact = %+v", page)
	}

	page = trimPage[int](nil, 3)
	if len(page.Items) != 0 || page.Extra != nil {
		t.Errorf("trimPage empty = %+v", page)
	}
}
