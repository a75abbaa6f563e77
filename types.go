package inkpress

import "time"

// Entry is a blog post. Indices are dense and strictly increasing: the
// newest entry always has the highest index, which is what the cursor-based
// listing queries rely on. An index is assigned once at creation and never
// changes.
type Entry struct {
	Index     int64
	Author    string
	Title     string
	Content   string // raw markdown as composed
	HTML      string // rendered HTML, produced by the compose handler
	Tags      []string
	Published time.Time
	Updated   time.Time
}

// Comment is an append-only comment on an entry. Comments draw indices from
// their own counter namespace, independent of entries.
type Comment struct {
	Index      int64
	EntryIndex int64
	Author     string
	Website    string
	HTML       string
	Published  time.Time
}

// Tag is a tag name with the number of entries currently carrying it.
// A tag whose ref count drops to zero is deleted, not retained.
type Tag struct {
	Name     string
	RefCount int64
}

// Image describes an uploaded image available to the compose screen.
type Image struct {
	Filename string
	URL      string
	Size     int64
	Modified time.Time
}
