package vecdb

import "github.com/RoaringBitmap/roaring/v2"

// sourceIndex is an inverted index from source value to the positions of
// its records. It backs WithSources query filtering and is derived data
// only: rebuilt on delete and load, never persisted.
type sourceIndex struct {
	postings map[string]*roaring.Bitmap
}

func newSourceIndex() *sourceIndex {
	return &sourceIndex{
		postings: make(map[string]*roaring.Bitmap),
	}
}

func (si *sourceIndex) add(source string, position int) {
	bm, ok := si.postings[source]
	if !ok {
		bm = roaring.New()
		si.postings[source] = bm
	}
	bm.Add(uint32(position))
}

// rebuild recomputes the postings from scratch. Deletes shift every later
// position, so incremental maintenance would touch most bitmaps anyway.
func (si *sourceIndex) rebuild(records []Record) {
	si.postings = make(map[string]*roaring.Bitmap)
	for i, rec := range records {
		si.add(rec.Source, i)
	}
}

// positions returns the union of postings for the given sources.
// Unknown sources contribute nothing; the result may be empty.
func (si *sourceIndex) positions(sources []string) *roaring.Bitmap {
	out := roaring.New()
	for _, source := range sources {
		if bm, ok := si.postings[source]; ok {
			out.Or(bm)
		}
	}
	return out
}

func (si *sourceIndex) reset() {
	si.postings = make(map[string]*roaring.Bitmap)
}
