// Package book implements the in-memory address book: an insertion
// ordered, name-keyed collection of contact records with substring
// search and batched iteration.
package book

import (
	"strings"

	"github.com/smileynet/rolodex/internal/contact"
)

// DefaultBatchSize is used when Batches is called with a non-positive size.
const DefaultBatchSize = 10

// Book is a name-keyed collection of contact records preserving
// insertion order. Not safe for concurrent use; the interactive
// session owns it exclusively.
type Book struct {
	records map[string]contact.Record
	order   []string
}

// New returns an empty Book.
func New() *Book {
	return &Book{records: make(map[string]contact.Record)}
}

// Add inserts the record under its name, silently replacing any
// existing record with the same name. A replaced record keeps its
// original position; new names append.
func (b *Book) Add(r contact.Record) {
	key := r.Name().String()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *Book) Find(name string) (contact.Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name, reporting whether one
// was there.
func (b *Book) Delete(name string) bool {
	if _, ok := b.records[name]; !ok {
		return false
	}
	delete(b.records, name)
	for i, key := range b.order {
		if key == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return true
}

// Search returns every record whose name or email contains query
// case-insensitively, or whose phone contains it as typed. Matching is
// OR across the three fields. Results come back in insertion order; no
// match is an empty, non-error result.
func (b *Book) Search(query string) []contact.Record {
	q := strings.ToLower(query)
	var out []contact.Record
	for _, key := range b.order {
		r := b.records[key]
		if strings.Contains(strings.ToLower(r.Name().String()), q) ||
			strings.Contains(strings.ToLower(r.Email().String()), q) ||
			strings.Contains(r.Phone().String(), q) {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records.
func (b *Book) Len() int { return len(b.order) }

// Records returns all records in insertion order.
func (b *Book) Records() []contact.Record {
	out := make([]contact.Record, 0, len(b.order))
	for _, key := range b.order {
		out = append(out, b.records[key])
	}
	return out
}

// Replace swaps the entire contents for records, preserving their
// given order. Duplicate names follow the same last-write-wins rule
// as Add.
func (b *Book) Replace(records []contact.Record) {
	b.records = make(map[string]contact.Record, len(records))
	b.order = nil
	for _, r := range records {
		b.Add(r)
	}
}

// Batcher yields the book's records in fixed-size batches. The key
// order is captured when the Batcher is created, so mutating the book
// mid-iteration has undefined results (single-threaded use only).
type Batcher struct {
	book *Book
	keys []string
	size int
	pos  int
}

// Batches returns a Batcher over the current contents. A fresh call
// restarts iteration from the beginning. A size of zero or less uses
// DefaultBatchSize.
func (b *Book) Batches(size int) *Batcher {
	if size <= 0 {
		size = DefaultBatchSize
	}
	keys := make([]string, len(b.order))
	copy(keys, b.order)
	return &Batcher{book: b, keys: keys, size: size}
}

// Next returns the next batch and true, or nil and false once the
// records are exhausted. The final batch may be short.
func (it *Batcher) Next() ([]contact.Record, bool) {
	if it.pos >= len(it.keys) {
		return nil, false
	}
	end := it.pos + it.size
	if end > len(it.keys) {
		end = len(it.keys)
	}
	batch := make([]contact.Record, 0, end-it.pos)
	for _, key := range it.keys[it.pos:end] {
		batch = append(batch, it.book.records[key])
	}
	it.pos = end
	return batch, true
}
