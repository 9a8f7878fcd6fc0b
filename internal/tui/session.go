package tui

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/snapshot"
)

// Session owns the in-memory book and its backing snapshot store. Every
// surface (Bubble Tea model, plain runner, CLI subcommands) mutates
// contacts through Session operations, keeping the one-writer contract.
type Session struct {
	book      *book.Book
	store     *snapshot.FileStore
	batchSize int
	logger    *zap.Logger
	now       func() time.Time
}

// LoadResult reports the outcome of a Load so callers can phrase their
// own notice. Found is false when no usable book file exists; Err is
// set when a file exists but cannot be decoded. In both non-success
// cases the in-memory book is left untouched.
type LoadResult struct {
	Count int
	Found bool
	Err   error
}

// NewSession creates a Session over an empty book. A batchSize of zero
// or less falls back to book.DefaultBatchSize; a nil logger is replaced
// with a no-op logger.
func NewSession(store *snapshot.FileStore, batchSize int, logger *zap.Logger) *Session {
	if batchSize <= 0 {
		batchSize = book.DefaultBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		book:      book.New(),
		store:     store,
		batchSize: batchSize,
		logger:    logger,
		now:       time.Now,
	}
}

// Add validates the four raw inputs and stores the resulting record.
// The book is untouched when validation fails.
func (s *Session) Add(name, phone, email, birthday string) (contact.Record, error) {
	r, err := contact.New(name, phone, email, birthday)
	if err != nil {
		return contact.Record{}, err
	}
	s.book.Add(r)
	s.logger.Debug("contact added", zap.String("name", r.Name().String()))
	return r, nil
}

// Save writes the current book to the configured path. Write errors are
// returned to the caller; the destination is never left truncated.
func (s *Session) Save() error {
	if err := s.store.Save(s.book); err != nil {
		return err
	}
	s.logger.Debug("book saved",
		zap.String("path", s.store.Path()),
		zap.Int("records", s.book.Len()))
	return nil
}

// Load replaces the book from the configured path. A missing or
// undecodable file leaves the book unchanged; the result tells the
// caller which case it was.
func (s *Session) Load() LoadResult {
	records, found, err := s.store.Load()
	if err != nil {
		s.logger.Warn("ignoring unreadable book",
			zap.String("path", s.store.Path()),
			zap.Error(err))
		return LoadResult{Err: err}
	}
	if !found {
		s.logger.Debug("no book file", zap.String("path", s.store.Path()))
		return LoadResult{}
	}
	s.book.Replace(records)
	s.logger.Debug("book loaded",
		zap.String("path", s.store.Path()),
		zap.Int("records", len(records)))
	return LoadResult{Count: len(records), Found: true}
}

// Find returns the record stored under name.
func (s *Session) Find(name string) (contact.Record, bool) {
	return s.book.Find(name)
}

// Delete removes the record stored under name, reporting whether one
// was there.
func (s *Session) Delete(name string) bool {
	ok := s.book.Delete(name)
	if ok {
		s.logger.Debug("contact removed", zap.String("name", name))
	}
	return ok
}

// Search returns records matching query in insertion order.
func (s *Session) Search(query string) []contact.Record {
	return s.book.Search(query)
}

// Records returns every record in insertion order.
func (s *Session) Records() []contact.Record {
	return s.book.Records()
}

// Len returns the number of records on file.
func (s *Session) Len() int {
	return s.book.Len()
}

// Batches starts a fresh paged iteration using the configured size.
func (s *Session) Batches() *book.Batcher {
	return s.book.Batches(s.batchSize)
}

// BatchSize returns the configured page size.
func (s *Session) BatchSize() int {
	return s.batchSize
}

// Path returns the backing book file path.
func (s *Session) Path() string {
	return s.store.Path()
}

// Book exposes the underlying book for read-only uses such as export.
func (s *Session) Book() *book.Book {
	return s.book
}

// ReplaceAll swaps in a wholesale new record set (import).
func (s *Session) ReplaceAll(records []contact.Record) {
	s.book.Replace(records)
	s.logger.Debug("book replaced", zap.Int("records", len(records)))
}

// DaysToBirthday evaluates r against the session clock.
func (s *Session) DaysToBirthday(r contact.Record) (int, bool) {
	return r.DaysToBirthday(s.now())
}

// Upcoming pairs a record with its days-to-birthday count.
type Upcoming struct {
	Record contact.Record
	Days   int
}

// UpcomingBirthdays returns contacts whose birthday falls within the
// given number of days, soonest first. Ties keep insertion order.
func (s *Session) UpcomingBirthdays(within int) []Upcoming {
	var out []Upcoming
	for _, r := range s.book.Records() {
		days, ok := r.DaysToBirthday(s.now())
		if !ok || days > within {
			continue
		}
		out = append(out, Upcoming{Record: r, Days: days})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out
}
