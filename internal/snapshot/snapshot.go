// Package snapshot persists the address book as whole-file snapshots:
// a human-readable JSON format and an opaque binary (gob) format, each
// round-tripping only through itself.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blang/semver/v4"
	"go.uber.org/multierr"

	"github.com/smileynet/rolodex/internal/book"
	"github.com/smileynet/rolodex/internal/contact"
)

// FormatVersion is written into every snapshot. Loading rejects
// documents whose major version differs; there is no migration.
const FormatVersion = "1.0.0"

// Sentinel errors for caller-checkable conditions.
var (
	ErrVersion       = errors.New("snapshot: unsupported format version")
	ErrUnknownFormat = errors.New("snapshot: unknown format")
)

// Entry is the wire shape of one record.
type Entry struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Birthday string `json:"birthday,omitempty"`
}

// Document is the wire shape of a full snapshot.
type Document struct {
	Version string  `json:"version"`
	Records []Entry `json:"records"`
}

// Snapshot captures the book's records, in insertion order, as a wire
// document stamped with the current format version.
func Snapshot(b *book.Book) Document {
	records := b.Records()
	doc := Document{Version: FormatVersion, Records: make([]Entry, 0, len(records))}
	for _, r := range records {
		doc.Records = append(doc.Records, Entry{
			Name:     r.Name().String(),
			Phone:    r.Phone().String(),
			Email:    r.Email().String(),
			Birthday: r.Birthday().String(),
		})
	}
	return doc
}

// Restore validates a wire document back into records. Every entry is
// re-validated through contact.New; any failure rejects the whole
// document with all entry failures reported together. Never returns a
// partial record set.
func Restore(doc Document) ([]contact.Record, error) {
	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	var errs error
	records := make([]contact.Record, 0, len(doc.Records))
	for i, e := range doc.Records {
		r, err := contact.New(e.Name, e.Phone, e.Email, e.Birthday)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("snapshot: record %d (%s): %w", i, e.Name, err))
			continue
		}
		records = append(records, r)
	}
	if errs != nil {
		return nil, errs
	}
	return records, nil
}

// checkVersion accepts an empty version (documents written before the
// version field existed) and any version with a matching major.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	parsed, err := semver.Parse(v)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrVersion, v)
	}
	if supported := semver.MustParse(FormatVersion); parsed.Major != supported.Major {
		return fmt.Errorf("%w: %q (supported %s)", ErrVersion, v, FormatVersion)
	}
	return nil
}

// Codec turns a Document into bytes and back. Codecs are not
// interoperable: a snapshot round-trips only through the codec that
// wrote it.
type Codec interface {
	Marshal(Document) ([]byte, error)
	Unmarshal([]byte) (Document, error)
	Name() string
}

// CodecFor returns the codec for a format name. An empty name selects
// the primary JSON format.
func CodecFor(format string) (Codec, error) {
	switch format {
	case "json", "":
		return JSONCodec{}, nil
	case "gob":
		return GobCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// JSONCodec is the primary, human-readable snapshot format.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("snapshot: marshaling: %w", err)
	}
	return data, nil
}

func (JSONCodec) Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("snapshot: parsing: %w", err)
	}
	return doc, nil
}

// GobCodec is the secondary, opaque binary snapshot format.
type GobCodec struct{}

func (GobCodec) Name() string { return "gob" }

func (GobCodec) Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, fmt.Errorf("snapshot: encoding: %w", err)
	}
	return buf.Bytes(), nil
}

func (GobCodec) Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("snapshot: decoding: %w", err)
	}
	return doc, nil
}
