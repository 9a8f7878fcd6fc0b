// Package seed loads the starter assets shipped with the binary: the
// default config template and the sample address book.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/snapshot"
)

// ErrEmpty indicates an asset exists but contains no content.
var ErrEmpty = errors.New("seed: empty asset")

// Asset file names under the assets filesystem.
const (
	ConfigTemplateName = "config.yaml.template"
	SampleBookName     = "sample_book.json"
)

// Context holds the values interpolated into the config template.
type Context struct {
	BookPath  string
	Format    string
	BatchSize int
}

// Loader reads seed assets from a filesystem, usually the embedded
// assets overlaid with a local directory.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a Loader over fsys.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads the named asset. The name must be a bare file name and
// the content must be non-empty.
func (l *Loader) Load(name string) ([]byte, error) {
	if strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("seed: invalid asset name %q", name)
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("seed: loading %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, name)
	}
	return data, nil
}

// ComposeConfig renders the config template with ctx.
// Templates use Go text/template syntax (e.g. {{.BookPath}}).
func (l *Loader) ComposeConfig(ctx Context) (string, error) {
	raw, err := l.Load(ConfigTemplateName)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(ConfigTemplateName).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("seed: parsing template %s: %w", ConfigTemplateName, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("seed: executing template %s: %w", ConfigTemplateName, err)
	}

	return buf.String(), nil
}

// SampleBook decodes the sample address book asset into records.
func (l *Loader) SampleBook() ([]contact.Record, error) {
	data, err := l.Load(SampleBookName)
	if err != nil {
		return nil, err
	}

	doc, err := (snapshot.JSONCodec{}).Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return snapshot.Restore(doc)
}
