package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	rolodex "github.com/smileynet/rolodex"
	"github.com/smileynet/rolodex/internal/config"
	"github.com/smileynet/rolodex/internal/contact"
	"github.com/smileynet/rolodex/internal/logging"
	"github.com/smileynet/rolodex/internal/seed"
	"github.com/smileynet/rolodex/internal/snapshot"
	"github.com/smileynet/rolodex/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// projectConfigPath is the per-project config location, layered over
// the user config.
const projectConfigPath = ".rolodex/config.yaml"

// CLI is the top-level command structure for rolodex.
type CLI struct {
	Globals

	Version   kong.VersionFlag `help:"Show version." short:"V"`
	Menu      MenuCmd          `cmd:"" default:"1" help:"Open the interactive menu."`
	Add       AddCmd           `cmd:"" help:"Add a contact and save the book."`
	Find      FindCmd          `cmd:"" help:"Show one contact by exact name."`
	Remove    RemoveCmd        `cmd:"" help:"Remove a contact and save the book."`
	Search    SearchCmd        `cmd:"" help:"Search names, emails, and phone numbers."`
	List      ListCmd          `cmd:"" help:"List the whole book in pages."`
	Birthdays BirthdaysCmd     `cmd:"" help:"Show upcoming birthdays."`
	Export    ExportCmd        `cmd:"" help:"Write the book to another snapshot file."`
	Import    ImportCmd        `cmd:"" help:"Replace the book from a snapshot file."`
	Init      InitCmd          `cmd:"" help:"Write a starter config, optionally with a sample book."`
}

// Globals holds the flags shared by every command.
type Globals struct {
	Config  string `help:"Config file to use instead of the layered lookup." type:"path"`
	Book    string `help:"Book file path, overriding config." type:"path"`
	Format  string `help:"Snapshot format (json or gob), overriding config."`
	Plain   bool   `help:"Force plain line output even on a TTY."`
	Verbose bool   `help:"Enable debug logging." short:"v"`
}

// --- Setup ---

// setupError marks failures that happen before any book operation ran:
// bad config, bad flags, an unbuildable logger. They exit with a
// distinct code so scripts can tell them from operation failures.
type setupError struct {
	err error
}

func (e *setupError) Error() string { return e.err.Error() }
func (e *setupError) Unwrap() error { return e.err }

// appEnv bundles the resolved config with the shared logger and
// snapshot store for one command invocation.
type appEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *snapshot.FileStore
}

func (e *appEnv) close() {
	_ = e.logger.Sync()
}

// session creates the operations layer all commands go through.
func (e *appEnv) session() *tui.Session {
	return tui.NewSession(e.store, e.cfg.Book.BatchSize, e.logger)
}

// setup resolves config, applies flag overrides, and builds the logger
// and store.
func setup(g *Globals) (*appEnv, error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, &setupError{err: err}
	}

	if g.Book != "" {
		cfg.Book.Path = g.Book
	}
	if g.Format != "" {
		cfg.Book.Format = g.Format
	}
	if g.Plain {
		cfg.UI.Plain = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, &setupError{err: err}
	}

	logger, err := logging.New(cfg.Log.Level, g.Verbose)
	if err != nil {
		return nil, &setupError{err: err}
	}

	codec, err := snapshot.CodecFor(cfg.Book.Format)
	if err != nil {
		return nil, &setupError{err: err}
	}

	return &appEnv{
		cfg:    cfg,
		logger: logger,
		store:  snapshot.NewFileStore(cfg.Book.Path, codec),
	}, nil
}

// loadConfig loads layered config from user and project paths with env
// overrides. An explicit path replaces the layered lookup entirely.
func loadConfig(explicit string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, err = config.LoadLayered(
			os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
			projectConfigPath,
		)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadBook fills the session from disk the way interactive startup
// does: a missing or unreadable book file means starting empty.
func loadBook(s *tui.Session) {
	_ = s.Load()
}

// loadBookStrict fills the session from disk, refusing to continue
// when a book file exists but cannot be read. Commands that rewrite
// the book use this so a save cannot flatten a corrupt file the user
// might still want to repair.
func loadBookStrict(s *tui.Session) error {
	if res := s.Load(); res.Err != nil {
		return fmt.Errorf("book %s is unreadable (fix or remove it): %w", s.Path(), res.Err)
	}
	return nil
}

// --- Menu command ---

// MenuCmd opens the interactive menu surface.
type MenuCmd struct{}

// Run loads the book and hands the terminal to the menu.
func (m *MenuCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()

	s := env.session()
	loadBook(s)

	return tui.Run(s, tui.Options{ForcePlain: env.cfg.UI.Plain})
}

// --- Add command ---

// AddCmd adds one contact from the command line and saves the book.
type AddCmd struct {
	Name     string `arg:"" help:"Contact name."`
	Phone    string `arg:"" help:"Phone number (ten digits, optional + prefix)."`
	Email    string `arg:"" optional:"" help:"Email address."`
	Birthday string `help:"Birthday as YYYY-MM-DD."`
}

// Run executes the add command.
func (a *AddCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return a.run(os.Stdout, env.session())
}

// run adds and saves with the given session, enabling testable wiring.
func (a *AddCmd) run(w io.Writer, s *tui.Session) error {
	if err := loadBookStrict(s); err != nil {
		return err
	}

	r, err := s.Add(a.Name, a.Phone, a.Email, a.Birthday)
	if err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Added %s (%d contacts on file)\n", r.Name(), s.Len())
	return nil
}

// --- Find command ---

// FindCmd prints one contact by exact name.
type FindCmd struct {
	Name string `arg:"" help:"Exact contact name."`
}

// Run executes the find command.
func (f *FindCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return f.run(os.Stdout, env.session())
}

// run looks up the record with the given session, enabling testable wiring.
func (f *FindCmd) run(w io.Writer, s *tui.Session) error {
	loadBook(s)

	r, ok := s.Find(f.Name)
	if !ok {
		return fmt.Errorf("no contact named %q", f.Name)
	}
	printRecord(w, s, r)
	return nil
}

// --- Remove command ---

// RemoveCmd deletes one contact by exact name and saves the book.
type RemoveCmd struct {
	Name string `arg:"" help:"Exact contact name."`
}

// Run executes the remove command.
func (c *RemoveCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env.session())
}

// run deletes and saves with the given session, enabling testable wiring.
func (c *RemoveCmd) run(w io.Writer, s *tui.Session) error {
	if err := loadBookStrict(s); err != nil {
		return err
	}

	if !s.Delete(c.Name) {
		return fmt.Errorf("no contact named %q", c.Name)
	}
	if err := s.Save(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Removed %s (%d contacts left)\n", c.Name, s.Len())
	return nil
}

// --- Search command ---

// SearchCmd prints the records matching a query.
type SearchCmd struct {
	Query string `arg:"" help:"Substring matched against names, emails, and phone numbers."`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env.session())
}

// run searches with the given session, enabling testable wiring.
func (c *SearchCmd) run(w io.Writer, s *tui.Session) error {
	loadBook(s)

	matches := s.Search(c.Query)
	if len(matches) == 0 {
		_, _ = fmt.Fprintf(w, "No matches for %q\n", c.Query)
		return nil
	}
	for _, r := range matches {
		_, _ = fmt.Fprintln(w, listLine(r))
	}
	return nil
}

// --- List command ---

// ListCmd prints the whole book in pages.
type ListCmd struct {
	BatchSize int `help:"Contacts per page (defaults to the config batch size)."`
}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env.session())
}

// run pages through the book with the given session, enabling testable wiring.
func (c *ListCmd) run(w io.Writer, s *tui.Session) error {
	loadBook(s)

	if s.Len() == 0 {
		_, _ = fmt.Fprintln(w, "Book is empty.")
		return nil
	}

	size := c.BatchSize
	if size <= 0 {
		size = s.BatchSize()
	}

	batches := s.Book().Batches(size)
	page := 0
	for {
		records, ok := batches.Next()
		if !ok {
			return nil
		}
		page++
		if page > 1 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintf(w, "Page %d:\n", page)
		for _, r := range records {
			_, _ = fmt.Fprintln(w, "  "+listLine(r))
		}
	}
}

// --- Birthdays command ---

// BirthdaysCmd lists contacts whose birthday falls within a window.
type BirthdaysCmd struct {
	Within int `help:"Look-ahead window in days." default:"30"`
}

// Run executes the birthdays command.
func (c *BirthdaysCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env.session())
}

// run lists upcoming birthdays with the given session, enabling testable wiring.
func (c *BirthdaysCmd) run(w io.Writer, s *tui.Session) error {
	loadBook(s)

	upcoming := s.UpcomingBirthdays(c.Within)
	if len(upcoming) == 0 {
		_, _ = fmt.Fprintf(w, "No birthdays in the next %d days.\n", c.Within)
		return nil
	}
	for _, u := range upcoming {
		_, _ = fmt.Fprintf(w, "%s  %s  %s\n", u.Record.Name(), u.Record.Birthday(), daysPhrase(u.Days))
	}
	return nil
}

// --- Export command ---

// ExportCmd writes the book to another snapshot file, converting
// between formats along the way.
type ExportCmd struct {
	Path   string `arg:"" help:"Destination snapshot path." type:"path"`
	Format string `help:"Destination format: json or gob." default:"json"`
}

// Run executes the export command.
func (c *ExportCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env.session())
}

// run exports with the given session, enabling testable wiring.
func (c *ExportCmd) run(w io.Writer, s *tui.Session) error {
	if err := loadBookStrict(s); err != nil {
		return err
	}

	codec, err := snapshot.CodecFor(c.Format)
	if err != nil {
		return &setupError{err: err}
	}

	target := snapshot.NewFileStore(c.Path, codec)
	if err := target.Save(s.Book()); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Exported %d contacts to %s (%s)\n", s.Len(), c.Path, codec.Name())
	return nil
}

// --- Import command ---

// ImportCmd replaces the book with the contents of another snapshot
// and saves it to the configured path. Unlike startup loading, an
// unreadable source is an error: the user asked for this exact file.
type ImportCmd struct {
	Path   string `arg:"" help:"Source snapshot path." type:"path"`
	Format string `help:"Source format: json or gob." default:"json"`
}

// Run executes the import command.
func (c *ImportCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env.session())
}

// run imports with the given session, enabling testable wiring.
func (c *ImportCmd) run(w io.Writer, s *tui.Session) error {
	codec, err := snapshot.CodecFor(c.Format)
	if err != nil {
		return &setupError{err: err}
	}

	source := snapshot.NewFileStore(c.Path, codec)
	records, found, err := source.Load()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if !found {
		return fmt.Errorf("import: no snapshot at %s", c.Path)
	}

	s.ReplaceAll(records)
	if err := s.Save(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Imported %d contacts from %s\n", len(records), c.Path)
	return nil
}

// --- Init command ---

// InitCmd writes a starter project config rendered from the embedded
// template, and optionally a sample book to try the menu with.
type InitCmd struct {
	Force  bool `help:"Overwrite an existing config."`
	Sample bool `help:"Also write a small sample book."`
}

// Run executes the init command.
func (c *InitCmd) Run(g *Globals) error {
	env, err := setup(g)
	if err != nil {
		return err
	}
	defer env.close()
	return c.run(os.Stdout, env)
}

// run writes the starter files, enabling testable wiring.
func (c *InitCmd) run(w io.Writer, env *appEnv) error {
	if _, err := os.Stat(projectConfigPath); err == nil && !c.Force {
		return fmt.Errorf("init: %s already exists (use --force to overwrite)", projectConfigPath)
	}

	loader := seed.NewLoader(rolodex.OverlayFS(".rolodex/assets", rolodex.Assets))
	content, err := loader.ComposeConfig(seed.Context{
		BookPath:  env.cfg.Book.Path,
		Format:    env.cfg.Book.Format,
		BatchSize: env.cfg.Book.BatchSize,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(projectConfigPath), 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(projectConfigPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Wrote %s\n", projectConfigPath)

	if c.Sample {
		records, err := loader.SampleBook()
		if err != nil {
			return err
		}
		s := env.session()
		s.ReplaceAll(records)
		if err := s.Save(); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Wrote %s (%d sample contacts)\n", s.Path(), len(records))
	}
	return nil
}

// --- Output helpers ---

// printRecord writes the full record, one field per line. Absent
// fields are omitted.
func printRecord(w io.Writer, s *tui.Session, r contact.Record) {
	_, _ = fmt.Fprintf(w, "Name:     %s\n", r.Name())
	_, _ = fmt.Fprintf(w, "Phone:    %s\n", r.Phone())
	if !r.Email().IsZero() {
		_, _ = fmt.Fprintf(w, "Email:    %s\n", r.Email())
	}
	if r.HasBirthday() {
		days, _ := s.DaysToBirthday(r)
		_, _ = fmt.Fprintf(w, "Birthday: %s (%s)\n", r.Birthday(), daysPhrase(days))
	}
}

// listLine renders a one-line record summary for search and list output.
func listLine(r contact.Record) string {
	line := r.Name().String() + "  " + r.Phone().String()
	if !r.Email().IsZero() {
		line += "  " + r.Email().String()
	}
	if r.HasBirthday() {
		line += "  " + r.Birthday().String()
	}
	return line
}

// daysPhrase phrases a days-to-birthday count.
func daysPhrase(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", days)
	}
}

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *setupError
	if errors.As(err, &se) {
		return exitSetup
	}
	return exitFailure
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
