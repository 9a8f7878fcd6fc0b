package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// PlainRunner drives the numbered menu as a line-oriented prompt loop
// for non-TTY output. It shares menuItems and the Session with the
// Bubble Tea model.
type PlainRunner struct {
	session *Session
	in      *bufio.Scanner
	out     io.Writer
}

// NewPlainRunner creates a runner reading selections from in and
// printing to out.
func NewPlainRunner(session *Session, in io.Reader, out io.Writer) *PlainRunner {
	return &PlainRunner{
		session: session,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

// Run loops over menu selections until the user quits or input is
// exhausted. An invalid selection prints a notice and redisplays the
// menu.
func (r *PlainRunner) Run() error {
	for {
		r.printMenu()
		line, ok := r.readLine()
		if !ok {
			return r.in.Err()
		}

		action, valid := parseChoice(line)
		if !valid {
			fmt.Fprintf(r.out, "Invalid choice %q: enter a number from 1 to %d.\n\n", strings.TrimSpace(line), len(menuItems))
			continue
		}

		if done := r.dispatch(action); done {
			return nil
		}
	}
}

// printMenu writes the numbered action list and the selection prompt.
func (r *PlainRunner) printMenu() {
	fmt.Fprintf(r.out, "Rolodex (%d contacts)\n", r.session.Len())
	for i, item := range menuItems {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, item)
	}
	fmt.Fprint(r.out, "Select: ")
}

// dispatch runs one menu action, reporting whether the loop should end.
func (r *PlainRunner) dispatch(action menuAction) bool {
	switch action {
	case actionAdd:
		r.runAdd()
	case actionSave:
		r.runSave()
	case actionLoad:
		r.runLoad()
	case actionSearch:
		r.runSearch()
	case actionBrowse:
		r.runBrowse()
	case actionQuit:
		fmt.Fprintln(r.out, "Bye.")
		return true
	}
	return false
}

// readLine reads the next input line, reporting false at end of input.
func (r *PlainRunner) readLine() (string, bool) {
	if !r.in.Scan() {
		fmt.Fprintln(r.out)
		return "", false
	}
	return r.in.Text(), true
}

// prompt prints a labeled prompt and reads the reply.
func (r *PlainRunner) prompt(label string) (string, bool) {
	fmt.Fprintf(r.out, "%s: ", label)
	return r.readLine()
}

// runAdd walks the four inputs. A validation failure prints the error
// and returns to the menu without mutating the book.
func (r *PlainRunner) runAdd() {
	name, ok := r.prompt("Name")
	if !ok {
		return
	}
	phone, ok := r.prompt("Phone")
	if !ok {
		return
	}
	email, ok := r.prompt("Email")
	if !ok {
		return
	}
	birthday, ok := r.prompt("Birthday (YYYY-MM-DD, empty to skip)")
	if !ok {
		return
	}

	record, err := r.session.Add(name, phone, email, birthday)
	if err != nil {
		fmt.Fprintf(r.out, "Not added: %v\n\n", err)
		return
	}
	fmt.Fprintf(r.out, "Added %s.\n\n", record.Name())
}

func (r *PlainRunner) runSave() {
	if err := r.session.Save(); err != nil {
		fmt.Fprintf(r.out, "Save failed: %v\n\n", err)
		return
	}
	fmt.Fprintf(r.out, "Saved %d contacts to %s.\n\n", r.session.Len(), r.session.Path())
}

func (r *PlainRunner) runLoad() {
	res := r.session.Load()
	switch {
	case res.Err != nil:
		fmt.Fprintf(r.out, "Book not loaded: %v\n\n", res.Err)
	case !res.Found:
		fmt.Fprintf(r.out, "No saved book at %s yet.\n\n", r.session.Path())
	default:
		fmt.Fprintf(r.out, "Loaded %d contacts from %s.\n\n", res.Count, r.session.Path())
	}
}

func (r *PlainRunner) runSearch() {
	query, ok := r.prompt("Query")
	if !ok {
		return
	}

	matches := r.session.Search(query)
	if len(matches) == 0 {
		fmt.Fprintf(r.out, "No matches for %q.\n\n", query)
		return
	}
	for _, rec := range matches {
		fmt.Fprintln(r.out, summaryLine(r.session, rec))
	}
	fmt.Fprintln(r.out)
}

// runBrowse prints the book one page at a time, pausing between pages.
func (r *PlainRunner) runBrowse() {
	if r.session.Len() == 0 {
		fmt.Fprint(r.out, "Book is empty.\n\n")
		return
	}

	batches := r.session.Batches()
	page := 0
	for {
		records, ok := batches.Next()
		if !ok {
			fmt.Fprint(r.out, "End of book.\n\n")
			return
		}
		page++
		fmt.Fprintf(r.out, "Page %d:\n", page)
		for _, rec := range records {
			fmt.Fprintln(r.out, "  "+summaryLine(r.session, rec))
		}

		fmt.Fprint(r.out, "Enter for next page, q to stop: ")
		line, okRead := r.readLine()
		if !okRead || strings.TrimSpace(line) == "q" {
			fmt.Fprintln(r.out)
			return
		}
	}
}
