// Package contact defines the address book record: a validated bundle
// of name, phone, email, and optional birthday.
package contact

import (
	"strings"
	"time"

	"github.com/smileynet/rolodex/internal/field"
)

// Record is one contact entry. Name and phone are always present and
// valid, email is free text, birthday may be absent. Records have
// value semantics: setters return a modified copy and the name is
// fixed for the lifetime of the record.
type Record struct {
	name     field.Name
	phone    field.Phone
	email    field.Email
	birthday field.Birthday
}

// New builds a Record from raw input strings, validating name, phone,
// and birthday in that order and surfacing the first failure. An empty
// birthday means no birthday on file, not an error. Construction is
// all-or-nothing: on failure the zero Record is returned.
func New(name, phone, email, birthday string) (Record, error) {
	n, err := field.NewName(name)
	if err != nil {
		return Record{}, err
	}
	p, err := field.NewPhone(phone)
	if err != nil {
		return Record{}, err
	}
	r := Record{name: n, phone: p, email: field.NewEmail(email)}
	if birthday = strings.TrimSpace(birthday); birthday != "" {
		b, err := field.NewBirthday(birthday)
		if err != nil {
			return Record{}, err
		}
		r.birthday = b
	}
	return r, nil
}

// SetBirthday returns a copy of the record with the birthday replaced
// after re-validating raw. An empty raw clears the birthday. On
// failure the zero Record is returned and the receiver is unchanged.
func (r Record) SetBirthday(raw string) (Record, error) {
	if raw = strings.TrimSpace(raw); raw == "" {
		r.birthday = field.Birthday{}
		return r, nil
	}
	b, err := field.NewBirthday(raw)
	if err != nil {
		return Record{}, err
	}
	r.birthday = b
	return r, nil
}

// Name returns the contact's name.
func (r Record) Name() field.Name { return r.name }

// Phone returns the contact's phone number.
func (r Record) Phone() field.Phone { return r.phone }

// Email returns the contact's email address (possibly empty).
func (r Record) Email() field.Email { return r.email }

// Birthday returns the contact's birthday (zero when absent).
func (r Record) Birthday() field.Birthday { return r.birthday }

// HasBirthday reports whether a birthday is on file.
func (r Record) HasBirthday() bool { return !r.birthday.IsZero() }

// DaysToBirthday returns the number of whole days from today until the
// contact's next birthday, and false when no birthday is on file. The
// result is 0 on the birthday itself and always below 366. A Feb 29
// birthday is observed on Mar 1 in common years (time.Date
// normalization).
func (r Record) DaysToBirthday(today time.Time) (int, bool) {
	if r.birthday.IsZero() {
		return 0, false
	}
	month, day := r.birthday.MonthDay()
	// Compare calendar dates only, at UTC midnight, so the caller's
	// clock time and zone cannot skew the day count.
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(date.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if next.Before(date) {
		next = time.Date(date.Year()+1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(date) / (24 * time.Hour)), true
}

// Equal reports whether two records hold the same field values.
func (r Record) Equal(o Record) bool {
	return r.name.String() == o.name.String() &&
		r.phone.String() == o.phone.String() &&
		r.email.String() == o.email.String() &&
		r.birthday.String() == o.birthday.String()
}

// String renders the record as a single display line.
func (r Record) String() string {
	parts := []string{r.name.String(), r.phone.String()}
	if !r.email.IsZero() {
		parts = append(parts, r.email.String())
	}
	if !r.birthday.IsZero() {
		parts = append(parts, r.birthday.String())
	}
	return strings.Join(parts, ", ")
}
