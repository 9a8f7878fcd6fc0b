// Package field provides the validated scalar types that make up a
// contact record: name, phone, email, and birthday. Each type is an
// immutable value object; the validating constructor is the only way
// to obtain a non-zero value, so a value in memory always satisfies
// its format rule.
package field

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Sentinel errors for caller-checkable validation failures.
var (
	ErrEmptyName       = errors.New("field: name cannot be empty")
	ErrInvalidPhone    = errors.New("field: invalid phone")
	ErrInvalidBirthday = errors.New("field: invalid birthday")
)

// phonePattern matches an optional leading + followed by exactly ten
// decimal digits. No separators, no interior +.
var phonePattern = regexp.MustCompile(`^\+?\d{10}$`)

// birthdayPattern matches the YYYY-MM-DD wire shape. Calendar validity
// (month and day ranges) is checked separately via time.Parse.
var birthdayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// BirthdayLayout is the canonical birthday format.
const BirthdayLayout = "2006-01-02"

// Name is a contact's display name and its key in the address book.
// Any non-empty text is accepted; surrounding whitespace is trimmed.
type Name struct {
	value string
}

// NewName creates a Name from raw text, rejecting empty input.
func NewName(raw string) (Name, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Name{}, ErrEmptyName
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }
func (n Name) IsZero() bool   { return n.value == "" }

// Email is a contact's email address. It is deliberately unvalidated
// free text: the format rule is "whatever the user typed", trimmed.
type Email struct {
	value string
}

// NewEmail creates an Email from raw text. Never fails; empty means
// no address on file.
func NewEmail(raw string) Email {
	return Email{value: strings.TrimSpace(raw)}
}

func (e Email) String() string { return e.value }
func (e Email) IsZero() bool   { return e.value == "" }

// Phone is a contact's phone number: exactly ten digits with an
// optional + prefix.
type Phone struct {
	value string
}

// NewPhone creates a Phone from a raw string, validating the
// ten-digit rule.
func NewPhone(raw string) (Phone, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Phone{}, fmt.Errorf("%w: cannot be empty", ErrInvalidPhone)
	}
	if !phonePattern.MatchString(raw) {
		return Phone{}, fmt.Errorf("%w: %q (want ten digits, optional + prefix)", ErrInvalidPhone, raw)
	}
	return Phone{value: raw}, nil
}

// MustPhone creates a Phone, panicking on invalid input. Use only in
// tests and seed data.
func MustPhone(raw string) Phone {
	p, err := NewPhone(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Phone) String() string { return p.value }
func (p Phone) IsZero() bool   { return p.value == "" }

// Birthday is a contact's date of birth in YYYY-MM-DD form. The zero
// Birthday means no birthday on file. The raw text is kept alongside
// the parsed date so presence is unambiguous even for year-one dates.
type Birthday struct {
	value string
	date  time.Time
}

// NewBirthday creates a Birthday from a raw string. The input must
// match YYYY-MM-DD and name a real calendar date; 2021-02-30 and
// 2021-13-01 are both rejected.
func NewBirthday(raw string) (Birthday, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Birthday{}, fmt.Errorf("%w: cannot be empty", ErrInvalidBirthday)
	}
	if !birthdayPattern.MatchString(raw) {
		return Birthday{}, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidBirthday, raw)
	}
	date, err := time.Parse(BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q is not a calendar date", ErrInvalidBirthday, raw)
	}
	return Birthday{value: raw, date: date}, nil
}

// MustBirthday creates a Birthday, panicking on invalid input. Use
// only in tests and seed data.
func MustBirthday(raw string) Birthday {
	b, err := NewBirthday(raw)
	if err != nil {
		panic(err)
	}
	return b
}

func (b Birthday) String() string { return b.value }
func (b Birthday) IsZero() bool   { return b.value == "" }

// Date returns the parsed calendar date at UTC midnight.
func (b Birthday) Date() time.Time { return b.date }

// MonthDay returns the birthday's month and day of month.
func (b Birthday) MonthDay() (time.Month, int) {
	return b.date.Month(), b.date.Day()
}
