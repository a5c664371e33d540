// Package dates turns WordPress post dates into permalink segments and
// human-readable strings.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDate is what DisplayDate renders for input it cannot parse.
const InvalidDate = "Invalid Date"

// Formatter renders post dates in a fixed location.
type Formatter struct {
	Location *time.Location
}

// New creates a Formatter for the given location. A nil location means time.Local.
func New(loc *time.Location) Formatter {
	return Formatter{Location: loc}
}

var local = Formatter{}

// URLPath formats a date as /YYYY/MM/DD in the local time zone.
func URLPath(date string) string {
	return local.URLPath(date)
}

// DisplayDate formats a date for display in the local time zone.
func DisplayDate(date string, opts DisplayOptions) string {
	return local.DisplayDate(date, opts)
}

// PostURL builds a post permalink path from its date and slug in the local time zone.
func PostURL(date, slug string) string {
	return local.PostURL(date, slug)
}

// URLPath formats a date as /YYYY/MM/DD. Unparseable input yields the zero time's path.
func (f Formatter) URLPath(date string) string {
	t, _ := f.parse(date)
	return fmt.Sprintf("/%04d/%02d/%02d", t.Year(), int(t.Month()), t.Day())
}

// DisplayDate formats a date in en-US style. Non-empty fields of opts replace
// the corresponding DefaultDisplayOptions field.
func (f Formatter) DisplayDate(date string, opts DisplayOptions) string {
	t, ok := f.parse(date)
	if !ok {
		return InvalidDate
	}
	return render(t, DefaultDisplayOptions.merge(opts))
}

// PostURL joins the URL date path and slug into the canonical permalink path.
func (f Formatter) PostURL(date, slug string) string {
	return f.URLPath(date) + "/" + slug
}

func (f Formatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

// parse accepts RFC 3339 timestamps, WordPress's zone-less local timestamps
// and bare dates. Bare dates are read as UTC midnight.
func (f Formatter) parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	loc := f.location()

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", s, loc); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.In(loc), true
	}
	return time.Time{}, false
}
