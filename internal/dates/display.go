package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Style selects how one date field is rendered.
type Style string

const (
	Long     Style = "long"
	Short    Style = "short"
	Narrow   Style = "narrow"
	Numeric  Style = "numeric"
	TwoDigit Style = "2-digit"
	// Hidden drops the field from the output.
	Hidden Style = "hidden"
)

// DisplayOptions configures DisplayDate. An empty field keeps the default.
type DisplayOptions struct {
	Weekday Style
	Year    Style
	Month   Style
	Day     Style
}

// DefaultDisplayOptions renders dates like "Tuesday, March 5, 2024".
var DefaultDisplayOptions = DisplayOptions{
	Weekday: Long,
	Year:    Numeric,
	Month:   Long,
	Day:     Numeric,
}

func (o DisplayOptions) merge(over DisplayOptions) DisplayOptions {
	if over.Weekday != "" {
		o.Weekday = over.Weekday
	}
	if over.Year != "" {
		o.Year = over.Year
	}
	if over.Month != "" {
		o.Month = over.Month
	}
	if over.Day != "" {
		o.Day = over.Day
	}
	return o
}

func render(t time.Time, o DisplayOptions) string {
	day := numberField(t.Day(), o.Day)
	year := yearField(t.Year(), o.Year)

	var date string
	switch o.Month {
	case Numeric, TwoDigit:
		date = joinNonEmpty("/", numberField(int(t.Month()), o.Month), day, year)
	case Hidden:
		date = joinNonEmpty(" ", day, year)
	default:
		date = nameField(t.Month().String(), o.Month)
		if day != "" {
			date = joinNonEmpty(" ", date, day)
			if year != "" {
				date += ", " + year
			}
		} else {
			date = joinNonEmpty(" ", date, year)
		}
	}

	weekday := ""
	if o.Weekday != Hidden {
		weekday = nameField(t.Weekday().String(), o.Weekday)
	}
	return joinNonEmpty(", ", weekday, date)
}

func nameField(name string, s Style) string {
	switch s {
	case Hidden:
		return ""
	case Short:
		return name[:3]
	case Narrow:
		return name[:1]
	default:
		return name
	}
}

func numberField(n int, s Style) string {
	switch s {
	case Hidden:
		return ""
	case TwoDigit:
		return fmt.Sprintf("%02d", n)
	default:
		return strconv.Itoa(n)
	}
}

func yearField(year int, s Style) string {
	if s == TwoDigit {
		return fmt.Sprintf("%02d", year%100)
	}
	return numberField(year, s)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
