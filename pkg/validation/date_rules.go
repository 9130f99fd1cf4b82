package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"

	"github.com/dmitrymomot/tableschema/pkg/table"
)

// dateCompositions are the shorthand directives timefmt expands while parsing
// that carry a day of month.
var dateCompositions = map[byte]string{
	'c': "%a %b %e %H:%M:%S %Y",
	'+': "%a %b %e %H:%M:%S %Z %Y",
	'F': "%Y-%m-%d",
	'D': "%m/%d/%y",
	'x': "%m/%d/%y",
	'v': "%e-%b-%Y",
}

// daySlot marks day positions in a layout; it cannot appear in a format.
const daySlot = "\x00"

type dateFormatChecker struct {
	format string
	// dayLayout is format with every day-of-month directive replaced by
	// daySlot, or "" when the format has none.
	dayLayout string
}

// DateFormat checks that every cell parses as a date under a strptime-style
// format such as "%Y-%m-%d" or "%d/%m/%Y %H:%M". Dates that do not exist on
// the calendar, like 2021-02-30, fail.
func DateFormat(format string, opts ...Option) (*Rule, error) {
	if format == "" {
		return nil, ErrEmptyFormat
	}
	return NewRule(dateFormatChecker{format: format, dayLayout: dayLayout(format)}, opts...), nil
}

func (c dateFormatChecker) Validate(col *table.Column) (Mask, error) {
	return ElementwiseString(col, c.parses), nil
}

func (c dateFormatChecker) DefaultMessage() string {
	return fmt.Sprintf("does not match the date format string \"%s\"", c.format)
}

func (c dateFormatChecker) parses(s string) bool {
	t, err := timefmt.Parse(s, c.format)
	if err != nil {
		return false
	}
	return c.dayExists(s, t)
}

// dayExists catches days past the end of the month. The parser normalizes
// them into the next month, which can only land on days 1 to 3; in that case
// the source must still parse with the resulting day spelled out literally.
func (c dateFormatChecker) dayExists(s string, t time.Time) bool {
	if c.dayLayout == "" || t.Day() > 3 {
		return true
	}
	day := strconv.Itoa(t.Day())
	for _, literal := range []string{day, "0" + day, " " + day} {
		if _, err := timefmt.Parse(s, strings.ReplaceAll(c.dayLayout, daySlot, literal)); err == nil {
			return true
		}
	}
	return false
}

// dayLayout expands compositions and swaps %d and %e for daySlot.
func dayLayout(format string) string {
	var b strings.Builder
	found := false
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 == len(format) {
			b.WriteByte(format[i])
			continue
		}
		i++
		d := format[i]
		if expanded, ok := dateCompositions[d]; ok {
			b.WriteString(strings.NewReplacer("%d", daySlot, "%e", daySlot).Replace(expanded))
			found = true
			continue
		}
		if d == 'd' || d == 'e' {
			b.WriteString(daySlot)
			found = true
			continue
		}
		b.WriteByte('%')
		b.WriteByte(d)
	}
	if !found {
		return ""
	}
	return b.String()
}
