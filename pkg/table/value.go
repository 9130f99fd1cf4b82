package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order when a string is converted to KindDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// normalize maps a Go scalar onto the closed value set and reports its kind.
// ok is false for nil.
func normalize(v any) (out any, kind Kind, ok bool, err error) {
	switch x := v.(type) {
	case nil:
		return nil, KindMixed, false, nil
	case bool:
		return x, KindBool, true, nil
	case int:
		return int64(x), KindInt, true, nil
	case int8:
		return int64(x), KindInt, true, nil
	case int16:
		return int64(x), KindInt, true, nil
	case int32:
		return int64(x), KindInt, true, nil
	case int64:
		return x, KindInt, true, nil
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x), KindInt, true, nil
	case uint16:
		return int64(x), KindInt, true, nil
	case uint32:
		return int64(x), KindInt, true, nil
	case uint64:
		return normalizeUint(x)
	case float32:
		return float64(x), KindFloat, true, nil
	case float64:
		return x, KindFloat, true, nil
	case string:
		return x, KindString, true, nil
	case time.Time:
		return x, KindDate, true, nil
	case *time.Time:
		if x == nil {
			return nil, KindMixed, false, nil
		}
		return *x, KindDate, true, nil
	default:
		return nil, KindMixed, false, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

func normalizeUint(u uint64) (any, Kind, bool, error) {
	if u > math.MaxInt64 {
		return nil, KindMixed, false, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValue, u)
	}
	return int64(u), KindInt, true, nil
}

// IsEmpty reports whether a cell counts as empty: nil, NaN or the empty string.
func IsEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case float64:
		return math.IsNaN(x)
	default:
		return false
	}
}

// FormatValue renders a cell as the single string representation used by all
// text-based rules and by warning output. nil renders as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case time.Time:
		if x.Equal(x.Truncate(24*time.Hour)) && x.Location() == time.UTC {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ToNumber coerces a cell to float64. Empty cells become NaN; anything that
// cannot be read as a number returns ErrNotNumeric.
func ToNumber(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return math.NaN(), nil
	case int64:
		return float64(x), nil
	case int:
		return float64(x), nil
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return math.NaN(), nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrNotNumeric, x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

// Convert converts a cell to the given concrete kind. It is stricter than
// ToNumber: empty cells cannot be converted to numbers, bools or dates.
func Convert(v any, kind Kind) (any, error) {
	if !kind.IsConcrete() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
	}
	switch kind {
	case KindMixed:
		return v, nil
	case KindString:
		return FormatValue(v), nil
	case KindInt:
		return toInt(v)
	case KindFloat:
		return toFloat(v)
	case KindBool:
		return toBool(v)
	case KindDate:
		return toDate(v)
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidKind, kind)
}

func conversionError(v any, kind Kind) error {
	return fmt.Errorf("%w: %#v to %s", ErrConversion, v, kind)
}

func toInt(v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x >= math.MaxInt64 || x < math.MinInt64 {
			return nil, conversionError(v, KindInt)
		}
		return int64(x), nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, conversionError(v, KindInt)
		}
		return i, nil
	}
	return nil, conversionError(v, KindInt)
}

func toFloat(v any) (any, error) {
	switch x := v.(type) {
	case nil, time.Time:
		return nil, conversionError(v, KindFloat)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, conversionError(v, KindFloat)
		}
		return f, nil
	}
	f, err := ToNumber(v)
	if err != nil {
		return nil, conversionError(v, KindFloat)
	}
	return f, nil
}

func toBool(v any) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
	case float64:
		if x == 0 || x == 1 {
			return x == 1, nil
		}
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err == nil {
			return b, nil
		}
	}
	return nil, conversionError(v, KindBool)
}

func toDate(v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return x, nil
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return nil, conversionError(v, KindDate)
}
