package table

import (
	"fmt"
	"strings"
)

// Kind is the element type of a column. The set is closed: every cell value
// held by a Column is nil or one of bool, int64, float64, string, time.Time.
type Kind int

const (
	// KindMixed is a column whose values do not share a single kind.
	KindMixed Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindDate
	// KindNumber is abstract. No column resolves to it, but KindInt and
	// KindFloat are sub-kinds of it.
	KindNumber
)

var kindNames = map[Kind]string{
	KindMixed:  "mixed",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindDate:   "date",
	KindNumber: "number",
}

var kindAliases = map[string]Kind{
	"mixed":    KindMixed,
	"object":   KindMixed,
	"any":      KindMixed,
	"bool":     KindBool,
	"boolean":  KindBool,
	"int":      KindInt,
	"integer":  KindInt,
	"int64":    KindInt,
	"float":    KindFloat,
	"float64":  KindFloat,
	"double":   KindFloat,
	"string":   KindString,
	"str":      KindString,
	"text":     KindString,
	"date":     KindDate,
	"datetime": KindDate,
	"time":     KindDate,
	"number":   KindNumber,
	"numeric":  KindNumber,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// IsConcrete reports whether a column can resolve to k.
func (k Kind) IsConcrete() bool {
	return k.Valid() && k != KindNumber
}

// IsSubKindOf reports whether every value of kind k is also a value of parent.
func (k Kind) IsSubKindOf(parent Kind) bool {
	switch {
	case k == parent:
		return true
	case parent == KindMixed:
		return k.Valid()
	case parent == KindNumber:
		return k == KindInt || k == KindFloat
	default:
		return false
	}
}

// ParseKind resolves a kind name such as "int", "float64" or "number".
func ParseKind(name string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return KindMixed, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
