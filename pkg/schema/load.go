package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/tableschema/pkg/table"
	"github.com/dmitrymomot/tableschema/pkg/validation"
)

// Format is the encoding of a schema file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
}

// Definition is the file form of a schema.
type Definition struct {
	Ordered bool        `yaml:"ordered,omitempty" json:"ordered,omitempty"`
	Columns []ColumnDef `yaml:"columns" json:"columns"`
}

// ColumnDef is the file form of a schema column.
type ColumnDef struct {
	Name       string    `yaml:"name" json:"name"`
	AllowEmpty bool      `yaml:"allow_empty,omitempty" json:"allow_empty,omitempty"`
	Rules      []RuleDef `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// RuleDef is a single rule node. Type selects the rule; the other fields are
// read only by the rule types that use them.
type RuleDef struct {
	Type    string `yaml:"type" json:"type"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`

	// in_range
	Min *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty" json:"max,omitempty"`

	// pattern, in_list
	Pattern    string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Literal    bool     `yaml:"literal,omitempty" json:"literal,omitempty"`
	IgnoreCase bool     `yaml:"ignore_case,omitempty" json:"ignore_case,omitempty"`
	Options    []string `yaml:"options,omitempty" json:"options,omitempty"`

	// date_format
	Format string `yaml:"format,omitempty" json:"format,omitempty"`

	// can_convert, kind
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty"`

	// callable, element, series
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// not, all_of, any_of
	Rule  *RuleDef  `yaml:"rule,omitempty" json:"rule,omitempty"`
	Rules []RuleDef `yaml:"rules,omitempty" json:"rules,omitempty"`
}

// LoadFile reads a schema file, choosing the format from its extension.
func LoadFile(path string, reg *Registry) (*Schema, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSchema, err)
	}
	defer f.Close()
	return Load(f, format, reg)
}

// Load decodes a schema definition and builds it. Unknown fields are
// rejected. reg may be nil when no rule refers to user code.
func Load(r io.Reader, format Format, reg *Registry) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadSchema, err)
	}
	def, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return def.Build(reg)
}

// Decode parses a schema definition without building it.
func Decode(data []byte, format Format) (*Definition, error) {
	var def Definition
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
			}
			return nil, errors.Join(ErrFailedToParseSchema, err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&def); err != nil {
			return nil, errors.Join(ErrFailedToParseSchema, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &def, nil
}

// Build turns the definition into a Schema, resolving user code in reg.
func (d *Definition) Build(reg *Registry) (*Schema, error) {
	if len(d.Columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrInvalidSchema)
	}
	columns := make([]Column, 0, len(d.Columns))
	for _, cd := range d.Columns {
		vs := make([]validation.Validation, 0, len(cd.Rules))
		for i, rd := range cd.Rules {
			v, err := buildValidation(rd, reg)
			if err != nil {
				return nil, fmt.Errorf("column %q rule %d: %w", cd.Name, i, err)
			}
			vs = append(vs, v)
		}
		var opts []ColumnOption
		if cd.AllowEmpty {
			opts = append(opts, AllowEmpty())
		}
		columns = append(columns, NewColumn(cd.Name, vs, opts...))
	}

	var opts []Option
	if d.Ordered {
		opts = append(opts, Ordered())
	}
	return New(columns, opts...)
}

// buildValidation builds a top-level rule node. Only here may a node be a
// whole-column kind check.
func buildValidation(rd RuleDef, reg *Registry) (validation.Validation, error) {
	if rd.Type == "kind" {
		kind, err := table.ParseKind(rd.Kind)
		if err != nil {
			return nil, errors.Join(ErrInvalidSchema, err)
		}
		return validation.IsKind(kind, messageOpts(rd)...)
	}
	return buildRule(rd, reg)
}

func buildRule(rd RuleDef, reg *Registry) (*validation.Rule, error) {
	opts := messageOpts(rd)

	switch rd.Type {
	case "in_range":
		lo, hi := math.Inf(-1), math.Inf(1)
		if rd.Min != nil {
			lo = *rd.Min
		}
		if rd.Max != nil {
			hi = *rd.Max
		}
		return validation.InRange(lo, hi, opts...), nil

	case "pattern":
		if rd.Literal {
			opts = append(opts, validation.Literal())
		}
		if rd.IgnoreCase {
			opts = append(opts, validation.IgnoreCase())
		}
		return validation.MatchesPattern(rd.Pattern, opts...)

	case "in_list":
		if len(rd.Options) == 0 {
			return nil, fmt.Errorf("%w: in_list needs options", ErrInvalidSchema)
		}
		if rd.IgnoreCase {
			opts = append(opts, validation.IgnoreCase())
		}
		return validation.InList(rd.Options, opts...), nil

	case "leading_whitespace":
		return validation.LeadingWhitespace(opts...), nil

	case "trailing_whitespace":
		return validation.TrailingWhitespace(opts...), nil

	case "date_format":
		return validation.DateFormat(rd.Format, opts...)

	case "can_convert":
		kind, err := table.ParseKind(rd.Kind)
		if err != nil {
			return nil, errors.Join(ErrInvalidSchema, err)
		}
		return validation.CanConvert(kind, opts...)

	case "not":
		if rd.Rule == nil {
			return nil, fmt.Errorf("%w: not needs a rule", ErrInvalidSchema)
		}
		inner, err := buildRule(*rd.Rule, reg)
		if err != nil {
			return nil, err
		}
		return validation.Not(inner, opts...), nil

	case "all_of", "any_of":
		if len(rd.Rules) < 2 {
			return nil, fmt.Errorf("%w: %s needs at least two rules", ErrInvalidSchema, rd.Type)
		}
		rules := make([]*validation.Rule, 0, len(rd.Rules))
		for _, sub := range rd.Rules {
			r, err := buildRule(sub, reg)
			if err != nil {
				return nil, err
			}
			rules = append(rules, r)
		}
		var combined *validation.Rule
		if rd.Type == "all_of" {
			combined = validation.AllOf(rules[0], rules[1:]...)
		} else {
			combined = validation.AnyOf(rules[0], rules[1:]...)
		}
		if rd.Message != "" {
			combined = validation.NewRule(combined, opts...)
		}
		return combined, nil

	case "callable":
		fn, ok := reg.callable(rd.Name)
		if !ok {
			return nil, fmt.Errorf("%w: callable %q", ErrUnknownRule, rd.Name)
		}
		return validation.CanCall(fn, append([]validation.Option{validation.WithName(rd.Name)}, opts...)...)

	case "element":
		e, ok := reg.element(rd.Name)
		if !ok {
			return nil, fmt.Errorf("%w: element %q", ErrUnknownRule, rd.Name)
		}
		return validation.CustomElement(e.fn, firstNonEmpty(rd.Message, e.message))

	case "series":
		s, ok := reg.seriesPredicate(rd.Name)
		if !ok {
			return nil, fmt.Errorf("%w: series %q", ErrUnknownRule, rd.Name)
		}
		return validation.CustomSeries(s.fn, firstNonEmpty(rd.Message, s.message))

	case "kind":
		return nil, fmt.Errorf("%w: kind checks cannot be nested", ErrInvalidSchema)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, rd.Type)
}

func messageOpts(rd RuleDef) []validation.Option {
	if rd.Message == "" {
		return nil
	}
	return []validation.Option{validation.WithMessage(rd.Message)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
