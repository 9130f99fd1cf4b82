// Package schema applies per-column validations to a whole table.
//
// A Schema is a list of Columns, each holding validation rules and an
// allow-empty policy. Validate pairs schema columns with table columns either
// by name (the default) or by position (Ordered), runs the rules of every
// column concurrently and returns the warnings in schema order:
//
//	s, err := schema.New([]schema.Column{
//	    schema.NewColumn("Age", []validation.Validation{validation.InRange(0, 120)}),
//	    schema.NewColumn("Email", []validation.Validation{emailRule}, schema.AllowEmpty()),
//	})
//	warnings, err := s.Validate(ctx, tbl, schema.WithConcurrency(4))
//
// Schemas can also be declared in YAML or JSON and loaded with Load or
// LoadFile. Rule nodes that refer to user code ("callable", "element",
// "series") are resolved by name in a Registry:
//
//	columns:
//	  - name: Age
//	    allow_empty: true
//	    rules:
//	      - type: kind
//	        kind: number
//	      - type: in_range
//	        min: 0
//	        max: 120
//	  - name: Code
//	    rules:
//	      - type: not
//	        rule: {type: in_list, options: [admin, root]}
//
// Configuration problems (unknown columns, unknown rules, malformed files)
// are returned as errors. A data error from any rule stops the run.
package schema
