// Package table provides the in-memory tabular data that rules validate: an
// ordered set of named, equal-length columns, each carrying its own row index.
//
// Cell values are restricted to a closed set of scalars (nil, bool, int64,
// float64, string, time.Time). NewColumn normalizes Go integer and float types
// into that set and resolves the column Kind once, at construction, so rules
// never need runtime type inspection to know what a column holds.
//
// # Usage
//
//	age, err := table.NewColumn("Age", []any{31, 45, nil})
//	if err != nil {
//		return err
//	}
//	tbl, err := table.New(age)
//
// Tables can also be read from CSV:
//
//	tbl, err := table.ReadCSV(f, table.InferKinds(), table.IndexColumn("id"))
//
// # Row keys
//
// Every column carries row keys. By default they are 0..n-1; WithIndex and
// IndexColumn keep arbitrary comparable keys so warnings point at the rows the
// caller knows about, not at renumbered positions.
package table
