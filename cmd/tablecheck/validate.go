package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"

	"github.com/dmitrymomot/tableschema/pkg/config"
	"github.com/dmitrymomot/tableschema/pkg/logger"
	"github.com/dmitrymomot/tableschema/pkg/pg"
	"github.com/dmitrymomot/tableschema/pkg/report"
	"github.com/dmitrymomot/tableschema/pkg/schema"
	"github.com/dmitrymomot/tableschema/pkg/storage"
	"github.com/dmitrymomot/tableschema/pkg/table"
)

var (
	errNoSource        = errors.New("either a source or --pg-query is required")
	errConflictSources = errors.New("a source and --pg-query cannot be used together")
	errInvalidComma    = errors.New("--comma must be a single character")
)

// validateCommand holds the flags of "tablecheck validate".
type validateCommand struct {
	SchemaURI   string
	Source      string
	PGQuery     string
	Format      string
	LogLevel    string
	Concurrency int
	InferKinds  bool
	Only        []string
	Comma       string
	IndexColumn string
	NullValues  []string

	stdout io.Writer
	stderr io.Writer
}

func (c *validateCommand) name() string { return "validate" }

// Register adds the command to app. Flag defaults come from cfg so flags
// override the environment.
func (c *validateCommand) Register(app *kingpin.Application, cfg config.App) {
	cmd := app.Command(c.name(), "Validate a table against a schema.")
	cmd.Flag("schema", "Schema file (.yaml, .yml or .json), local path or s3://bucket/key.").Short('s').Required().StringVar(&c.SchemaURI)
	cmd.Flag("format", "Report format: text or json.").Short('f').Default(cfg.ReportFormat).EnumVar(&c.Format, string(report.FormatText), string(report.FormatJSON))
	cmd.Flag("log-level", "Log level: debug, info, warn or error.").Default(cfg.LogLevel).StringVar(&c.LogLevel)
	cmd.Flag("concurrency", "Columns validated in parallel, 0 for GOMAXPROCS.").Default(strconv.Itoa(cfg.Concurrency)).IntVar(&c.Concurrency)
	cmd.Flag("infer-kinds", "Infer column kinds from CSV text.").Default(strconv.FormatBool(cfg.InferKinds)).BoolVar(&c.InferKinds)
	cmd.Flag("only", "Validate only this schema column. Repeatable.").StringsVar(&c.Only)
	cmd.Flag("comma", "CSV field delimiter.").Default(",").StringVar(&c.Comma)
	cmd.Flag("index-column", "CSV column used as the row index.").StringVar(&c.IndexColumn)
	cmd.Flag("null-value", "CSV text treated as a missing value. Repeatable.").StringsVar(&c.NullValues)
	cmd.Flag("pg-query", "Validate the result of this SQL query instead of a CSV source (uses PG_CONN_URL).").StringVar(&c.PGQuery)
	cmd.Arg("source", "CSV file, local path or s3://bucket/key.").StringVar(&c.Source)
}

func (c *validateCommand) run(ctx context.Context, cfg config.App) int {
	cfg.LogLevel = c.LogLevel
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(c.stderr, "tablecheck:", err)
		return exitError
	}
	logFormat, _ := logger.ParseFormat(cfg.LogFormat)

	runID := uuid.NewString()
	ctx = logger.WithRunID(ctx, runID)
	log := logger.New(
		logger.WithEnvironment(cfg.Environment, "tablecheck"),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithFormat(logFormat),
		logger.WithOutput(c.stderr),
		logger.WithContextExtractors(logger.RunIDExtractor),
	)

	result, err := c.validate(ctx, cfg, log)
	if err != nil {
		log.ErrorContext(ctx, "validation failed", logger.Error(err))
		return exitError
	}
	result.RunID = runID

	if err := report.Write(c.stdout, result, report.Format(c.Format)); err != nil {
		log.ErrorContext(ctx, "failed to write report", logger.Error(err))
		return exitError
	}
	if !result.Valid() {
		return exitWarnings
	}
	return exitValid
}

func (c *validateCommand) validate(ctx context.Context, cfg config.App, log *slog.Logger) (report.Result, error) {
	switch {
	case c.Source == "" && c.PGQuery == "":
		return report.Result{}, errNoSource
	case c.Source != "" && c.PGQuery != "":
		return report.Result{}, errConflictSources
	}

	start := time.Now()
	s, err := c.loadSchema(ctx, cfg)
	if err != nil {
		return report.Result{}, err
	}

	source := c.Source
	var tbl *table.Table
	if c.PGQuery != "" {
		source = "postgres"
		tbl, err = c.queryTable(ctx, cfg, log)
	} else {
		tbl, err = c.readTable(ctx, cfg)
	}
	if err != nil {
		return report.Result{}, err
	}
	log.InfoContext(ctx, "table loaded",
		logger.Source(source),
		logger.Rows(tbl.Len()),
		slog.Int("columns", tbl.Width()),
	)

	warnings, err := s.Validate(ctx, tbl,
		schema.Only(c.Only...),
		schema.WithConcurrency(c.Concurrency),
		schema.WithLogger(log),
	)
	if err != nil {
		return report.Result{}, err
	}
	log.InfoContext(ctx, "table validated",
		logger.Source(source),
		logger.Warnings(len(warnings)),
		logger.Duration(time.Since(start)),
	)

	return report.Result{
		Source:   source,
		Rows:     tbl.Len(),
		Columns:  tbl.Width(),
		Warnings: warnings,
	}, nil
}

func (c *validateCommand) loadSchema(ctx context.Context, cfg config.App) (*schema.Schema, error) {
	format, err := schema.FormatFromPath(c.SchemaURI)
	if err != nil {
		return nil, err
	}
	store, key, err := storage.Resolve(ctx, c.SchemaURI, cfg.S3)
	if err != nil {
		return nil, err
	}
	r, err := store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", c.SchemaURI, err)
	}
	defer r.Close()

	return schema.Load(r, format, nil)
}

func (c *validateCommand) readTable(ctx context.Context, cfg config.App) (*table.Table, error) {
	opts, err := c.csvOptions()
	if err != nil {
		return nil, err
	}
	store, key, err := storage.Resolve(ctx, c.Source, cfg.S3)
	if err != nil {
		return nil, err
	}
	r, err := store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", c.Source, err)
	}
	defer r.Close()

	return table.ReadCSV(r, opts...)
}

func (c *validateCommand) csvOptions() ([]table.CSVOption, error) {
	comma := []rune(c.Comma)
	if len(comma) != 1 {
		return nil, fmt.Errorf("%w: %q", errInvalidComma, c.Comma)
	}

	opts := []table.CSVOption{table.Comma(comma[0])}
	if c.InferKinds {
		opts = append(opts, table.InferKinds())
	}
	if c.IndexColumn != "" {
		opts = append(opts, table.IndexColumn(c.IndexColumn))
	}
	if len(c.NullValues) > 0 {
		opts = append(opts, table.NullValues(c.NullValues...))
	}
	return opts, nil
}

func (c *validateCommand) queryTable(ctx context.Context, cfg config.App, log *slog.Logger) (*table.Table, error) {
	pool, err := pg.Connect(ctx, cfg.PG, log)
	if err != nil {
		return nil, err
	}
	defer pool.Close()

	if err := pg.Healthcheck(pool)(ctx); err != nil {
		return nil, err
	}

	if cfg.PG.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.PG.QueryTimeout)
		defer cancel()
	}
	return pg.LoadTable(ctx, pool, c.PGQuery)
}
