package config

import (
	"fmt"

	"github.com/dmitrymomot/tableschema/pkg/logger"
	"github.com/dmitrymomot/tableschema/pkg/pg"
	"github.com/dmitrymomot/tableschema/pkg/report"
	"github.com/dmitrymomot/tableschema/pkg/storage"
)

// App is the tablecheck configuration. Command-line flags override it.
type App struct {
	Environment  string `env:"TABLECHECK_ENV" envDefault:"development"`
	LogLevel     string `env:"TABLECHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"TABLECHECK_LOG_FORMAT" envDefault:"text"`
	ReportFormat string `env:"TABLECHECK_REPORT_FORMAT" envDefault:"text"`
	Concurrency  int    `env:"TABLECHECK_CONCURRENCY" envDefault:"0"` // 0 means GOMAXPROCS
	InferKinds   bool   `env:"TABLECHECK_INFER_KINDS" envDefault:"true"`

	S3 storage.S3Config `envPrefix:"TABLECHECK_S3_"`
	PG pg.Config
}

// Validate checks the values that have a closed set of options.
func (a App) Validate() error {
	if _, err := logger.ParseLevel(a.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if _, err := logger.ParseFormat(a.LogFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if _, err := report.ParseFormat(a.ReportFormat); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if a.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must not be negative", ErrInvalidValue)
	}
	return nil
}
