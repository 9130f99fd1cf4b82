// Package logger provides a context-aware wrapper around Go's slog package
// with functional options, attribute helpers for validation runs and
// transparent injection of values stored in context.Context.
//
// New builds a *slog.Logger from Option functions. The handler is either
// slog.NewTextHandler or slog.NewJSONHandler depending on the Format, wrapped
// in LogHandlerDecorator which runs every registered ContextExtractor before
// delegating.
//
// Helper constructors such as RunID, Column, Rows and Warnings live in attr.go
// and keep attribute names consistent between the CLI and the schema layer.
//
// # Usage
//
//	import "github.com/dmitrymomot/tableschema/pkg/logger"
//
//	log := logger.New(
//	    logger.WithDevelopment("tablecheck"),
//	    logger.WithContextExtractors(logger.RunIDExtractor),
//	)
//
//	ctx := logger.WithRunID(context.Background(), runID)
//	log.InfoContext(ctx, "validated table",
//	    logger.Source(uri),
//	    logger.Rows(tbl.Len()),
//	    logger.Warnings(len(ws)),
//	)
//
// Logs go to stderr by default so that reports written to stdout stay
// machine readable.
//
// Error and Errors produce attributes only for non-nil errors, so
//
//	log.Info("done", logger.Error(err))
//
// needs no nil check.
package logger
