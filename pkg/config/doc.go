// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment
//     without overriding variables that are already set.
//   - Load parses the environment into any struct using `env` field tags and
//     caches the result per type, so repeated calls are cheap.
//   - Reload and ResetCache bypass or clear the cache, mostly for tests.
//
// App is the configuration of the tablecheck command:
//
//	if err := config.LoadEnv(); err != nil {
//	    return err
//	}
//	var app config.App
//	if err := config.Load(&app); err != nil {
//	    return err
//	}
//	if err := app.Validate(); err != nil {
//	    return err
//	}
//
// S3 settings use the TABLECHECK_S3_ prefix (TABLECHECK_S3_REGION,
// TABLECHECK_S3_ENDPOINT, ...) and Postgres settings the PG_ prefix
// (PG_CONN_URL, PG_QUERY_TIMEOUT, ...).
package config
