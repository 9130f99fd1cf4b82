// Package pg reads validation sources from PostgreSQL using the pgx/v5
// driver.
//
// Config is populated from environment variables (PG_*) through
// github.com/caarlos0/env. Connect opens a *pgxpool.Pool, retrying with a
// linear back-off until the database answers a ping, and Healthcheck wraps a
// ping for readiness checks.
//
// LoadTable runs a query through any Querier (*pgxpool.Pool, *pgx.Conn or
// pgx.Tx) and turns the result set into a table.Table:
//
//	pool, err := pg.Connect(ctx, cfg.PG, log)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	tbl, err := pg.LoadTable(ctx, pool, "SELECT id, email, created_at FROM customers")
//
// NULL values become nil cells so that allow-empty columns skip them.
package pg
