// Package migrate contains the database schema and applies it.
package migrate

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jcpaschoal/agenda/business/sdk/sqldb"
	"github.com/jmoiron/sqlx"
)

//go:embed sql/schema.sql
var schemaDoc string

// Statements returns the schema split into individual statements.
func Statements() []string {
	var stmts []string
	for _, s := range strings.Split(schemaDoc, ";\n") {
		var lines []string
		for _, line := range strings.Split(s, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			lines = append(lines, line)
		}

		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		stmt = strings.TrimSuffix(stmt, ";")
		if stmt == "" {
			continue
		}
		stmts = append(stmts, stmt)
	}

	return stmts
}

// Migrate attempts to bring the database up to date with the schema. Every
// statement is idempotent so the function can run on each deploy.
func Migrate(ctx context.Context, db *sqlx.DB) (err error) {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	for i, stmt := range Statements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}
