package storage

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
)

func GetPgxConstraintName(err error) string {
	if err == nil {
		return ""
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}

	return pgErr.ConstraintName
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching part anywhere in the value.
func containsPattern(part string) string {
	return "%" + likeEscaper.Replace(part) + "%"
}
