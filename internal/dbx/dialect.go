package dbx

import (
	"strconv"
	"strings"
)

// Dialect tells repositories which placeholder style the driver expects.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rebind rewrites '?' placeholders into the dialect's native form.
// Postgres gets $1..$n; SQLite keeps '?'. Question marks inside single
// quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Valid reports whether d is a known dialect.
func (d Dialect) Valid() bool {
	return d == DialectPostgres || d == DialectSQLite
}
