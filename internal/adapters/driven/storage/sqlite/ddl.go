package sqlite

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/rcingest/internal/core/domain"
)

// CreateTableSQL renders the DDL for schema. The schema must be valid.
func CreateTableSQL(schema domain.TableSchema) string {
	defs := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		defs[i] = columnSQL(col)
	}
	return "CREATE TABLE IF NOT EXISTS " + quote(schema.Name) +
		" (" + strings.Join(defs, ", ") + ") STRICT"
}

func columnSQL(col domain.Column) string {
	name := quote(col.Name)
	switch {
	case col.Type == domain.ColumnBoolean:
		return name + " INTEGER CHECK (" + name + " IN (0,1))"
	case len(col.Allowed) > 0:
		codes := make([]string, len(col.Allowed))
		for i, c := range col.Allowed {
			codes[i] = strconv.Itoa(c)
		}
		return name + " " + string(col.Type) + " CHECK (" + name + " IN (" + strings.Join(codes, ",") + "))"
	default:
		return name + " " + string(col.Type)
	}
}

// insertSQL renders a parameterised insert of len(columns) values.
func insertSQL(table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quote(c)
	}
	return "INSERT INTO " + quote(table) + " (" + strings.Join(quoted, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ") + ")"
}

// quote renders an identifier. Schema validation restricts identifiers to
// plain names; quoting also covers reserved words.
func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
