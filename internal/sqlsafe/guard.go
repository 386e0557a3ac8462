// Package sqlsafe is the one place the engine's safety policy is
// enforced mechanically: emitted SQL can only be an INSERT into a
// registry-owned table, and caller-influenced content only ever lands
// in literal position.
package sqlsafe

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
)

var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var destructivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(drop|delete|truncate|alter|update|create|grant|revoke)\b`),
	regexp.MustCompile(`(?i)\b(exec|execute|sp_|xp_)\b`),
	regexp.MustCompile(`--`),
	regexp.MustCompile(`/\*`),
	regexp.MustCompile(`(?i)union\s+select`),
	regexp.MustCompile(`(?i)information_schema`),
	regexp.MustCompile(`(?i)\bsys\.`),
}

// Identifiers is the allow-list the guard checks table and column
// names against. The schema registry implements it.
type Identifiers interface {
	Columns(table string) ([]string, bool)
}

type Guard struct {
	known Identifiers
}

func NewGuard(known Identifiers) *Guard {
	return &Guard{known: known}
}

// CheckIdentifiers rejects any table or column that is not a known,
// well-formed registry identifier. This closes the injection surface:
// free text can never reach identifier position.
func (g *Guard) CheckIdentifiers(table string, columns []string) error {
	if !validIdentifier.MatchString(table) {
		return enginerr.New(enginerr.KindUnsafeIdentifier, "table name %q is not a valid identifier", table)
	}
	declared, ok := g.known.Columns(table)
	if !ok {
		return enginerr.New(enginerr.KindUnsafeIdentifier, "table %q is not a registered schema", table)
	}

	allowed := make(map[string]bool, len(declared))
	for _, col := range declared {
		allowed[col] = true
	}
	for _, col := range columns {
		if !validIdentifier.MatchString(col) {
			return enginerr.New(enginerr.KindUnsafeIdentifier, "column name %q is not a valid identifier", col)
		}
		if !allowed[col] {
			return enginerr.New(enginerr.KindUnsafeIdentifier, "column %q is not declared by schema %s", col, table)
		}
	}
	return nil
}

// RenderValue renders one value as a SQL literal, quote-doubling and
// stripping characters that could terminate the literal early.
func RenderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case string:
		return quoteString(val)
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return "'" + val.Format("2006-01-02 15:04:05") + "'"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	default:
		return quoteString(fmt.Sprintf("%v", val))
	}
}

func quoteString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "'", "''")
	return "'" + s + "'"
}

// RenderStatement builds one multi-row INSERT for the given table. The
// statement shape comes from squirrel with placeholders only; literals
// are substituted afterwards through RenderValue, then the whole
// statement passes the insert-only screen.
func (g *Guard) RenderStatement(table string, columns []string, rows [][]any) (string, error) {
	if err := g.CheckIdentifiers(table, columns); err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", nil
	}

	builder := squirrel.Insert(table).Columns(columns...)
	for _, row := range rows {
		if len(row) != len(columns) {
			return "", enginerr.New(enginerr.KindUnsafeIdentifier,
				"row has %d values for %d columns", len(row), len(columns))
		}
		builder = builder.Values(row...)
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build insert statement: %w", err)
	}

	stmt, err := interpolate(sqlStr, args)
	if err != nil {
		return "", err
	}
	stmt += ";"

	if err := g.AssertInsertOnly(stmt); err != nil {
		return "", err
	}
	return stmt, nil
}

// interpolate replaces each ? placeholder with its rendered literal.
// The placeholder form contains no string literals, so a bare scan is
// sufficient.
func interpolate(sqlStr string, args []any) (string, error) {
	var b strings.Builder
	b.Grow(len(sqlStr) * 2)

	arg := 0
	for i := 0; i < len(sqlStr); i++ {
		if sqlStr[i] != '?' {
			b.WriteByte(sqlStr[i])
			continue
		}
		if arg >= len(args) {
			return "", fmt.Errorf("placeholder count exceeds argument count")
		}
		b.WriteString(RenderValue(args[arg]))
		arg++
	}
	if arg != len(args) {
		return "", fmt.Errorf("statement consumed %d of %d arguments", arg, len(args))
	}
	return b.String(), nil
}

// AssertInsertOnly verifies a finished statement is a single INSERT
// and that nothing outside quoted literals smells destructive.
// Literal content is exempt: a generated value may legitimately
// contain the word "drop".
func (g *Guard) AssertInsertOnly(stmt string) error {
	trimmed := strings.TrimSpace(stmt)
	if !strings.HasPrefix(strings.ToUpper(trimmed), "INSERT INTO ") {
		return enginerr.New(enginerr.KindUnsafeIdentifier, "statement is not an INSERT")
	}

	skeleton := stripLiterals(trimmed)
	if strings.Count(skeleton, ";") > 1 {
		return enginerr.New(enginerr.KindUnsafeIdentifier, "statement contains multiple statements")
	}
	for _, pattern := range destructivePatterns {
		if loc := pattern.FindString(skeleton); loc != "" {
			return enginerr.New(enginerr.KindUnsafeIdentifier,
				"statement contains forbidden token %q outside a literal", loc)
		}
	}
	return nil
}

// stripLiterals blanks out single-quoted literals, honoring doubled
// quotes, so the screen only sees statement structure.
func stripLiterals(stmt string) string {
	var b strings.Builder
	b.Grow(len(stmt))

	inLiteral := false
	for i := 0; i < len(stmt); i++ {
		c := stmt[i]
		if c == '\'' {
			if inLiteral && i+1 < len(stmt) && stmt[i+1] == '\'' {
				i++ // escaped quote stays inside the literal
				continue
			}
			inLiteral = !inLiteral
			b.WriteByte('\'')
			continue
		}
		if !inLiteral {
			b.WriteByte(c)
		}
	}
	return b.String()
}
