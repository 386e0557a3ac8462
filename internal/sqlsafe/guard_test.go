package sqlsafe

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
)

type fakeIdentifiers map[string][]string

func (f fakeIdentifiers) Columns(table string) ([]string, bool) {
	cols, ok := f[table]
	return cols, ok
}

func testGuard() *Guard {
	return NewGuard(fakeIdentifiers{
		"user":  {"id", "name", "email"},
		"order": {"id", "user_id", "amount"},
	})
}

func TestCheckIdentifiersRejectsUnknownTable(t *testing.T) {
	g := testGuard()

	err := g.CheckIdentifiers("customers", []string{"id"})
	require.Error(t, err)
	assert.True(t, enginerr.Is(err, enginerr.KindUnsafeIdentifier))
	assert.Equal(t, enginerr.ClassSafety, enginerr.KindUnsafeIdentifier.Class())
}

func TestCheckIdentifiersRejectsUnknownColumn(t *testing.T) {
	g := testGuard()

	err := g.CheckIdentifiers("user", []string{"id", "password"})
	assert.True(t, enginerr.Is(err, enginerr.KindUnsafeIdentifier))
}

func TestCheckIdentifiersRejectsMalformedNames(t *testing.T) {
	g := testGuard()

	for _, table := range []string{"user; DROP TABLE x", "user--", "us er", ""} {
		err := g.CheckIdentifiers(table, nil)
		assert.True(t, enginerr.Is(err, enginerr.KindUnsafeIdentifier), "table %q", table)
	}
}

func TestRenderValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "NULL"},
		{"plain", "'plain'"},
		{"O'Brien", "'O''Brien'"},
		{42, "42"},
		{int64(-7), "-7"},
		{19.99, "19.99"},
		{true, "TRUE"},
		{false, "FALSE"},
		{time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), "'2024-03-15 09:30:00'"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RenderValue(tc.in))
	}
}

func TestRenderValueNeverBreaksOutOfLiteral(t *testing.T) {
	adversarial := []string{
		"'; DROP TABLE users; --",
		`'); DELETE FROM orders; /*`,
		"Robert'); TRUNCATE payment;--",
		"normal' OR '1'='1",
		"union select * from information_schema.tables",
		"back\\slash' quote",
		"nul\x00byte",
	}
	for _, input := range adversarial {
		lit := RenderValue(input)
		require.True(t, strings.HasPrefix(lit, "'"), "literal %q", lit)
		require.True(t, strings.HasSuffix(lit, "'"), "literal %q", lit)

		// Every interior quote must be doubled: stripping doubled
		// quotes leaves none behind.
		inner := lit[1 : len(lit)-1]
		assert.NotContains(t, strings.ReplaceAll(inner, "''", ""), "'", "input %q", input)
		assert.NotContains(t, lit, "\x00")
	}
}

func TestRenderStatement(t *testing.T) {
	g := testGuard()

	stmt, err := g.RenderStatement("user",
		[]string{"id", "name", "email"},
		[][]any{
			{1, "Alice Smith", "alice@example.com"},
			{2, "O'Brien", nil},
		})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stmt, "INSERT INTO user (id,name,email) VALUES "))
	assert.Contains(t, stmt, "'O''Brien'")
	assert.Contains(t, stmt, "NULL")
	assert.True(t, strings.HasSuffix(stmt, ";"))
	assert.Equal(t, 1, strings.Count(stmt, ";"))
}

func TestRenderStatementEmptyRows(t *testing.T) {
	g := testGuard()

	stmt, err := g.RenderStatement("user", []string{"id"}, nil)
	require.NoError(t, err)
	assert.Empty(t, stmt)
}

func TestRenderStatementRejectsUnknownIdentifiers(t *testing.T) {
	g := testGuard()

	_, err := g.RenderStatement("audit_log", []string{"id"}, [][]any{{1}})
	assert.True(t, enginerr.Is(err, enginerr.KindUnsafeIdentifier))

	_, err = g.RenderStatement("user", []string{"id", "role"}, [][]any{{1, "admin"}})
	assert.True(t, enginerr.Is(err, enginerr.KindUnsafeIdentifier))
}

func TestRenderStatementSurvivesAdversarialValues(t *testing.T) {
	g := testGuard()

	stmt, err := g.RenderStatement("user",
		[]string{"id", "name"},
		[][]any{
			{1, "'; DROP TABLE user; --"},
			{2, "x' UNION SELECT password FROM information_schema.users --"},
		})
	require.NoError(t, err)

	// The screen sees only statement structure; the payloads stay
	// confined to literals.
	require.NoError(t, g.AssertInsertOnly(stmt))
	skeleton := stripLiterals(stmt)
	assert.NotContains(t, strings.ToLower(skeleton), "drop")
	assert.NotContains(t, strings.ToLower(skeleton), "union")
}

func TestAssertInsertOnly(t *testing.T) {
	g := testGuard()

	require.NoError(t, g.AssertInsertOnly("INSERT INTO user (id) VALUES (1);"))

	bad := []string{
		"DROP TABLE user;",
		"DELETE FROM user WHERE 1=1;",
		"INSERT INTO user (id) VALUES (1); DROP TABLE user;",
		"INSERT INTO user (id) SELECT id FROM information_schema.tables;",
		"INSERT INTO user (id) VALUES (1) -- comment",
	}
	for _, stmt := range bad {
		err := g.AssertInsertOnly(stmt)
		assert.True(t, enginerr.Is(err, enginerr.KindUnsafeIdentifier), "statement %q", stmt)
	}
}

func TestStripLiterals(t *testing.T) {
	in := "INSERT INTO t (a) VALUES ('it''s a -- trap; DROP');"
	out := stripLiterals(in)
	assert.Equal(t, "INSERT INTO t (a) VALUES ('');", out)
}
