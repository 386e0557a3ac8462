package resolve

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	return New(schema.NewRegistry(nil), 1000, types.FormatSQL, nil)
}

func TestResolveCanonicalizesAliases(t *testing.T) {
	r := testResolver(t)

	cases := map[string]string{
		"user":         "user",
		"users":        "user",
		"  Orders ":    "order",
		"transaction":  "payment",
		"TRANSACTIONS": "payment",
		"products":     "product",
	}
	for alias, want := range cases {
		resolved, err := r.Resolve(types.GenerationRequest{Schema: alias, Count: 1})
		require.NoError(t, err, alias)
		assert.Equal(t, want, resolved.Schema, alias)
	}
}

func TestResolveUnknownEntity(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(types.GenerationRequest{Schema: "invoice", Count: 1})
	require.Error(t, err)
	assert.True(t, enginerr.Is(err, enginerr.KindUnknownEntity))
	assert.Contains(t, err.Error(), "order")
}

func TestResolveCountBounds(t *testing.T) {
	r := New(schema.NewRegistry(nil), 50, types.FormatSQL, nil)

	_, err := r.Resolve(types.GenerationRequest{Schema: "user", Count: 51})
	assert.True(t, enginerr.Is(err, enginerr.KindRequestTooLarge))

	_, err = r.Resolve(types.GenerationRequest{Schema: "user", Count: -1})
	assert.True(t, enginerr.Is(err, enginerr.KindInvalidCount))

	_, err = r.Resolve(types.GenerationRequest{Schema: "user", Count: 0})
	assert.NoError(t, err)
}

func TestResolveFormatDefaultAndValidation(t *testing.T) {
	r := New(schema.NewRegistry(nil), 1000, types.FormatCSV, nil)

	resolved, err := r.Resolve(types.GenerationRequest{Schema: "user", Count: 1})
	require.NoError(t, err)
	assert.Equal(t, types.FormatCSV, resolved.Format)

	resolved, err = r.Resolve(types.GenerationRequest{Schema: "user", Count: 1, Format: types.FormatJSON})
	require.NoError(t, err)
	assert.Equal(t, types.FormatJSON, resolved.Format)

	_, err = r.Resolve(types.GenerationRequest{Schema: "user", Count: 1, Format: "parquet"})
	assert.True(t, enginerr.Is(err, enginerr.KindUnsupportedFormat))
}

func TestResolveRejectsUnknownOverrideField(t *testing.T) {
	r := testResolver(t)

	_, err := r.Resolve(types.GenerationRequest{
		Schema:    "order",
		Count:     5,
		Overrides: map[string]types.Override{"discount": {Values: []string{"none"}}},
	})
	assert.True(t, enginerr.Is(err, enginerr.KindAmbiguousRequest))
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	r := testResolver(t)

	raw := types.GenerationRequest{Schema: "orders", Count: 3}
	_, err := r.Resolve(raw)
	require.NoError(t, err)
	assert.Equal(t, "orders", raw.Schema)
	assert.Equal(t, types.Format(""), raw.Format)
}

func TestParseOverride(t *testing.T) {
	field, ov, err := ParseOverride("amount=10..500")
	require.NoError(t, err)
	assert.Equal(t, "amount", field)
	require.NotNil(t, ov.Min)
	require.NotNil(t, ov.Max)
	assert.Equal(t, float64(10), *ov.Min)
	assert.Equal(t, float64(500), *ov.Max)

	field, ov, err = ParseOverride("price=0.5..99.99")
	require.NoError(t, err)
	assert.Equal(t, "price", field)
	assert.Equal(t, 0.5, *ov.Min)
	assert.Equal(t, 99.99, *ov.Max)

	field, ov, err = ParseOverride("status=failed|pending")
	require.NoError(t, err)
	assert.Equal(t, "status", field)
	assert.Equal(t, []string{"failed", "pending"}, ov.Values)

	field, ov, err = ParseOverride("order_date=2024")
	require.NoError(t, err)
	assert.Equal(t, "order_date", field)
	require.NotNil(t, ov.Start)
	require.NotNil(t, ov.End)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *ov.Start)
	assert.Equal(t, time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC), *ov.End)

	field, ov, err = ParseOverride("created_at=2024-01-01..2024-06-30")
	require.NoError(t, err)
	assert.Equal(t, "created_at", field)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *ov.Start)
	assert.Equal(t, time.Date(2024, time.June, 30, 23, 59, 59, 0, time.UTC), *ov.End)

	// A lone value is an enum subset of one.
	field, ov, err = ParseOverride("gateway=stripe")
	require.NoError(t, err)
	assert.Equal(t, "gateway", field)
	assert.Equal(t, []string{"stripe"}, ov.Values)
}

func TestParseOverrideMalformed(t *testing.T) {
	for _, expr := range []string{"amount", "=10..500", "amount=", "  =  "} {
		_, _, err := ParseOverride(expr)
		assert.True(t, enginerr.Is(err, enginerr.KindAmbiguousRequest), expr)
	}
}

func TestPatternInterpreterBasics(t *testing.T) {
	p := &PatternInterpreter{}

	req, err := p.Interpret(context.Background(), "Generate 10 mock users")
	require.NoError(t, err)
	assert.Equal(t, "user", req.Schema)
	assert.Equal(t, 10, req.Count)
	assert.Equal(t, types.FormatSQL, req.Format)
	assert.Empty(t, req.Overrides)
}

func TestPatternInterpreterDefaultCount(t *testing.T) {
	p := &PatternInterpreter{}

	req, err := p.Interpret(context.Background(), "some products please")
	require.NoError(t, err)
	assert.Equal(t, "product", req.Schema)
	assert.Equal(t, 10, req.Count)
}

func TestPatternInterpreterAmountsAndYear(t *testing.T) {
	p := &PatternInterpreter{}

	req, err := p.Interpret(context.Background(), "20 orders with amounts $10-500 in 2024 as json")
	require.NoError(t, err)
	assert.Equal(t, "order", req.Schema)
	assert.Equal(t, 20, req.Count)
	assert.Equal(t, types.FormatJSON, req.Format)

	amount, ok := req.Overrides["amount"]
	require.True(t, ok)
	assert.Equal(t, float64(10), *amount.Min)
	assert.Equal(t, float64(500), *amount.Max)

	window, ok := req.Overrides["order_date"]
	require.True(t, ok)
	assert.Equal(t, 2024, window.Start.Year())
	assert.Equal(t, 2024, window.End.Year())
}

func TestPatternInterpreterFailedPayments(t *testing.T) {
	p := &PatternInterpreter{}

	req, err := p.Interpret(context.Background(), "5 failed payment transactions")
	require.NoError(t, err)
	assert.Equal(t, "payment", req.Schema)
	assert.Equal(t, 5, req.Count)
	assert.Equal(t, []string{"failed"}, req.Overrides["status"].Values)
}

func TestPatternInterpreterProductPrices(t *testing.T) {
	p := &PatternInterpreter{}

	req, err := p.Interpret(context.Background(), "15 products between $5-$50 as csv")
	require.NoError(t, err)
	assert.Equal(t, "product", req.Schema)
	assert.Equal(t, 15, req.Count)
	assert.Equal(t, types.FormatCSV, req.Format)

	price, ok := req.Overrides["price"]
	require.True(t, ok)
	assert.Equal(t, float64(5), *price.Min)
	assert.Equal(t, float64(50), *price.Max)
}

func TestPatternInterpreterAmbiguous(t *testing.T) {
	p := &PatternInterpreter{}

	_, err := p.Interpret(context.Background(), "make me something nice")
	assert.True(t, enginerr.Is(err, enginerr.KindAmbiguousRequest))
}

func TestResolveTextValidatesInterpreterOutput(t *testing.T) {
	r := New(schema.NewRegistry(nil), 20, types.FormatSQL, nil)

	// The offline interpreter finds the entity and count; the resolver
	// still enforces the ceiling.
	_, err := r.ResolveText(context.Background(), "500 users")
	assert.True(t, enginerr.Is(err, enginerr.KindRequestTooLarge))

	req, err := r.ResolveText(context.Background(), "5 failed payments")
	require.NoError(t, err)
	assert.Equal(t, "payment", req.Schema)
	assert.Equal(t, 5, req.Count)
}
