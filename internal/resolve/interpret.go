package resolve

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// Interpreter maps free text to a structured request. Implementations
// may be backed by an external NLP service; the resolver re-validates
// whatever they return, so they are never trusted to be safe.
type Interpreter interface {
	Interpret(ctx context.Context, text string) (*types.GenerationRequest, error)
}

// PatternInterpreter is the offline default: regexp extraction of the
// request shapes people actually type ("10 users", "20 orders $10-500
// in 2024 as csv", "5 failed payments").
type PatternInterpreter struct{}

var (
	countExpr  = regexp.MustCompile(`\b(\d+)\b`)
	amountExpr = regexp.MustCompile(`\$(\d+(?:\.\d+)?)\s*[-–]\s*\$?(\d+(?:\.\d+)?)`)
	yearTextExpr = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Entities in detection priority order; "user" last since words like
// "users" show up in unrelated requests least often.
var entityKeywords = []struct {
	keyword string
	schema  string
}{
	{"order", "order"},
	{"payment", "payment"},
	{"transaction", "payment"},
	{"product", "product"},
	{"user", "user"},
}

// Date field each entity's year/window constraints attach to.
var entityDateField = map[string]string{
	"user":    "created_at",
	"order":   "order_date",
	"payment": "transaction_date",
	"product": "created_at",
}

func (p *PatternInterpreter) Interpret(_ context.Context, text string) (*types.GenerationRequest, error) {
	lower := strings.ToLower(text)

	entity := ""
	for _, e := range entityKeywords {
		if strings.Contains(lower, e.keyword) {
			entity = e.schema
			break
		}
	}
	if entity == "" {
		return nil, enginerr.New(enginerr.KindAmbiguousRequest,
			"could not find a known entity in %q", text)
	}

	req := &types.GenerationRequest{
		Schema:    entity,
		Count:     10,
		Overrides: make(map[string]types.Override),
	}

	// Strip amount ranges and years before picking a count so "$10-500"
	// or "2024" is not mistaken for one.
	stripped := amountExpr.ReplaceAllString(lower, " ")
	stripped = yearTextExpr.ReplaceAllString(stripped, " ")
	if m := countExpr.FindStringSubmatch(stripped); m != nil {
		req.Count, _ = strconv.Atoi(m[1])
	}

	switch {
	case strings.Contains(lower, "csv"):
		req.Format = types.FormatCSV
	case strings.Contains(lower, "json"):
		req.Format = types.FormatJSON
	default:
		req.Format = types.FormatSQL
	}

	if m := amountExpr.FindStringSubmatch(text); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		amountField := "amount"
		if entity == "product" {
			amountField = "price"
		}
		req.Overrides[amountField] = types.Override{Min: &min, Max: &max}
	}

	if m := yearTextExpr.FindString(text); m != "" {
		year, _ := strconv.Atoi(m)
		if field, ok := entityDateField[entity]; ok {
			req.Overrides[field] = YearWindow(year)
		}
	}

	if strings.Contains(lower, "failed") && entity == "payment" {
		req.Overrides["status"] = types.Override{Values: []string{"failed"}}
	}

	return req, nil
}
