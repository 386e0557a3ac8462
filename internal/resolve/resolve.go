// Package resolve turns raw requests, structured or free text, into
// validated GenerationRequests. Nothing downstream trusts unvalidated
// input; the resolver is the choke point.
package resolve

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

type Resolver struct {
	registry      *schema.Registry
	maxRecords    int
	defaultFormat types.Format
	interp        Interpreter
}

func New(registry *schema.Registry, maxRecords int, defaultFormat types.Format, interp Interpreter) *Resolver {
	if interp == nil {
		interp = &PatternInterpreter{}
	}
	return &Resolver{
		registry:      registry,
		maxRecords:    maxRecords,
		defaultFormat: defaultFormat,
		interp:        interp,
	}
}

// Resolve validates and normalizes a structured request: the schema
// (or an accepted alias) must exist, the count must be within bounds
// and the format tag recognized. It returns a normalized copy and
// never mutates its input.
func (r *Resolver) Resolve(raw types.GenerationRequest) (types.GenerationRequest, error) {
	name := strings.ToLower(strings.TrimSpace(raw.Schema))
	canonical, ok := r.registry.Aliases()[name]
	if !ok {
		return types.GenerationRequest{}, enginerr.New(enginerr.KindUnknownEntity,
			"no schema matches %q; known schemas: %s", raw.Schema, strings.Join(r.registry.Names(), ", "))
	}

	if raw.Count < 0 {
		return types.GenerationRequest{}, enginerr.New(enginerr.KindInvalidCount,
			"record count %d is negative", raw.Count)
	}
	if raw.Count > r.maxRecords {
		return types.GenerationRequest{}, enginerr.New(enginerr.KindRequestTooLarge,
			"record count %d exceeds the configured maximum of %d", raw.Count, r.maxRecords)
	}

	format := raw.Format
	if format == "" {
		format = r.defaultFormat
	}
	if _, ok := types.ParseFormat(string(format)); !ok {
		return types.GenerationRequest{}, enginerr.New(enginerr.KindUnsupportedFormat,
			"unsupported output format %q", raw.Format)
	}

	def, err := r.registry.Get(canonical)
	if err != nil {
		return types.GenerationRequest{}, err
	}
	for field := range raw.Overrides {
		if _, ok := def.Field(field); !ok {
			return types.GenerationRequest{}, enginerr.New(enginerr.KindAmbiguousRequest,
				"constraint targets unknown field %s on schema %s", field, canonical)
		}
	}

	resolved := raw
	resolved.Schema = canonical
	resolved.Format = format
	return resolved, nil
}

// ResolveText hands free text to the interpreter collaborator, then
// validates whatever comes back exactly like a structured request.
func (r *Resolver) ResolveText(ctx context.Context, text string) (types.GenerationRequest, error) {
	raw, err := r.interp.Interpret(ctx, text)
	if err != nil {
		return types.GenerationRequest{}, err
	}
	if raw == nil {
		return types.GenerationRequest{}, enginerr.New(enginerr.KindAmbiguousRequest,
			"could not interpret request %q", text)
	}
	return r.Resolve(*raw)
}

var (
	rangeExpr = regexp.MustCompile(`^(-?\d+(?:\.\d+)?)\.\.(-?\d+(?:\.\d+)?)$`)
	yearExpr  = regexp.MustCompile(`^\d{4}$`)
	dateExpr  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})\.\.(\d{4}-\d{2}-\d{2})$`)
)

// ParseOverride parses one constraint expression from the CLI:
//
//	amount=10..500                  numeric range
//	status=failed|pending           enum subset
//	order_date=2024                 calendar-year window
//	created_at=2024-01-01..2024-06-30
func ParseOverride(expr string) (string, types.Override, error) {
	field, value, found := strings.Cut(expr, "=")
	field = strings.TrimSpace(field)
	value = strings.TrimSpace(value)
	if !found || field == "" || value == "" {
		return "", types.Override{}, enginerr.New(enginerr.KindAmbiguousRequest,
			"constraint %q is not of the form field=value", expr)
	}

	if m := dateExpr.FindStringSubmatch(value); m != nil {
		start, err := time.Parse(time.DateOnly, m[1])
		if err != nil {
			return "", types.Override{}, enginerr.New(enginerr.KindAmbiguousRequest, "bad date in constraint %q", expr)
		}
		end, err := time.Parse(time.DateOnly, m[2])
		if err != nil {
			return "", types.Override{}, enginerr.New(enginerr.KindAmbiguousRequest, "bad date in constraint %q", expr)
		}
		end = end.Add(24*time.Hour - time.Second)
		return field, types.Override{Start: &start, End: &end}, nil
	}

	if m := rangeExpr.FindStringSubmatch(value); m != nil {
		min, _ := strconv.ParseFloat(m[1], 64)
		max, _ := strconv.ParseFloat(m[2], 64)
		return field, types.Override{Min: &min, Max: &max}, nil
	}

	if yearExpr.MatchString(value) {
		year, _ := strconv.Atoi(value)
		return field, YearWindow(year), nil
	}

	values := strings.Split(value, "|")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return field, types.Override{Values: values}, nil
}

// YearWindow expands a bare year into the full calendar window, the
// way "orders in 2024" is meant.
func YearWindow(year int) types.Override {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)
	return types.Override{Start: &start, End: &end}
}
