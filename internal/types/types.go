package types

import (
	"strings"
	"time"
)

// Format selects the artifact renderer for a request.
type Format string

const (
	FormatSQL  Format = "sql"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSQL:
		return FormatSQL, true
	case FormatCSV:
		return FormatCSV, true
	case FormatJSON:
		return FormatJSON, true
	}
	return "", false
}

// Override narrows one field's generation parameters for a single
// request. Schema defaults are never mutated; the synthesizer applies
// the override per invocation only.
type Override struct {
	Min    *float64
	Max    *float64
	Start  *time.Time
	End    *time.Time
	Values []string
}

// GenerationRequest is the immutable description of one generation
// run. Count is validated against the configured ceiling before any
// record is produced.
type GenerationRequest struct {
	Schema    string
	Count     int
	Seed      *int64
	Overrides map[string]Override
	Format    Format
}

// WithSeed returns a copy of the request pinned to the given seed.
func (r GenerationRequest) WithSeed(seed int64) GenerationRequest {
	r.Seed = &seed
	return r
}

// Artifact is the final serialized output handed to the caller. The
// engine retains no reference to it after return.
type Artifact struct {
	Format Format
	Data   []byte
}

func (a *Artifact) String() string {
	return string(a.Data)
}
