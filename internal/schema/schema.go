// Package schema declares the entity schemas the engine can generate
// data for: the field model, the built-in schemas, and the registry
// that owns them.
package schema

import (
	"time"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
)

// FieldKind is the closed set of generator types. Dispatch over kinds
// is a single switch per call site so a missing case is visible at
// review time rather than at request time.
type FieldKind string

const (
	KindSerial  FieldKind = "serial"
	KindWord    FieldKind = "word"
	KindText    FieldKind = "text"
	KindName    FieldKind = "name"
	KindEmail   FieldKind = "email"
	KindPhone   FieldKind = "phone"
	KindAddress FieldKind = "address"
	KindInt     FieldKind = "int"
	KindDecimal FieldKind = "decimal"
	KindDate    FieldKind = "date"
	KindEnum    FieldKind = "enum"
	KindRef     FieldKind = "ref"
	KindUUID    FieldKind = "uuid"
	KindPattern FieldKind = "pattern"
)

var knownKinds = map[FieldKind]bool{
	KindSerial: true, KindWord: true, KindText: true, KindName: true,
	KindEmail: true, KindPhone: true, KindAddress: true, KindInt: true,
	KindDecimal: true, KindDate: true, KindEnum: true, KindRef: true,
	KindUUID: true, KindPattern: true,
}

// Condition gates a field on the value of an earlier field in the same
// record (payment.failure_reason is only set when status is "failed").
type Condition struct {
	Field  string
	Equals string
}

type FieldDef struct {
	Name     string
	Kind     FieldKind
	Nullable bool

	// Range parameters for int, decimal and date kinds.
	Min   float64
	Max   float64
	Start time.Time
	End   time.Time

	// Enum values.
	Values []string

	// Ref target schema and its key field (default "id").
	Ref      string
	RefField string

	// Pattern template: '?' draws a letter, '#' a digit.
	Pattern string

	// Maximum length for text fields (0 means unlimited).
	MaxChars int

	OnlyIf *Condition
}

// SchemaDef is an immutable, ordered field list keyed by name.
type SchemaDef struct {
	Name   string
	Fields []FieldDef
}

func (s *SchemaDef) Field(name string) (*FieldDef, bool) {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i], true
		}
	}
	return nil, false
}

func (s *SchemaDef) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Dependencies returns the distinct schemas referenced by ref fields,
// excluding self-references.
func (s *SchemaDef) Dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, f := range s.Fields {
		if f.Kind == KindRef && f.Ref != s.Name && !seen[f.Ref] {
			seen[f.Ref] = true
			deps = append(deps, f.Ref)
		}
	}
	return deps
}

// Validate checks the definition before registration so that bad
// configuration fails at registry time, not mid-batch.
func (s *SchemaDef) Validate() error {
	if s.Name == "" {
		return enginerr.New(enginerr.KindUnknownSchema, "schema has no name")
	}
	seen := make(map[string]bool)
	for i, f := range s.Fields {
		if f.Name == "" {
			return enginerr.New(enginerr.KindUnknownSchema, "schema %s: field %d has no name", s.Name, i)
		}
		if seen[f.Name] {
			return enginerr.New(enginerr.KindDuplicateSchema, "schema %s: duplicate field %s", s.Name, f.Name)
		}
		seen[f.Name] = true

		if !knownKinds[f.Kind] {
			return enginerr.New(enginerr.KindUnknownSchema, "schema %s: field %s has unknown kind %q", s.Name, f.Name, f.Kind)
		}
		switch f.Kind {
		case KindInt, KindDecimal:
			if f.Min > f.Max {
				return enginerr.New(enginerr.KindInvalidRange, "schema %s: field %s: min %v > max %v", s.Name, f.Name, f.Min, f.Max)
			}
		case KindDate:
			if f.Start.After(f.End) {
				return enginerr.New(enginerr.KindInvalidRange, "schema %s: field %s: start after end", s.Name, f.Name)
			}
		case KindEnum:
			if len(f.Values) == 0 {
				return enginerr.New(enginerr.KindEmptyEnum, "schema %s: field %s has no values", s.Name, f.Name)
			}
		case KindRef:
			if f.Ref == "" {
				return enginerr.New(enginerr.KindUnknownSchema, "schema %s: field %s has no ref target", s.Name, f.Name)
			}
		case KindPattern:
			if f.Pattern == "" {
				return enginerr.New(enginerr.KindUnknownSchema, "schema %s: field %s has no pattern", s.Name, f.Name)
			}
		}
		if f.OnlyIf != nil {
			if !declaredBefore(s.Fields[:i], f.OnlyIf.Field) {
				return enginerr.New(enginerr.KindUnknownSchema,
					"schema %s: field %s is conditional on %s which is not declared before it",
					s.Name, f.Name, f.OnlyIf.Field)
			}
		}
	}
	return nil
}

func declaredBefore(fields []FieldDef, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
