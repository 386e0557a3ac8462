package synth

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// Record maps field names to generated values. Field order lives on
// the batch's schema, not the record.
type Record map[string]any

// Batch is an ordered run of records sharing one schema and one
// request.
type Batch struct {
	Schema  *schema.SchemaDef
	Request types.GenerationRequest
	Records []Record
}

// Synthesizer orchestrates field generation across a schema. It is
// stateless between requests; every call owns its rand.Rand.
type Synthesizer struct {
	registry   *schema.Registry
	maxRecords int
	logger     *zap.Logger
}

func New(registry *schema.Registry, maxRecords int, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{
		registry:   registry,
		maxRecords: maxRecords,
		logger:     logger,
	}
}

// Generate builds a batch of exactly req.Count records. supplied holds
// referent identifier pools from previously generated batches, keyed
// by schema name; it may be nil. Any field failure aborts the whole
// batch.
func (s *Synthesizer) Generate(req types.GenerationRequest, supplied map[string][]any) (*Batch, error) {
	def, err := s.registry.Get(req.Schema)
	if err != nil {
		return nil, err
	}
	if req.Count < 0 {
		return nil, enginerr.New(enginerr.KindInvalidCount, "record count %d is negative", req.Count)
	}
	if req.Count > s.maxRecords {
		return nil, enginerr.New(enginerr.KindRequestTooLarge,
			"record count %d exceeds the configured maximum of %d", req.Count, s.maxRecords)
	}

	fields, err := applyOverrides(def, req.Overrides)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))
	gen := NewDataGenerator(rng)
	refs := NewRefPools(supplied)

	batch := &Batch{
		Schema:  def,
		Request: req,
		Records: make([]Record, 0, req.Count),
	}
	for row := 0; row < req.Count; row++ {
		record := make(Record, len(fields))
		for i := range fields {
			field := &fields[i]

			if field.OnlyIf != nil && record[field.OnlyIf.Field] != any(field.OnlyIf.Equals) {
				record[field.Name] = nil
				continue
			}
			if field.Nullable && rng.Intn(10) < 2 {
				record[field.Name] = nil
				continue
			}

			value, err := gen.Value(field, row, refs)
			if err != nil {
				return nil, err
			}
			record[field.Name] = value
		}
		batch.Records = append(batch.Records, record)
	}

	s.logger.Debug("batch generated",
		zap.String("schema", def.Name),
		zap.Int("records", len(batch.Records)))
	return batch, nil
}

// KeyValues extracts the values of a key field (usually "id") from a
// batch, for use as a referent pool by dependent batches.
func (b *Batch) KeyValues(field string) []any {
	values := make([]any, 0, len(b.Records))
	for _, record := range b.Records {
		if v, ok := record[field]; ok && v != nil {
			values = append(values, v)
		}
	}
	return values
}

// applyOverrides produces a per-request copy of the field list with
// constraint overrides folded in. The registered definition is never
// touched.
func applyOverrides(def *schema.SchemaDef, overrides map[string]types.Override) ([]schema.FieldDef, error) {
	fields := make([]schema.FieldDef, len(def.Fields))
	copy(fields, def.Fields)

	for name, ov := range overrides {
		field, found := (*schema.FieldDef)(nil), false
		for i := range fields {
			if fields[i].Name == name {
				field, found = &fields[i], true
				break
			}
		}
		if !found {
			return nil, enginerr.New(enginerr.KindAmbiguousRequest,
				"constraint targets unknown field %s on schema %s", name, def.Name)
		}

		switch field.Kind {
		case schema.KindInt, schema.KindDecimal:
			if ov.Min != nil {
				field.Min = *ov.Min
			}
			if ov.Max != nil {
				field.Max = *ov.Max
			}
			if field.Min > field.Max {
				return nil, enginerr.New(enginerr.KindInvalidRange,
					"constraint on %s: min %v > max %v", name, field.Min, field.Max)
			}
		case schema.KindDate:
			if ov.Start != nil {
				field.Start = *ov.Start
			}
			if ov.End != nil {
				field.End = *ov.End
			}
			if field.Start.After(field.End) {
				return nil, enginerr.New(enginerr.KindInvalidRange,
					"constraint on %s: start after end", name)
			}
		case schema.KindEnum:
			if len(ov.Values) == 0 {
				break
			}
			declared := make(map[string]bool, len(field.Values))
			for _, v := range field.Values {
				declared[v] = true
			}
			for _, v := range ov.Values {
				if !declared[v] {
					return nil, enginerr.New(enginerr.KindAmbiguousRequest,
						"constraint on %s: %q is not an allowed value", name, v)
				}
			}
			field.Values = ov.Values
		default:
			return nil, enginerr.New(enginerr.KindAmbiguousRequest,
				"field %s of kind %s does not accept constraints", name, field.Kind)
		}
	}
	return fields, nil
}
