package synth

import (
	"math/rand"

	"github.com/oklog/ulid/v2"

	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
)

// Fixed ULID timestamp so synthesized identifiers depend only on the
// request's entropy, keeping seeded runs byte-identical.
const refEpochMS = uint64(1704067200000) // 2024-01-01T00:00:00Z

// Synthesized pools are capped so repeated ref fields land on a small,
// consistent set of referents instead of a fresh id per row.
const syntheticPoolSize = 25

// RefPools resolves foreign-key fields. Supplied pools come from
// previously generated batches; when a target has no supplied pool the
// references are drawn from a lazily built pool of stable ULIDs.
type RefPools struct {
	supplied  map[string][]any
	synthetic map[string][]string
}

func NewRefPools(supplied map[string][]any) *RefPools {
	return &RefPools{
		supplied:  supplied,
		synthetic: make(map[string][]string),
	}
}

// Pick returns an identifier for a ref field, preferring supplied
// referents and synthesizing a pool otherwise.
func (p *RefPools) Pick(rng *rand.Rand, field *schema.FieldDef) any {
	if pool, ok := p.supplied[field.Ref]; ok && len(pool) > 0 {
		return pool[rng.Intn(len(pool))]
	}

	pool, ok := p.synthetic[field.Ref]
	if !ok {
		pool = make([]string, syntheticPoolSize)
		for i := range pool {
			pool[i] = ulid.MustNew(refEpochMS, rng).String()
		}
		p.synthetic[field.Ref] = pool
	}
	return pool[rng.Intn(len(pool))]
}
