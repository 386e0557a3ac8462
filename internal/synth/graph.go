package synth

import (
	"sort"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
	"github.com/Lumos-Labs-HQ/mockforge/internal/schema"
	"github.com/Lumos-Labs-HQ/mockforge/internal/types"
)

// dependencyGraph orders schemas so that referents are generated
// before the batches that point at them.
type dependencyGraph struct {
	defs map[string]*schema.SchemaDef
}

func newDependencyGraph() *dependencyGraph {
	return &dependencyGraph{defs: make(map[string]*schema.SchemaDef)}
}

func (g *dependencyGraph) add(def *schema.SchemaDef) {
	g.defs[def.Name] = def
}

func (g *dependencyGraph) order() ([]string, error) {
	visited := make(map[string]bool)
	inStack := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(name string) error {
		if inStack[name] {
			return enginerr.New(enginerr.KindUnknownSchema,
				"circular reference detected involving schema %s", name)
		}
		if visited[name] {
			return nil
		}

		inStack[name] = true
		if def, ok := g.defs[name]; ok {
			for _, dep := range def.Dependencies() {
				// Only order against schemas in this dataset; refs to
				// absent schemas are synthesized.
				if _, requested := g.defs[dep]; requested {
					if err := visit(dep); err != nil {
						return err
					}
				}
			}
		}
		inStack[name] = false

		visited[name] = true
		order = append(order, name)
		return nil
	}

	// Stable roots keep dataset output deterministic.
	roots := make([]string, 0, len(g.defs))
	for name := range g.defs {
		roots = append(roots, name)
	}
	sort.Strings(roots)

	for _, name := range roots {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// GenerateDataset builds one batch per request in reference-dependency
// order, feeding each batch's key values forward so ref fields resolve
// to rows that actually exist in the dataset. Returned batches follow
// generation order.
func (s *Synthesizer) GenerateDataset(reqs []types.GenerationRequest) ([]*Batch, error) {
	graph := newDependencyGraph()
	byschema := make(map[string]types.GenerationRequest, len(reqs))
	for _, req := range reqs {
		def, err := s.registry.Get(req.Schema)
		if err != nil {
			return nil, err
		}
		if _, dup := byschema[req.Schema]; dup {
			return nil, enginerr.New(enginerr.KindAmbiguousRequest,
				"dataset requests schema %s twice", req.Schema)
		}
		byschema[req.Schema] = req
		graph.add(def)
	}

	order, err := graph.order()
	if err != nil {
		return nil, err
	}

	pools := make(map[string][]any)
	batches := make([]*Batch, 0, len(reqs))
	for _, name := range order {
		req := byschema[name]
		batch, err := s.Generate(req, pools)
		if err != nil {
			return nil, err
		}
		batches = append(batches, batch)

		if key := keyField(batch.Schema); key != "" {
			pools[name] = batch.KeyValues(key)
		}
	}
	return batches, nil
}

// keyField names the column dependent batches reference, favoring a
// serial id.
func keyField(def *schema.SchemaDef) string {
	for _, f := range def.Fields {
		if f.Kind == schema.KindSerial {
			return f.Name
		}
	}
	if _, ok := def.Field("id"); ok {
		return "id"
	}
	return ""
}
