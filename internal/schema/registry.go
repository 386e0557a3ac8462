package schema

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
)

// Registry owns all registered schema definitions. Built-ins are
// registered at construction and never removed; custom registration
// may race with concurrent generation, so reads take the RLock.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*SchemaDef
	order  []string
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		defs:   make(map[string]*SchemaDef),
		logger: logger,
	}
	for _, def := range builtinSchemas() {
		// Built-ins are fixed constants; a failure here is a defect.
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

func (r *Registry) Register(def *SchemaDef) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.Name]; exists {
		return enginerr.New(enginerr.KindDuplicateSchema, "schema %s is already registered", def.Name)
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)

	r.logger.Info("schema registered",
		zap.String("schema", def.Name),
		zap.Int("fields", len(def.Fields)))
	return nil
}

func (r *Registry) Get(name string) (*SchemaDef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.defs[name]
	if !exists {
		return nil, enginerr.New(enginerr.KindUnknownSchema, "schema %s is not registered", name)
	}
	return def, nil
}

// Names returns the registered schema names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Columns reports the column list for a registered table, or false if
// the table is unknown. The SQL safety guard uses this as its
// identifier allow-list.
func (r *Registry) Columns(table string) ([]string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.defs[table]
	if !exists {
		return nil, false
	}
	return def.FieldNames(), true
}

// Aliases maps accepted request spellings (plurals plus a few domain
// synonyms) to canonical schema names.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make(map[string]string, len(r.defs)*2)
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		aliases[name] = name
		aliases[name+"s"] = name
	}
	if _, ok := r.defs["payment"]; ok {
		aliases["transaction"] = "payment"
		aliases["transactions"] = "payment"
	}
	return aliases
}
