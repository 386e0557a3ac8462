package schema

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lumos-Labs-HQ/mockforge/internal/enginerr"
)

func TestBuiltinSchemasRegistered(t *testing.T) {
	r := NewRegistry(nil)

	for _, name := range []string{"user", "order", "payment", "product"} {
		def, err := r.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, def.Name)
		assert.NotEmpty(t, def.Fields)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry(nil)

	err := r.Register(&SchemaDef{
		Name:   "user",
		Fields: []FieldDef{{Name: "id", Kind: KindSerial}},
	})
	require.Error(t, err)
	assert.True(t, enginerr.Is(err, enginerr.KindDuplicateSchema))
}

func TestGetUnknown(t *testing.T) {
	r := NewRegistry(nil)

	_, err := r.Get("invoice")
	require.Error(t, err)
	assert.True(t, enginerr.Is(err, enginerr.KindUnknownSchema))
	assert.Equal(t, enginerr.ClassDefinition, enginerr.KindUnknownSchema.Class())
}

func TestRegisterCustomSchema(t *testing.T) {
	r := NewRegistry(nil)

	err := r.Register(&SchemaDef{
		Name: "invoice",
		Fields: []FieldDef{
			{Name: "id", Kind: KindSerial},
			{Name: "total", Kind: KindDecimal, Min: 1, Max: 100},
		},
	})
	require.NoError(t, err)

	def, err := r.Get("invoice")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "total"}, def.FieldNames())
	assert.Contains(t, r.Names(), "invoice")
}

func TestValidateRejectsBadDefinitions(t *testing.T) {
	cases := []struct {
		name string
		def  *SchemaDef
		kind enginerr.Kind
	}{
		{
			name: "inverted range",
			def: &SchemaDef{Name: "x", Fields: []FieldDef{
				{Name: "n", Kind: KindInt, Min: 10, Max: 1},
			}},
			kind: enginerr.KindInvalidRange,
		},
		{
			name: "empty enum",
			def: &SchemaDef{Name: "x", Fields: []FieldDef{
				{Name: "status", Kind: KindEnum},
			}},
			kind: enginerr.KindEmptyEnum,
		},
		{
			name: "unknown kind",
			def: &SchemaDef{Name: "x", Fields: []FieldDef{
				{Name: "v", Kind: "blob"},
			}},
			kind: enginerr.KindUnknownSchema,
		},
		{
			name: "condition on later field",
			def: &SchemaDef{Name: "x", Fields: []FieldDef{
				{Name: "a", Kind: KindEnum, Values: []string{"y"}, OnlyIf: &Condition{Field: "b", Equals: "z"}},
				{Name: "b", Kind: KindEnum, Values: []string{"z"}},
			}},
			kind: enginerr.KindUnknownSchema,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.def.Validate()
			require.Error(t, err)
			assert.True(t, enginerr.Is(err, tc.kind))
		})
	}
}

func TestConcurrentReadsDuringRegistration(t *testing.T) {
	r := NewRegistry(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = r.Get("user")
				_ = r.Names()
				_, _ = r.Columns("order")
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Register(&SchemaDef{
			Name:   "concurrent",
			Fields: []FieldDef{{Name: "id", Kind: KindSerial}},
		})
	}()
	wg.Wait()

	_, err := r.Get("concurrent")
	assert.NoError(t, err)
}

func TestDependencies(t *testing.T) {
	r := NewRegistry(nil)

	payment, err := r.Get("payment")
	require.NoError(t, err)
	assert.Equal(t, []string{"order"}, payment.Dependencies())

	user, err := r.Get("user")
	require.NoError(t, err)
	assert.Empty(t, user.Dependencies())
}
