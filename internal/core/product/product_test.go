package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/core/validation"
)

func TestNew(t *testing.T) {
	p, err := New(Params{ID: "1", Name: "Alface", DefaultUnit: "kg", Description: "Alface crespa", Category: "folhosas"})
	require.NoError(t, err)

	assert.Equal(t, "1", p.ID())
	assert.Equal(t, "Alface", p.Name())
	assert.Equal(t, "kg", p.DefaultUnit())
	assert.Equal(t, "Alface crespa", p.Description())
	assert.Equal(t, "folhosas", p.Category())
	assert.Equal(t, syncstatus.Pending, p.SyncStatus())
	assert.Equal(t, "Alface (kg)", p.DisplayText())
}

func TestNew_GeneratesID(t *testing.T) {
	p, err := New(Params{Name: "Tomate", DefaultUnit: "kg"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID())
}

func TestNew_Invariants(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantField string
	}{
		{"missing name", Params{DefaultUnit: "kg"}, "nome"},
		{"whitespace name", Params{Name: "  ", DefaultUnit: "kg"}, "nome"},
		{"missing unit", Params{Name: "Couve"}, "unidadePadrao"},
		{"whitespace unit", Params{Name: "Couve", DefaultUnit: " "}, "unidadePadrao"},
		{"unknown status", Params{Name: "Couve", DefaultUnit: "maço", SyncStatus: "X"}, "syncStatus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.params)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, validation.ErrInvalid)
			assert.Equal(t, tt.wantField, validation.FieldOf(err))
		})
	}
}

func TestMutators(t *testing.T) {
	p, err := New(Params{Name: "Abóbora", DefaultUnit: "un"})
	require.NoError(t, err)

	require.NoError(t, p.ChangeDefaultUnit("kg"))
	assert.Equal(t, "kg", p.DefaultUnit())

	assert.ErrorIs(t, p.ChangeDefaultUnit(""), validation.ErrInvalid)
	assert.Equal(t, "kg", p.DefaultUnit())

	p.UpdateDescription("Abóbora moranga")
	assert.Equal(t, "Abóbora moranga", p.Description())

	p.MarkAsSynced()
	assert.Equal(t, syncstatus.Synced, p.SyncStatus())
	p.MarkAsError()
	assert.Equal(t, syncstatus.Error, p.SyncStatus())
}
