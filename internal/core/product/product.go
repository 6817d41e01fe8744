// Package product contains the Product entity: a catalog item with a default
// unit of measure.
package product

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/core/validation"
)

// Params carries the values a Product is built from.
type Params struct {
	ID          string
	Name        string
	DefaultUnit string
	Description string
	Category    string
	SyncStatus  syncstatus.Status
}

// Product is a validated catalog item.
type Product struct {
	id          string
	name        string
	defaultUnit string
	description string
	category    string
	syncStatus  syncstatus.Status
}

// New builds a Product, failing with a validation error when the name or the
// default unit is missing.
func New(p Params) (*Product, error) {
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	status := p.SyncStatus
	if status == "" {
		status = syncstatus.Initial()
	}
	if !status.Valid() {
		return nil, validation.New("syncStatus", fmt.Sprintf("Status de sincronização inválido: %s", status))
	}

	if err := validation.Required("nome", p.Name, "Nome do produto é obrigatório"); err != nil {
		return nil, err
	}
	if err := validateUnit(p.DefaultUnit); err != nil {
		return nil, err
	}

	return &Product{
		id:          id,
		name:        p.Name,
		defaultUnit: p.DefaultUnit,
		description: p.Description,
		category:    p.Category,
		syncStatus:  status,
	}, nil
}

func validateUnit(unit string) error {
	return validation.Required("unidadePadrao", unit, "Unidade padrão é obrigatória")
}

func (p *Product) ID() string                    { return p.id }
func (p *Product) Name() string                  { return p.name }
func (p *Product) DefaultUnit() string           { return p.defaultUnit }
func (p *Product) Description() string           { return p.description }
func (p *Product) Category() string              { return p.category }
func (p *Product) SyncStatus() syncstatus.Status { return p.syncStatus }

// ChangeDefaultUnit replaces the default unit using the construction rule.
func (p *Product) ChangeDefaultUnit(unit string) error {
	if err := validateUnit(unit); err != nil {
		return err
	}
	p.defaultUnit = unit
	return nil
}

// UpdateDescription replaces the description.
func (p *Product) UpdateDescription(description string) {
	p.description = description
}

// MarkAsSynced records a successful transmission.
func (p *Product) MarkAsSynced() {
	p.syncStatus = syncstatus.MarkSynced(p.syncStatus)
}

// MarkAsError records a failed transmission.
func (p *Product) MarkAsError() {
	p.syncStatus = syncstatus.MarkError(p.syncStatus)
}

// DisplayText renders the product for pickers, e.g. "Alface (kg)".
func (p *Product) DisplayText() string {
	return fmt.Sprintf("%s (%s)", p.name, p.defaultUnit)
}
