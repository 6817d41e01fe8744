// Package collection contains the Collection entity: one record of a quantity
// of a product gathered from a producer at a point in time.
package collection

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/core/validation"
)

// Params carries the values a Collection is built from.
// ID and SyncStatus are optional; a missing ID is generated.
type Params struct {
	ID           string
	ProductID    string
	ProducerID   string
	Quantity     float64
	Unit         string
	CollectedAt  time.Time
	TechnicianID string
	Notes        string
	SyncStatus   syncstatus.Status
}

// Collection is a validated collection record.
type Collection struct {
	id           string
	productID    string
	producerID   string
	quantity     float64
	unit         string
	collectedAt  time.Time
	technicianID string
	notes        string
	syncStatus   syncstatus.Status
}

// New builds a Collection, failing with a validation error when any
// invariant is violated.
func New(p Params) (*Collection, error) {
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

	c := &Collection{
		id:           id,
		productID:    p.ProductID,
		producerID:   p.ProducerID,
		quantity:     p.Quantity,
		unit:         p.Unit,
		collectedAt:  p.CollectedAt.Truncate(time.Millisecond),
		technicianID: p.TechnicianID,
		notes:        p.Notes,
		syncStatus:   status,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Create builds a new Collection collected at now.
func Create(p Params, now time.Time) (*Collection, error) {
	p.ID = ""
	p.CollectedAt = now
	return New(p)
}

func (c *Collection) validate() error {
	if err := validation.Required("produtoId", c.productID, "Produto é obrigatório"); err != nil {
		return err
	}
	if err := validation.Required("produtorId", c.producerID, "Produtor é obrigatório"); err != nil {
		return err
	}
	if err := validateQuantity(c.quantity); err != nil {
		return err
	}
	if err := validation.Required("unidade", c.unit, "Unidade é obrigatória"); err != nil {
		return err
	}
	if c.collectedAt.IsZero() {
		return validation.New("dataColeta", "Data de coleta inválida")
	}
	return nil
}

func validateQuantity(q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) || q <= 0 {
		return validation.New("quantidade", "Quantidade deve ser maior que zero")
	}
	return nil
}

func (c *Collection) ID() string                    { return c.id }
func (c *Collection) ProductID() string             { return c.productID }
func (c *Collection) ProducerID() string            { return c.producerID }
func (c *Collection) Quantity() float64             { return c.quantity }
func (c *Collection) Unit() string                  { return c.unit }
func (c *Collection) CollectedAt() time.Time        { return c.collectedAt }
func (c *Collection) TechnicianID() string          { return c.technicianID }
func (c *Collection) Notes() string                 { return c.notes }
func (c *Collection) SyncStatus() syncstatus.Status { return c.syncStatus }

// UpdateQuantity replaces the quantity, re-checking that it is positive.
func (c *Collection) UpdateQuantity(q float64) error {
	if err := validateQuantity(q); err != nil {
		return err
	}
	c.quantity = q
	return nil
}

// UpdateNotes replaces the free-text notes.
func (c *Collection) UpdateNotes(notes string) {
	c.notes = notes
}

// MarkAsSynced records a successful transmission.
func (c *Collection) MarkAsSynced() {
	c.syncStatus = syncstatus.MarkSynced(c.syncStatus)
}

// MarkAsError records a failed transmission.
func (c *Collection) MarkAsError() {
	c.syncStatus = syncstatus.MarkError(c.syncStatus)
}

// DisplayQuantity renders the quantity with its unit, e.g. "10 kg".
func (c *Collection) DisplayQuantity() string {
	return strconv.FormatFloat(c.quantity, 'f', -1, 64) + " " + c.unit
}
