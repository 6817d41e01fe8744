// Package producer contains the Producer entity: a supplier or grower
// associated with collections.
package producer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/example/feira/internal/core/syncstatus"
	"github.com/example/feira/internal/core/validation"
)

// Params carries the values a Producer is built from.
type Params struct {
	ID         string
	Name       string
	TaxID      string // CPF or CNPJ
	Phone      string
	Address    string
	SyncStatus syncstatus.Status
}

// Producer is a validated producer record.
type Producer struct {
	id         string
	name       string
	taxID      string
	phone      string
	address    string
	syncStatus syncstatus.Status
}

// New builds a Producer, failing with a validation error when the name is
// missing.
func New(p Params) (*Producer, error) {
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
	if err := validation.Required("nome", p.Name, "Nome do produtor é obrigatório"); err != nil {
		return nil, err
	}

	return &Producer{
		id:         id,
		name:       p.Name,
		taxID:      p.TaxID,
		phone:      p.Phone,
		address:    p.Address,
		syncStatus: status,
	}, nil
}

func (p *Producer) ID() string                    { return p.id }
func (p *Producer) Name() string                  { return p.name }
func (p *Producer) TaxID() string                 { return p.taxID }
func (p *Producer) Phone() string                 { return p.phone }
func (p *Producer) Address() string               { return p.address }
func (p *Producer) SyncStatus() syncstatus.Status { return p.syncStatus }

// UpdateContact replaces the phone number.
func (p *Producer) UpdateContact(phone string) {
	p.phone = phone
}

// UpdateAddress replaces the address.
func (p *Producer) UpdateAddress(address string) {
	p.address = address
}

// MarkAsSynced records a successful transmission.
func (p *Producer) MarkAsSynced() {
	p.syncStatus = syncstatus.MarkSynced(p.syncStatus)
}

// MarkAsError records a failed transmission.
func (p *Producer) MarkAsError() {
	p.syncStatus = syncstatus.MarkError(p.syncStatus)
}

// DisplayContact returns the phone, or "Sem contato" when there is none.
func (p *Producer) DisplayContact() string {
	if p.phone == "" {
		return "Sem contato"
	}
	return p.phone
}
