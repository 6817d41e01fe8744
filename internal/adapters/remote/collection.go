// Package remote maps collections to and from the shape exchanged with the
// central server during synchronization.
package remote

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/syncstatus"
)

// TimeLayout is the wire format of DataColeta: RFC 3339, UTC, milliseconds.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// CollectionPayload is a collection as sent to the server.
type CollectionPayload struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"produtoId"`
	ProducerID   string  `json:"produtorId"`
	Quantity     float64 `json:"quantidade"`
	Unit         string  `json:"unidade"`
	CollectedAt  string  `json:"dataColeta"`
	TechnicianID string  `json:"tecnicoId,omitempty"`
	Notes        string  `json:"observacoes,omitempty"`
	SyncStatus   string  `json:"syncStatus"`
	DeviceID     string  `json:"deviceId,omitempty"`
}

// Batch is the envelope written by EncodeBatch.
type Batch struct {
	DeviceID    string              `json:"deviceId,omitempty"`
	GeneratedAt string              `json:"generatedAt"`
	Collections []CollectionPayload `json:"coletas"`
}

// ToRemote converts a collection to its wire shape, tagged with deviceID.
func ToRemote(c *collection.Collection, deviceID string) CollectionPayload {
	return CollectionPayload{
		ID:           c.ID(),
		ProductID:    c.ProductID(),
		ProducerID:   c.ProducerID(),
		Quantity:     c.Quantity(),
		Unit:         c.Unit(),
		CollectedAt:  c.CollectedAt().UTC().Format(TimeLayout),
		TechnicianID: c.TechnicianID(),
		Notes:        c.Notes(),
		SyncStatus:   c.SyncStatus().String(),
		DeviceID:     deviceID,
	}
}

// FromRemote rebuilds a validated collection from its wire shape. The device
// id is not part of the entity and is dropped.
func FromRemote(p CollectionPayload) (*collection.Collection, error) {
	at, err := time.Parse(time.RFC3339Nano, p.CollectedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid dataColeta %q: %w", p.CollectedAt, err)
	}

	status, err := syncstatus.Parse(p.SyncStatus)
	if err != nil {
		return nil, err
	}

	return collection.New(collection.Params{
		ID:           p.ID,
		ProductID:    p.ProductID,
		ProducerID:   p.ProducerID,
		Quantity:     p.Quantity,
		Unit:         p.Unit,
		CollectedAt:  at,
		TechnicianID: p.TechnicianID,
		Notes:        p.Notes,
		SyncStatus:   status,
	})
}

// ToRemoteList converts collections in order.
func ToRemoteList(items []*collection.Collection, deviceID string) []CollectionPayload {
	out := make([]CollectionPayload, len(items))
	for i, c := range items {
		out[i] = ToRemote(c, deviceID)
	}
	return out
}

// EncodeBatch writes payloads as one indented JSON batch.
func EncodeBatch(w io.Writer, deviceID string, payloads []CollectionPayload, now time.Time) error {
	if payloads == nil {
		payloads = []CollectionPayload{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Batch{
		DeviceID:    deviceID,
		GeneratedAt: now.UTC().Format(TimeLayout),
		Collections: payloads,
	}); err != nil {
		return fmt.Errorf("failed to encode batch: %w", err)
	}
	return nil
}

// DecodeBatch reads a batch written by EncodeBatch.
func DecodeBatch(r io.Reader) (*Batch, error) {
	var b Batch
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	return &b, nil
}
