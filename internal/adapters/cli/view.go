package cli

import (
	"time"

	"github.com/fatih/color"

	"github.com/example/feira/internal/core/collection"
	"github.com/example/feira/internal/core/producer"
	"github.com/example/feira/internal/core/product"
	"github.com/example/feira/internal/core/syncstatus"
)

// Display formats of CollectionView.
const (
	DateLayout = "02/01/2006"
	TimeLayout = "15:04"
)

// Names shown when a collection references a product or producer that
// cannot be resolved.
const (
	UnknownProductName  = "Produto não encontrado"
	UnknownProducerName = "Produtor não encontrado"
)

// CollectionView is a collection prepared for display.
type CollectionView struct {
	ID              string
	ProductID       string
	ProductName     string
	ProducerID      string
	ProducerName    string
	Quantity        float64
	Unit            string
	CollectedAt     time.Time
	DisplayDate     string
	DisplayTime     string
	DisplayQuantity string
	TechnicianID    string
	Notes           string
	SyncStatus      syncstatus.Status
	SyncIcon        string
	SyncColor       string
}

// ToCollectionView builds the view of c. Empty names fall back to the
// "not found" labels.
func ToCollectionView(c *collection.Collection, productName, producerName string) CollectionView {
	if productName == "" {
		productName = UnknownProductName
	}
	if producerName == "" {
		producerName = UnknownProducerName
	}

	at := c.CollectedAt()
	return CollectionView{
		ID:              c.ID(),
		ProductID:       c.ProductID(),
		ProductName:     productName,
		ProducerID:      c.ProducerID(),
		ProducerName:    producerName,
		Quantity:        c.Quantity(),
		Unit:            c.Unit(),
		CollectedAt:     at,
		DisplayDate:     at.Format(DateLayout),
		DisplayTime:     at.Format(TimeLayout),
		DisplayQuantity: c.DisplayQuantity(),
		TechnicianID:    c.TechnicianID(),
		Notes:           c.Notes(),
		SyncStatus:      c.SyncStatus(),
		SyncIcon:        SyncIcon(c.SyncStatus()),
		SyncColor:       SyncColor(c.SyncStatus()),
	}
}

// ProductView is a product prepared for display.
type ProductView struct {
	ID          string
	Name        string
	DefaultUnit string
	Description string
	Category    string
	DisplayText string
	SyncStatus  syncstatus.Status
}

// ToProductView builds the view of p.
func ToProductView(p *product.Product) ProductView {
	return ProductView{
		ID:          p.ID(),
		Name:        p.Name(),
		DefaultUnit: p.DefaultUnit(),
		Description: p.Description(),
		Category:    p.Category(),
		DisplayText: p.DisplayText(),
		SyncStatus:  p.SyncStatus(),
	}
}

// ProducerView is a producer prepared for display.
type ProducerView struct {
	ID             string
	Name           string
	TaxID          string
	Address        string
	DisplayContact string
	SyncStatus     syncstatus.Status
}

// ToProducerView builds the view of p.
func ToProducerView(p *producer.Producer) ProducerView {
	return ProducerView{
		ID:             p.ID(),
		Name:           p.Name(),
		TaxID:          p.TaxID(),
		Address:        p.Address(),
		DisplayContact: p.DisplayContact(),
		SyncStatus:     p.SyncStatus(),
	}
}

// SyncIcon returns the icon name for status.
func SyncIcon(status syncstatus.Status) string {
	switch status {
	case syncstatus.Synced:
		return "check-circle"
	case syncstatus.Pending:
		return "clock"
	case syncstatus.Error:
		return "alert-circle"
	default:
		return "help-circle"
	}
}

// SyncColor returns the hex colour for status.
func SyncColor(status syncstatus.Status) string {
	switch status {
	case syncstatus.Synced:
		return "#4CAF50"
	case syncstatus.Pending:
		return "#FF9800"
	case syncstatus.Error:
		return "#F44336"
	default:
		return "#9E9E9E"
	}
}

// TerminalColor returns the terminal colour matching SyncColor.
func TerminalColor(status syncstatus.Status) *color.Color {
	switch status {
	case syncstatus.Synced:
		return color.New(color.FgGreen)
	case syncstatus.Pending:
		return color.New(color.FgYellow)
	case syncstatus.Error:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgHiBlack)
	}
}

// StatusLabel renders status in its terminal colour. Colour is dropped
// automatically when output is not a terminal.
func StatusLabel(status syncstatus.Status) string {
	label := status.String()
	if label == "" {
		label = "UNKNOWN"
	}
	return TerminalColor(status).Sprint(label)
}
