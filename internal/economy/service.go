// Package economy records sales and purchases against inventory and the
// transaction ledger. Craft transactions come from the crafting engine;
// this service covers the other two ledger entry types with the same
// record shape.
package economy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/metrics"
)

// SaleResult describes a recorded sale.
type SaleResult struct {
	ItemID     string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// PurchaseResult describes a recorded material purchase.
type PurchaseResult struct {
	ItemID    string          `json:"id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// Service defines the interface for sale/purchase recording.
type Service interface {
	RecordSale(ctx context.Context, itemID string, quantity int) (*SaleResult, error)
	RecordPurchase(ctx context.Context, materialID string, quantity int) (*PurchaseResult, error)
}

type service struct {
	inv    *inventory.Store
	ledger *ledger.Ledger
	now    func() time.Time
	newID  func() string
}

// NewService creates a new economy service.
func NewService(inv *inventory.Store, led *ledger.Ledger) Service {
	return &service{inv: inv, ledger: led, now: time.Now, newID: uuid.NewString}
}

// RecordSale decrements crafted stock at the item's current sale value and
// appends a sale transaction. Fails without mutation when stock is short.
func (s *service) RecordSale(ctx context.Context, itemID string, quantity int) (*SaleResult, error) {
	log := logger.FromContext(ctx)
	log.Info("RecordSale called", "item", itemID, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}
	item := s.inv.FindCraftedItem(itemID)
	if item == nil {
		return nil, fmt.Errorf("crafted item %q: %w", itemID, domain.ErrNotFound)
	}
	unitValue := item.Value
	name := item.Name
	if _, err := s.inv.RemoveCraftedItem(itemID, quantity); err != nil {
		return nil, err
	}

	total := unitValue.Mul(decimal.NewFromInt(int64(quantity)))
	s.ledger.Append(domain.Transaction{
		ID:   s.newID(),
		Type: domain.TransactionSale,
		Date: s.now(),
		Items: []domain.TransactionLine{
			{ID: itemID, Name: name, Quantity: quantity, Value: unitValue},
		},
		TotalValue: total,
	})
	metrics.TransactionsRecorded.WithLabelValues(string(domain.TransactionSale)).Inc()

	log.Info("Sale recorded", "item", name, "quantity", quantity, "total", total)
	return &SaleResult{ItemID: itemID, Name: name, Quantity: quantity, TotalValue: total}, nil
}

// RecordPurchase increments material stock at the material's current unit
// cost and appends a purchase transaction. The material must already exist;
// new materials are created through the inventory surface first.
func (s *service) RecordPurchase(ctx context.Context, materialID string, quantity int) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info("RecordPurchase called", "material", materialID, "quantity", quantity)

	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive, got %d", domain.ErrInvalidInput, quantity)
	}
	material := s.inv.FindMaterial(materialID)
	if material == nil {
		return nil, fmt.Errorf("material %q: %w", materialID, domain.ErrNotFound)
	}
	if _, err := s.inv.AddMaterial(domain.Material{
		ID:       material.ID,
		Name:     material.Name,
		Quantity: quantity,
		Cost:     material.Cost,
		Category: material.Category,
	}); err != nil {
		return nil, err
	}

	total := material.Cost.Mul(decimal.NewFromInt(int64(quantity)))
	s.ledger.Append(domain.Transaction{
		ID:   s.newID(),
		Type: domain.TransactionPurchase,
		Date: s.now(),
		Items: []domain.TransactionLine{
			{ID: material.ID, Name: material.Name, Quantity: quantity, Value: material.Cost},
		},
		TotalValue: total,
	})
	metrics.TransactionsRecorded.WithLabelValues(string(domain.TransactionPurchase)).Inc()

	log.Info("Purchase recorded", "material", material.Name, "quantity", quantity, "total", total)
	return &PurchaseResult{ItemID: material.ID, Name: material.Name, Quantity: quantity, TotalCost: total}, nil
}
