// Package contract manages multi-line customer orders: aggregated material
// requirements, financial analysis, feasibility validation and the
// generation of production plans.
package contract

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/metrics"
	"github.com/anvilworks/forgeledger/internal/production"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

// DefaultHorizon is the production timeline granted to contracts without a
// deadline.
const DefaultHorizon = 30 * 24 * time.Hour

// Financials is the money breakdown of a contract.
type Financials struct {
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"` // percent, 0 when revenue is 0
}

// Feasibility reports whether a contract can be fulfilled from current
// stock, with the shortage list when it cannot.
type Feasibility struct {
	CanFulfill bool                         `json:"canFulfill"`
	Shortages  []domain.MaterialRequirement `json:"shortages"`
}

// Service defines the interface for contract operations.
type Service interface {
	Add(ctx context.Context, c domain.Contract) (*domain.Contract, error)
	Get(id string) (*domain.Contract, error)
	List() []*domain.Contract
	Remove(id string) error
	MaterialRequirements(c *domain.Contract) []domain.MaterialRequirement
	CalculateFinancials(c *domain.Contract) Financials
	GenerateProductionPlan(c *domain.Contract) []domain.ProductionItem
	ValidateFeasibility(c *domain.Contract) Feasibility
	StartProduction(ctx context.Context, id string) ([]*domain.ProductionItem, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContractStatus) (*domain.Contract, error)
	Replace(contracts []domain.Contract)
}

type service struct {
	contracts []*domain.Contract
	inv       *inventory.Store
	recipes   *recipe.Store
	resolver  *recipe.Resolver
	queue     *production.Manager
	now       func() time.Time
	newID     func() string
}

// NewService creates a new contract service.
func NewService(inv *inventory.Store, recipes *recipe.Store, resolver *recipe.Resolver, queue *production.Manager) Service {
	return &service{
		inv:      inv,
		recipes:  recipes,
		resolver: resolver,
		queue:    queue,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *service) find(id string) *domain.Contract {
	for _, c := range s.contracts {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Add validates and registers a new contract. An explicit id colliding
// with an existing contract is rejected.
func (s *service) Add(ctx context.Context, c domain.Contract) (*domain.Contract, error) {
	log := logger.FromContext(ctx)
	if c.Name == "" || c.Client == "" {
		return nil, fmt.Errorf("%w: contract name and client are required", domain.ErrInvalidInput)
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("%w: contract needs at least one item", domain.ErrInvalidInput)
	}
	for _, item := range c.Items {
		if item.ItemID == "" || item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: contract items need an item id and a positive quantity", domain.ErrInvalidInput)
		}
	}
	if c.ID == "" {
		c.ID = s.newID()
	} else if s.find(c.ID) != nil {
		return nil, fmt.Errorf("contract %q: %w", c.ID, domain.ErrDuplicateID)
	}
	if c.Status == "" {
		c.Status = domain.ContractPending
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	rec := c
	s.contracts = append(s.contracts, &rec)
	log.Info("Contract added", "contract", rec.Name, "client", rec.Client, "items", len(rec.Items))
	return &rec, nil
}

// Get returns the contract with the given id.
func (s *service) Get(id string) (*domain.Contract, error) {
	c := s.find(id)
	if c == nil {
		return nil, fmt.Errorf("contract %q: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// List returns the contracts in insertion order.
func (s *service) List() []*domain.Contract {
	out := make([]*domain.Contract, len(s.contracts))
	copy(out, s.contracts)
	return out
}

// Remove deletes a contract.
func (s *service) Remove(id string) error {
	for i, c := range s.contracts {
		if c.ID == id {
			s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contract %q: %w", id, domain.ErrNotFound)
}

// MaterialRequirements aggregates ingredient needs across every contract
// line into per-ingredient buckets, in first-appearance order. The same
// base material needed by two lines is summed. Stock is read once per
// ingredient id, not decremented line by line, so this is a point-in-time
// aggregate check rather than a simulation of sequential consumption.
// Contract lines without a matching recipe contribute nothing.
func (s *service) MaterialRequirements(c *domain.Contract) []domain.MaterialRequirement {
	byID := make(map[string]*domain.MaterialRequirement)
	var order []string
	for _, line := range c.Items {
		rec := s.recipes.Find(line.ItemID)
		if rec == nil {
			continue
		}
		for _, ing := range rec.Ingredients {
			req, ok := byID[ing.ID]
			if !ok {
				name := ing.ID
				stock := 0
				if m := s.inv.FindMaterial(ing.ID); m != nil {
					name, stock = m.Name, m.Quantity
				} else if ci := s.inv.FindCraftedItem(ing.ID); ci != nil {
					name, stock = ci.Name, ci.Quantity
				}
				req = &domain.MaterialRequirement{ID: ing.ID, Name: name, InStock: stock}
				byID[ing.ID] = req
				order = append(order, ing.ID)
			}
			req.Required += ing.Quantity * line.Quantity
		}
	}
	out := make([]domain.MaterialRequirement, 0, len(order))
	for _, id := range order {
		req := byID[id]
		if req.Required > req.InStock {
			req.NeedToProduce = req.Required - req.InStock
		}
		out = append(out, *req)
	}
	return out
}

// CalculateFinancials totals cost and revenue across every contract line
// at current recipe figures, plus any flat additional costs carried on the
// contract.
func (s *service) CalculateFinancials(c *domain.Contract) Financials {
	cost := decimal.Zero
	revenue := decimal.Zero
	for _, line := range c.Items {
		rec := s.recipes.Find(line.ItemID)
		if rec == nil {
			continue
		}
		qty := decimal.NewFromInt(int64(line.Quantity))
		cost = cost.Add(s.resolver.Cost(rec).Mul(qty))
		revenue = revenue.Add(rec.Value.Mul(decimal.NewFromInt(int64(rec.OutputQuantity))).Mul(qty))
	}
	cost = cost.Add(c.AdditionalCosts)
	net := revenue.Sub(cost)
	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = net.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return Financials{TotalCost: cost, TotalRevenue: revenue, NetProfit: net, ProfitMargin: margin}
}

// GenerateProductionPlan emits one pending production item per contract
// line: urgent when the contract has a deadline, otherwise normal priority
// on a thirty-day horizon.
func (s *service) GenerateProductionPlan(c *domain.Contract) []domain.ProductionItem {
	priority := domain.PriorityNormal
	timeline := s.now().Add(DefaultHorizon)
	if c.Deadline != nil {
		priority = domain.PriorityUrgent
		timeline = *c.Deadline
	}
	plan := make([]domain.ProductionItem, 0, len(c.Items))
	for _, line := range c.Items {
		plan = append(plan, domain.ProductionItem{
			ID:       s.newID(),
			ItemID:   line.ItemID,
			Quantity: line.Quantity,
			Priority: priority,
			Timeline: timeline,
			Status:   domain.ProductionPending,
		})
	}
	return plan
}

// ValidateFeasibility checks the aggregated requirements against current
// stock.
func (s *service) ValidateFeasibility(c *domain.Contract) Feasibility {
	var shortages []domain.MaterialRequirement
	for _, req := range s.MaterialRequirements(c) {
		if req.NeedToProduce > 0 {
			shortages = append(shortages, req)
		}
	}
	return Feasibility{CanFulfill: len(shortages) == 0, Shortages: shortages}
}

// StartProduction validates feasibility, enqueues the production plan and
// moves the contract to in-progress. On a shortage nothing is mutated and
// the error carries the shortage list.
func (s *service) StartProduction(ctx context.Context, id string) ([]*domain.ProductionItem, error) {
	log := logger.FromContext(ctx)
	c := s.find(id)
	if c == nil {
		return nil, fmt.Errorf("contract %q: %w", id, domain.ErrNotFound)
	}
	feasibility := s.ValidateFeasibility(c)
	if !feasibility.CanFulfill {
		log.Warn("Contract production blocked", "contract", c.Name, "shortages", len(feasibility.Shortages))
		return nil, &domain.ContractShortageError{ContractName: c.Name, Shortages: feasibility.Shortages}
	}
	plan := s.GenerateProductionPlan(c)
	enqueued := make([]*domain.ProductionItem, 0, len(plan))
	for _, item := range plan {
		queued, err := s.queue.Add(item)
		if err != nil {
			return nil, fmt.Errorf("enqueue production for contract %q: %w", c.Name, err)
		}
		enqueued = append(enqueued, queued)
	}
	c.Status = domain.ContractInProgress
	metrics.ContractsStarted.Inc()
	log.Info("Contract production started", "contract", c.Name, "jobs", len(enqueued))
	return enqueued, nil
}

// UpdateStatus sets the contract status, stamping completedAt on
// completion.
func (s *service) UpdateStatus(ctx context.Context, id string, status domain.ContractStatus) (*domain.Contract, error) {
	log := logger.FromContext(ctx)
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown contract status %q", domain.ErrInvalidInput, status)
	}
	c := s.find(id)
	if c == nil {
		return nil, fmt.Errorf("contract %q: %w", id, domain.ErrNotFound)
	}
	c.Status = status
	if status == domain.ContractCompleted {
		completed := s.now()
		c.CompletedAt = &completed
	}
	log.Info("Contract status updated", "contract", c.Name, "status", status)
	return c, nil
}

// Replace swaps the entire contract collection, used when restoring a
// snapshot.
func (s *service) Replace(contracts []domain.Contract) {
	s.contracts = make([]*domain.Contract, 0, len(contracts))
	for i := range contracts {
		rec := contracts[i]
		s.contracts = append(s.contracts, &rec)
	}
}
