package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/contract"
	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/logger"
)

// ContractHandlers bundles the contract endpoints around a shared service.
type ContractHandlers struct {
	svc contract.Service
}

// NewContractHandlers creates the contract endpoint set.
func NewContractHandlers(svc contract.Service) *ContractHandlers {
	return &ContractHandlers{svc: svc}
}

// ContractView is a contract with its derived requirement and money figures.
type ContractView struct {
	domain.Contract
	Requirements []domain.MaterialRequirement `json:"requirements"`
	Financials   contract.Financials          `json:"financials"`
}

func (h *ContractHandlers) view(c *domain.Contract) ContractView {
	return ContractView{
		Contract:     *c,
		Requirements: h.svc.MaterialRequirements(c),
		Financials:   h.svc.CalculateFinancials(c),
	}
}

// HandleList returns all contracts with derived figures
func (h *ContractHandlers) HandleList(w http.ResponseWriter, r *http.Request) {
	contracts := h.svc.List()
	views := make([]ContractView, 0, len(contracts))
	for _, c := range contracts {
		views = append(views, h.view(c))
	}
	respondJSON(w, http.StatusOK, views)
}

type ContractItemRequest struct {
	ItemID   string `json:"itemId" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

type AddContractRequest struct {
	Name            string                `json:"name" validate:"required,max=200"`
	Client          string                `json:"client" validate:"required,max=200"`
	Items           []ContractItemRequest `json:"items" validate:"required,min=1,dive"`
	Deadline        *time.Time            `json:"deadline"`
	AdditionalCosts decimal.Decimal       `json:"additionalCosts"`
}

// HandleAdd registers a new contract
func (h *ContractHandlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req AddContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode add contract request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Invalid request", "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	items := make([]domain.ContractItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, domain.ContractItem{ItemID: it.ItemID, Quantity: it.Quantity})
	}

	c, err := h.svc.Add(r.Context(), domain.Contract{
		Name:            req.Name,
		Client:          req.Client,
		Items:           items,
		Deadline:        req.Deadline,
		AdditionalCosts: req.AdditionalCosts,
	})
	if err != nil {
		log.Error("Failed to add contract", "error", err, "name", req.Name)
		respondServiceError(w, err)
		return
	}

	log.Info("Contract added", "id", c.ID, "client", c.Client)
	respondJSON(w, http.StatusOK, h.view(c))
}

// HandleGet returns one contract with derived figures
func (h *ContractHandlers) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.svc.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.view(c))
}

// HandleRemove deletes a contract
func (h *ContractHandlers) HandleRemove(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.svc.Remove(id); err != nil {
		log.Warn("Failed to remove contract", "error", err, "id", id)
		respondServiceError(w, err)
		return
	}

	log.Info("Contract removed", "id", id)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeletedSuccess})
}

// HandleFeasibility reports whether the contract can be fulfilled from
// current stock
func (h *ContractHandlers) HandleFeasibility(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.svc.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.svc.ValidateFeasibility(c))
}

// HandlePlan returns the production plan the contract would enqueue,
// without enqueueing it
func (h *ContractHandlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.svc.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.svc.GenerateProductionPlan(c))
}

// HandleStart validates feasibility, enqueues the production plan and
// moves the contract to in-progress
func (h *ContractHandlers) HandleStart(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	queued, err := h.svc.StartProduction(r.Context(), id)
	if err != nil {
		log.Warn("Failed to start contract production", "error", err, "id", id)
		respondServiceError(w, err)
		return
	}

	log.Info("Contract production started", "id", id, "jobs", len(queued))
	respondJSON(w, http.StatusOK, DataResponse{Message: MsgContractStartedOK, Data: queued})
}

type UpdateContractStatusRequest struct {
	Status string `json:"status" validate:"required,contractstatus"`
}

// HandleUpdateStatus moves a contract through its lifecycle
func (h *ContractHandlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id := chi.URLParam(r, "id")

	var req UpdateContractStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("Failed to decode contract status request", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn("Invalid request", "error", err)
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	c, err := h.svc.UpdateStatus(r.Context(), id, domain.ContractStatus(req.Status))
	if err != nil {
		log.Warn("Failed to update contract status", "error", err, "id", id)
		respondServiceError(w, err)
		return
	}

	log.Info("Contract status updated", "id", c.ID, "status", c.Status)
	respondJSON(w, http.StatusOK, h.view(c))
}
