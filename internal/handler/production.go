package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/production"
)

// HandleListProduction returns the active queue in execution order with
// live feasibility figures
func HandleListProduction(queue *production.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, queue.SortedView())
	}
}

type AddProductionRequest struct {
	ItemID   string    `json:"itemId" validate:"required,max=100"`
	Quantity int       `json:"quantity" validate:"min=1,max=10000"`
	Priority string    `json:"priority" validate:"priority"`
	Timeline time.Time `json:"timeline"`
}

// HandleAddProduction queues a crafting job
func HandleAddProduction(queue *production.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddProductionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add production request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		item, err := queue.Add(domain.ProductionItem{
			ItemID:   req.ItemID,
			Quantity: req.Quantity,
			Priority: domain.Priority(req.Priority),
			Timeline: req.Timeline,
		})
		if err != nil {
			log.Error("Failed to queue production", "error", err, "recipe", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Production queued", "id", item.ID, "recipe", item.ItemID, "quantity", item.Quantity)

		view, err := queue.ViewOf(item.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

type UpdateProductionRequest struct {
	Quantity *int       `json:"quantity" validate:"omitempty,min=1,max=10000"`
	Priority *string    `json:"priority" validate:"omitempty,priority"`
	Timeline *time.Time `json:"timeline"`
}

// HandleUpdateProduction edits a queued job in place
func HandleUpdateProduction(queue *production.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		var req UpdateProductionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode update production request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		params := production.UpdateParams{
			Quantity: req.Quantity,
			Timeline: req.Timeline,
		}
		if req.Priority != nil {
			p := domain.Priority(*req.Priority)
			params.Priority = &p
		}

		item, err := queue.Update(id, params)
		if err != nil {
			log.Warn("Failed to update production item", "error", err, "id", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Production item updated", "id", item.ID)

		view, err := queue.ViewOf(item.ID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, view)
	}
}

// HandleRemoveProduction removes a job from the queue regardless of status
func HandleRemoveProduction(queue *production.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		if err := queue.Remove(id); err != nil {
			log.Warn("Failed to remove production item", "error", err, "id", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Production item removed", "id", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeletedSuccess})
	}
}

// HandleStartProduction executes a queued job through the crafting engine
// and marks it completed
func HandleStartProduction(queue *production.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		result, err := queue.StartProduction(r.Context(), id)
		if err != nil {
			log.Warn("Failed to start production", "error", err, "id", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Production completed", "id", id, "item", result.ItemID, "produced", result.Quantity)
		respondJSON(w, http.StatusOK, DataResponse{Message: MsgProductionStartedOK, Data: result})
	}
}
