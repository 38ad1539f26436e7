package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anvilworks/forgeledger/internal/economy"
	"github.com/anvilworks/forgeledger/internal/logger"
)

type TradeRequest struct {
	Quantity int `json:"quantity" validate:"min=1,max=10000"`
}

// HandleSellItem records a sale: decrements crafted stock and appends a
// sale transaction at the item's current value
func HandleSellItem(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		var req TradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode sell request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.RecordSale(r.Context(), id, req.Quantity)
		if err != nil {
			log.Warn("Sale failed", "error", err, "item", id, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		log.Info("Sale recorded", "item", id, "quantity", req.Quantity, "revenue", result.TotalValue)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleBuyMaterial records a purchase: increments material stock at its
// current cost and appends a purchase transaction
func HandleBuyMaterial(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		var req TradeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode buy request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.RecordPurchase(r.Context(), id, req.Quantity)
		if err != nil {
			log.Warn("Purchase failed", "error", err, "material", id, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		log.Info("Purchase recorded", "material", id, "quantity", req.Quantity, "cost", result.TotalCost)
		respondJSON(w, http.StatusOK, result)
	}
}
