package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/logger"
)

// HandleGetSettings returns the shop settings
func HandleGetSettings(settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, settings)
	}
}

type UpdateSettingsRequest struct {
	ShopName          *string  `json:"shopName" validate:"omitempty,max=200"`
	Currency          *string  `json:"currency" validate:"omitempty,max=10"`
	TaxRate           *float64 `json:"taxRate" validate:"omitempty,min=0,max=100"`
	LowStockThreshold *int     `json:"lowStockThreshold" validate:"omitempty,min=0"`
	Theme             *string  `json:"theme" validate:"omitempty,oneof=light dark"`
	Animations        *bool    `json:"animations"`
}

// HandleUpdateSettings applies a partial settings update
func HandleUpdateSettings(settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UpdateSettingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode settings request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		if req.ShopName != nil {
			settings.ShopName = *req.ShopName
		}
		if req.Currency != nil {
			settings.Currency = *req.Currency
		}
		if req.TaxRate != nil {
			settings.TaxRate = *req.TaxRate
		}
		if req.LowStockThreshold != nil {
			settings.LowStockThreshold = *req.LowStockThreshold
		}
		if req.Theme != nil {
			settings.Theme = *req.Theme
		}
		if req.Animations != nil {
			settings.Animations = *req.Animations
		}

		log.Info("Settings updated", "shop", settings.ShopName)
		respondJSON(w, http.StatusOK, settings)
	}
}
