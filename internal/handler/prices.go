package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/pricing"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

// HandleGetPrices returns the stored price list
func HandleGetPrices(list *pricing.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, list.Entries())
	}
}

type SetPriceRequest struct {
	ID    string          `json:"id" validate:"required,max=100"`
	Price decimal.Decimal `json:"price"`
}

// HandleSetPrice stores a price for an item and stamps the change
func HandleSetPrice(list *pricing.List) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SetPriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode set price request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		entry, err := list.Set(req.ID, req.Price)
		if err != nil {
			log.Warn("Failed to set price", "error", err, "item", req.ID)
			respondServiceError(w, err)
			return
		}

		log.Info("Price set", "item", entry.ID, "price", entry.Price)
		respondJSON(w, http.StatusOK, entry)
	}
}

type RecommendPriceRequest struct {
	ItemID          string           `json:"itemId" validate:"required,max=100"`
	TargetMargin    decimal.Decimal  `json:"targetMargin"`
	CompetitorPrice *decimal.Decimal `json:"competitorPrice"`
}

// RecommendPriceResponse carries the suggested price and the cost basis it
// was derived from.
type RecommendPriceResponse struct {
	ItemID           string          `json:"itemId"`
	Cost             decimal.Decimal `json:"cost"`
	RecommendedPrice decimal.Decimal `json:"recommendedPrice"`
}

// HandleRecommendPrice suggests a sale price from the item's unit cost,
// the requested margin and an optional competitor price. The cost basis is
// the crafted item's stored cost, or the recipe's live unit cost when the
// item has never been stocked.
func HandleRecommendPrice(inv *inventory.Store, recipes *recipe.Store, resolver *recipe.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req RecommendPriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode recommend price request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		var cost decimal.Decimal
		if item := inv.FindCraftedItem(req.ItemID); item != nil {
			cost = item.Cost
		} else if rec := recipes.Find(req.ItemID); rec != nil {
			cost = resolver.UnitCost(rec)
		} else {
			respondError(w, http.StatusNotFound, fmt.Sprintf("item %q not found", req.ItemID))
			return
		}

		price, err := pricing.RecommendPrice(cost, req.TargetMargin, req.CompetitorPrice)
		if err != nil {
			log.Warn("Failed to recommend price", "error", err, "item", req.ItemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, RecommendPriceResponse{
			ItemID:           req.ItemID,
			Cost:             cost,
			RecommendedPrice: price,
		})
	}
}
