package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/anvilworks/forgeledger/internal/crafting"
	"github.com/anvilworks/forgeledger/internal/logger"
)

type CraftRequest struct {
	RecipeID string `json:"recipeId" validate:"required,max=100"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleCraft executes a recipe: consumes ingredients, adds output to the
// crafted-goods stock and records a craft transaction
func HandleCraft(svc crafting.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode craft request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		result, err := svc.Craft(r.Context(), req.RecipeID, req.Quantity)
		if err != nil {
			log.Warn("Craft failed", "error", err, "recipe", req.RecipeID, "quantity", req.Quantity)
			respondServiceError(w, err)
			return
		}

		log.Info("Craft completed",
			"recipe", req.RecipeID,
			"quantity", req.Quantity,
			"produced", result.Quantity)

		respondJSON(w, http.StatusOK, result)
	}
}
