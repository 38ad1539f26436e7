package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
	"github.com/anvilworks/forgeledger/internal/logger"
)

// MaterialView is a material with its derived stock figures.
type MaterialView struct {
	domain.Material
	TotalValue decimal.Decimal    `json:"totalValue"`
	Status     domain.StockStatus `json:"status"`
}

// CraftedItemView is a crafted item with its derived figures.
type CraftedItemView struct {
	domain.CraftedItem
	TotalValue   decimal.Decimal    `json:"totalValue"`
	Profit       decimal.Decimal    `json:"profit"`
	ProfitMargin decimal.Decimal    `json:"profitMargin"`
	Status       domain.StockStatus `json:"status"`
}

func materialView(m *domain.Material, threshold int) MaterialView {
	return MaterialView{
		Material:   *m,
		TotalValue: m.TotalValue(),
		Status:     m.Status(threshold),
	}
}

func craftedItemView(c *domain.CraftedItem, threshold int) CraftedItemView {
	return CraftedItemView{
		CraftedItem:  *c,
		TotalValue:   c.TotalValue(),
		Profit:       c.Profit(),
		ProfitMargin: c.ProfitMargin(),
		Status:       c.Status(threshold),
	}
}

// HandleListMaterials returns the raw-material inventory with derived figures
func HandleListMaterials(inv *inventory.Store, settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materials := inv.Materials()
		views := make([]MaterialView, 0, len(materials))
		for _, m := range materials {
			views = append(views, materialView(m, settings.LowStockThreshold))
		}
		respondJSON(w, http.StatusOK, views)
	}
}

type AddMaterialRequest struct {
	ID       string          `json:"id" validate:"required,max=100"`
	Name     string          `json:"name" validate:"required,max=100"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Cost     decimal.Decimal `json:"cost"`
	Category string          `json:"category" validate:"max=50"`
}

// HandleAddMaterial adds stock of a material, merging with existing stock
func HandleAddMaterial(inv *inventory.Store, settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddMaterialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add material request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		category := domain.MaterialCategory(req.Category)
		if category == "" {
			category = domain.MaterialOther
		}

		m, err := inv.AddMaterial(domain.Material{
			ID:       req.ID,
			Name:     req.Name,
			Quantity: req.Quantity,
			Cost:     req.Cost,
			Category: category,
		})
		if err != nil {
			log.Error("Failed to add material", "error", err, "material", req.ID)
			respondServiceError(w, err)
			return
		}

		log.Info("Material added", "material", m.ID, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, materialView(m, settings.LowStockThreshold))
	}
}

type RemoveStockRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}

// HandleRemoveMaterial removes stock of a material
func HandleRemoveMaterial(inv *inventory.Store, settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		var req RemoveStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode remove material request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		m, err := inv.RemoveMaterial(id, req.Quantity)
		if err != nil {
			log.Warn("Failed to remove material stock", "error", err, "material", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Material stock removed", "material", id, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, materialView(m, settings.LowStockThreshold))
	}
}

// HandleDeleteMaterial deletes a material outright
func HandleDeleteMaterial(inv *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		if err := inv.DeleteMaterial(id); err != nil {
			log.Warn("Failed to delete material", "error", err, "material", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Material deleted", "material", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeletedSuccess})
	}
}

// HandleListCraftedItems returns the crafted-goods stock with derived figures
func HandleListCraftedItems(inv *inventory.Store, settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := inv.CraftedItems()
		views := make([]CraftedItemView, 0, len(items))
		for _, c := range items {
			views = append(views, craftedItemView(c, settings.LowStockThreshold))
		}
		respondJSON(w, http.StatusOK, views)
	}
}

type AddCraftedItemRequest struct {
	ID       string          `json:"id" validate:"required,max=100"`
	Name     string          `json:"name" validate:"required,max=100"`
	Quantity int             `json:"quantity" validate:"min=0"`
	Cost     decimal.Decimal `json:"cost"`
	Value    decimal.Decimal `json:"value"`
	Category string          `json:"category" validate:"max=50"`
}

// HandleAddCraftedItem adds stock of a crafted item, merging with existing stock
func HandleAddCraftedItem(inv *inventory.Store, settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req AddCraftedItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode add crafted item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		category := domain.CraftedCategory(req.Category)
		if category == "" {
			category = domain.CraftedMisc
		}

		c, err := inv.AddCraftedItem(domain.CraftedItem{
			ID:       req.ID,
			Name:     req.Name,
			Quantity: req.Quantity,
			Cost:     req.Cost,
			Value:    req.Value,
			Category: category,
		})
		if err != nil {
			log.Error("Failed to add crafted item", "error", err, "item", req.ID)
			respondServiceError(w, err)
			return
		}

		log.Info("Crafted item added", "item", c.ID, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, craftedItemView(c, settings.LowStockThreshold))
	}
}

// HandleRemoveCraftedItem removes stock of a crafted item
func HandleRemoveCraftedItem(inv *inventory.Store, settings *domain.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		var req RemoveStockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode remove crafted item request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		c, err := inv.RemoveCraftedItem(id, req.Quantity)
		if err != nil {
			log.Warn("Failed to remove crafted item stock", "error", err, "item", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Crafted item stock removed", "item", id, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, craftedItemView(c, settings.LowStockThreshold))
	}
}

// HandleDeleteCraftedItem deletes a crafted item outright
func HandleDeleteCraftedItem(inv *inventory.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		if err := inv.DeleteCraftedItem(id); err != nil {
			log.Warn("Failed to delete crafted item", "error", err, "item", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Crafted item deleted", "item", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeletedSuccess})
	}
}
