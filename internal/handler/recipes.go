package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/recipe"
)

// RecipeView is a recipe with its live cost and profitability figures,
// resolved against the current inventory.
type RecipeView struct {
	domain.Recipe
	Cost         decimal.Decimal `json:"cost"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	Profit       decimal.Decimal `json:"profit"`
	UnitProfit   decimal.Decimal `json:"unitProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
	CanCraft     bool            `json:"canCraft"`
}

func recipeView(rec *domain.Recipe, resolver *recipe.Resolver) RecipeView {
	return RecipeView{
		Recipe:       *rec,
		Cost:         resolver.Cost(rec),
		UnitCost:     resolver.UnitCost(rec),
		Profit:       resolver.Profit(rec),
		UnitProfit:   resolver.UnitProfit(rec),
		ProfitMargin: resolver.ProfitMargin(rec),
		CanCraft:     resolver.CanCraft(rec, 1),
	}
}

// HandleListRecipes returns all recipes with live cost figures
func HandleListRecipes(store *recipe.Store, resolver *recipe.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipes := store.List()
		views := make([]RecipeView, 0, len(recipes))
		for _, rec := range recipes {
			views = append(views, recipeView(rec, resolver))
		}
		respondJSON(w, http.StatusOK, views)
	}
}

type SaveRecipeRequest struct {
	ID             string              `json:"id" validate:"required,max=100"`
	Name           string              `json:"name" validate:"required,max=100"`
	OutputQuantity int                 `json:"outputQuantity" validate:"min=1"`
	CraftingTime   int                 `json:"craftingTime" validate:"min=1"`
	Ingredients    []domain.Ingredient `json:"ingredients" validate:"required,min=1,dive"`
	Value          decimal.Decimal     `json:"value"`
}

// HandleSaveRecipe creates a recipe or overwrites an existing one
func HandleSaveRecipe(store *recipe.Store, resolver *recipe.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SaveRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode save recipe request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid request", "error", err)
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
			return
		}

		rec, err := store.Add(domain.Recipe{
			ID:             req.ID,
			Name:           req.Name,
			OutputQuantity: req.OutputQuantity,
			CraftingTime:   req.CraftingTime,
			Ingredients:    req.Ingredients,
			Value:          req.Value,
		})
		if err != nil {
			log.Error("Failed to save recipe", "error", err, "recipe", req.ID)
			respondServiceError(w, err)
			return
		}

		log.Info("Recipe saved", "recipe", rec.ID)
		respondJSON(w, http.StatusOK, recipeView(rec, resolver))
	}
}

// HandleDeleteRecipe removes a recipe from the recipe book
func HandleDeleteRecipe(store *recipe.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())
		id := chi.URLParam(r, "id")

		if err := store.Remove(id); err != nil {
			log.Warn("Failed to delete recipe", "error", err, "recipe", id)
			respondServiceError(w, err)
			return
		}

		log.Info("Recipe deleted", "recipe", id)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgDeletedSuccess})
	}
}

// RecipeCostResponse carries the per-ingredient cost breakdown of a recipe.
type RecipeCostResponse struct {
	RecipeID    string                  `json:"recipeId"`
	Cost        decimal.Decimal         `json:"cost"`
	UnitCost    decimal.Decimal         `json:"unitCost"`
	Ingredients []recipe.IngredientCost `json:"ingredients"`
}

// HandleRecipeCost returns the ingredient-level cost breakdown of a recipe
func HandleRecipeCost(store *recipe.Store, resolver *recipe.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec := store.Find(id)
		if rec == nil {
			respondError(w, http.StatusNotFound, fmt.Sprintf("recipe %q not found", id))
			return
		}

		respondJSON(w, http.StatusOK, RecipeCostResponse{
			RecipeID:    rec.ID,
			Cost:        resolver.Cost(rec),
			UnitCost:    resolver.UnitCost(rec),
			Ingredients: resolver.CostDetail(rec),
		})
	}
}

// FeasibilityResponse reports whether a craft is possible and what is missing.
type FeasibilityResponse struct {
	RecipeID string                   `json:"recipeId"`
	Quantity int                      `json:"quantity"`
	CanCraft bool                     `json:"canCraft"`
	Missing  []domain.MissingMaterial `json:"missing"`
}

// HandleRecipeFeasibility reports feasibility of crafting a recipe at the
// quantity given in the query string (default 1)
func HandleRecipeFeasibility(store *recipe.Store, resolver *recipe.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		rec := store.Find(id)
		if rec == nil {
			respondError(w, http.StatusNotFound, fmt.Sprintf("recipe %q not found", id))
			return
		}

		quantity := 1
		if q := r.URL.Query().Get("quantity"); q != "" {
			parsed, err := strconv.Atoi(q)
			if err != nil || parsed < 1 {
				respondError(w, http.StatusBadRequest, "Invalid quantity parameter")
				return
			}
			quantity = parsed
		}

		missing := resolver.MissingMaterials(rec, quantity)
		respondJSON(w, http.StatusOK, FeasibilityResponse{
			RecipeID: rec.ID,
			Quantity: quantity,
			CanCraft: len(missing) == 0,
			Missing:  missing,
		})
	}
}
