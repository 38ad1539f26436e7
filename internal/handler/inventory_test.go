package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvilworks/forgeledger/internal/domain"
	"github.com/anvilworks/forgeledger/internal/inventory"
)

func testSettings() *domain.Settings {
	s := domain.DefaultSettings()
	return &s
}

func seededInventory(t *testing.T) *inventory.Store {
	t.Helper()
	inv := inventory.NewStore()
	_, err := inv.AddMaterial(domain.Material{
		ID: "iron-ore", Name: "Iron Ore", Quantity: 15,
		Cost: decimal.RequireFromString("0.60"), Category: domain.MaterialMetal,
	})
	require.NoError(t, err)
	_, err = inv.AddCraftedItem(domain.CraftedItem{
		ID: "pickaxe", Name: "Pickaxe", Quantity: 2,
		Cost:  decimal.RequireFromString("3.60"),
		Value: decimal.RequireFromString("10.00"), Category: domain.CraftedTools,
	})
	require.NoError(t, err)
	return inv
}

func TestHandleListMaterials(t *testing.T) {
	inv := seededInventory(t)

	req := httptest.NewRequest("GET", "/materials", nil)
	w := httptest.NewRecorder()

	HandleListMaterials(inv, testSettings()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []MaterialView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "iron-ore", views[0].ID)
	assert.Equal(t, "9", views[0].TotalValue.String())
	assert.Equal(t, domain.StockNormal, views[0].Status)
}

func TestHandleAddMaterial(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		requestBody    string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			requestBody:    `{"id":"coal","name":"Coal","quantity":10,"cost":"0.50","category":"fuel"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"coal"`,
		},
		{
			name:           "Merges Into Existing Stock",
			requestBody:    `{"id":"iron-ore","name":"Iron Ore","quantity":5,"cost":"0.70"}`,
			expectedStatus: http.StatusOK,
			expectedBody:   `"quantity":20`,
		},
		{
			name:           "Invalid Request - Missing ID",
			requestBody:    `{"name":"Coal","quantity":10}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name:           "Invalid Request - Negative Quantity",
			requestBody:    `{"id":"coal","name":"Coal","quantity":-1}`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
		{
			name:           "Malformed JSON",
			requestBody:    `{not json`,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := seededInventory(t)
			handler := HandleAddMaterial(inv, testSettings())

			req := httptest.NewRequest("POST", "/materials", strings.NewReader(tt.requestBody))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleRemoveMaterial(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		materialID     string
		requestBody    RemoveStockRequest
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success",
			materialID:     "iron-ore",
			requestBody:    RemoveStockRequest{Quantity: 5},
			expectedStatus: http.StatusOK,
			expectedBody:   `"quantity":10`,
		},
		{
			name:           "Insufficient Stock",
			materialID:     "iron-ore",
			requestBody:    RemoveStockRequest{Quantity: 100},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Unknown Material",
			materialID:     "mithril",
			requestBody:    RemoveStockRequest{Quantity: 1},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Invalid Quantity",
			materialID:     "iron-ore",
			requestBody:    RemoveStockRequest{Quantity: 0},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Invalid request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := seededInventory(t)

			r := chi.NewRouter()
			r.Post("/materials/{id}/remove", HandleRemoveMaterial(inv, testSettings()))

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest("POST", "/materials/"+tt.materialID+"/remove", bytes.NewBuffer(body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleDeleteMaterial(t *testing.T) {
	inv := seededInventory(t)

	r := chi.NewRouter()
	r.Delete("/materials/{id}", HandleDeleteMaterial(inv))

	req := httptest.NewRequest("DELETE", "/materials/iron-ore", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), MsgDeletedSuccess)
	assert.Nil(t, inv.FindMaterial("iron-ore"))

	// Deleting again is a 404
	req = httptest.NewRequest("DELETE", "/materials/iron-ore", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleListCraftedItems(t *testing.T) {
	inv := seededInventory(t)

	req := httptest.NewRequest("GET", "/items", nil)
	w := httptest.NewRecorder()

	HandleListCraftedItems(inv, testSettings()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var views []CraftedItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "pickaxe", views[0].ID)
	assert.Equal(t, "6.4", views[0].Profit.String())
	assert.Equal(t, "64", views[0].ProfitMargin.String())
	assert.Equal(t, domain.StockLow, views[0].Status)
}

func TestHandleAddCraftedItem_DefaultsCategory(t *testing.T) {
	InitValidator()
	inv := seededInventory(t)

	body := `{"id":"horseshoe","name":"Horseshoe","quantity":4,"cost":"1.20","value":"3.00"}`
	req := httptest.NewRequest("POST", "/items", strings.NewReader(body))
	w := httptest.NewRecorder()

	HandleAddCraftedItem(inv, testSettings()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"category":"misc"`)
}
