package handler

import (
	"encoding/json"
	"net/http"

	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

// HandleExportSnapshot captures the full shop state as a snapshot document
func HandleExportSnapshot(stores snapshot.Stores) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, snapshot.Capture(stores))
	}
}

// HandleImportSnapshot replaces the full shop state with the posted
// snapshot document and persists it
func HandleImportSnapshot(stores snapshot.Stores, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var doc snapshot.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			log.Error("Failed to decode snapshot", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := snapshot.Validate(&doc); err != nil {
			log.Warn("Rejected snapshot", "error", err)
			respondServiceError(w, err)
			return
		}

		snapshot.Restore(&doc, stores)

		if err := snapshot.Save(path, &doc); err != nil {
			log.Error("Failed to persist restored snapshot", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgSnapshotSaveFailed)
			return
		}

		log.Info("Snapshot restored",
			"materials", len(doc.Inventory),
			"craftedItems", len(doc.CraftedItems),
			"recipes", len(doc.Recipes),
			"transactions", len(doc.SalesHistory),
			"contracts", len(doc.Contracts))

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSnapshotRestoredOK})
	}
}

// HandleSaveSnapshot persists the current shop state to disk
func HandleSaveSnapshot(stores snapshot.Stores, path string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		if err := snapshot.Save(path, snapshot.Capture(stores)); err != nil {
			log.Error("Failed to save snapshot", "error", err, "path", path)
			respondError(w, http.StatusInternalServerError, ErrMsgSnapshotSaveFailed)
			return
		}

		log.Info("Snapshot saved", "path", path)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSnapshotSavedSuccess})
	}
}
