package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anvilworks/forgeledger/internal/crafting"
	"github.com/anvilworks/forgeledger/internal/currency"
	"github.com/anvilworks/forgeledger/internal/economy"
	"github.com/anvilworks/forgeledger/internal/handler"
	"github.com/anvilworks/forgeledger/internal/ledger"
	"github.com/anvilworks/forgeledger/internal/logger"
	"github.com/anvilworks/forgeledger/internal/metrics"
	"github.com/anvilworks/forgeledger/internal/pricing"
	"github.com/anvilworks/forgeledger/internal/recipe"
	"github.com/anvilworks/forgeledger/internal/snapshot"
)

// Deps bundles everything the HTTP layer serves. Stores carries the state
// owners; the services wrap the operations that mutate more than one store
// at a time.
type Deps struct {
	Stores          snapshot.Stores
	Resolver        *recipe.Resolver
	CraftingService crafting.Service
	EconomyService  economy.Service
	Reporter        *ledger.Reporter
	PriceList       *pricing.List
	Money           *currency.Formatter
	SnapshotPath    string
}

type Server struct {
	httpServer *http.Server
	deps       Deps
}

// NewServer creates a new Server instance
func NewServer(port int, deps Deps) *Server {
	r := chi.NewRouter()

	guard := newStateGuard(deps.Stores, deps.SnapshotPath)

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(guard.Middleware)

	settings := deps.Stores.Settings
	inv := deps.Stores.Inventory
	recipes := deps.Stores.Recipes
	queue := deps.Stores.Queue

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Inventory routes
		r.Route("/materials", func(r chi.Router) {
			r.Get("/", handler.HandleListMaterials(inv, settings))
			r.Post("/", handler.HandleAddMaterial(inv, settings))
			r.Post("/{id}/remove", handler.HandleRemoveMaterial(inv, settings))
			r.Delete("/{id}", handler.HandleDeleteMaterial(inv))
			r.Post("/{id}/buy", handler.HandleBuyMaterial(deps.EconomyService))
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", handler.HandleListCraftedItems(inv, settings))
			r.Post("/", handler.HandleAddCraftedItem(inv, settings))
			r.Post("/{id}/remove", handler.HandleRemoveCraftedItem(inv, settings))
			r.Delete("/{id}", handler.HandleDeleteCraftedItem(inv))
			r.Post("/{id}/sell", handler.HandleSellItem(deps.EconomyService))
		})

		// Recipe routes
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", handler.HandleListRecipes(recipes, deps.Resolver))
			r.Post("/", handler.HandleSaveRecipe(recipes, deps.Resolver))
			r.Delete("/{id}", handler.HandleDeleteRecipe(recipes))
			r.Get("/{id}/cost", handler.HandleRecipeCost(recipes, deps.Resolver))
			r.Get("/{id}/feasibility", handler.HandleRecipeFeasibility(recipes, deps.Resolver))
		})

		r.Post("/craft", handler.HandleCraft(deps.CraftingService))

		// Production queue routes
		r.Route("/production", func(r chi.Router) {
			r.Get("/", handler.HandleListProduction(queue))
			r.Post("/", handler.HandleAddProduction(queue))
			r.Patch("/{id}", handler.HandleUpdateProduction(queue))
			r.Delete("/{id}", handler.HandleRemoveProduction(queue))
			r.Post("/{id}/start", handler.HandleStartProduction(queue))
		})

		// Contract routes
		contractHandlers := handler.NewContractHandlers(deps.Stores.Contracts)
		r.Route("/contracts", func(r chi.Router) {
			r.Get("/", contractHandlers.HandleList)
			r.Post("/", contractHandlers.HandleAdd)
			r.Get("/{id}", contractHandlers.HandleGet)
			r.Delete("/{id}", contractHandlers.HandleRemove)
			r.Get("/{id}/feasibility", contractHandlers.HandleFeasibility)
			r.Get("/{id}/plan", contractHandlers.HandlePlan)
			r.Post("/{id}/start", contractHandlers.HandleStart)
			r.Patch("/{id}/status", contractHandlers.HandleUpdateStatus)
		})

		// Pricing routes
		r.Route("/prices", func(r chi.Router) {
			r.Get("/", handler.HandleGetPrices(deps.PriceList))
			r.Post("/", handler.HandleSetPrice(deps.PriceList))
			r.Post("/recommend", handler.HandleRecommendPrice(inv, recipes, deps.Resolver))
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", handler.HandleReportSummary(deps.Stores.Ledger, deps.Reporter, deps.Money))
			r.Get("/products", handler.HandleReportProducts(deps.Stores.Ledger, deps.Reporter))
			r.Get("/periods", handler.HandleReportPeriods(deps.Stores.Ledger, deps.Reporter))
		})
		r.Get("/transactions", handler.HandleListTransactions(deps.Stores.Ledger))

		// Settings routes
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", handler.HandleGetSettings(settings))
			r.Patch("/", handler.HandleUpdateSettings(settings))
		})

		// Snapshot routes
		r.Route("/snapshot", func(r chi.Router) {
			r.Get("/", handler.HandleExportSnapshot(deps.Stores))
			r.Post("/", handler.HandleImportSnapshot(deps.Stores, deps.SnapshotPath))
			r.Post("/save", handler.HandleSaveSnapshot(deps.Stores, deps.SnapshotPath))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		deps: deps,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
