// HTTP server exposing the trade journal and its analytics.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sherintbrody/journal-backend/internal/analytics"
	"github.com/sherintbrody/journal-backend/internal/export"
	"github.com/sherintbrody/journal-backend/internal/journal"
	"github.com/sherintbrody/journal-backend/pkg/types"
	"github.com/sherintbrody/journal-backend/pkg/utils"
	"go.uber.org/zap"
)

// Clock supplies the reference time for period filters. Injected so
// handlers stay testable without the wall clock.
type Clock func() time.Time

// Server is the HTTP/WebSocket API server.
type Server struct {
	logger     *zap.Logger
	config     *types.ServerConfig
	router     *mux.Router
	httpServer *http.Server
	upgrader   websocket.Upgrader
	store      *journal.Store
	engine     *analytics.Engine
	hub        *Hub
	metrics    *Metrics
	now        Clock
}

// NewServer creates a new API server.
func NewServer(logger *zap.Logger, config *types.ServerConfig, store *journal.Store, engine *analytics.Engine, hub *Hub, metrics *Metrics) *Server {
	server := &Server{
		logger:  logger,
		config:  config,
		router:  mux.NewRouter(),
		store:   store,
		engine:  engine,
		hub:     hub,
		metrics: metrics,
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // single-user local backend
			},
		},
	}

	server.setupRoutes()
	return server
}

// SetClock overrides the reference-time source.
func (s *Server) SetClock(clock Clock) {
	s.now = clock
}

// Router exposes the underlying router, mainly for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/api/v1/health", s.metrics.instrument("health", s.handleHealth)).Methods("GET")

	s.router.HandleFunc("/api/v1/trades", s.metrics.instrument("trades", s.handleListTrades)).Methods("GET")
	s.router.HandleFunc("/api/v1/trades", s.metrics.instrument("trades", s.handleCreateTrade)).Methods("POST")
	s.router.HandleFunc("/api/v1/trades/{id}", s.metrics.instrument("trade", s.handleGetTrade)).Methods("GET")
	s.router.HandleFunc("/api/v1/trades/{id}", s.metrics.instrument("trade", s.handleUpdateTrade)).Methods("PUT")
	s.router.HandleFunc("/api/v1/trades/{id}", s.metrics.instrument("trade", s.handleDeleteTrade)).Methods("DELETE")

	s.router.HandleFunc("/api/v1/analytics", s.metrics.instrument("analytics", s.handleAnalytics)).Methods("GET")
	s.router.HandleFunc("/api/v1/export/csv", s.metrics.instrument("export", s.handleExportCSV)).Methods("GET")

	if s.config.EnableMetrics {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))
	}

	s.router.HandleFunc(s.config.WebSocketPath, s.handleWebSocket)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(s.router)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("starting API server", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"trades": s.store.Count(),
		"time":   s.now().Unix(),
	})
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades := s.store.List()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"trades": trades,
		"count":  len(trades),
	})
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var trade types.TradeRecord
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if trade.ID == "" {
		trade.ID = uuid.New().String()
	}

	stored, err := s.store.Add(trade)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.tradesStored.Set(float64(s.store.Count()))
	s.writeJSON(w, http.StatusCreated, stored)
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	trade, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "trade not found")
		return
	}
	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var trade types.TradeRecord
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trade.ID = id

	if err := s.store.Update(trade); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, trade)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.store.Delete(id); err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.metrics.tradesStored.Set(float64(s.store.Count()))
	s.writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": "deleted"})
}

// analyticsResponse wraps the raw report with display-side values.
// The engine returns the Kelly fraction unclamped; the suggested risk
// shown to the user is bounded to [0, 100].
type analyticsResponse struct {
	*types.Report
	KellySuggested float64 `json:"kellySuggested"`
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	period, err := types.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := s.engine.Analyze(s.store.List(), period, s.now())
	s.metrics.analyticsComputed.Inc()

	s.logger.Debug("analytics served",
		zap.String("period", string(period)),
		zap.Int("trades", report.Core.TotalTrades),
		zap.String("totalPnl", utils.FormatMoney(report.Core.TotalPnL, "USD")),
	)

	s.writeJSON(w, http.StatusOK, analyticsResponse{
		Report:         report,
		KellySuggested: utils.ClampFloat(report.Core.KellyPercent, 0, 100),
	})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	period, err := types.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trades := analytics.FilterTrades(s.store.List(), period, s.now())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := export.WriteTradesCSV(w, trades); err != nil {
		s.logger.Error("csv export failed", zap.Error(err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.config.MaxConnections > 0 && s.hub.ClientCount() >= s.config.MaxConnections {
		s.writeError(w, http.StatusServiceUnavailable, "too many connections")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(uuid.New().String(), s.hub, conn)
	s.hub.register <- client

	go client.ReadPump()
	go client.WritePump()
}
