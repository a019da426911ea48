package api

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rawblock/cadastral-engine/internal/auditstore"
	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/labeling"
	"github.com/rawblock/cadastral-engine/internal/pipeline"
	"github.com/rawblock/cadastral-engine/internal/snapclean"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// APIHandler wires the HTTP surface to the core reconciliation
// pipeline, the audit store, and the websocket status hub.
type APIHandler struct {
	store   *auditstore.Store
	wsHub   *Hub
	catalog *catalog.Catalog
	ranking *catalog.Ranking
}

// SetupRouter builds the Gin engine: public health/websocket routes,
// and bearer-token-protected, rate-limited reconciliation routes.
func SetupRouter(store *auditstore.Store, wsHub *Hub, cat *catalog.Catalog, ranking *catalog.Ranking, rateLimitPerMin int) *gin.Engine {
	r := gin.Default()

	// Enable CORS — configurable via ALLOWED_ORIGINS env var
	// Production: ALLOWED_ORIGINS=https://example.org
	// Development: leave empty for *
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowedOrigins == "" || allowedOrigins == "*" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowed := range strings.Split(allowedOrigins, ",") {
				if strings.TrimSpace(allowed) == origin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	handler := &APIHandler{store: store, wsHub: wsHub, catalog: cat, ranking: ranking}

	// ── Public endpoints (no auth) ─────────────────────────────
	pub := r.Group("/v1")
	{
		pub.GET("/health", handler.handleHealth)
		pub.GET("/ws", wsHub.Subscribe)
	}

	// ── Protected endpoints (require bearer token if API_AUTH_TOKEN set) ──
	auth := r.Group("/v1")
	auth.Use(AuthMiddleware())
	auth.Use(NewRateLimiter(rateLimitPerMin, 5).Middleware())
	{
		auth.POST("/reconcile", handler.handleReconcile)
		auth.GET("/reconcile/:jobId", handler.handleGetReconcile)
	}

	return r
}

// reconcileRequest is the body of POST /v1/reconcile — everything
// pipeline.Input needs except the injected *rand.Rand and StatusSink,
// which this handler supplies itself. CatalogCSV is optional: when
// present it replaces the server's embedded land-use catalog for this
// job only, in the same key,layer,description,longDescription shape
// catalog.LoadFromCSV expects.
type reconcileRequest struct {
	Base       []geometry.TaggedPolygon `json:"base"`
	Changes    models.Aenderungen       `json:"changes"`
	Drawing    labeling.DrawingConfig   `json:"drawing"`
	MustAvoid  []geometry.Polygon       `json:"mustAvoid"`
	CatalogCSV string                   `json:"catalog,omitempty"`
}

// handleReconcile accepts a base dataset plus a change aggregate,
// registers a job id, and runs the pipeline in the background —
// matching spec.md §6's "submit, poll by jobId" request shape.
func (h *APIHandler) handleReconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Base) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base dataset must not be empty"})
		return
	}
	if req.CatalogCSV != "" {
		if _, err := catalog.LoadFromCSV(req.CatalogCSV); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid catalog override: " + err.Error()})
			return
		}
	}

	jobID := uuid.NewString()
	if err := h.store.CreatePending(c.Request.Context(), jobID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register job", "details": err.Error()})
		return
	}

	go h.runReconciliation(jobID, req)

	c.JSON(http.StatusAccepted, gin.H{"jobId": jobID, "status": auditstore.StatusPending})
}

// runReconciliation executes one pipeline.Run off the request
// goroutine and persists the result, so a slow optimization pass
// never blocks the HTTP response.
func (h *APIHandler) runReconciliation(jobID string, req reconcileRequest) {
	sink := newHubSink(jobID, h.wsHub)
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	cat := h.catalog
	if req.CatalogCSV != "" {
		if override, err := catalog.LoadFromCSV(req.CatalogCSV); err == nil {
			cat = override
		}
	}

	result := pipeline.Run(pipeline.Input{
		Base:       req.Base,
		Changes:    req.Changes,
		Catalog:    cat,
		Ranking:    h.ranking,
		Params:     snapclean.DefaultParams(),
		Drawing:    req.Drawing,
		MustAvoid:  req.MustAvoid,
		Rand:       rnd,
		StatusSink: sink,
	})

	if err := h.store.SaveResult(context.Background(), jobID, result); err != nil {
		log.Printf("failed to persist reconciliation result for job %s: %v", jobID, err)
	}
}

// handleGetReconcile returns the stored job record, 404 if the id is
// unknown.
func (h *APIHandler) handleGetReconcile(c *gin.Context) {
	jobID := c.Param("jobId")
	rec, found, err := h.store.GetJob(c.Request.Context(), jobID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job", "details": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown job id"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// handleHealth reports engine status for service discovery.
func (h *APIHandler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "operational",
		"engine":      "cadastral reconciliation engine",
		"dbConnected": h.store != nil,
	})
}
