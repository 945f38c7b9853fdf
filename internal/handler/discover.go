// Package handler exposes the HTTP trigger surface for the discovery
// pipeline.
package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/luvbee/event-spider/internal/spider"
)

// Runner is the orchestration contract the handler depends on; *spider.Spider
// implements it.
type Runner interface {
	Run(ctx context.Context, city, state string) (*spider.Result, error)
}

type DiscoverHandler struct {
	Spider Runner
	Logger *zap.Logger
}

func (h *DiscoverHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/events/discover", h.discover)
}

// discoverRequest is the trigger payload. Coordinates are informational
// only; sweeps are keyed by city and state.
type discoverRequest struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	City  string  `json:"city"`
	State string  `json:"state"`
}

func (h *DiscoverHandler) discover(c *gin.Context) {
	var req discoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.City == "" || req.State == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "City and state are required"})
		return
	}

	result, err := h.Spider.Run(c.Request.Context(), req.City, req.State)
	if err != nil {
		h.Logger.Error("discovery run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{
		"message": fmt.Sprintf("Varredura concluída. Encontrados %d, Salvos %d, Atualizados %d",
			result.TotalFound, result.Saved, result.Updated),
		"count":   result.Saved + result.Updated,
		"saved":   result.Saved,
		"updated": result.Updated,
	}
	if len(result.Errors) > 0 {
		resp["errors"] = result.Errors
	}
	c.JSON(http.StatusOK, resp)
}

// CORSMiddleware echoes permissive CORS headers: the endpoint is invoked
// straight from a browser front end.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type, x-application-name")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
