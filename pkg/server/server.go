// Package server exposes directions planning as a small JSON API.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"

	"hootroot/pkg/directions"
	"hootroot/pkg/geocode"
	"hootroot/pkg/hopstop"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router plans a trip. *directions.Planner satisfies it.
type Router interface {
	Route(ctx context.Context, req directions.Request) (*directions.Result, error)
}

// New returns a gin engine serving /directions and /health
func New(router Router) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	r.Use(cors.New(config))

	h := &handler{router: router}
	r.GET("/directions", h.getDirections)
	r.POST("/directions", h.postDirections)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return r
}

type handler struct {
	router Router
}

func (h *handler) getDirections(c *gin.Context) {
	mode, err := directions.ParseTravelMode(c.Query("mode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.plan(c, directions.Request{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Mode:        mode,
		When:        c.Query("when"),
	})
}

func (h *handler) postDirections(c *gin.Context) {
	var req directions.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("ERROR: Failed to parse request: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mode, err := directions.ParseTravelMode(string(req.Mode))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Mode = mode

	h.plan(c, req)
}

func (h *handler) plan(c *gin.Context, req directions.Request) {
	if req.Origin == "" || req.Destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}
	if err := hopstop.ValidateWhen(req.When); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Directions %q -> %q (%s, %s)", req.Origin, req.Destination, req.Mode, req.When)

	result, err := h.router.Route(c.Request.Context(), req)
	if err != nil {
		log.Printf("ERROR: Routing failed: %v", err)
		c.JSON(StatusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// StatusFor maps a planning error to the HTTP status returned to clients
func StatusFor(err error) int {
	var walking *directions.AllWalkingSegmentsError
	var upstream *hopstop.Error

	switch {
	case errors.Is(err, geocode.ErrNotFound):
		return http.StatusBadRequest
	case errors.As(err, &walking):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
