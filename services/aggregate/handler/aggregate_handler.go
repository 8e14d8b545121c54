package handler

import (
	"context"
	"net/http"

	model "auction-gateway/internal/models"
	"auction-gateway/services/helpers"
	"auction-gateway/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=aggregate_handler.go -destination=mock_aggregator.go -package=handler

type AggregatorInterface interface {
	Aggregate(ctx context.Context, requestID, auth string) (model.AggregatedResponse, error)
}

type AggregateHandler struct {
	gateway AggregatorInterface
}

func NewAggregateHandler(gateway AggregatorInterface) *AggregateHandler {
	return &AggregateHandler{gateway: gateway}
}

// GetAggregateHandler handles GET /aggregate/:user_id.
// The body is the bare slot map; downstream failures live inside it and never change the 200.
func (h *AggregateHandler) GetAggregateHandler(c *gin.Context) {
	userID := c.Param("user_id")
	auth := c.GetHeader("Authorization")

	resp, err := h.gateway.Aggregate(c.Request.Context(), userID, auth)
	if err != nil {
		utils.JSONMessage(c, http.StatusInternalServerError, err.Error())
		utils.Error("GetAggregateHandler: aggregation failed", map[string]any{
			"handler": "GetAggregateHandler",
			"user_id": userID,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)

	statuses := make(map[string]any, len(resp))
	for name, outcome := range resp {
		if outcome == nil {
			statuses[name] = nil
			continue
		}
		statuses[name] = outcome.Status
	}
	helpers.LogSuccess("GetAggregateHandler", "aggregation completed", map[string]any{
		"user_id":  userID,
		"has_auth": auth != "",
		"statuses": statuses,
	})
}
