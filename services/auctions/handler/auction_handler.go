package handler

import (
	"fmt"
	"net/http"
	"time"

	"auction-gateway/internal/auction"
	model "auction-gateway/internal/models"
	"auction-gateway/services/helpers"
	"auction-gateway/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=auction_handler.go -destination=mock_auction_service.go -package=handler

type AuctionServiceInterface interface {
	CreateAuction(ownerID string, in auction.Input) (model.AuctionView, error)
	UpdateAuction(auctionID, ownerID string, in auction.Input) (model.AuctionView, error)
	GetAuction(auctionID string) (model.AuctionView, error)
	ListAuctions(f auction.Filter) ([]model.AuctionView, error)
	ListAuctionsByOwner(ownerID string) ([]model.AuctionView, error)
	Location() *time.Location
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /api/auctiondetails
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	in, fieldErrs := req.ToInput(h.service.Location())
	if len(fieldErrs) > 0 {
		h.respondInvalid(c, "CreateAuctionHandler", fieldErrs)
		return
	}

	ownerID := c.GetHeader(helpers.HeaderUserID)
	view, err := h.service.CreateAuction(ownerID, in)
	if err != nil {
		h.respondError(c, "CreateAuctionHandler", err, map[string]any{"owner_id": ownerID})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, view, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": view.AuctionID,
		"owner_id":   view.OwnerID,
		"phase":      view.Phase,
	})
}

// UpdateAuctionHandler handles PUT /api/auctiondetails/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.AuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	in, fieldErrs := req.ToInput(h.service.Location())
	if len(fieldErrs) > 0 {
		h.respondInvalid(c, "UpdateAuctionHandler", fieldErrs)
		return
	}

	ownerID := c.GetHeader(helpers.HeaderUserID)
	view, err := h.service.UpdateAuction(auctionID, ownerID, in)
	if err != nil {
		h.respondError(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": auctionID, "owner_id": ownerID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": view.AuctionID,
		"owner_id":   view.OwnerID,
	})
}

// GetAuctionHandler handles GET /api/auctiondetails/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	view, err := h.service.GetAuction(auctionID)
	if err != nil {
		h.respondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, view, "auction retrieved successfully")
}

// ListAuctionsHandler handles GET /api/auctiondetails
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	var q helpers.ListAuctionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}
	filter, err := q.ToFilter()
	if err != nil {
		helpers.HandleBindError(c, "ListAuctionsHandler", err)
		return
	}

	views, err := h.service.ListAuctions(filter)
	if err != nil {
		h.respondError(c, "ListAuctionsHandler", err, nil)
		return
	}

	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count":    len(views),
		"show_all": filter.ShowAll,
	})
}

// ListAuctionsByOwnerHandler handles GET /api/auctiondetails/owner/:owner_id
func (h *AuctionHandler) ListAuctionsByOwnerHandler(c *gin.Context) {
	ownerID := c.Param("owner_id")

	views, err := h.service.ListAuctionsByOwner(ownerID)
	if err != nil {
		h.respondError(c, "ListAuctionsByOwnerHandler", err, map[string]any{"owner_id": ownerID})
		return
	}

	if views == nil {
		views = []model.AuctionView{}
	}

	utils.JSONResponse(c, http.StatusOK, views, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsByOwnerHandler", "auctions retrieved successfully", map[string]any{
		"owner_id": ownerID,
		"count":    len(views),
	})
}

func (h *AuctionHandler) respondInvalid(c *gin.Context, handlerName string, fieldErrs []auction.FieldError) {
	utils.JSONValidationError(c, http.StatusUnprocessableEntity, fieldErrs, "auction failed validation")
	utils.Warn(handlerName+": validation failed", map[string]any{"violations": len(fieldErrs)})
}

func (h *AuctionHandler) respondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	if fieldErrs, ok := auction.IsValidationError(err); ok {
		h.respondInvalid(c, handlerName, fieldErrs)
		return
	}

	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
	} else {
		utils.Warn(handlerName+": request rejected", fields)
	}
}
