package handler

import (
	"points-ledger/internal/adapter/http/dto"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"
	"points-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PointsHandler handles the issue and redeem primitives.
type PointsHandler struct {
	pointsSvc ports.PointsService
}

// NewPointsHandler creates a new PointsHandler.
func NewPointsHandler(pointsSvc ports.PointsService) *PointsHandler {
	return &PointsHandler{pointsSvc: pointsSvc}
}

// Issue handles POST /api/v1/points/issue.
func (h *PointsHandler) Issue(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.pointsSvc.IssuePoints(c.Request.Context(), ports.IssueRequest{
		MerchantID:     uuid.MustParse(req.MerchantID),
		CustomerID:     uuid.MustParse(req.CustomerID),
		CashAmount:     decimal.RequireFromString(req.CashAmount),
		Description:    req.Description,
		Metadata:       req.Metadata,
		IdempotencyKey: key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMovementResponse(result))
}

// Redeem handles POST /api/v1/points/redeem.
func (h *PointsHandler) Redeem(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.pointsSvc.RedeemPoints(c.Request.Context(), ports.RedeemRequest{
		CustomerID:     uuid.MustParse(req.CustomerID),
		MerchantID:     uuid.MustParse(req.MerchantID),
		Points:         decimal.RequireFromString(req.Points),
		Description:    req.Description,
		Metadata:       req.Metadata,
		IdempotencyKey: key,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMovementResponse(result))
}
