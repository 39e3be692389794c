package handler

import (
	"points-ledger/internal/adapter/http/dto"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"
	"points-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutHandler handles checkout preview and commit.
type CheckoutHandler struct {
	checkoutSvc ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutSvc ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

func bindCheckout(c *gin.Context) (ports.CheckoutRequest, error) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return ports.CheckoutRequest{}, apperror.Validation(err.Error())
	}
	dto.SanitizeStruct(&req)

	return ports.CheckoutRequest{
		CustomerID: uuid.MustParse(req.CustomerID),
		MerchantID: uuid.MustParse(req.MerchantID),
		Categories: req.ToDomain(),
	}, nil
}

// Preview handles POST /api/v1/checkout/preview. Nothing is written.
func (h *CheckoutHandler) Preview(c *gin.Context) {
	req, err := bindCheckout(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	quote, err := h.checkoutSvc.PreviewCheckout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToQuoteResponse(quote))
}

// Commit handles POST /api/v1/checkout.
func (h *CheckoutHandler) Commit(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req, err := bindCheckout(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	req.IdempotencyKey = key

	result, err := h.checkoutSvc.CommitCheckout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToCheckoutResponse(result))
}
