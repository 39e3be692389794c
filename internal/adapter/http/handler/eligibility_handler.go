package handler

import (
	"points-ledger/internal/adapter/http/dto"
	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// EligibilityHandler exposes the same-store redemption rule.
type EligibilityHandler struct {
	eligibilitySvc ports.EligibilityService
}

// NewEligibilityHandler creates a new EligibilityHandler.
func NewEligibilityHandler(eligibilitySvc ports.EligibilityService) *EligibilityHandler {
	return &EligibilityHandler{eligibilitySvc: eligibilitySvc}
}

// Check handles GET /api/v1/eligibility?customer_id=&merchant_id=.
func (h *EligibilityHandler) Check(c *gin.Context) {
	customerID, err := queryUUID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	merchantID, err := queryUUID(c, "merchant_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	eligible, err := h.eligibilitySvc.IsEligible(c.Request.Context(), customerID, merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.EligibilityResponse{
		CustomerID: customerID.String(),
		MerchantID: merchantID.String(),
		Eligible:   eligible,
	}
	if !eligible {
		resp.BlockReason = domain.SameStoreReason
	}
	response.OK(c, resp)
}

// BlockedMerchants handles GET /api/v1/customers/:customer_id/blocked-merchants.
func (h *EligibilityHandler) BlockedMerchants(c *gin.Context) {
	customerID, err := pathUUID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.eligibilitySvc.BlockedMerchants(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToBlockedMerchantsResponse(list))
}

// AvailableMerchants handles GET /api/v1/customers/:customer_id/available-merchants.
func (h *EligibilityHandler) AvailableMerchants(c *gin.Context) {
	customerID, err := pathUUID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := h.eligibilitySvc.AvailableMerchants(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToAvailableMerchantsResponse(list))
}

// CheckCustomer handles GET /api/v1/customers/:customer_id/check?merchant_id=.
func (h *EligibilityHandler) CheckCustomer(c *gin.Context) {
	customerID, err := pathUUID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	merchantID, err := queryUUID(c, "merchant_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	check, err := h.eligibilitySvc.CheckCustomer(c.Request.Context(), customerID, merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToCustomerCheckResponse(check))
}

// InvalidateCache handles DELETE /api/v1/customers/:customer_id/eligibility-cache.
// With ?merchant_id= only that pair is dropped.
func (h *EligibilityHandler) InvalidateCache(c *gin.Context) {
	customerID, err := pathUUID(c, "customer_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("merchant_id") != "" {
		merchantID, err := queryUUID(c, "merchant_id")
		if err != nil {
			response.Error(c, err)
			return
		}
		err = h.eligibilitySvc.Invalidate(c.Request.Context(), customerID, merchantID)
		if err != nil {
			response.Error(c, err)
			return
		}
	} else if err := h.eligibilitySvc.InvalidateCustomer(c.Request.Context(), customerID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"invalidated": true})
}
