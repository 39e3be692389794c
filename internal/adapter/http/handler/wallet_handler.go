package handler

import (
	"points-ledger/internal/adapter/http/dto"
	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"
	"points-ledger/pkg/apperror"
	"points-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WalletHandler handles wallet lifecycle and read endpoints.
type WalletHandler struct {
	pointsSvc ports.PointsService
	querySvc  ports.WalletQueryService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(pointsSvc ports.PointsService, querySvc ports.WalletQueryService) *WalletHandler {
	return &WalletHandler{pointsSvc: pointsSvc, querySvc: querySvc}
}

// CreateWallet handles POST /api/v1/wallets.
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.pointsSvc.CreateWallet(c.Request.Context(), ports.CreateWalletRequest{
		ActorID:     uuid.MustParse(req.ActorID),
		Role:        domain.Role(req.Role),
		DisplayName: req.DisplayName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToCreateWalletResponse(result))
}

// GetWallet handles GET /api/v1/wallets/:actor_id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	actorID, err := pathUUID(c, "actor_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	wallet, err := h.querySvc.GetWallet(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToWalletResponse(wallet))
}

// ListEntries handles GET /api/v1/wallets/:actor_id/entries.
func (h *WalletHandler) ListEntries(c *gin.Context) {
	actorID, err := pathUUID(c, "actor_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := queryInt(c, "page", 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	pageSize, err := queryInt(c, "page_size", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := ports.LedgerListParams{
		ActorID:  actorID,
		Page:     page,
		PageSize: pageSize,
	}
	if k := c.Query("kind"); k != "" {
		kind := domain.EntryKind(k)
		params.Kind = &kind
	}

	result, err := h.querySvc.GetLedgerHistory(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.EntryResponse, 0, len(result.Entries))
	for _, e := range result.Entries {
		items = append(items, dto.ToEntryResponse(e))
	}

	response.Paged(c, items, result.Page, result.PageSize, result.Total)
}

// Reconcile handles GET /api/v1/wallets/:actor_id/reconcile.
func (h *WalletHandler) Reconcile(c *gin.Context) {
	actorID, err := pathUUID(c, "actor_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.querySvc.ReconcileWallet(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToReconcileResponse(result))
}

// MerchantStats handles GET /api/v1/merchants/:merchant_id/stats?days=.
func (h *WalletHandler) MerchantStats(c *gin.Context) {
	merchantID, err := pathUUID(c, "merchant_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	days, err := queryInt(c, "days", 0)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.querySvc.MerchantStats(c.Request.Context(), merchantID, days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToMerchantStatsResponse(stats))
}

// SetActorStatus handles PUT /api/v1/actors/:actor_id/status.
func (h *WalletHandler) SetActorStatus(c *gin.Context) {
	actorID, err := pathUUID(c, "actor_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SetActorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	actor, err := h.pointsSvc.SetActorStatus(c.Request.Context(), actorID, domain.ActorStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToActorResponse(actor))
}
