package dto

import (
	"time"

	"points-ledger/internal/core/domain"
	"points-ledger/internal/core/ports"

	"github.com/shopspring/decimal"
)

// Point and euro amounts travel as decimal strings ("12.50") in both
// directions so that no float rounding happens at the edge.

// CreateWalletRequest is sent by account management when an actor is created.
type CreateWalletRequest struct {
	ActorID     string `json:"actor_id" binding:"required,uuid"`
	Role        string `json:"role" binding:"required,max=20"`
	DisplayName string `json:"display_name" binding:"max=100"`
}

// SetActorStatusRequest is the request body for soft (de)activation.
type SetActorStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE DEACTIVATED"`
}

// IssueRequest is the request body for issuing points on a cash purchase.
type IssueRequest struct {
	MerchantID  string         `json:"merchant_id" binding:"required,uuid"`
	CustomerID  string         `json:"customer_id" binding:"required,uuid"`
	CashAmount  string         `json:"cash_amount" binding:"required,decimal_amount"`
	Description string         `json:"description" binding:"max=255"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// RedeemRequest is the request body for spending points at a merchant.
type RedeemRequest struct {
	CustomerID  string         `json:"customer_id" binding:"required,uuid"`
	MerchantID  string         `json:"merchant_id" binding:"required,uuid"`
	Points      string         `json:"points" binding:"required,decimal_amount"`
	Description string         `json:"description" binding:"max=255"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CheckoutCategoryRequest is one purchase line of a checkout.
type CheckoutCategoryRequest struct {
	Name               string `json:"name" binding:"required,max=100"`
	Amount             string `json:"amount" binding:"required,decimal_amount"`
	MaxDiscountPercent int    `json:"max_discount_percent" binding:"min=0,max=100"`
}

// CheckoutRequest is the request body for checkout preview and commit.
type CheckoutRequest struct {
	CustomerID string                    `json:"customer_id" binding:"required,uuid"`
	MerchantID string                    `json:"merchant_id" binding:"required,uuid"`
	Categories []CheckoutCategoryRequest `json:"categories" binding:"required,min=1,max=50,dive"`
}

// ToDomain converts the categories. Amounts were checked by the
// decimal_amount validator.
func (r CheckoutRequest) ToDomain() []domain.CheckoutCategory {
	out := make([]domain.CheckoutCategory, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, domain.CheckoutCategory{
			Name:               c.Name,
			Amount:             decimal.RequireFromString(c.Amount),
			MaxDiscountPercent: c.MaxDiscountPercent,
		})
	}
	return out
}

// WalletResponse is the public view of a wallet.
type WalletResponse struct {
	ID             string `json:"id"`
	ActorID        string `json:"actor_id"`
	Role           string `json:"role"`
	Balance        string `json:"balance"`
	IssuedTotal    string `json:"issued_total"`
	CollectedTotal string `json:"collected_total"`
	MerchantNet    string `json:"merchant_net,omitempty"`
	Version        int64  `json:"version"`
	UpdatedAt      string `json:"updated_at"`
}

// EntryResponse is the public view of a ledger entry.
type EntryResponse struct {
	ID               string         `json:"id"`
	Seq              int64          `json:"seq"`
	Kind             string         `json:"kind"`
	SenderID         *string        `json:"sender_id,omitempty"`
	RecipientID      string         `json:"recipient_id"`
	Amount           string         `json:"amount"`
	CashAmount       *string        `json:"cash_amount,omitempty"`
	OriginMerchantID *string        `json:"origin_merchant_id,omitempty"`
	CheckoutID       *string        `json:"checkout_id,omitempty"`
	Description      string         `json:"description,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	CreatedAt        string         `json:"created_at"`
}

// CreateWalletResponse is the new wallet with the welcome bonus, if any.
type CreateWalletResponse struct {
	Wallet       WalletResponse `json:"wallet"`
	WelcomeBonus *EntryResponse `json:"welcome_bonus,omitempty"`
}

// MovementResponse is one committed issue or redeem.
type MovementResponse struct {
	Entry          EntryResponse  `json:"entry"`
	CustomerWallet WalletResponse `json:"customer_wallet"`
	MerchantWallet WalletResponse `json:"merchant_wallet"`
}

// CategoryResponse is a checkout category with its discount ceiling.
type CategoryResponse struct {
	Name               string `json:"name"`
	Amount             string `json:"amount"`
	MaxDiscountPercent int    `json:"max_discount_percent"`
	MaxDiscount        string `json:"max_discount"`
}

// QuoteResponse is a computed checkout.
type QuoteResponse struct {
	TotalPurchase    string             `json:"total_purchase"`
	MaxDiscount      string             `json:"max_discount"`
	AvailablePoints  string             `json:"available_points"`
	SpendablePoints  string             `json:"spendable_points"`
	Discount         string             `json:"discount"`
	NetPayable       string             `json:"net_payable"`
	NewPoints        string             `json:"new_points"`
	ProjectedBalance string             `json:"projected_balance"`
	Eligible         bool               `json:"eligible"`
	BlockReason      string             `json:"block_reason,omitempty"`
	Categories       []CategoryResponse `json:"categories"`
}

// CheckoutResponse is a committed checkout.
type CheckoutResponse struct {
	CheckoutID     string         `json:"checkout_id"`
	Quote          QuoteResponse  `json:"quote"`
	RedeemEntry    *EntryResponse `json:"redeem_entry,omitempty"`
	IssueEntry     *EntryResponse `json:"issue_entry,omitempty"`
	CustomerWallet WalletResponse `json:"customer_wallet"`
	MerchantWallet WalletResponse `json:"merchant_wallet"`
}

// EligibilityResponse answers GET /api/v1/eligibility.
type EligibilityResponse struct {
	CustomerID  string `json:"customer_id"`
	MerchantID  string `json:"merchant_id"`
	Eligible    bool   `json:"eligible"`
	BlockReason string `json:"block_reason,omitempty"`
}

// BlockedMerchantResponse is one merchant where the customer cannot spend.
type BlockedMerchantResponse struct {
	MerchantID     string `json:"merchant_id"`
	PointsReceived string `json:"points_received"`
	IssueCount     int64  `json:"issue_count"`
	LastIssuedAt   string `json:"last_issued_at"`
}

// CustomerCheckResponse is what a merchant sees before serving a customer.
type CustomerCheckResponse struct {
	CustomerID    string `json:"customer_id"`
	MerchantID    string `json:"merchant_id"`
	TotalBalance  string `json:"total_balance"`
	SpendableHere string `json:"spendable_here"`
	CanSpend      bool   `json:"can_spend"`
	BlockReason   string `json:"block_reason,omitempty"`
}

// AvailableMerchantResponse is one merchant where the customer can spend.
type AvailableMerchantResponse struct {
	MerchantID  string `json:"merchant_id"`
	DisplayName string `json:"display_name"`
}

// MerchantStatsResponse is a merchant's lifetime totals and trailing window.
type MerchantStatsResponse struct {
	MerchantID      string `json:"merchant_id"`
	Days            int    `json:"days"`
	Since           string `json:"since"`
	IssuedTotal     string `json:"issued_total"`
	CollectedTotal  string `json:"collected_total"`
	MerchantNet     string `json:"merchant_net"`
	PeriodIssued    string `json:"period_issued"`
	PeriodCollected string `json:"period_collected"`
	UniqueCustomers int64  `json:"unique_customers"`
	EntryCount      int64  `json:"entry_count"`
}

// ReconcileResponse compares stored aggregates with a full replay.
type ReconcileResponse struct {
	Wallet     WalletResponse `json:"wallet"`
	Balance    string         `json:"replayed_balance"`
	Issued     string         `json:"replayed_issued_total"`
	Collected  string         `json:"replayed_collected_total"`
	EntryCount int            `json:"entry_count"`
	Consistent bool           `json:"consistent"`
}

// ActorResponse is the mirrored actor.
type ActorResponse struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	Status      string `json:"status"`
	UpdatedAt   string `json:"updated_at"`
}

func amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ToWalletResponse converts domain.Wallet to DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	resp := WalletResponse{
		ID:             w.ID.String(),
		ActorID:        w.ActorID.String(),
		Role:           string(w.Role),
		Balance:        amount(w.Balance),
		IssuedTotal:    amount(w.IssuedTotal),
		CollectedTotal: amount(w.CollectedTotal),
		Version:        w.Version,
		UpdatedAt:      timestamp(w.UpdatedAt),
	}
	if w.Role == domain.RoleMerchant {
		resp.MerchantNet = amount(w.MerchantNet())
	}
	return resp
}

// ToEntryResponse converts domain.LedgerEntry to DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	resp := EntryResponse{
		ID:          e.ID.String(),
		Seq:         e.Seq,
		Kind:        string(e.Kind),
		RecipientID: e.RecipientID.String(),
		Amount:      amount(e.Amount),
		Description: e.Description,
		Metadata:    e.Metadata,
		CreatedAt:   timestamp(e.CreatedAt),
	}
	if e.SenderID != nil {
		s := e.SenderID.String()
		resp.SenderID = &s
	}
	if e.CashAmount.Valid {
		s := amount(e.CashAmount.Decimal)
		resp.CashAmount = &s
	}
	if e.OriginMerchantID != nil {
		s := e.OriginMerchantID.String()
		resp.OriginMerchantID = &s
	}
	if e.CheckoutID != nil {
		s := e.CheckoutID.String()
		resp.CheckoutID = &s
	}
	return resp
}

func toEntryPtr(e *domain.LedgerEntry) *EntryResponse {
	if e == nil {
		return nil
	}
	resp := ToEntryResponse(e)
	return &resp
}

// ToCreateWalletResponse converts ports.CreateWalletResult to DTO.
func ToCreateWalletResponse(r *ports.CreateWalletResult) CreateWalletResponse {
	return CreateWalletResponse{
		Wallet:       ToWalletResponse(r.Wallet),
		WelcomeBonus: toEntryPtr(r.WelcomeBonus),
	}
}

// ToMovementResponse converts ports.MovementResult to DTO.
func ToMovementResponse(r *ports.MovementResult) MovementResponse {
	return MovementResponse{
		Entry:          ToEntryResponse(r.Entry),
		CustomerWallet: ToWalletResponse(r.CustomerWallet),
		MerchantWallet: ToWalletResponse(r.MerchantWallet),
	}
}

// ToQuoteResponse converts domain.CheckoutQuote to DTO.
func ToQuoteResponse(q *domain.CheckoutQuote) QuoteResponse {
	cats := make([]CategoryResponse, 0, len(q.Categories))
	for _, c := range q.Categories {
		cats = append(cats, CategoryResponse{
			Name:               c.Name,
			Amount:             amount(c.Amount),
			MaxDiscountPercent: c.MaxDiscountPercent,
			MaxDiscount:        amount(c.MaxDiscount),
		})
	}
	return QuoteResponse{
		TotalPurchase:    amount(q.TotalPurchase),
		MaxDiscount:      amount(q.MaxDiscount),
		AvailablePoints:  amount(q.AvailablePoints),
		SpendablePoints:  amount(q.SpendablePoints),
		Discount:         amount(q.Discount),
		NetPayable:       amount(q.NetPayable),
		NewPoints:        amount(q.NewPoints),
		ProjectedBalance: amount(q.ProjectedBalance),
		Eligible:         q.Eligible,
		BlockReason:      q.BlockReason,
		Categories:       cats,
	}
}

// ToCheckoutResponse converts ports.CheckoutResult to DTO.
func ToCheckoutResponse(r *ports.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		CheckoutID:     r.CheckoutID.String(),
		Quote:          ToQuoteResponse(r.Quote),
		RedeemEntry:    toEntryPtr(r.RedeemEntry),
		IssueEntry:     toEntryPtr(r.IssueEntry),
		CustomerWallet: ToWalletResponse(r.CustomerWallet),
		MerchantWallet: ToWalletResponse(r.MerchantWallet),
	}
}

// ToBlockedMerchantsResponse converts the blocked merchant list to DTO.
func ToBlockedMerchantsResponse(list []domain.BlockedMerchant) []BlockedMerchantResponse {
	out := make([]BlockedMerchantResponse, 0, len(list))
	for _, b := range list {
		out = append(out, BlockedMerchantResponse{
			MerchantID:     b.MerchantID.String(),
			PointsReceived: amount(b.PointsReceived),
			IssueCount:     b.IssueCount,
			LastIssuedAt:   timestamp(b.LastIssuedAt),
		})
	}
	return out
}

// ToCustomerCheckResponse converts domain.CustomerCheck to DTO.
func ToCustomerCheckResponse(c *domain.CustomerCheck) CustomerCheckResponse {
	return CustomerCheckResponse{
		CustomerID:    c.CustomerID.String(),
		MerchantID:    c.MerchantID.String(),
		TotalBalance:  amount(c.TotalBalance),
		SpendableHere: amount(c.SpendableHere),
		CanSpend:      c.CanSpend,
		BlockReason:   c.BlockReason,
	}
}

// ToAvailableMerchantsResponse converts the available merchant list to DTO.
func ToAvailableMerchantsResponse(list []domain.AvailableMerchant) []AvailableMerchantResponse {
	out := make([]AvailableMerchantResponse, 0, len(list))
	for _, m := range list {
		out = append(out, AvailableMerchantResponse{
			MerchantID:  m.MerchantID.String(),
			DisplayName: m.DisplayName,
		})
	}
	return out
}

// ToMerchantStatsResponse converts domain.MerchantStats to DTO.
func ToMerchantStatsResponse(s *domain.MerchantStats) MerchantStatsResponse {
	return MerchantStatsResponse{
		MerchantID:      s.MerchantID.String(),
		Days:            s.Days,
		Since:           timestamp(s.Since),
		IssuedTotal:     amount(s.IssuedTotal),
		CollectedTotal:  amount(s.CollectedTotal),
		MerchantNet:     amount(s.Net),
		PeriodIssued:    amount(s.Period.Issued),
		PeriodCollected: amount(s.Period.Collected),
		UniqueCustomers: s.Period.UniqueCustomers,
		EntryCount:      s.Period.EntryCount,
	}
}

// ToReconcileResponse converts ports.ReconcileResult to DTO.
func ToReconcileResponse(r *ports.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		Wallet:     ToWalletResponse(r.Wallet),
		Balance:    amount(r.Replayed.Balance),
		Issued:     amount(r.Replayed.IssuedTotal),
		Collected:  amount(r.Replayed.CollectedTotal),
		EntryCount: r.EntryCount,
		Consistent: r.Consistent,
	}
}

// ToActorResponse converts domain.Actor to DTO.
func ToActorResponse(a *domain.Actor) ActorResponse {
	return ActorResponse{
		ID:          a.ID.String(),
		Role:        string(a.Role),
		DisplayName: a.DisplayName,
		Status:      string(a.Status),
		UpdatedAt:   timestamp(a.UpdatedAt),
	}
}
