package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/example/foodmart/internal/middleware"
	"github.com/example/foodmart/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletService is the ledger surface used by the handlers
type WalletService interface {
	// GetWallet returns the wallet, creating it on first access
	GetWallet(ctx context.Context, ownerID uuid.UUID, kind string) (*models.Wallet, error)
	// RequestTopUp records a PENDING top-up
	RequestTopUp(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (*models.WalletTransaction, error)
	// RequestWithdrawal records a PENDING withdrawal
	RequestWithdrawal(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (*models.WalletTransaction, error)
	// ApproveTransaction applies the pending mutation exactly once
	ApproveTransaction(ctx context.Context, id, adminID uuid.UUID, notes string) (*models.WalletTransaction, error)
	// RejectTransaction terminates the request without mutation
	RejectTransaction(ctx context.Context, id, adminID uuid.UUID, notes string) (*models.WalletTransaction, error)
	// ListTransactions returns the owner's ledger
	ListTransactions(ctx context.Context, ownerID uuid.UUID, kind string) ([]models.WalletTransaction, error)
	// ListPendingTransactions returns the admin review queue
	ListPendingTransactions(ctx context.Context) ([]models.WalletTransaction, error)
}

// WalletHandler represents HTTP handler for wallet-related requests
type WalletHandler struct {
	svc WalletService
}

// NewWalletHandler creates new WalletHandler instance
func NewWalletHandler(svc WalletService) *WalletHandler {
	return &WalletHandler{svc: svc}
}

// ownerKind maps the token role onto the wallet owner kind.
func ownerKind(role string) string {
	switch role {
	case models.RoleDriver:
		return models.OwnerKindDriver
	case models.RoleRestaurant:
		return models.OwnerKindRestaurant
	default:
		return models.OwnerKindCustomer
	}
}

type walletResponse struct {
	Balance        string `json:"balance"`
	TotalEarnings  string `json:"total_earnings"`
	TotalTopUps    string `json:"total_topups"`
	TotalSpent     string `json:"total_spent"`
	TotalWithdrawn string `json:"total_withdrawn"`
	CanWithdraw    bool   `json:"can_withdraw"`
}

type transactionResponse struct {
	ID          string  `json:"id"`
	Amount      string  `json:"amount"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
	ProcessedAt *string `json:"processed_at,omitempty"`
}

func toTransactionResponse(t *models.WalletTransaction) transactionResponse {
	resp := transactionResponse{
		ID:          t.ID.String(),
		Amount:      t.Amount.StringFixed(2),
		Type:        t.Type,
		Status:      t.Status,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if t.ProcessedAt != nil {
		s := t.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &s
	}
	return resp
}

// GetWallet returns the authenticated owner's wallet
// 200 — wallet returned
// 401 — missing or invalid token
func (wh *WalletHandler) GetWallet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := middleware.GetAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		wallet, err := wh.svc.GetWallet(r.Context(), payload.UserID, ownerKind(payload.Role))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, walletResponse{
			Balance:        wallet.Balance.StringFixed(2),
			TotalEarnings:  wallet.TotalEarnings.StringFixed(2),
			TotalTopUps:    wallet.TotalTopUps.StringFixed(2),
			TotalSpent:     wallet.TotalSpent.StringFixed(2),
			TotalWithdrawn: wallet.TotalWithdrawn.StringFixed(2),
			CanWithdraw:    wallet.CanWithdraw,
		})
	}
}

type amountRequest struct {
	Amount string `json:"amount"`
}

func (wh *WalletHandler) request(kindOf func(ctx context.Context, ownerID uuid.UUID, kind string, amount decimal.Decimal) (*models.WalletTransaction, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := middleware.GetAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req amountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			http.Error(w, "invalid amount", http.StatusBadRequest)
			return
		}

		t, err := kindOf(r.Context(), payload.UserID, ownerKind(payload.Role), amount)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, toTransactionResponse(t))
	}
}

// TopUp requests a wallet top-up pending admin approval
// 202 — request recorded
// 400 — non-positive amount
func (wh *WalletHandler) TopUp() http.HandlerFunc {
	return wh.request(wh.svc.RequestTopUp)
}

// Withdraw requests a withdrawal pending admin approval
// 202 — request recorded
// 400 — non-positive amount, insufficient balance or withdrawal not allowed
func (wh *WalletHandler) Withdraw() http.HandlerFunc {
	return wh.request(wh.svc.RequestWithdrawal)
}

// ListTransactions returns the owner's ledger, newest first
func (wh *WalletHandler) ListTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := middleware.GetAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		list, err := wh.svc.ListTransactions(r.Context(), payload.UserID, ownerKind(payload.Role))
		if err != nil {
			writeError(w, err)
			return
		}

		resp := make([]transactionResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toTransactionResponse(&list[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

type adminNotesRequest struct {
	Notes string `json:"notes"`
}

func (wh *WalletHandler) process(action func(ctx context.Context, id, adminID uuid.UUID, notes string) (*models.WalletTransaction, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, ok := actorID(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := pathID(r)
		if err != nil {
			http.Error(w, "invalid transaction id", http.StatusBadRequest)
			return
		}

		var req adminNotesRequest
		// notes are optional
		_ = json.NewDecoder(r.Body).Decode(&req)
		defer r.Body.Close()

		t, err := action(r.Context(), id, adminID, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTransactionResponse(t))
	}
}

// Approve applies a pending transaction exactly once
// 200 — approved and applied
// 404 — unknown transaction
// 409 — already processed
func (wh *WalletHandler) Approve() http.HandlerFunc {
	return wh.process(wh.svc.ApproveTransaction)
}

// Reject terminates a pending transaction without balance mutation
func (wh *WalletHandler) Reject() http.HandlerFunc {
	return wh.process(wh.svc.RejectTransaction)
}

// ListPending returns the admin review queue, oldest first
func (wh *WalletHandler) ListPending() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := wh.svc.ListPendingTransactions(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		resp := make([]transactionResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toTransactionResponse(&list[i]))
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
