package handler

import (
	"net/http"

	"github.com/qaz17899/game-hub/internal/ledger"
)

type WalletHandler struct {
	service ledger.Service
}

func NewWalletHandler(service ledger.Service) *WalletHandler {
	return &WalletHandler{service: service}
}

// WalletResponse reports the current balance. Degraded means the persistent
// store is unreachable and the balance lives only in memory.
type WalletResponse struct {
	Balance  int64 `json:"balance"`
	Degraded bool  `json:"degraded"`
}

// HandleGetWallet returns the current balance
func (h *WalletHandler) HandleGetWallet(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, WalletResponse{
		Balance:  h.service.Balance(r.Context()),
		Degraded: h.service.Degraded(),
	})
}

// ResetWalletResponse carries the balance after an admin reset
type ResetWalletResponse struct {
	Message string `json:"message"`
	Balance int64  `json:"balance"`
}

// HandleResetWallet restores the starting balance. Admin only.
func (h *WalletHandler) HandleResetWallet(w http.ResponseWriter, r *http.Request) {
	balance := h.service.Reset(r.Context())
	respondJSON(w, http.StatusOK, ResetWalletResponse{
		Message: MsgWalletResetSuccess,
		Balance: balance,
	})
}
