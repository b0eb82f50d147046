package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/chainequity/services"
)

// RestrictionHandler lida com requisições HTTP de restrições por carteira.
type RestrictionHandler struct {
	Service *services.RestrictionService
}

// NewRestrictionHandler cria uma nova instância do handler de restrições.
func NewRestrictionHandler(s *services.RestrictionService) *RestrictionHandler {
	return &RestrictionHandler{Service: s}
}

// SetRestrictions insere ou atualiza as restrições de uma carteira.
// PUT /equities/{id}/restrictions/{wallet}
func (h *RestrictionHandler) SetRestrictions(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	wallet := chi.URLParam(r, "wallet")

	var requestBody struct {
		DailyTransferLimit *uint64 `json:"daily_transfer_limit"`
		LockoutUntil       *int64  `json:"lockout_until"`
		MaxBalance         *uint64 `json:"max_balance"`
		Authority          string  `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	restrictions, err := h.Service.SetRestrictions(
		equityID, wallet,
		requestBody.DailyTransferLimit, requestBody.LockoutUntil, requestBody.MaxBalance,
		requestBody.Authority,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restrictions)
}

// GetRestrictions obtém as restrições de uma carteira.
// GET /equities/{id}/restrictions/{wallet}
func (h *RestrictionHandler) GetRestrictions(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	wallet := chi.URLParam(r, "wallet")

	restrictions, found, err := h.Service.GetRestrictions(equityID, wallet)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "Carteira sem restrições", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restrictions)
}
