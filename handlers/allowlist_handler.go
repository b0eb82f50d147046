package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/chainequity/models"
	"github.com/ferreirogomes/chainequity/services"
)

// AllowlistHandler lida com requisições HTTP do registro de compliance.
type AllowlistHandler struct {
	Service *services.AllowlistService
}

// NewAllowlistHandler cria uma nova instância do handler de allowlist.
func NewAllowlistHandler(s *services.AllowlistService) *AllowlistHandler {
	return &AllowlistHandler{Service: s}
}

// Approve adiciona uma carteira à allowlist.
// POST /equities/{id}/allowlist
func (h *AllowlistHandler) Approve(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		Wallet    string `json:"wallet"`
		KYCLevel  uint8  `json:"kyc_level"`
		Authority string `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Wallet == "" {
		http.Error(w, "Carteira é obrigatória", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.Approve(equityID, requestBody.Wallet, requestBody.KYCLevel, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// Revoke remove uma carteira da allowlist.
// DELETE /equities/{id}/allowlist/{wallet}
func (h *AllowlistHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	wallet := chi.URLParam(r, "wallet")

	authority := r.URL.Query().Get("authority")

	if err := h.Service.Revoke(equityID, wallet, authority); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetStatus muda o status de uma carteira sem apagar a entrada.
// PATCH /equities/{id}/allowlist/{wallet}
func (h *AllowlistHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	wallet := chi.URLParam(r, "wallet")

	var requestBody struct {
		Status    models.AllowlistStatus `json:"status"`
		Authority string                 `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entry, err := h.Service.SetStatus(equityID, wallet, requestBody.Status, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// GetEntry obtém a entrada de allowlist de uma carteira.
// GET /equities/{id}/allowlist/{wallet}
func (h *AllowlistHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	wallet := chi.URLParam(r, "wallet")

	entry, err := h.Service.GetEntry(equityID, wallet)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}
