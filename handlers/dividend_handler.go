package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/chainequity/services"
)

// DividendHandler lida com requisições HTTP de rodadas de dividendos.
type DividendHandler struct {
	Service *services.DividendService
}

// NewDividendHandler cria uma nova instância do handler de dividendos.
func NewDividendHandler(s *services.DividendService) *DividendHandler {
	return &DividendHandler{Service: s}
}

// CreateRound cria uma rodada de dividendos para a equity.
// POST /equities/{id}/dividends
func (h *DividendHandler) CreateRound(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		PaymentToken     string  `json:"payment_token"`
		PoolAddress      string  `json:"pool_address"`
		TotalPool        uint64  `json:"total_pool"`
		ExpiresInSeconds *uint64 `json:"expires_in_seconds"`
		Authority        string  `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.PoolAddress == "" {
		http.Error(w, "Endereço do pool é obrigatório", http.StatusBadRequest)
		return
	}

	round, err := h.Service.CreateRound(
		equityID,
		requestBody.PaymentToken,
		requestBody.PoolAddress,
		requestBody.TotalPool,
		requestBody.ExpiresInSeconds,
		requestBody.Authority,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(round)
}

// Claim reivindica o dividendo de uma carteira na rodada.
// POST /equities/{id}/dividends/{roundID}/claim
func (h *DividendHandler) Claim(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	roundID, err := strconv.ParseUint(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		http.Error(w, "Rodada inválida", http.StatusBadRequest)
		return
	}

	var requestBody struct {
		Wallet string `json:"wallet"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Wallet == "" {
		http.Error(w, "Carteira é obrigatória", http.StatusBadRequest)
		return
	}

	claim, err := h.Service.Claim(equityID, roundID, requestBody.Wallet)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(claim)
}

// GetRound obtém uma rodada de dividendos.
// GET /equities/{id}/dividends/{roundID}
func (h *DividendHandler) GetRound(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	roundID, err := strconv.ParseUint(chi.URLParam(r, "roundID"), 10, 64)
	if err != nil {
		http.Error(w, "Rodada inválida", http.StatusBadRequest)
		return
	}

	round, err := h.Service.GetRound(equityID, roundID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(round)
}
