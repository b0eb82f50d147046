package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/chainequity/services"
)

// EquityHandler lida com requisições HTTP de emissão e ações corporativas.
type EquityHandler struct {
	Service *services.CorporateActionsService
}

// NewEquityHandler cria uma nova instância do handler de equities.
func NewEquityHandler(s *services.CorporateActionsService) *EquityHandler {
	return &EquityHandler{Service: s}
}

// CreateEquity emite uma nova equity.
// POST /equities
func (h *EquityHandler) CreateEquity(w http.ResponseWriter, r *http.Request) {
	var params services.EquityParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	equity, err := h.Service.CreateEquity(params)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(equity)
}

// GetEquity obtém uma equity pelo ID.
// GET /equities/{id}
func (h *EquityHandler) GetEquity(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	if equityID == "" {
		http.Error(w, "ID da equity é obrigatório", http.StatusBadRequest)
		return
	}

	equity, err := h.Service.GetEquity(equityID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(equity)
}

// FinalizeSplit aplica um desdobramento na contabilidade da equity.
// POST /equities/{id}/split/finalize
func (h *EquityHandler) FinalizeSplit(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		SplitRatio uint64 `json:"split_ratio"`
		Authority  string `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	equity, err := h.Service.FinalizeSplit(equityID, requestBody.SplitRatio, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(equity)
}

// ExecuteSplitBatch processa um lote de carteiras de um desdobramento.
// POST /equities/{id}/split/batch
func (h *EquityHandler) ExecuteSplitBatch(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		SplitRatio uint64   `json:"split_ratio"`
		BatchIndex uint32   `json:"batch_index"`
		Wallets    []string `json:"wallets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	processed, err := h.Service.ExecuteSplitBatch(equityID, requestBody.SplitRatio, requestBody.BatchIndex, requestBody.Wallets)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"batch_index":        requestBody.BatchIndex,
		"accounts_processed": processed,
	})
}

// ChangeSymbol muda o ticker da equity.
// PUT /equities/{id}/symbol
func (h *EquityHandler) ChangeSymbol(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		NewSymbol string `json:"new_symbol"`
		Authority string `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	equity, err := h.Service.ChangeSymbol(equityID, requestBody.NewSymbol, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(equity)
}

// SetPaused liga ou desliga a pausa de emergência.
// PUT /equities/{id}/paused
func (h *EquityHandler) SetPaused(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		Paused    bool   `json:"paused"`
		Authority string `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	equity, err := h.Service.SetPaused(equityID, requestBody.Paused, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(equity)
}
