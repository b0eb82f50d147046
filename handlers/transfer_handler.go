package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/chainequity/services"
)

// TransferHandler lida com requisições HTTP de transferência e cunhagem.
type TransferHandler struct {
	Service *services.TransferService
}

// NewTransferHandler cria uma nova instância do handler de transferências.
func NewTransferHandler(s *services.TransferService) *TransferHandler {
	return &TransferHandler{Service: s}
}

// Transfer executa uma transferência com as verificações de compliance.
// POST /equities/{id}/transfers
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		From   string `json:"from"`
		To     string `json:"to"`
		Amount uint64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.From == "" || requestBody.To == "" {
		http.Error(w, "Remetente e destinatário são obrigatórios", http.StatusBadRequest)
		return
	}

	txID, err := h.Service.Transfer(equityID, requestBody.From, requestBody.To, requestBody.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"tx_id": txID})
}

// Mint cunha novos tokens para uma carteira aprovada.
// POST /equities/{id}/mint
func (h *TransferHandler) Mint(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		To        string `json:"to"`
		Amount    uint64 `json:"amount"`
		Authority string `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.To == "" {
		http.Error(w, "Destinatário é obrigatório", http.StatusBadRequest)
		return
	}

	txID, err := h.Service.Mint(equityID, requestBody.To, requestBody.Amount, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"tx_id": txID})
}
