package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ferreirogomes/chainequity/models"
	"github.com/ferreirogomes/chainequity/services"
)

// VestingHandler lida com requisições HTTP de cronogramas de vesting.
type VestingHandler struct {
	Service *services.VestingService
}

// NewVestingHandler cria uma nova instância do handler de vesting.
func NewVestingHandler(s *services.VestingService) *VestingHandler {
	return &VestingHandler{Service: s}
}

// Create cria um cronograma de vesting e financia o escrow.
// POST /equities/{id}/vesting
func (h *VestingHandler) Create(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")

	var requestBody struct {
		services.VestingParams
		Authority string `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestBody.Beneficiary == "" {
		http.Error(w, "Beneficiário é obrigatório", http.StatusBadRequest)
		return
	}

	params := requestBody.VestingParams
	params.EquityID = equityID

	schedule, err := h.Service.Create(params, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(schedule)
}

// Release libera os intervalos vencidos para o beneficiário.
// POST /vesting/{scheduleID}/release
func (h *VestingHandler) Release(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	var requestBody struct {
		Beneficiary string `json:"beneficiary"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	released, err := h.Service.Release(scheduleID, requestBody.Beneficiary)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]uint64{"amount_released": released})
}

// Terminate encerra um cronograma de vesting.
// POST /vesting/{scheduleID}/terminate
func (h *VestingHandler) Terminate(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	var requestBody struct {
		TerminationType models.TerminationType `json:"termination_type"`
		Notes           *string                `json:"notes"`
		Authority       string                 `json:"authority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestBody); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	schedule, err := h.Service.Terminate(scheduleID, requestBody.TerminationType, requestBody.Notes, requestBody.Authority)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedule)
}

// ListByBeneficiary lista os cronogramas de um beneficiário na equity.
// GET /equities/{id}/vesting?beneficiary=...
func (h *VestingHandler) ListByBeneficiary(w http.ResponseWriter, r *http.Request) {
	equityID := chi.URLParam(r, "id")
	beneficiary := r.URL.Query().Get("beneficiary")
	if beneficiary == "" {
		http.Error(w, "Beneficiário é obrigatório", http.StatusBadRequest)
		return
	}

	schedules, err := h.Service.ListByBeneficiary(equityID, beneficiary)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(schedules)
}

// GetSchedule obtém um cronograma com o valor adquirido no instante atual.
// GET /vesting/{scheduleID}
func (h *VestingHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	scheduleID := chi.URLParam(r, "scheduleID")

	schedule, vested, err := h.Service.GetSchedule(scheduleID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"schedule":      schedule,
		"vested_amount": vested,
	})
}
