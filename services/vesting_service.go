package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
)

// VestingService gerencia cronogramas de vesting por intervalos discretos:
// criação (com custódia em escrow), liberação incremental e encerramento.
type VestingService struct {
	DB       Store
	Ledger   Ledger
	Notifier Notifier
	// TreasuryWallet recebe os tokens não adquiridos em encerramentos.
	TreasuryWallet string
	Clock          func() int64
}

// NewVestingService cria uma nova instância do engine de vesting.
func NewVestingService(db Store, ledger Ledger, notifier Notifier, treasuryWallet string) *VestingService {
	return &VestingService{
		DB:             db,
		Ledger:         ledger,
		Notifier:       notifier,
		TreasuryWallet: treasuryWallet,
		Clock:          func() int64 { return time.Now().Unix() },
	}
}

// VestingParams são os parâmetros de criação de um cronograma.
type VestingParams struct {
	EquityID      string                 `json:"equity_id"`
	Beneficiary   string                 `json:"beneficiary"`
	TotalAmount   uint64                 `json:"total_amount"`
	StartTime     int64                  `json:"start_time"`
	CliffDuration uint64                 `json:"cliff_duration"`
	TotalDuration uint64                 `json:"total_duration"`
	Interval      models.VestingInterval `json:"interval"`
	Revocable     bool                   `json:"revocable"`
}

// Create valida os parâmetros, move TotalAmount da carteira da autoridade para
// o escrow derivado do cronograma e persiste o registro. O financiamento do
// escrow e a criação do registro são tudo-ou-nada.
func (s *VestingService) Create(params VestingParams, authority string) (models.VestingSchedule, error) {
	if params.TotalAmount == 0 {
		return models.VestingSchedule{}, models.ErrInvalidAmount
	}
	if params.TotalDuration == 0 {
		return models.VestingSchedule{}, models.ErrInvalidVestingDuration
	}
	if !params.Interval.Valid() {
		return models.VestingSchedule{}, models.ErrInvalidVestingDuration
	}
	// A janela de vesting (após o cliff) precisa comportar ao menos um intervalo.
	vestingDuration := saturatingSub(params.TotalDuration, params.CliffDuration)
	if vestingDuration < params.Interval.Seconds() {
		return models.VestingSchedule{}, models.ErrInvalidVestingDuration
	}

	equity, found, err := s.DB.GetEquity(params.EquityID)
	if err != nil {
		return models.VestingSchedule{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.VestingSchedule{}, models.ErrEquityNotFound
	}
	if !equity.VestingEnabled {
		return models.VestingSchedule{}, models.ErrFeatureDisabled
	}

	scheduleID := uuid.New().String()
	escrowAddress, err := s.Ledger.DeriveEscrowAddress(scheduleID)
	if err != nil {
		return models.VestingSchedule{}, fmt.Errorf("falha ao derivar escrow do cronograma: %w", err)
	}

	schedule := models.VestingSchedule{
		ID:                scheduleID,
		EquityID:          params.EquityID,
		Beneficiary:       params.Beneficiary,
		EscrowAddress:     escrowAddress,
		TotalAmount:       params.TotalAmount,
		ReleasedAmount:    0,
		StartTime:         params.StartTime,
		CliffDuration:     params.CliffDuration,
		TotalDuration:     params.TotalDuration,
		Interval:          params.Interval,
		IntervalsReleased: 0,
		Revocable:         params.Revocable,
		Revoked:           false,
	}

	// Financia o escrow a partir da carteira da autoridade.
	if _, err := s.Ledger.Transfer(equity.MintAddress, authority, escrowAddress, params.TotalAmount); err != nil {
		return models.VestingSchedule{}, fmt.Errorf("falha ao financiar escrow do vesting: %w", err)
	}

	if err := s.DB.SaveVestingSchedule(schedule); err != nil {
		// O escrow já foi financiado; devolve os tokens à autoridade para que
		// nenhum valor fique preso em um escrow sem registro.
		if _, refundErr := s.Ledger.TransferFromEscrow(equity.MintAddress, escrowAddress, authority, params.TotalAmount); refundErr != nil {
			return models.VestingSchedule{}, fmt.Errorf("registro do cronograma falhou (%v) e a devolução do escrow também: %w", err, refundErr)
		}
		return models.VestingSchedule{}, fmt.Errorf("falha ao registrar cronograma: %w", err)
	}

	s.Notifier.Emit(params.EquityID, models.EventVestingCreated, map[string]any{
		"schedule":            scheduleID,
		"beneficiary":         params.Beneficiary,
		"total_amount":        params.TotalAmount,
		"start_time":          params.StartTime,
		"cliff_duration":      params.CliffDuration,
		"total_duration":      params.TotalDuration,
		"interval":            params.Interval,
		"total_intervals":     schedule.TotalIntervals(),
		"amount_per_interval": schedule.AmountPerInterval(),
		"created_by":          authority,
	})

	return schedule, nil
}

// Release libera os intervalos vencidos desde a última liberação, transferindo
// o valor do escrow para o beneficiário. Idempotente dentro de um mesmo
// intervalo: uma segunda chamada antes da próxima fronteira falha com
// ErrNoTokensToRelease.
func (s *VestingService) Release(scheduleID, beneficiary string) (uint64, error) {
	schedule, found, err := s.DB.GetVestingSchedule(scheduleID)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar cronograma: %w", err)
	}
	if !found {
		return 0, models.ErrRecordNotFound
	}
	if schedule.Beneficiary != beneficiary {
		return 0, models.ErrUnauthorized
	}

	now := s.Clock()

	newIntervals := CalculateReleasableIntervals(&schedule, now)
	if newIntervals == 0 {
		return 0, models.ErrNoTokensToRelease
	}

	releaseAmount, err := releaseAmountFor(&schedule, newIntervals)
	if err != nil {
		return 0, err
	}
	if releaseAmount == 0 {
		return 0, models.ErrNoTokensToRelease
	}

	newReleased, err := checkedAdd(schedule.ReleasedAmount, releaseAmount)
	if err != nil {
		return 0, err
	}

	equity, found, err := s.DB.GetEquity(schedule.EquityID)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return 0, models.ErrEquityNotFound
	}

	// Os contadores entram antes da transferência: são a guarda contra uma
	// liberação dupla dos mesmos intervalos. Se a transferência falhar, os
	// contadores anteriores são restaurados como compensação.
	prevIntervals := schedule.IntervalsReleased
	prevReleased := schedule.ReleasedAmount
	schedule.IntervalsReleased += newIntervals
	schedule.ReleasedAmount = newReleased
	if err := s.DB.SaveVestingSchedule(schedule); err != nil {
		return 0, fmt.Errorf("falha ao atualizar cronograma: %w", err)
	}

	if _, err := s.Ledger.TransferFromEscrow(equity.MintAddress, schedule.EscrowAddress, beneficiary, releaseAmount); err != nil {
		schedule.IntervalsReleased = prevIntervals
		schedule.ReleasedAmount = prevReleased
		if saveErr := s.DB.SaveVestingSchedule(schedule); saveErr != nil {
			return 0, fmt.Errorf("liberação falhou (%v) e a compensação do cronograma também: %w", err, saveErr)
		}
		return 0, fmt.Errorf("falha ao liberar tokens do escrow: %w", err)
	}

	s.Notifier.Emit(schedule.EquityID, models.EventVestingReleased, map[string]any{
		"schedule":                 scheduleID,
		"beneficiary":              beneficiary,
		"amount_released":          releaseAmount,
		"total_released":           schedule.ReleasedAmount,
		"intervals_released":       newIntervals,
		"total_intervals_released": schedule.IntervalsReleased,
	})

	return releaseAmount, nil
}

// Terminate encerra um cronograma. O valor adquirido final depende do tipo:
// Standard mantém o que vestiu até agora, ForCause zera, Accelerated adquire
// tudo. O não adquirido que ainda está no escrow volta para a tesouraria
// (subtração saturada: o encerramento nunca tenta reaver o que já foi
// liberado). Terminal: nenhuma liberação futura.
func (s *VestingService) Terminate(scheduleID string, terminationType models.TerminationType, notes *string, authority string) (models.VestingSchedule, error) {
	if !terminationType.Valid() {
		return models.VestingSchedule{}, models.ErrInvalidStatus
	}
	if notes != nil && len(*notes) > models.MaxTerminationNotesLen {
		return models.VestingSchedule{}, models.ErrTerminationNotesTooLong
	}

	schedule, found, err := s.DB.GetVestingSchedule(scheduleID)
	if err != nil {
		return models.VestingSchedule{}, fmt.Errorf("erro ao buscar cronograma: %w", err)
	}
	if !found {
		return models.VestingSchedule{}, models.ErrRecordNotFound
	}
	if schedule.Revoked {
		return models.VestingSchedule{}, models.ErrAlreadyTerminated
	}

	now := s.Clock()

	vestedNow := CalculateVestedAmount(&schedule, now)
	var finalVested uint64
	switch terminationType {
	case models.TerminationStandard:
		finalVested = vestedNow
	case models.TerminationForCause:
		finalVested = 0
	case models.TerminationAccelerated:
		finalVested = schedule.TotalAmount
	}

	alreadyReleased := schedule.ReleasedAmount
	remainingInEscrow := saturatingSub(schedule.TotalAmount, alreadyReleased)
	stillOwed := saturatingSub(finalVested, alreadyReleased)
	toReturn := saturatingSub(remainingInEscrow, stillOwed)

	var mintAddress string
	if toReturn > 0 {
		equity, found, err := s.DB.GetEquity(schedule.EquityID)
		if err != nil {
			return models.VestingSchedule{}, fmt.Errorf("erro ao buscar equity: %w", err)
		}
		if !found {
			return models.VestingSchedule{}, models.ErrEquityNotFound
		}
		mintAddress = equity.MintAddress
	}

	// O encerramento é registrado antes da devolução à tesouraria: um cronograma
	// revogado não libera mais nada, então uma falha adiante nunca deixa o
	// escrow debitado com o cronograma ainda ativo. Se a devolução falhar, o
	// registro anterior é restaurado como compensação.
	prev := schedule
	schedule.Revoked = true
	schedule.TerminationType = &terminationType
	schedule.TerminatedAt = &now
	schedule.TerminatedBy = &authority
	schedule.VestedAtTermination = &finalVested
	schedule.TerminationNotes = notes
	if err := s.DB.SaveVestingSchedule(schedule); err != nil {
		return models.VestingSchedule{}, fmt.Errorf("falha ao registrar encerramento: %w", err)
	}

	if toReturn > 0 {
		if _, err := s.Ledger.TransferFromEscrow(mintAddress, schedule.EscrowAddress, s.TreasuryWallet, toReturn); err != nil {
			if saveErr := s.DB.SaveVestingSchedule(prev); saveErr != nil {
				return models.VestingSchedule{}, fmt.Errorf("devolução à tesouraria falhou (%v) e a compensação do cronograma também: %w", err, saveErr)
			}
			return models.VestingSchedule{}, fmt.Errorf("falha ao devolver tokens à tesouraria: %w", err)
		}
	}

	s.Notifier.Emit(schedule.EquityID, models.EventVestingTerminated, map[string]any{
		"schedule":             scheduleID,
		"beneficiary":          schedule.Beneficiary,
		"termination_type":     terminationType,
		"final_vested":         finalVested,
		"returned_to_treasury": toReturn,
		"terminated_at":        now,
		"terminated_by":        authority,
	})

	return schedule, nil
}

// GetSchedule retorna um cronograma com o valor adquirido no instante atual.
func (s *VestingService) GetSchedule(scheduleID string) (models.VestingSchedule, uint64, error) {
	schedule, found, err := s.DB.GetVestingSchedule(scheduleID)
	if err != nil {
		return models.VestingSchedule{}, 0, fmt.Errorf("erro ao buscar cronograma: %w", err)
	}
	if !found {
		return models.VestingSchedule{}, 0, models.ErrRecordNotFound
	}
	return schedule, CalculateVestedAmount(&schedule, s.Clock()), nil
}

// ListByBeneficiary retorna os cronogramas de um beneficiário numa equity.
func (s *VestingService) ListByBeneficiary(equityID, beneficiary string) ([]models.VestingSchedule, error) {
	schedules, err := s.DB.GetVestingSchedulesByBeneficiary(equityID, beneficiary)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar cronogramas: %w", err)
	}
	return schedules, nil
}

// CalculateVestedAmount calcula o total adquirido até o instante dado, em
// intervalos discretos: cada intervalo libera a mesma parcela
// (TotalAmount / TotalIntervals) e o resto da divisão é distribuído um a um
// nos últimos intervalos, garantindo que a soma das liberações sobre a duração
// completa feche exatamente em TotalAmount.
func CalculateVestedAmount(schedule *models.VestingSchedule, currentTime int64) uint64 {
	// Encerrado: o valor congelado no encerramento governa daqui em diante.
	if schedule.VestedAtTermination != nil {
		return *schedule.VestedAtTermination
	}
	// Revogado sem congelamento: nada mais vesta além do já liberado.
	if schedule.Revoked {
		return schedule.ReleasedAmount
	}

	elapsed := currentTime - schedule.StartTime
	if elapsed < 0 {
		return 0
	}
	if elapsed >= int64(schedule.TotalDuration) {
		return schedule.TotalAmount
	}
	if elapsed < int64(schedule.CliffDuration) {
		return 0
	}

	timeAfterCliff := uint64(elapsed) - schedule.CliffDuration
	intervalsElapsed := timeAfterCliff / schedule.Interval.Seconds()

	totalIntervals := schedule.TotalIntervals()
	if totalIntervals == 0 {
		return schedule.TotalAmount
	}
	amountPerInterval := schedule.AmountPerInterval()
	remainder := schedule.Remainder()

	vested := amountPerInterval * intervalsElapsed

	// Os últimos `remainder` intervalos recebem uma unidade extra cada.
	if intervalsElapsed > totalIntervals-remainder {
		vested += intervalsElapsed - (totalIntervals - remainder)
	}

	if vested > schedule.TotalAmount {
		return schedule.TotalAmount
	}
	return vested
}

// CalculateReleasableIntervals calcula quantos intervalos NOVOS venceram desde
// a última liberação.
func CalculateReleasableIntervals(schedule *models.VestingSchedule, currentTime int64) uint64 {
	if schedule.Revoked {
		return 0
	}

	elapsed := currentTime - schedule.StartTime
	if elapsed < 0 || elapsed < int64(schedule.CliffDuration) {
		return 0
	}
	if elapsed >= int64(schedule.TotalDuration) {
		return saturatingSub(schedule.TotalIntervals(), schedule.IntervalsReleased)
	}

	timeAfterCliff := uint64(elapsed) - schedule.CliffDuration
	intervalsElapsed := timeAfterCliff / schedule.Interval.Seconds()
	return saturatingSub(intervalsElapsed, schedule.IntervalsReleased)
}

// releaseAmountFor calcula o valor a liberar pelos novos intervalos, aplicando
// a mesma regra de distribuição do resto restrita aos intervalos recém
// vencidos.
func releaseAmountFor(schedule *models.VestingSchedule, newIntervals uint64) (uint64, error) {
	totalIntervals := schedule.TotalIntervals()
	amountPerInterval := schedule.AmountPerInterval()
	remainder := schedule.Remainder()

	previousIntervals := schedule.IntervalsReleased
	newTotalIntervals := previousIntervals + newIntervals

	releaseAmount, err := checkedMul(amountPerInterval, newIntervals)
	if err != nil {
		return 0, err
	}

	// Parcela extra dos intervalos na zona do resto (os últimos `remainder`).
	remainderStart := saturatingSub(totalIntervals, remainder)
	if newTotalIntervals > remainderStart && previousIntervals < totalIntervals {
		var remainderIntervalsBefore uint64
		if previousIntervals > remainderStart {
			remainderIntervalsBefore = previousIntervals - remainderStart
		}
		remainderIntervalsNow := newTotalIntervals - remainderStart
		if remainderIntervalsNow > remainder {
			remainderIntervalsNow = remainder
		}
		releaseAmount += saturatingSub(remainderIntervalsNow, remainderIntervalsBefore)
	}

	return releaseAmount, nil
}
