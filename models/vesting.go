package models

// VestingInterval determina a cadência com que os tokens de um cronograma são
// liberados.
type VestingInterval string

const (
	IntervalMinute VestingInterval = "minute" // 60 segundos
	IntervalHour   VestingInterval = "hour"   // 3600 segundos
	IntervalDay    VestingInterval = "day"    // 86400 segundos
	IntervalMonth  VestingInterval = "month"  // ~30 dias = 2592000 segundos
)

// Seconds retorna a duração do intervalo em segundos.
func (i VestingInterval) Seconds() uint64 {
	switch i {
	case IntervalMinute:
		return 60
	case IntervalHour:
		return 3600
	case IntervalDay:
		return 86400
	case IntervalMonth:
		return 30 * 86400
	}
	return 0
}

// Valid informa se o intervalo é um dos valores conhecidos.
func (i VestingInterval) Valid() bool {
	return i.Seconds() > 0
}

// TerminationType classifica o encerramento de um cronograma de vesting.
type TerminationType string

const (
	// TerminationStandard - desligamento comum: mantém o que já vestiu, perde o resto.
	TerminationStandard TerminationType = "standard"
	// TerminationForCause - por justa causa: perde TODOS os tokens não liberados.
	TerminationForCause TerminationType = "for_cause"
	// TerminationAccelerated - acelerado: 100% veste imediatamente.
	TerminationAccelerated TerminationType = "accelerated"
)

// Valid informa se o tipo de encerramento é um dos valores conhecidos.
func (t TerminationType) Valid() bool {
	switch t {
	case TerminationStandard, TerminationForCause, TerminationAccelerated:
		return true
	}
	return false
}

// MaxTerminationNotesLen limita as notas de auditoria do encerramento.
const MaxTerminationNotesLen = 200

// VestingSchedule é um cronograma de vesting por intervalos discretos: tokens
// liberam em intervalos fixos (minuto/hora/dia/mês) em parcelas iguais, com o
// resto da divisão inteira distribuído nos últimos intervalos. O registro
// nunca é apagado (trilha de auditoria).
type VestingSchedule struct {
	ID          string `db:"id" json:"id"`
	EquityID    string `db:"equity_id" json:"equity_id"`
	Beneficiary string `db:"beneficiary" json:"beneficiary"`
	// EscrowAddress é a conta derivada do cronograma que custodia os tokens
	// até a liberação.
	EscrowAddress string `db:"escrow_address" json:"escrow_address"`

	TotalAmount    uint64 `db:"total_amount" json:"total_amount"`
	ReleasedAmount uint64 `db:"released_amount" json:"released_amount"` // Nunca excede TotalAmount

	StartTime     int64           `db:"start_time" json:"start_time"`         // Unix timestamp do início
	CliffDuration uint64          `db:"cliff_duration" json:"cliff_duration"` // Segundos até o cliff (0 = sem cliff)
	TotalDuration uint64          `db:"total_duration" json:"total_duration"` // Duração total em segundos (inclui cliff)
	Interval      VestingInterval `db:"interval" json:"interval"`

	IntervalsReleased uint64 `db:"intervals_released" json:"intervals_released"`
	Revocable         bool   `db:"revocable" json:"revocable"`
	Revoked           bool   `db:"revoked" json:"revoked"`

	TerminationType     *TerminationType `db:"termination_type" json:"termination_type,omitempty"`
	TerminatedAt        *int64           `db:"terminated_at" json:"terminated_at,omitempty"`
	TerminatedBy        *string          `db:"terminated_by" json:"terminated_by,omitempty"`
	VestedAtTermination *uint64          `db:"vested_at_termination" json:"vested_at_termination,omitempty"`
	TerminationNotes    *string          `db:"termination_notes" json:"termination_notes,omitempty"`
}

// TotalIntervals calcula o número total de intervalos de vesting (após o cliff).
// A divisão inteira trunca de propósito: um intervalo final parcial é absorvido
// pela aritmética de cliff/duração, não contado à parte.
func (s *VestingSchedule) TotalIntervals() uint64 {
	vestingDuration := saturatingSub(s.TotalDuration, s.CliffDuration)
	intervalSeconds := s.Interval.Seconds()
	if intervalSeconds == 0 {
		return 1
	}
	return vestingDuration / intervalSeconds
}

// AmountPerInterval calcula a parcela por intervalo (distribuição igual, piso).
func (s *VestingSchedule) AmountPerInterval() uint64 {
	totalIntervals := s.TotalIntervals()
	if totalIntervals == 0 {
		return s.TotalAmount
	}
	return s.TotalAmount / totalIntervals
}

// Remainder calcula o resto da divisão, distribuído um a um nos últimos
// intervalos para que a soma das parcelas feche exatamente em TotalAmount.
func (s *VestingSchedule) Remainder() uint64 {
	totalIntervals := s.TotalIntervals()
	if totalIntervals == 0 {
		return 0
	}
	return s.TotalAmount % totalIntervals
}

func saturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}
