package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferreirogomes/chainequity/models"
)

// SaveVestingSchedule insere ou atualiza um cronograma de vesting. Cronogramas
// nunca são apagados (registro de auditoria), apenas atualizados.
func (d *DB) SaveVestingSchedule(s models.VestingSchedule) error {
	query := `INSERT INTO vesting_schedules (
			id, equity_id, beneficiary, escrow_address, total_amount,
			released_amount, start_time, cliff_duration, total_duration,
			interval, intervals_released, revocable, revoked,
			termination_type, terminated_at, terminated_by,
			vested_at_termination, termination_notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (id) DO UPDATE SET
			released_amount = EXCLUDED.released_amount,
			intervals_released = EXCLUDED.intervals_released,
			revoked = EXCLUDED.revoked,
			termination_type = EXCLUDED.termination_type,
			terminated_at = EXCLUDED.terminated_at,
			terminated_by = EXCLUDED.terminated_by,
			vested_at_termination = EXCLUDED.vested_at_termination,
			termination_notes = EXCLUDED.termination_notes`
	_, err := d.Exec(query,
		s.ID, s.EquityID, s.Beneficiary, s.EscrowAddress, s.TotalAmount,
		s.ReleasedAmount, s.StartTime, s.CliffDuration, s.TotalDuration,
		s.Interval, s.IntervalsReleased, s.Revocable, s.Revoked,
		s.TerminationType, s.TerminatedAt, s.TerminatedBy,
		s.VestedAtTermination, s.TerminationNotes,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar cronograma de vesting: %w", err)
	}
	return nil
}

// GetVestingSchedule busca um cronograma de vesting pelo ID.
func (d *DB) GetVestingSchedule(id string) (models.VestingSchedule, bool, error) {
	var s models.VestingSchedule
	err := d.Get(&s, `SELECT * FROM vesting_schedules WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.VestingSchedule{}, false, nil
	}
	if err != nil {
		return models.VestingSchedule{}, false, fmt.Errorf("falha ao buscar cronograma de vesting: %w", err)
	}
	return s, true, nil
}

// GetVestingSchedulesByBeneficiary lista os cronogramas de um beneficiário em
// uma equity.
func (d *DB) GetVestingSchedulesByBeneficiary(equityID, beneficiary string) ([]models.VestingSchedule, error) {
	var schedules []models.VestingSchedule
	err := d.Select(&schedules,
		`SELECT * FROM vesting_schedules WHERE equity_id = $1 AND beneficiary = $2 ORDER BY start_time`,
		equityID, beneficiary)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar cronogramas de vesting: %w", err)
	}
	return schedules, nil
}
