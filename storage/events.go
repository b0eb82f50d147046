package storage

import (
	"fmt"

	"github.com/ferreirogomes/chainequity/models"
)

// SaveEvent persiste uma notificação para observadores externos.
func (d *DB) SaveEvent(e models.EquityEvent) error {
	query := `INSERT INTO equity_events (id, equity_id, kind, payload, created_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err := d.Exec(query, e.ID, e.EquityID, e.Kind, []byte(e.Payload), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("falha ao salvar evento: %w", err)
	}
	return nil
}

// GetEventsByEquity lista as notificações de uma equity, mais recentes primeiro.
func (d *DB) GetEventsByEquity(equityID string, limit int) ([]models.EquityEvent, error) {
	var events []models.EquityEvent
	err := d.Select(&events,
		`SELECT * FROM equity_events WHERE equity_id = $1 ORDER BY created_at DESC LIMIT $2`,
		equityID, limit)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar eventos: %w", err)
	}
	return events, nil
}
