package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferreirogomes/chainequity/models"
)

// SaveAllowlistEntry insere ou atualiza a entrada de allowlist de uma carteira
// (upsert por (equity, carteira)).
func (d *DB) SaveAllowlistEntry(e models.AllowlistEntry) error {
	query := `INSERT INTO allowlist_entries (
			id, equity_id, wallet, approved_at, approved_by, status, kyc_level
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (equity_id, wallet) DO UPDATE SET
			status = EXCLUDED.status,
			kyc_level = EXCLUDED.kyc_level`
	_, err := d.Exec(query, e.ID, e.EquityID, e.Wallet, e.ApprovedAt, e.ApprovedBy, e.Status, e.KYCLevel)
	if err != nil {
		return fmt.Errorf("falha ao salvar entrada de allowlist: %w", err)
	}
	return nil
}

// GetAllowlistEntry busca a entrada de allowlist de uma carteira.
func (d *DB) GetAllowlistEntry(equityID, wallet string) (models.AllowlistEntry, bool, error) {
	var e models.AllowlistEntry
	err := d.Get(&e, `SELECT * FROM allowlist_entries WHERE equity_id = $1 AND wallet = $2`, equityID, wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AllowlistEntry{}, false, nil
	}
	if err != nil {
		return models.AllowlistEntry{}, false, fmt.Errorf("falha ao buscar entrada de allowlist: %w", err)
	}
	return e, true, nil
}

// DeleteAllowlistEntry remove a entrada de allowlist de uma carteira. A remoção
// recupera o armazenamento e não é reversível.
func (d *DB) DeleteAllowlistEntry(equityID, wallet string) error {
	_, err := d.Exec(`DELETE FROM allowlist_entries WHERE equity_id = $1 AND wallet = $2`, equityID, wallet)
	if err != nil {
		return fmt.Errorf("falha ao remover entrada de allowlist: %w", err)
	}
	return nil
}
