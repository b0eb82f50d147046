package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferreirogomes/chainequity/models"
)

// SaveWalletRestrictions insere ou atualiza as restrições de uma carteira
// (upsert por (equity, carteira)).
func (d *DB) SaveWalletRestrictions(r models.WalletRestrictions) error {
	query := `INSERT INTO wallet_restrictions (
			id, equity_id, wallet, daily_transfer_limit, transferred_today,
			last_transfer_day, lockout_until, max_balance
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (equity_id, wallet) DO UPDATE SET
			daily_transfer_limit = EXCLUDED.daily_transfer_limit,
			transferred_today = EXCLUDED.transferred_today,
			last_transfer_day = EXCLUDED.last_transfer_day,
			lockout_until = EXCLUDED.lockout_until,
			max_balance = EXCLUDED.max_balance`
	_, err := d.Exec(query, r.ID, r.EquityID, r.Wallet, r.DailyTransferLimit,
		r.TransferredToday, r.LastTransferDay, r.LockoutUntil, r.MaxBalance)
	if err != nil {
		return fmt.Errorf("falha ao salvar restrições da carteira: %w", err)
	}
	return nil
}

// GetWalletRestrictions busca as restrições de uma carteira. Ausência de
// registro não é erro: significa carteira sem restrições.
func (d *DB) GetWalletRestrictions(equityID, wallet string) (models.WalletRestrictions, bool, error) {
	var r models.WalletRestrictions
	err := d.Get(&r, `SELECT * FROM wallet_restrictions WHERE equity_id = $1 AND wallet = $2`, equityID, wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WalletRestrictions{}, false, nil
	}
	if err != nil {
		return models.WalletRestrictions{}, false, fmt.Errorf("falha ao buscar restrições da carteira: %w", err)
	}
	return r, true, nil
}

// DeleteWalletRestrictions remove as restrições de uma carteira.
func (d *DB) DeleteWalletRestrictions(equityID, wallet string) error {
	_, err := d.Exec(`DELETE FROM wallet_restrictions WHERE equity_id = $1 AND wallet = $2`, equityID, wallet)
	if err != nil {
		return fmt.Errorf("falha ao remover restrições da carteira: %w", err)
	}
	return nil
}
