package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ferreirogomes/chainequity/models"
)

// SaveDividendRound insere ou atualiza uma rodada de dividendos.
func (d *DB) SaveDividendRound(r models.DividendRound) error {
	query := `INSERT INTO dividend_rounds (
			id, equity_id, round_id, payment_token, pool_address, total_pool,
			snapshot_slot, amount_per_share, status, created_at, expires_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status`
	_, err := d.Exec(query, r.ID, r.EquityID, r.RoundID, r.PaymentToken,
		r.PoolAddress, r.TotalPool, r.SnapshotSlot, r.AmountPerShare,
		r.Status, r.CreatedAt, r.ExpiresAt)
	if err != nil {
		return fmt.Errorf("falha ao salvar rodada de dividendos: %w", err)
	}
	return nil
}

// GetDividendRound busca uma rodada pelo número sequencial dentro da equity.
func (d *DB) GetDividendRound(equityID string, roundID uint64) (models.DividendRound, bool, error) {
	var r models.DividendRound
	err := d.Get(&r, `SELECT * FROM dividend_rounds WHERE equity_id = $1 AND round_id = $2`, equityID, roundID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DividendRound{}, false, nil
	}
	if err != nil {
		return models.DividendRound{}, false, fmt.Errorf("falha ao buscar rodada de dividendos: %w", err)
	}
	return r, true, nil
}

// SaveDividendClaim registra o claim de uma carteira. A restrição de unicidade
// (round, wallet) do banco é a proteção contra claim duplicado: violação vira
// models.ErrAlreadyClaimed.
func (d *DB) SaveDividendClaim(c models.DividendClaim) error {
	query := `INSERT INTO dividend_claims (id, round_id, wallet, amount, claimed_at)
		VALUES ($1,$2,$3,$4,$5)`
	_, err := d.Exec(query, c.ID, c.RoundID, c.Wallet, c.Amount, c.ClaimedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return models.ErrAlreadyClaimed
		}
		return fmt.Errorf("falha ao salvar claim de dividendo: %w", err)
	}
	return nil
}

// GetDividendClaim busca o claim de uma carteira em uma rodada.
func (d *DB) GetDividendClaim(roundID, wallet string) (models.DividendClaim, bool, error) {
	var c models.DividendClaim
	err := d.Get(&c, `SELECT * FROM dividend_claims WHERE round_id = $1 AND wallet = $2`, roundID, wallet)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DividendClaim{}, false, nil
	}
	if err != nil {
		return models.DividendClaim{}, false, fmt.Errorf("falha ao buscar claim de dividendo: %w", err)
	}
	return c, true, nil
}

// DeleteDividendClaim remove um claim. Usado apenas como compensação quando a
// transferência do pool falha depois do registro do claim.
func (d *DB) DeleteDividendClaim(roundID, wallet string) error {
	_, err := d.Exec(`DELETE FROM dividend_claims WHERE round_id = $1 AND wallet = $2`, roundID, wallet)
	if err != nil {
		return fmt.Errorf("falha ao remover claim de dividendo: %w", err)
	}
	return nil
}
