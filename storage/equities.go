package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferreirogomes/chainequity/models"
)

// SaveEquity insere ou atualiza uma equity (upsert por ID).
func (d *DB) SaveEquity(e models.Equity) error {
	query := `INSERT INTO equities (
			id, authority, mint_address, symbol, name, decimals,
			total_supply, split_multiplier,
			vesting_enabled, governance_enabled, dividends_enabled,
			restrictions_enabled, upgradeable,
			is_paused, upgrade_timelock, next_dividend_round, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		ON CONFLICT (id) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			total_supply = EXCLUDED.total_supply,
			split_multiplier = EXCLUDED.split_multiplier,
			is_paused = EXCLUDED.is_paused,
			next_dividend_round = EXCLUDED.next_dividend_round`
	_, err := d.Exec(query,
		e.ID, e.Authority, e.MintAddress, e.Symbol, e.Name, e.Decimals,
		e.TotalSupply, e.SplitMultiplier,
		e.VestingEnabled, e.GovernanceEnabled, e.DividendsEnabled,
		e.RestrictionsEnabled, e.Upgradeable,
		e.IsPaused, e.UpgradeTimelock, e.NextDividendRound, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao salvar equity: %w", err)
	}
	return nil
}

// GetEquity busca uma equity pelo ID.
func (d *DB) GetEquity(id string) (models.Equity, bool, error) {
	var e models.Equity
	err := d.Get(&e, `SELECT * FROM equities WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Equity{}, false, nil
	}
	if err != nil {
		return models.Equity{}, false, fmt.Errorf("falha ao buscar equity: %w", err)
	}
	return e, true, nil
}

// GetEquityByMintAddress busca uma equity pelo endereço do mint na Solana.
// Usado pelo listener para correlacionar instruções on-chain.
func (d *DB) GetEquityByMintAddress(mintAddress string) (models.Equity, bool, error) {
	var e models.Equity
	err := d.Get(&e, `SELECT * FROM equities WHERE mint_address = $1`, mintAddress)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Equity{}, false, nil
	}
	if err != nil {
		return models.Equity{}, false, fmt.Errorf("falha ao buscar equity por mint: %w", err)
	}
	return e, true, nil
}
