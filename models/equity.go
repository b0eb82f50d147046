package models

import "time"

// Limites de tamanho dos campos mutáveis do token.
const (
	MaxSymbolLen = 10
	MaxNameLen   = 50
)

// Equity representa a configuração de uma ação tokenizada (o registro raiz).
// Todos os demais registros (allowlist, restrições, vesting, dividendos)
// referenciam uma Equity pelo ID.
type Equity struct {
	ID          string `db:"id" json:"id"`
	Authority   string `db:"authority" json:"authority"`       // Multisig que administra o token
	MintAddress string `db:"mint_address" json:"mint_address"` // Mint SPL na Solana
	Symbol      string `db:"symbol" json:"symbol"`             // Ticker mutável (máx. 10 chars)
	Name        string `db:"name" json:"name"`                 // Ex: "Petrobras S.A." (máx. 50 chars)
	Decimals    uint8  `db:"decimals" json:"decimals"`

	// TotalSupply só muda via mint ou finalização de split.
	TotalSupply uint64 `db:"total_supply" json:"total_supply"`
	// SplitMultiplier é o produto acumulado de todos os splits aplicados (mínimo 1).
	SplitMultiplier uint64 `db:"split_multiplier" json:"split_multiplier"`

	// Features habilitadas na emissão
	VestingEnabled      bool `db:"vesting_enabled" json:"vesting_enabled"`
	GovernanceEnabled   bool `db:"governance_enabled" json:"governance_enabled"`
	DividendsEnabled    bool `db:"dividends_enabled" json:"dividends_enabled"`
	RestrictionsEnabled bool `db:"restrictions_enabled" json:"restrictions_enabled"`
	Upgradeable         bool `db:"upgradeable" json:"upgradeable"`

	IsPaused        bool  `db:"is_paused" json:"is_paused"` // Pausa de emergência
	UpgradeTimelock int64 `db:"upgrade_timelock" json:"upgrade_timelock"`

	// NextDividendRound é o contador sequencial de rodadas de dividendos,
	// incrementado atomicamente junto com a criação da rodada que ele numera.
	NextDividendRound uint64    `db:"next_dividend_round" json:"next_dividend_round"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}
