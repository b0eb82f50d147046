package models

// DividendPerShareScale é o fator de ponto fixo usado em AmountPerShare
// (escala de 1.000.000).
const DividendPerShareScale = 1_000_000

// DividendStatus é o estado de uma rodada de dividendos.
type DividendStatus string

const (
	DividendPending   DividendStatus = "pending"
	DividendActive    DividendStatus = "active"
	DividendCompleted DividendStatus = "completed"
)

// DividendRound é uma rodada de distribuição de dividendos pro-rata. O valor
// por ação é calculado na criação com o supply daquele instante e nunca é
// reajustado (rodadas são pontuais no tempo).
type DividendRound struct {
	ID       string `db:"id" json:"id"`
	EquityID string `db:"equity_id" json:"equity_id"`
	// RoundID é sequencial por equity, numerado pelo contador da própria equity.
	RoundID uint64 `db:"round_id" json:"round_id"`
	// PaymentToken é o mint do token de pagamento (ex: USDC de teste).
	PaymentToken string `db:"payment_token" json:"payment_token"`
	// PoolAddress é a conta que custodia os fundos da rodada.
	PoolAddress string `db:"pool_address" json:"pool_address"`
	TotalPool   uint64 `db:"total_pool" json:"total_pool"`
	// SnapshotSlot marca o slot da criação (registro de auditoria; ver nota em
	// services/dividend_service.go sobre o saldo usado no claim).
	SnapshotSlot uint64 `db:"snapshot_slot" json:"snapshot_slot"`
	// AmountPerShare = TotalPool * 1e6 / TotalSupply, em ponto fixo.
	AmountPerShare uint64         `db:"amount_per_share" json:"amount_per_share"`
	Status         DividendStatus `db:"status" json:"status"`
	CreatedAt      int64          `db:"created_at" json:"created_at"`
	ExpiresAt      *int64         `db:"expires_at" json:"expires_at,omitempty"` // Prazo de claim (nil = sem expiração)
}

// DividendClaim registra o claim de uma carteira em uma rodada. A existência
// do registro é a própria proteção contra claim duplicado (uma restrição de
// unicidade (round, wallet) no banco, não uma checagem separada).
type DividendClaim struct {
	ID        string `db:"id" json:"id"`
	RoundID   string `db:"round_id" json:"round_id"` // FK para DividendRound.ID
	Wallet    string `db:"wallet" json:"wallet"`
	Amount    uint64 `db:"amount" json:"amount"`
	ClaimedAt int64  `db:"claimed_at" json:"claimed_at"`
}
