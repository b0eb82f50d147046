package models

// SecondsPerDay define a fronteira de dia usada pelo limite diário de
// transferência (dias absolutos alinhados à meia-noite UTC).
const SecondsPerDay = 86400

// WalletRestrictions guarda as restrições de transferência de uma carteira.
// A ausência de registro significa carteira sem restrições. Campos nil
// significam "sem limite".
type WalletRestrictions struct {
	ID       string `db:"id" json:"id"`
	EquityID string `db:"equity_id" json:"equity_id"`
	Wallet   string `db:"wallet" json:"wallet"`

	DailyTransferLimit *uint64 `db:"daily_transfer_limit" json:"daily_transfer_limit,omitempty"`
	// TransferredToday acumula o total transferido no dia corrente. É zerado
	// sempre que o índice de dia atual ultrapassa o de LastTransferDay, antes
	// de qualquer verificação de limite.
	TransferredToday uint64 `db:"transferred_today" json:"transferred_today"`
	LastTransferDay  int64  `db:"last_transfer_day" json:"last_transfer_day"` // Unix timestamp da última transferência

	LockoutUntil *int64  `db:"lockout_until" json:"lockout_until,omitempty"` // Bloqueada até (Unix timestamp)
	MaxBalance   *uint64 `db:"max_balance" json:"max_balance,omitempty"`     // Teto de saldo da carteira
}
