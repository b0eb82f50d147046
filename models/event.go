package models

import (
	"encoding/json"
	"time"
)

// Tipos de notificação emitidos pelo engine para observadores externos.
// As notificações são melhor-esforço e não são transacionais com a mudança de
// estado que as originou.
const (
	EventWalletApproved        = "wallet_approved"
	EventWalletRevoked         = "wallet_revoked"
	EventAllowlistStatusChange = "allowlist_status_changed"
	EventTokensMinted          = "tokens_minted"
	EventTokensTransferred     = "tokens_transferred"
	EventTransferBlocked       = "transfer_blocked"
	EventRestrictionsUpdated   = "restrictions_updated"
	EventVestingCreated        = "vesting_created"
	EventVestingReleased       = "vesting_released"
	EventVestingTerminated     = "vesting_terminated"
	EventDividendRoundCreated  = "dividend_round_created"
	EventDividendClaimed       = "dividend_claimed"
	EventSplitBatchProcessed   = "split_batch_processed"
	EventSplitExecuted         = "split_executed"
	EventSymbolChanged         = "symbol_changed"
	EventPausedChanged         = "paused_changed"

	// Eventos de sincronização: observados on-chain pelo listener, usados para
	// reconciliar o estado interno com o ledger.
	EventLedgerMintObserved     = "ledger_mint_observed"
	EventLedgerTransferObserved = "ledger_transfer_observed"
)

// EquityEvent é uma notificação persistida para consumo fora do sistema.
type EquityEvent struct {
	ID        string          `db:"id" json:"id"`
	EquityID  string          `db:"equity_id" json:"equity_id"`
	Kind      string          `db:"kind" json:"kind"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
