package services

import "github.com/ferreirogomes/chainequity/models"

// Store é o contrato de persistência consumido pelos serviços. O *storage.DB
// o implementa; os testes usam mocks.
type Store interface {
	SaveEquity(e models.Equity) error
	GetEquity(id string) (models.Equity, bool, error)
	GetEquityByMintAddress(mintAddress string) (models.Equity, bool, error)

	SaveAllowlistEntry(e models.AllowlistEntry) error
	GetAllowlistEntry(equityID, wallet string) (models.AllowlistEntry, bool, error)
	DeleteAllowlistEntry(equityID, wallet string) error

	SaveWalletRestrictions(r models.WalletRestrictions) error
	GetWalletRestrictions(equityID, wallet string) (models.WalletRestrictions, bool, error)

	SaveVestingSchedule(s models.VestingSchedule) error
	GetVestingSchedule(id string) (models.VestingSchedule, bool, error)
	GetVestingSchedulesByBeneficiary(equityID, beneficiary string) ([]models.VestingSchedule, error)

	SaveDividendRound(r models.DividendRound) error
	GetDividendRound(equityID string, roundID uint64) (models.DividendRound, bool, error)
	SaveDividendClaim(c models.DividendClaim) error
	GetDividendClaim(roundID, wallet string) (models.DividendClaim, bool, error)
	DeleteDividendClaim(roundID, wallet string) error

	SaveEvent(e models.EquityEvent) error
}

// Ledger é o serviço externo de transferência de tokens (programa SPL na
// Solana). Todas as operações são atômicas do lado do ledger: ou completam ou
// falham sem efeito.
type Ledger interface {
	// Mint cunha tokens para a carteira destinatária usando a autoridade de
	// mint da equity.
	Mint(mintAddress, recipient string, amount uint64) (string, error)
	// Transfer move tokens entre duas carteiras custodiais.
	Transfer(mintAddress, from, to string, amount uint64) (string, error)
	// TransferFromEscrow move tokens de uma conta escrow derivada para uma
	// carteira, assinando com a autoridade do escrow.
	TransferFromEscrow(mintAddress, escrow, to string, amount uint64) (string, error)
	// DeriveEscrowAddress deriva deterministicamente o endereço do escrow de
	// um registro a partir da sua seed.
	DeriveEscrowAddress(seed string) (string, error)
	// GetTokenBalance lê o saldo atual da carteira para um mint.
	GetTokenBalance(mintAddress, wallet string) (uint64, error)
	// CurrentSlot retorna o slot corrente da rede (marcador de snapshot).
	CurrentSlot() (uint64, error)
}

// Notifier emite notificações fire-and-forget para observadores externos. A
// emissão nunca falha a operação que a originou.
type Notifier interface {
	Emit(equityID, kind string, payload any)
}
