package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/chainequity/models"
	"github.com/ferreirogomes/chainequity/services"
)

func newTransferService(db *MockStore, ledger *MockLedger) *services.TransferService {
	notifier := relaxedNotifier()
	allowlist := services.NewAllowlistService(db, notifier)
	restrictions := services.NewRestrictionService(db, notifier)
	return services.NewTransferService(db, ledger, allowlist, restrictions, notifier)
}

func transferEquityFixture() models.Equity {
	return models.Equity{ID: "equity-1", MintAddress: "mint-1", TotalSupply: 10_000}
}

func activeEntry(wallet string) models.AllowlistEntry {
	return models.AllowlistEntry{
		ID:       "entry-" + wallet,
		EquityID: "equity-1",
		Wallet:   wallet,
		Status:   models.AllowlistActive,
	}
}

// TestTransferHappyPath verifica o caminho completo: allowlist das duas pontas,
// restrições e ledger
func TestTransferHappyPath(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := newTransferService(mockDB, mockLedger)

	mockDB.On("GetEquity", "equity-1").Return(transferEquityFixture(), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-a").Return(activeEntry("wallet-a"), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-b").Return(activeEntry("wallet-b"), true, nil).Once()
	// Sem registro de restrições para nenhuma das pontas.
	mockDB.On("GetWalletRestrictions", "equity-1", "wallet-a").Return(models.WalletRestrictions{}, false, nil).Once()
	mockDB.On("GetWalletRestrictions", "equity-1", "wallet-b").Return(models.WalletRestrictions{}, false, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-b").Return(uint64(50), nil).Once()
	mockLedger.On("Transfer", "mint-1", "wallet-a", "wallet-b", uint64(100)).Return("tx-1", nil).Once()

	txID, err := service.Transfer("equity-1", "wallet-a", "wallet-b", 100)

	assert.Nil(t, err)
	assert.Equal(t, "tx-1", txID)
	mockDB.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

// TestTransferSenderNotApproved verifica que remetente fora da allowlist é
// barrado antes de qualquer outra checagem
func TestTransferSenderNotApproved(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := newTransferService(mockDB, mockLedger)

	mockDB.On("GetEquity", "equity-1").Return(transferEquityFixture(), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-a").Return(models.AllowlistEntry{}, false, nil).Once()

	_, err := service.Transfer("equity-1", "wallet-a", "wallet-b", 100)

	assert.ErrorIs(t, err, models.ErrSenderNotApproved)
	mockLedger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}

// TestTransferRecipientSuspended verifica que status não-ativo (suspenso ou
// revogado) barra a ponta destinatária
func TestTransferRecipientSuspended(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := newTransferService(mockDB, mockLedger)

	suspended := activeEntry("wallet-b")
	suspended.Status = models.AllowlistSuspended

	mockDB.On("GetEquity", "equity-1").Return(transferEquityFixture(), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-a").Return(activeEntry("wallet-a"), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-b").Return(suspended, true, nil).Once()

	_, err := service.Transfer("equity-1", "wallet-a", "wallet-b", 100)

	assert.ErrorIs(t, err, models.ErrRecipientNotApproved)
	mockLedger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}

// TestTransferPaused verifica a pausa de emergência
func TestTransferPaused(t *testing.T) {
	mockDB := new(MockStore)
	service := newTransferService(mockDB, new(MockLedger))

	equity := transferEquityFixture()
	equity.IsPaused = true
	mockDB.On("GetEquity", "equity-1").Return(equity, true, nil).Once()

	_, err := service.Transfer("equity-1", "wallet-a", "wallet-b", 100)

	assert.ErrorIs(t, err, models.ErrTransfersPaused)
	mockDB.AssertExpectations(t)
}

// TestTransferZeroAmount verifica a rejeição de valor zero
func TestTransferZeroAmount(t *testing.T) {
	service := newTransferService(new(MockStore), new(MockLedger))

	_, err := service.Transfer("equity-1", "wallet-a", "wallet-b", 0)

	assert.ErrorIs(t, err, models.ErrInvalidAmount)
}

// TestTransferMaxBalanceBlocked verifica que o teto do destinatário barra a
// transferência antes do ledger
func TestTransferMaxBalanceBlocked(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := newTransferService(mockDB, mockLedger)

	recipientRestrictions := models.WalletRestrictions{
		EquityID:   "equity-1",
		Wallet:     "wallet-b",
		MaxBalance: ptrU64(100),
	}

	mockDB.On("GetEquity", "equity-1").Return(transferEquityFixture(), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-a").Return(activeEntry("wallet-a"), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-b").Return(activeEntry("wallet-b"), true, nil).Once()
	mockDB.On("GetWalletRestrictions", "equity-1", "wallet-a").Return(models.WalletRestrictions{}, false, nil).Once()
	mockDB.On("GetWalletRestrictions", "equity-1", "wallet-b").Return(recipientRestrictions, true, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-b").Return(uint64(80), nil).Once()

	_, err := service.Transfer("equity-1", "wallet-a", "wallet-b", 30)

	assert.ErrorIs(t, err, models.ErrMaxBalanceExceeded)
	mockLedger.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}

// TestMintHappyPath verifica a cunhagem com atualização checada do supply
func TestMintHappyPath(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := newTransferService(mockDB, mockLedger)

	mockDB.On("GetEquity", "equity-1").Return(transferEquityFixture(), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-b").Return(activeEntry("wallet-b"), true, nil).Once()
	mockLedger.On("Mint", "mint-1", "wallet-b", uint64(500)).Return("tx-mint", nil).Once()
	mockDB.On("SaveEquity", mock.MatchedBy(func(e models.Equity) bool {
		return e.TotalSupply == 10_500
	})).Return(nil).Once()

	txID, err := service.Mint("equity-1", "wallet-b", 500, "wallet-authority")

	assert.Nil(t, err)
	assert.Equal(t, "tx-mint", txID)
	mockDB.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

// TestMintRecipientNotApproved verifica que cunhagem respeita a allowlist
func TestMintRecipientNotApproved(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := newTransferService(mockDB, mockLedger)

	mockDB.On("GetEquity", "equity-1").Return(transferEquityFixture(), true, nil).Once()
	mockDB.On("GetAllowlistEntry", "equity-1", "wallet-x").Return(models.AllowlistEntry{}, false, nil).Once()

	_, err := service.Mint("equity-1", "wallet-x", 500, "wallet-authority")

	assert.ErrorIs(t, err, models.ErrRecipientNotApproved)
	mockLedger.AssertNotCalled(t, "Mint", mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}
