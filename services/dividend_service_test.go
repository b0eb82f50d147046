package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/chainequity/models"
	"github.com/ferreirogomes/chainequity/services"
)

func dividendEquityFixture() models.Equity {
	return models.Equity{
		ID:                "equity-1",
		MintAddress:       "mint-1",
		TotalSupply:       1000,
		DividendsEnabled:  true,
		NextDividendRound: 1,
	}
}

func dividendRoundFixture() models.DividendRound {
	return models.DividendRound{
		ID:             "round-uuid-1",
		EquityID:       "equity-1",
		RoundID:        1,
		PaymentToken:   "usdc-mint",
		PoolAddress:    "pool-addr",
		TotalPool:      1_000_000,
		AmountPerShare: 1_000_000_000, // 1.000.000 × 1e6 / 1.000
		Status:         models.DividendActive,
		CreatedAt:      5000,
	}
}

// TestCreateDividendRound verifica o cálculo do valor por ação em ponto fixo:
// pool de 1.000.000 sobre supply de 1.000 dá 1.000 por ação (×1e6)
func TestCreateDividendRound(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())

	equity := dividendEquityFixture()
	mockDB.On("GetEquity", "equity-1").Return(equity, true, nil).Once()
	mockLedger.On("CurrentSlot").Return(uint64(42_000), nil).Once()
	mockDB.On("SaveDividendRound", mock.MatchedBy(func(r models.DividendRound) bool {
		return r.RoundID == 1 && r.AmountPerShare == 1_000_000_000 && r.SnapshotSlot == 42_000
	})).Return(nil).Once()
	mockDB.On("SaveEquity", mock.MatchedBy(func(e models.Equity) bool {
		return e.NextDividendRound == 2
	})).Return(nil).Once()

	round, err := service.CreateRound("equity-1", "usdc-mint", "pool-addr", 1_000_000, nil, "wallet-authority")

	assert.Nil(t, err)
	assert.Equal(t, uint64(1_000_000_000), round.AmountPerShare)
	assert.Equal(t, models.DividendActive, round.Status)
	mockDB.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

// TestCreateDividendRoundFeatureDisabled verifica a trava de funcionalidade
func TestCreateDividendRoundFeatureDisabled(t *testing.T) {
	mockDB := new(MockStore)
	service := services.NewDividendService(mockDB, new(MockLedger), relaxedNotifier())

	equity := dividendEquityFixture()
	equity.DividendsEnabled = false
	mockDB.On("GetEquity", "equity-1").Return(equity, true, nil).Once()

	_, err := service.CreateRound("equity-1", "usdc-mint", "pool-addr", 1_000_000, nil, "wallet-authority")

	assert.ErrorIs(t, err, models.ErrFeatureDisabled)
	mockDB.AssertExpectations(t)
}

// TestClaimDividend verifica o claim pro-rata: 10 tokens a 1.000 por ação
// pagam 10.000
func TestClaimDividend(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())
	service.Clock = func() int64 { return 6000 }

	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(dividendRoundFixture(), true, nil).Once()
	mockDB.On("GetDividendClaim", "round-uuid-1", "wallet-holder").Return(models.DividendClaim{}, false, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-holder").Return(uint64(10), nil).Once()
	mockLedger.On("GetTokenBalance", "usdc-mint", "pool-addr").Return(uint64(1_000_000), nil).Once()
	mockDB.On("SaveDividendClaim", mock.MatchedBy(func(c models.DividendClaim) bool {
		return c.RoundID == "round-uuid-1" && c.Wallet == "wallet-holder" && c.Amount == 10_000
	})).Return(nil).Once()
	mockLedger.On("TransferFromEscrow", "usdc-mint", "pool-addr", "wallet-holder", uint64(10_000)).Return("tx-pay", nil).Once()

	claim, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.Nil(t, err)
	assert.Equal(t, uint64(10_000), claim.Amount)
	mockDB.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

// TestClaimDividendTwiceFails verifica a guarda de replay: um claim já
// registrado barra o segundo pagamento antes de qualquer consulta ao ledger
func TestClaimDividendTwiceFails(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())
	service.Clock = func() int64 { return 6000 }

	existing := models.DividendClaim{ID: "claim-1", RoundID: "round-uuid-1", Wallet: "wallet-holder", Amount: 10_000}
	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(dividendRoundFixture(), true, nil).Once()
	mockDB.On("GetDividendClaim", "round-uuid-1", "wallet-holder").Return(existing, true, nil).Once()

	_, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.ErrorIs(t, err, models.ErrAlreadyClaimed)
	mockLedger.AssertNotCalled(t, "TransferFromEscrow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}

// TestClaimDividendConcurrentDuplicate verifica a guarda real contra claims
// concorrentes: mesmo passando pela verificação prévia, a unicidade
// (round, wallet) no banco barra a inserção e nada é pago
func TestClaimDividendConcurrentDuplicate(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())
	service.Clock = func() int64 { return 6000 }

	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(dividendRoundFixture(), true, nil).Once()
	mockDB.On("GetDividendClaim", "round-uuid-1", "wallet-holder").Return(models.DividendClaim{}, false, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-holder").Return(uint64(10), nil).Once()
	mockLedger.On("GetTokenBalance", "usdc-mint", "pool-addr").Return(uint64(1_000_000), nil).Once()
	mockDB.On("SaveDividendClaim", mock.AnythingOfType("models.DividendClaim")).Return(models.ErrAlreadyClaimed).Once()

	_, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.ErrorIs(t, err, models.ErrAlreadyClaimed)
	mockLedger.AssertNotCalled(t, "TransferFromEscrow", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockDB.AssertExpectations(t)
}

// TestClaimDividendExpired verifica a janela de expiração da rodada
func TestClaimDividendExpired(t *testing.T) {
	mockDB := new(MockStore)
	service := services.NewDividendService(mockDB, new(MockLedger), relaxedNotifier())
	service.Clock = func() int64 { return 10_000 }

	round := dividendRoundFixture()
	round.ExpiresAt = ptrI64(9_000)
	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(round, true, nil).Once()

	_, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.ErrorIs(t, err, models.ErrDividendExpired)
	mockDB.AssertExpectations(t)
}

// TestClaimDividendNoEntitlement verifica que carteira sem saldo não tem
// direito a dividendo
func TestClaimDividendNoEntitlement(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())
	service.Clock = func() int64 { return 6000 }

	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(dividendRoundFixture(), true, nil).Once()
	mockDB.On("GetDividendClaim", "round-uuid-1", "wallet-vazia").Return(models.DividendClaim{}, false, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-vazia").Return(uint64(0), nil).Once()

	_, err := service.Claim("equity-1", 1, "wallet-vazia")

	assert.ErrorIs(t, err, models.ErrNoEntitlement)
	mockDB.AssertExpectations(t)
}

// TestClaimDividendPaymentFailureCompensates verifica que a falha no pagamento
// remove o registro de claim para permitir nova tentativa
func TestClaimDividendPaymentFailureCompensates(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())
	service.Clock = func() int64 { return 6000 }

	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(dividendRoundFixture(), true, nil).Once()
	mockDB.On("GetDividendClaim", "round-uuid-1", "wallet-holder").Return(models.DividendClaim{}, false, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-holder").Return(uint64(10), nil).Once()
	mockLedger.On("GetTokenBalance", "usdc-mint", "pool-addr").Return(uint64(1_000_000), nil).Once()
	mockDB.On("SaveDividendClaim", mock.AnythingOfType("models.DividendClaim")).Return(nil).Once()
	mockLedger.On("TransferFromEscrow", "usdc-mint", "pool-addr", "wallet-holder", uint64(10_000)).Return("", assert.AnError).Once()
	mockDB.On("DeleteDividendClaim", "round-uuid-1", "wallet-holder").Return(nil).Once()

	_, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.NotNil(t, err)
	mockDB.AssertExpectations(t)
	mockLedger.AssertExpectations(t)
}

// TestClaimDividendInsufficientPool verifica que pool sem fundos barra o claim
// antes de registrar
func TestClaimDividendInsufficientPool(t *testing.T) {
	mockDB := new(MockStore)
	mockLedger := new(MockLedger)
	service := services.NewDividendService(mockDB, mockLedger, relaxedNotifier())
	service.Clock = func() int64 { return 6000 }

	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(dividendRoundFixture(), true, nil).Once()
	mockDB.On("GetDividendClaim", "round-uuid-1", "wallet-holder").Return(models.DividendClaim{}, false, nil).Once()
	mockLedger.On("GetTokenBalance", "mint-1", "wallet-holder").Return(uint64(10), nil).Once()
	mockLedger.On("GetTokenBalance", "usdc-mint", "pool-addr").Return(uint64(5_000), nil).Once()

	_, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.ErrorIs(t, err, models.ErrInsufficientPoolFunds)
	mockDB.AssertNotCalled(t, "SaveDividendClaim", mock.Anything)
	mockDB.AssertExpectations(t)
}

// TestClaimDividendRoundNotActive verifica que rodada encerrada não paga
func TestClaimDividendRoundNotActive(t *testing.T) {
	mockDB := new(MockStore)
	service := services.NewDividendService(mockDB, new(MockLedger), relaxedNotifier())

	round := dividendRoundFixture()
	round.Status = models.DividendCompleted
	mockDB.On("GetEquity", "equity-1").Return(dividendEquityFixture(), true, nil).Once()
	mockDB.On("GetDividendRound", "equity-1", uint64(1)).Return(round, true, nil).Once()

	_, err := service.Claim("equity-1", 1, "wallet-holder")

	assert.ErrorIs(t, err, models.ErrDividendNotActive)
	mockDB.AssertExpectations(t)
}
