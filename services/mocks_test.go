package services_test

import (
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/chainequity/models"
)

// MockStore é uma implementação mock do contrato Store para testes de unidade
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SaveEquity(e models.Equity) error {
	args := m.Called(e)
	return args.Error(0)
}
func (m *MockStore) GetEquity(id string) (models.Equity, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.Equity), args.Bool(1), args.Error(2)
}
func (m *MockStore) GetEquityByMintAddress(mintAddress string) (models.Equity, bool, error) {
	args := m.Called(mintAddress)
	return args.Get(0).(models.Equity), args.Bool(1), args.Error(2)
}
func (m *MockStore) SaveAllowlistEntry(e models.AllowlistEntry) error {
	args := m.Called(e)
	return args.Error(0)
}
func (m *MockStore) GetAllowlistEntry(equityID, wallet string) (models.AllowlistEntry, bool, error) {
	args := m.Called(equityID, wallet)
	return args.Get(0).(models.AllowlistEntry), args.Bool(1), args.Error(2)
}
func (m *MockStore) DeleteAllowlistEntry(equityID, wallet string) error {
	args := m.Called(equityID, wallet)
	return args.Error(0)
}
func (m *MockStore) SaveWalletRestrictions(r models.WalletRestrictions) error {
	args := m.Called(r)
	return args.Error(0)
}
func (m *MockStore) GetWalletRestrictions(equityID, wallet string) (models.WalletRestrictions, bool, error) {
	args := m.Called(equityID, wallet)
	return args.Get(0).(models.WalletRestrictions), args.Bool(1), args.Error(2)
}
func (m *MockStore) SaveVestingSchedule(s models.VestingSchedule) error {
	args := m.Called(s)
	return args.Error(0)
}
func (m *MockStore) GetVestingSchedule(id string) (models.VestingSchedule, bool, error) {
	args := m.Called(id)
	return args.Get(0).(models.VestingSchedule), args.Bool(1), args.Error(2)
}
func (m *MockStore) GetVestingSchedulesByBeneficiary(equityID, beneficiary string) ([]models.VestingSchedule, error) {
	args := m.Called(equityID, beneficiary)
	return args.Get(0).([]models.VestingSchedule), args.Error(1)
}
func (m *MockStore) SaveDividendRound(r models.DividendRound) error {
	args := m.Called(r)
	return args.Error(0)
}
func (m *MockStore) GetDividendRound(equityID string, roundID uint64) (models.DividendRound, bool, error) {
	args := m.Called(equityID, roundID)
	return args.Get(0).(models.DividendRound), args.Bool(1), args.Error(2)
}
func (m *MockStore) SaveDividendClaim(c models.DividendClaim) error {
	args := m.Called(c)
	return args.Error(0)
}
func (m *MockStore) GetDividendClaim(roundID, wallet string) (models.DividendClaim, bool, error) {
	args := m.Called(roundID, wallet)
	return args.Get(0).(models.DividendClaim), args.Bool(1), args.Error(2)
}
func (m *MockStore) DeleteDividendClaim(roundID, wallet string) error {
	args := m.Called(roundID, wallet)
	return args.Error(0)
}
func (m *MockStore) SaveEvent(e models.EquityEvent) error {
	args := m.Called(e)
	return args.Error(0)
}

// MockLedger é uma implementação mock do contrato Ledger
type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) Mint(mintAddress, recipient string, amount uint64) (string, error) {
	args := m.Called(mintAddress, recipient, amount)
	return args.String(0), args.Error(1)
}
func (m *MockLedger) Transfer(mintAddress, from, to string, amount uint64) (string, error) {
	args := m.Called(mintAddress, from, to, amount)
	return args.String(0), args.Error(1)
}
func (m *MockLedger) TransferFromEscrow(mintAddress, escrow, to string, amount uint64) (string, error) {
	args := m.Called(mintAddress, escrow, to, amount)
	return args.String(0), args.Error(1)
}
func (m *MockLedger) DeriveEscrowAddress(seed string) (string, error) {
	args := m.Called(seed)
	return args.String(0), args.Error(1)
}
func (m *MockLedger) GetTokenBalance(mintAddress, wallet string) (uint64, error) {
	args := m.Called(mintAddress, wallet)
	return args.Get(0).(uint64), args.Error(1)
}
func (m *MockLedger) CurrentSlot() (uint64, error) {
	args := m.Called()
	return args.Get(0).(uint64), args.Error(1)
}

// MockNotifier é uma implementação mock do contrato Notifier. As notificações
// são fire-and-forget, então os testes normalmente só registram a chamada.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Emit(equityID, kind string, payload any) {
	m.Called(equityID, kind, payload)
}

// relaxedNotifier aceita qualquer emissão sem exigir expectativa explícita.
func relaxedNotifier() *MockNotifier {
	n := new(MockNotifier)
	n.On("Emit", mock.Anything, mock.Anything, mock.Anything).Return()
	return n
}

func ptrU64(v uint64) *uint64 { return &v }
func ptrI64(v int64) *int64   { return &v }
