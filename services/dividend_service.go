package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
)

// DividendService gerencia rodadas de distribuição de dividendos pro-rata e o
// registro de claims.
type DividendService struct {
	DB       Store
	Ledger   Ledger
	Notifier Notifier
	Clock    func() int64
}

// NewDividendService cria uma nova instância do engine de dividendos.
func NewDividendService(db Store, ledger Ledger, notifier Notifier) *DividendService {
	return &DividendService{
		DB:       db,
		Ledger:   ledger,
		Notifier: notifier,
		Clock:    func() int64 { return time.Now().Unix() },
	}
}

// CreateRound cria uma rodada de dividendos. O valor por ação é fixado na
// criação com o supply daquele instante (ponto fixo ×1e6) e nunca é
// reajustado: rodadas são pontuais no tempo. O pool (poolAddress) deve estar
// financiado externamente com totalPool do token de pagamento.
func (s *DividendService) CreateRound(
	equityID, paymentToken, poolAddress string,
	totalPool uint64, expiresInSeconds *uint64,
	authority string,
) (models.DividendRound, error) {
	if totalPool == 0 {
		return models.DividendRound{}, models.ErrInvalidAmount
	}

	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.DividendRound{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.DividendRound{}, models.ErrEquityNotFound
	}
	if !equity.DividendsEnabled {
		return models.DividendRound{}, models.ErrFeatureDisabled
	}

	// Supply zero implica zero por ação; o guard dispensa divisão por zero.
	var amountPerShare uint64
	if equity.TotalSupply > 0 {
		amountPerShare, err = mulDiv(totalPool, models.DividendPerShareScale, equity.TotalSupply)
		if err != nil {
			return models.DividendRound{}, err
		}
	}

	now := s.Clock()
	slot, err := s.Ledger.CurrentSlot()
	if err != nil {
		return models.DividendRound{}, fmt.Errorf("falha ao consultar slot de snapshot: %w", err)
	}

	var expiresAt *int64
	if expiresInSeconds != nil {
		t := now + int64(*expiresInSeconds)
		expiresAt = &t
	}

	round := models.DividendRound{
		ID:             uuid.New().String(),
		EquityID:       equityID,
		RoundID:        equity.NextDividendRound,
		PaymentToken:   paymentToken,
		PoolAddress:    poolAddress,
		TotalPool:      totalPool,
		SnapshotSlot:   slot,
		AmountPerShare: amountPerShare,
		Status:         models.DividendActive,
		CreatedAt:      now,
		ExpiresAt:      expiresAt,
	}

	if err := s.DB.SaveDividendRound(round); err != nil {
		return models.DividendRound{}, fmt.Errorf("falha ao salvar rodada de dividendos: %w", err)
	}

	// O contador sequencial da equity é incrementado junto com a rodada que
	// ele numera.
	equity.NextDividendRound++
	if err := s.DB.SaveEquity(equity); err != nil {
		return models.DividendRound{}, fmt.Errorf("falha ao atualizar contador de rodadas: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventDividendRoundCreated, map[string]any{
		"round_id":         round.RoundID,
		"payment_token":    paymentToken,
		"total_pool":       totalPool,
		"amount_per_share": amountPerShare,
		"snapshot_slot":    slot,
		"expires_at":       expiresAt,
		"created_by":       authority,
	})

	return round, nil
}

// Claim calcula e paga o direito pro-rata de uma carteira em uma rodada. A
// inserção do registro de claim (unicidade (round, wallet) no banco) é a
// própria proteção contra pagamento duplicado.
//
// O saldo usado é o saldo VIVO no ledger no momento do claim, não um snapshot
// congelado em SnapshotSlot — comportamento herdado da implementação original
// (a rodada guarda o slot apenas para auditoria). Um snapshot verdadeiro
// exigiria congelar saldos que vivem no ledger externo, o que este backend não
// consegue fazer atomicamente.
func (s *DividendService) Claim(equityID string, roundID uint64, wallet string) (models.DividendClaim, error) {
	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.DividendClaim{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.DividendClaim{}, models.ErrEquityNotFound
	}

	round, found, err := s.DB.GetDividendRound(equityID, roundID)
	if err != nil {
		return models.DividendClaim{}, fmt.Errorf("erro ao buscar rodada: %w", err)
	}
	if !found {
		return models.DividendClaim{}, models.ErrRecordNotFound
	}
	if round.Status != models.DividendActive {
		return models.DividendClaim{}, models.ErrDividendNotActive
	}

	now := s.Clock()
	if round.ExpiresAt != nil && now > *round.ExpiresAt {
		return models.DividendClaim{}, models.ErrDividendExpired
	}

	// Verificação amigável; a unicidade (round, wallet) no banco continua sendo
	// a guarda real contra claims concorrentes.
	if _, claimed, err := s.DB.GetDividendClaim(round.ID, wallet); err != nil {
		return models.DividendClaim{}, fmt.Errorf("erro ao verificar claim existente: %w", err)
	} else if claimed {
		return models.DividendClaim{}, models.ErrAlreadyClaimed
	}

	balance, err := s.Ledger.GetTokenBalance(equity.MintAddress, wallet)
	if err != nil {
		return models.DividendClaim{}, fmt.Errorf("falha ao consultar saldo da carteira: %w", err)
	}
	if balance == 0 {
		return models.DividendClaim{}, models.ErrNoEntitlement
	}

	entitlement, err := mulDiv(balance, round.AmountPerShare, models.DividendPerShareScale)
	if err != nil {
		return models.DividendClaim{}, err
	}
	if entitlement == 0 {
		return models.DividendClaim{}, models.ErrNoEntitlement
	}

	poolBalance, err := s.Ledger.GetTokenBalance(round.PaymentToken, round.PoolAddress)
	if err != nil {
		return models.DividendClaim{}, fmt.Errorf("falha ao consultar saldo do pool: %w", err)
	}
	if poolBalance < entitlement {
		return models.DividendClaim{}, models.ErrInsufficientPoolFunds
	}

	claim := models.DividendClaim{
		ID:        uuid.New().String(),
		RoundID:   round.ID,
		Wallet:    wallet,
		Amount:    entitlement,
		ClaimedAt: now,
	}

	// O registro entra antes do pagamento: é a guarda contra replay. Se o
	// pagamento falhar, o registro é removido como compensação.
	if err := s.DB.SaveDividendClaim(claim); err != nil {
		return models.DividendClaim{}, err
	}

	if _, err := s.Ledger.TransferFromEscrow(round.PaymentToken, round.PoolAddress, wallet, entitlement); err != nil {
		if delErr := s.DB.DeleteDividendClaim(round.ID, wallet); delErr != nil {
			return models.DividendClaim{}, fmt.Errorf("pagamento falhou (%v) e a compensação do claim também: %w", err, delErr)
		}
		return models.DividendClaim{}, fmt.Errorf("falha ao pagar dividendo do pool: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventDividendClaimed, map[string]any{
		"round_id": round.RoundID,
		"wallet":   wallet,
		"amount":   entitlement,
	})

	return claim, nil
}

// GetRound retorna uma rodada pelo número sequencial dentro da equity.
func (s *DividendService) GetRound(equityID string, roundID uint64) (models.DividendRound, error) {
	round, found, err := s.DB.GetDividendRound(equityID, roundID)
	if err != nil {
		return models.DividendRound{}, fmt.Errorf("erro ao buscar rodada: %w", err)
	}
	if !found {
		return models.DividendRound{}, models.ErrRecordNotFound
	}
	return round, nil
}
