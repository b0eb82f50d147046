package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
)

// RestrictionService aplica as restrições por carteira: limite diário de
// transferência, período de bloqueio e teto de saldo. Carteira sem registro é
// carteira sem restrições.
type RestrictionService struct {
	DB       Store
	Notifier Notifier
	Clock    func() int64
}

// NewRestrictionService cria uma nova instância do engine de restrições.
func NewRestrictionService(db Store, notifier Notifier) *RestrictionService {
	return &RestrictionService{
		DB:       db,
		Notifier: notifier,
		Clock:    func() int64 { return time.Now().Unix() },
	}
}

// SetRestrictions insere ou atualiza as restrições de uma carteira. O registro
// é criado de forma preguiçosa na primeira chamada, com o acumulado diário
// zerado e o marcador de dia em "agora".
func (s *RestrictionService) SetRestrictions(
	equityID, wallet string,
	dailyLimit *uint64, lockoutUntil *int64, maxBalance *uint64,
	authority string,
) (models.WalletRestrictions, error) {
	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.WalletRestrictions{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.WalletRestrictions{}, models.ErrEquityNotFound
	}
	if !equity.RestrictionsEnabled {
		return models.WalletRestrictions{}, models.ErrFeatureDisabled
	}

	restrictions, exists, err := s.DB.GetWalletRestrictions(equityID, wallet)
	if err != nil {
		return models.WalletRestrictions{}, fmt.Errorf("erro ao buscar restrições: %w", err)
	}
	if !exists {
		restrictions = models.WalletRestrictions{
			ID:               uuid.New().String(),
			EquityID:         equityID,
			Wallet:           wallet,
			TransferredToday: 0,
			LastTransferDay:  s.Clock(),
		}
	}

	restrictions.DailyTransferLimit = dailyLimit
	restrictions.LockoutUntil = lockoutUntil
	restrictions.MaxBalance = maxBalance

	if err := s.DB.SaveWalletRestrictions(restrictions); err != nil {
		return models.WalletRestrictions{}, fmt.Errorf("falha ao salvar restrições: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventRestrictionsUpdated, map[string]any{
		"wallet":        wallet,
		"daily_limit":   dailyLimit,
		"lockout_until": lockoutUntil,
		"max_balance":   maxBalance,
		"updated_by":    authority,
	})

	return restrictions, nil
}

// CheckAndRecord valida as restrições do remetente para uma transferência e,
// passando, registra o valor no acumulado diário. O "agora" é lido uma única
// vez pelo chamador e usado em toda a operação. Bloqueios de política emitem
// uma notificação com o motivo, distinta da falha dura.
func (s *RestrictionService) CheckAndRecord(equityID, sender, recipient string, amount uint64, now int64) error {
	restrictions, exists, err := s.DB.GetWalletRestrictions(equityID, sender)
	if err != nil {
		return fmt.Errorf("erro ao buscar restrições: %w", err)
	}
	if !exists {
		// Sem registro = sem restrições.
		return nil
	}

	if restrictions.LockoutUntil != nil && now < *restrictions.LockoutUntil {
		s.emitBlocked(equityID, sender, recipient, amount, "Carteira está em período de bloqueio")
		return models.ErrInLockoutPeriod
	}

	if restrictions.DailyTransferLimit != nil {
		// Fronteiras de dia absolutas (meia-noite UTC), não janela deslizante
		// por carteira. O reset acontece antes de qualquer checagem de limite.
		currentDay := now / models.SecondsPerDay
		lastDay := restrictions.LastTransferDay / models.SecondsPerDay
		if currentDay > lastDay {
			restrictions.TransferredToday = 0
			restrictions.LastTransferDay = now
		}

		newTotal, err := checkedAdd(restrictions.TransferredToday, amount)
		if err != nil {
			return err
		}
		if newTotal > *restrictions.DailyTransferLimit {
			s.emitBlocked(equityID, sender, recipient, amount, "Transferência excede o limite diário")
			return models.ErrDailyLimitExceeded
		}

		restrictions.TransferredToday = newTotal
		if err := s.DB.SaveWalletRestrictions(restrictions); err != nil {
			return fmt.Errorf("falha ao registrar acumulado diário: %w", err)
		}
	}

	return nil
}

// CheckMaxBalance valida o teto de saldo do destinatário: o saldo corrente mais
// o valor recebido não pode exceder MaxBalance.
func (s *RestrictionService) CheckMaxBalance(equityID, sender, recipient string, amount, currentBalance uint64) error {
	restrictions, exists, err := s.DB.GetWalletRestrictions(equityID, recipient)
	if err != nil {
		return fmt.Errorf("erro ao buscar restrições do destinatário: %w", err)
	}
	if !exists || restrictions.MaxBalance == nil {
		return nil
	}

	newBalance, err := checkedAdd(currentBalance, amount)
	if err != nil {
		return err
	}
	if newBalance > *restrictions.MaxBalance {
		s.emitBlocked(equityID, sender, recipient, amount, "Transferência excederia o saldo máximo da carteira")
		return models.ErrMaxBalanceExceeded
	}
	return nil
}

// GetRestrictions retorna as restrições de uma carteira, se existirem.
func (s *RestrictionService) GetRestrictions(equityID, wallet string) (models.WalletRestrictions, bool, error) {
	return s.DB.GetWalletRestrictions(equityID, wallet)
}

func (s *RestrictionService) emitBlocked(equityID, from, to string, amount uint64, reason string) {
	s.Notifier.Emit(equityID, models.EventTransferBlocked, map[string]any{
		"from":   from,
		"to":     to,
		"amount": amount,
		"reason": reason,
	})
}
