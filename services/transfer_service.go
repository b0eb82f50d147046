package services

import (
	"fmt"
	"time"

	"github.com/ferreirogomes/chainequity/models"
)

// TransferService é o caminho de transferência e cunhagem com as verificações
// de compliance: pausa, allowlist das duas pontas e restrições do remetente e
// do destinatário, nessa ordem, tudo antes de invocar o ledger.
type TransferService struct {
	DB           Store
	Ledger       Ledger
	Allowlist    *AllowlistService
	Restrictions *RestrictionService
	Notifier     Notifier
	Clock        func() int64
}

// NewTransferService cria uma nova instância do caminho de transferência.
func NewTransferService(db Store, ledger Ledger, allowlist *AllowlistService, restrictions *RestrictionService, notifier Notifier) *TransferService {
	return &TransferService{
		DB:           db,
		Ledger:       ledger,
		Allowlist:    allowlist,
		Restrictions: restrictions,
		Notifier:     notifier,
		Clock:        func() int64 { return time.Now().Unix() },
	}
}

// Transfer executa uma transferência de tokens entre duas carteiras aprovadas.
// Qualquer falha aborta a operação inteira sem tocar o ledger.
func (s *TransferService) Transfer(equityID, sender, recipient string, amount uint64) (string, error) {
	if amount == 0 {
		return "", models.ErrInvalidAmount
	}

	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return "", models.ErrEquityNotFound
	}
	if equity.IsPaused {
		return "", models.ErrTransfersPaused
	}

	now := s.Clock()

	senderActive, err := s.Allowlist.IsActive(equityID, sender)
	if err != nil {
		return "", err
	}
	if !senderActive {
		return "", models.ErrSenderNotApproved
	}
	recipientActive, err := s.Allowlist.IsActive(equityID, recipient)
	if err != nil {
		return "", err
	}
	if !recipientActive {
		return "", models.ErrRecipientNotApproved
	}

	if err := s.Restrictions.CheckAndRecord(equityID, sender, recipient, amount, now); err != nil {
		return "", err
	}

	recipientBalance, err := s.Ledger.GetTokenBalance(equity.MintAddress, recipient)
	if err != nil {
		return "", fmt.Errorf("falha ao consultar saldo do destinatário: %w", err)
	}
	if err := s.Restrictions.CheckMaxBalance(equityID, sender, recipient, amount, recipientBalance); err != nil {
		return "", err
	}

	txID, err := s.Ledger.Transfer(equity.MintAddress, sender, recipient, amount)
	if err != nil {
		return "", fmt.Errorf("falha ao transferir no ledger: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventTokensTransferred, map[string]any{
		"from":   sender,
		"to":     recipient,
		"amount": amount,
		"tx_id":  txID,
	})

	return txID, nil
}

// Mint cunha novos tokens para uma carteira aprovada e atualiza o supply total
// da equity (soma checada, overflow aborta antes de salvar).
func (s *TransferService) Mint(equityID, recipient string, amount uint64, authority string) (string, error) {
	if amount == 0 {
		return "", models.ErrInvalidAmount
	}

	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return "", fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return "", models.ErrEquityNotFound
	}
	if equity.IsPaused {
		return "", models.ErrTransfersPaused
	}

	recipientActive, err := s.Allowlist.IsActive(equityID, recipient)
	if err != nil {
		return "", err
	}
	if !recipientActive {
		return "", models.ErrRecipientNotApproved
	}

	newSupply, err := checkedAdd(equity.TotalSupply, amount)
	if err != nil {
		return "", err
	}

	txID, err := s.Ledger.Mint(equity.MintAddress, recipient, amount)
	if err != nil {
		return "", fmt.Errorf("falha ao cunhar no ledger: %w", err)
	}

	equity.TotalSupply = newSupply
	if err := s.DB.SaveEquity(equity); err != nil {
		// A cunhagem já foi para o ledger; o listener reconcilia o supply.
		return "", fmt.Errorf("cunhagem enviada, mas falha ao registrar supply: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventTokensMinted, map[string]any{
		"to":               recipient,
		"amount":           amount,
		"new_total_supply": newSupply,
		"minted_by":        authority,
	})

	return txID, nil
}
