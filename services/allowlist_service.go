package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
)

// AllowlistService é o registro de compliance: controla quais carteiras podem
// enviar e receber o token de uma equity. Toda transferência e cunhagem
// consulta este serviço.
type AllowlistService struct {
	DB       Store
	Notifier Notifier
	Clock    func() int64 // Snapshot único de "agora" por operação
}

// NewAllowlistService cria uma nova instância do registro de compliance.
func NewAllowlistService(db Store, notifier Notifier) *AllowlistService {
	return &AllowlistService{
		DB:       db,
		Notifier: notifier,
		Clock:    func() int64 { return time.Now().Unix() },
	}
}

// Approve cria uma entrada ativa na allowlist para a carteira.
func (s *AllowlistService) Approve(equityID, wallet string, kycLevel uint8, authority string) (models.AllowlistEntry, error) {
	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.AllowlistEntry{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.AllowlistEntry{}, models.ErrEquityNotFound
	}
	if equity.IsPaused {
		return models.AllowlistEntry{}, models.ErrTransfersPaused
	}

	_, exists, err := s.DB.GetAllowlistEntry(equityID, wallet)
	if err != nil {
		return models.AllowlistEntry{}, fmt.Errorf("erro ao buscar entrada de allowlist: %w", err)
	}
	if exists {
		return models.AllowlistEntry{}, models.ErrAlreadyOnAllowlist
	}

	entry := models.AllowlistEntry{
		ID:         uuid.New().String(),
		EquityID:   equityID,
		Wallet:     wallet,
		ApprovedAt: s.Clock(),
		ApprovedBy: authority,
		Status:     models.AllowlistActive,
		KYCLevel:   kycLevel,
	}
	if err := s.DB.SaveAllowlistEntry(entry); err != nil {
		return models.AllowlistEntry{}, fmt.Errorf("falha ao salvar entrada de allowlist: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventWalletApproved, map[string]any{
		"wallet":      wallet,
		"kyc_level":   kycLevel,
		"approved_by": authority,
	})

	return entry, nil
}

// Revoke remove a carteira da allowlist. A entrada é apagada (o armazenamento
// é recuperado, não há como reverter); transferências futuras de/para a
// carteira passam a falhar.
func (s *AllowlistService) Revoke(equityID, wallet, authority string) error {
	_, exists, err := s.DB.GetAllowlistEntry(equityID, wallet)
	if err != nil {
		return fmt.Errorf("erro ao buscar entrada de allowlist: %w", err)
	}
	if !exists {
		return models.ErrNotOnAllowlist
	}

	if err := s.DB.DeleteAllowlistEntry(equityID, wallet); err != nil {
		return fmt.Errorf("falha ao remover entrada de allowlist: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventWalletRevoked, map[string]any{
		"wallet":     wallet,
		"revoked_by": authority,
	})

	return nil
}

// SetStatus muda o status da entrada sem apagá-la, preservando a trilha de
// auditoria (kyc_level, approved_at).
func (s *AllowlistService) SetStatus(equityID, wallet string, status models.AllowlistStatus, authority string) (models.AllowlistEntry, error) {
	if !status.Valid() {
		return models.AllowlistEntry{}, models.ErrInvalidStatus
	}

	entry, exists, err := s.DB.GetAllowlistEntry(equityID, wallet)
	if err != nil {
		return models.AllowlistEntry{}, fmt.Errorf("erro ao buscar entrada de allowlist: %w", err)
	}
	if !exists {
		return models.AllowlistEntry{}, models.ErrNotOnAllowlist
	}

	oldStatus := entry.Status
	entry.Status = status
	if err := s.DB.SaveAllowlistEntry(entry); err != nil {
		return models.AllowlistEntry{}, fmt.Errorf("falha ao atualizar status na allowlist: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventAllowlistStatusChange, map[string]any{
		"wallet":     wallet,
		"old_status": oldStatus,
		"new_status": status,
		"changed_by": authority,
	})

	return entry, nil
}

// IsActive informa se a carteira está ativa na allowlist. Contrato consumido
// pelo caminho de transferência/cunhagem.
func (s *AllowlistService) IsActive(equityID, wallet string) (bool, error) {
	entry, exists, err := s.DB.GetAllowlistEntry(equityID, wallet)
	if err != nil {
		return false, fmt.Errorf("erro ao buscar entrada de allowlist: %w", err)
	}
	return exists && entry.Status == models.AllowlistActive, nil
}

// GetEntry retorna a entrada de allowlist de uma carteira.
func (s *AllowlistService) GetEntry(equityID, wallet string) (models.AllowlistEntry, error) {
	entry, exists, err := s.DB.GetAllowlistEntry(equityID, wallet)
	if err != nil {
		return models.AllowlistEntry{}, fmt.Errorf("erro ao buscar entrada de allowlist: %w", err)
	}
	if !exists {
		return models.AllowlistEntry{}, models.ErrNotOnAllowlist
	}
	return entry, nil
}
