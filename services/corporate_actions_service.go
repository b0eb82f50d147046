package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
)

// CorporateActionsService executa as ações corporativas de uma equity:
// emissão, desdobramento (split), mudança de símbolo e pausa de emergência. As
// entradas de autorização (multisig/governança) chegam já decididas; este
// serviço confia na decisão e não reverifica votos.
type CorporateActionsService struct {
	DB       Store
	Ledger   Ledger
	Notifier Notifier
	Clock    func() int64
}

// NewCorporateActionsService cria uma nova instância do serviço de ações
// corporativas.
func NewCorporateActionsService(db Store, ledger Ledger, notifier Notifier) *CorporateActionsService {
	return &CorporateActionsService{
		DB:       db,
		Ledger:   ledger,
		Notifier: notifier,
		Clock:    func() int64 { return time.Now().Unix() },
	}
}

// EquityParams são os parâmetros de emissão de uma nova equity.
type EquityParams struct {
	Authority           string `json:"authority"`
	MintAddress         string `json:"mint_address"`
	Symbol              string `json:"symbol"`
	Name                string `json:"name"`
	Decimals            uint8  `json:"decimals"`
	VestingEnabled      bool   `json:"vesting_enabled"`
	GovernanceEnabled   bool   `json:"governance_enabled"`
	DividendsEnabled    bool   `json:"dividends_enabled"`
	RestrictionsEnabled bool   `json:"restrictions_enabled"`
	Upgradeable         bool   `json:"upgradeable"`
	UpgradeTimelock     int64  `json:"upgrade_timelock"`
}

// CreateEquity emite uma nova equity com supply zero e multiplicador de split 1.
func (s *CorporateActionsService) CreateEquity(params EquityParams) (models.Equity, error) {
	if params.Symbol == "" {
		return models.Equity{}, models.ErrSymbolEmpty
	}
	if len(params.Symbol) > models.MaxSymbolLen {
		return models.Equity{}, models.ErrSymbolTooLong
	}
	if len(params.Name) > models.MaxNameLen {
		return models.Equity{}, models.ErrNameTooLong
	}

	equity := models.Equity{
		ID:                  uuid.New().String(),
		Authority:           params.Authority,
		MintAddress:         params.MintAddress,
		Symbol:              params.Symbol,
		Name:                params.Name,
		Decimals:            params.Decimals,
		TotalSupply:         0,
		SplitMultiplier:     1,
		VestingEnabled:      params.VestingEnabled,
		GovernanceEnabled:   params.GovernanceEnabled,
		DividendsEnabled:    params.DividendsEnabled,
		RestrictionsEnabled: params.RestrictionsEnabled,
		Upgradeable:         params.Upgradeable,
		IsPaused:            false,
		UpgradeTimelock:     params.UpgradeTimelock,
		NextDividendRound:   1,
		CreatedAt:           time.Now(),
	}

	if err := s.DB.SaveEquity(equity); err != nil {
		return models.Equity{}, fmt.Errorf("falha ao salvar equity: %w", err)
	}
	return equity, nil
}

// FinalizeSplit aplica um desdobramento na contabilidade da equity: supply e
// multiplicador são multiplicados pela razão, com multiplicação checada. A
// atualização dos saldos individuais é delegada a ExecuteSplitBatch.
func (s *CorporateActionsService) FinalizeSplit(equityID string, splitRatio uint64, authority string) (models.Equity, error) {
	if splitRatio <= 1 {
		return models.Equity{}, models.ErrInvalidSplitRatio
	}

	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.Equity{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.Equity{}, models.ErrEquityNotFound
	}

	oldSupply := equity.TotalSupply
	newSupply, err := checkedMul(oldSupply, splitRatio)
	if err != nil {
		return models.Equity{}, err
	}
	newMultiplier, err := checkedMul(equity.SplitMultiplier, splitRatio)
	if err != nil {
		return models.Equity{}, err
	}

	equity.TotalSupply = newSupply
	equity.SplitMultiplier = newMultiplier
	if err := s.DB.SaveEquity(equity); err != nil {
		return models.Equity{}, fmt.Errorf("falha ao salvar split: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventSplitExecuted, map[string]any{
		"split_ratio":      splitRatio,
		"old_total_supply": oldSupply,
		"new_total_supply": newSupply,
		"executed_by":      authority,
	})

	return equity, nil
}

// ExecuteSplitBatch ajusta os saldos de um lote de carteiras após um split,
// cunhando o delta (ratio-1)×saldo para cada uma. O processamento é
// incremental e melhor-esforço: falhas individuais são logadas e o lote
// continua; o contador retornado é informativo, não autoritativo. O listener
// reconcilia divergências.
func (s *CorporateActionsService) ExecuteSplitBatch(equityID string, splitRatio uint64, batchIndex uint32, wallets []string) (uint32, error) {
	if splitRatio <= 1 {
		return 0, models.ErrInvalidSplitRatio
	}

	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return 0, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return 0, models.ErrEquityNotFound
	}

	var processed uint32
	for _, wallet := range wallets {
		balance, err := s.Ledger.GetTokenBalance(equity.MintAddress, wallet)
		if err != nil {
			log.Printf("Split batch %d: falha ao ler saldo de %s: %v", batchIndex, wallet, err)
			continue
		}
		if balance == 0 {
			processed++
			continue
		}

		delta, err := checkedMul(balance, splitRatio-1)
		if err != nil {
			log.Printf("Split batch %d: overflow no delta de %s", batchIndex, wallet)
			continue
		}
		if _, err := s.Ledger.Mint(equity.MintAddress, wallet, delta); err != nil {
			log.Printf("Split batch %d: falha ao cunhar delta para %s: %v", batchIndex, wallet, err)
			continue
		}
		processed++
	}

	s.Notifier.Emit(equityID, models.EventSplitBatchProcessed, map[string]any{
		"batch_index":        batchIndex,
		"accounts_processed": processed,
	})

	return processed, nil
}

// ChangeSymbol sobrescreve o ticker da equity. Não afeta supply nem qualquer
// invariante numérico.
func (s *CorporateActionsService) ChangeSymbol(equityID, newSymbol, authority string) (models.Equity, error) {
	if newSymbol == "" {
		return models.Equity{}, models.ErrSymbolEmpty
	}
	if len(newSymbol) > models.MaxSymbolLen {
		return models.Equity{}, models.ErrSymbolTooLong
	}

	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.Equity{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.Equity{}, models.ErrEquityNotFound
	}

	oldSymbol := equity.Symbol
	equity.Symbol = newSymbol
	if err := s.DB.SaveEquity(equity); err != nil {
		return models.Equity{}, fmt.Errorf("falha ao salvar novo símbolo: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventSymbolChanged, map[string]any{
		"old_symbol": oldSymbol,
		"new_symbol": newSymbol,
		"changed_by": authority,
	})

	return equity, nil
}

// SetPaused liga ou desliga a pausa de emergência da equity.
func (s *CorporateActionsService) SetPaused(equityID string, paused bool, authority string) (models.Equity, error) {
	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.Equity{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.Equity{}, models.ErrEquityNotFound
	}

	equity.IsPaused = paused
	if err := s.DB.SaveEquity(equity); err != nil {
		return models.Equity{}, fmt.Errorf("falha ao salvar estado de pausa: %w", err)
	}

	s.Notifier.Emit(equityID, models.EventPausedChanged, map[string]any{
		"paused":     paused,
		"changed_by": authority,
	})

	return equity, nil
}

// GetEquity retorna uma equity pelo ID.
func (s *CorporateActionsService) GetEquity(equityID string) (models.Equity, error) {
	equity, found, err := s.DB.GetEquity(equityID)
	if err != nil {
		return models.Equity{}, fmt.Errorf("erro ao buscar equity: %w", err)
	}
	if !found {
		return models.Equity{}, models.ErrEquityNotFound
	}
	return equity, nil
}
