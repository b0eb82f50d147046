package models

import "errors"

// Erros do engine. Todos abortam a operação inteira antes de qualquer mutação
// de estado (não há falha parcial).
var (
	// Allowlist
	ErrNotOnAllowlist       = errors.New("carteira não está na allowlist")
	ErrSenderNotApproved    = errors.New("remetente não aprovado para transferências")
	ErrRecipientNotApproved = errors.New("destinatário não aprovado para transferências")
	ErrAlreadyOnAllowlist   = errors.New("carteira já está na allowlist")
	ErrInvalidStatus        = errors.New("status de allowlist inválido")

	// Transferência
	ErrTransfersPaused    = errors.New("transferências do token estão pausadas")
	ErrInLockoutPeriod    = errors.New("carteira está em período de bloqueio")
	ErrDailyLimitExceeded = errors.New("transferência excede o limite diário")
	ErrMaxBalanceExceeded = errors.New("transferência excederia o saldo máximo da carteira")

	// Vesting
	ErrAlreadyTerminated       = errors.New("cronograma de vesting já encerrado")
	ErrNoTokensToRelease       = errors.New("nenhum token disponível para liberação")
	ErrInvalidVestingDuration  = errors.New("duração de vesting inválida")
	ErrTerminationNotesTooLong = errors.New("notas de encerramento muito longas (máx. 200 caracteres)")
	ErrFeatureDisabled         = errors.New("feature não habilitada para este token")

	// Dividendos
	ErrAlreadyClaimed        = errors.New("dividendo já reivindicado")
	ErrDividendExpired       = errors.New("rodada de dividendos expirada")
	ErrDividendNotActive     = errors.New("rodada de dividendos não está ativa")
	ErrNoEntitlement         = errors.New("sem direito a dividendos")
	ErrInsufficientPoolFunds = errors.New("fundos insuficientes no pool de dividendos")

	// Ações corporativas
	ErrInvalidSplitRatio = errors.New("razão de split inválida")
	ErrSymbolEmpty       = errors.New("símbolo não pode ser vazio")
	ErrSymbolTooLong     = errors.New("símbolo muito longo (máx. 10 caracteres)")
	ErrNameTooLong       = errors.New("nome muito longo (máx. 50 caracteres)")

	// Gerais
	ErrUnauthorized   = errors.New("não autorizado")
	ErrMathOverflow   = errors.New("overflow aritmético")
	ErrInvalidAmount  = errors.New("quantidade inválida")
	ErrEquityNotFound = errors.New("equity não encontrada")
	ErrRecordNotFound = errors.New("registro não encontrado")
)
