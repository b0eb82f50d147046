package handlers

import (
	"errors"
	"net/http"

	"github.com/ferreirogomes/chainequity/models"
)

// statusForError mapeia os erros do engine para códigos HTTP: validação 400,
// autorização 403, não encontrado 404, conflito de estado 409, overflow 422,
// resto 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, models.ErrInvalidVestingDuration),
		errors.Is(err, models.ErrTerminationNotesTooLong),
		errors.Is(err, models.ErrInvalidSplitRatio),
		errors.Is(err, models.ErrSymbolEmpty),
		errors.Is(err, models.ErrSymbolTooLong),
		errors.Is(err, models.ErrNameTooLong),
		errors.Is(err, models.ErrInvalidStatus):
		return http.StatusBadRequest

	case errors.Is(err, models.ErrSenderNotApproved),
		errors.Is(err, models.ErrRecipientNotApproved),
		errors.Is(err, models.ErrNotOnAllowlist),
		errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrInLockoutPeriod),
		errors.Is(err, models.ErrDailyLimitExceeded),
		errors.Is(err, models.ErrMaxBalanceExceeded),
		errors.Is(err, models.ErrFeatureDisabled),
		errors.Is(err, models.ErrTransfersPaused):
		return http.StatusForbidden

	case errors.Is(err, models.ErrEquityNotFound),
		errors.Is(err, models.ErrRecordNotFound):
		return http.StatusNotFound

	case errors.Is(err, models.ErrAlreadyOnAllowlist),
		errors.Is(err, models.ErrAlreadyTerminated),
		errors.Is(err, models.ErrAlreadyClaimed),
		errors.Is(err, models.ErrDividendNotActive),
		errors.Is(err, models.ErrDividendExpired),
		errors.Is(err, models.ErrNoTokensToRelease),
		errors.Is(err, models.ErrNoEntitlement),
		errors.Is(err, models.ErrInsufficientPoolFunds):
		return http.StatusConflict

	case errors.Is(err, models.ErrMathOverflow):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// writeError responde o erro do engine com o status apropriado.
func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusForError(err))
}
