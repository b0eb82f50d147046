package services_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ferreirogomes/chainequity/models"
	"github.com/ferreirogomes/chainequity/services"
)

// TestEmitPersistsEvent verifica que a emissão persiste o evento com o payload
// serializado
func TestEmitPersistsEvent(t *testing.T) {
	mockDB := new(MockStore)
	service := services.NewNotificationService(mockDB)

	mockDB.On("SaveEvent", mock.MatchedBy(func(e models.EquityEvent) bool {
		var payload map[string]any
		if err := json.Unmarshal(e.Payload, &payload); err != nil {
			return false
		}
		return e.EquityID == "equity-1" && e.Kind == models.EventWalletApproved && payload["wallet"] == "wallet-a"
	})).Return(nil).Once()

	service.Emit("equity-1", models.EventWalletApproved, map[string]any{"wallet": "wallet-a"})

	mockDB.AssertExpectations(t)
}

// TestEmitFailureDoesNotPanic verifica que falha de persistência é engolida
// (melhor-esforço)
func TestEmitFailureDoesNotPanic(t *testing.T) {
	mockDB := new(MockStore)
	service := services.NewNotificationService(mockDB)

	mockDB.On("SaveEvent", mock.AnythingOfType("models.EquityEvent")).Return(assert.AnError).Once()

	assert.NotPanics(t, func() {
		service.Emit("equity-1", models.EventTokensMinted, map[string]any{"amount": 10})
	})
	mockDB.AssertExpectations(t)
}
