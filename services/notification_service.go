package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ferreirogomes/chainequity/models"
)

// NotificationService persiste e loga as notificações do engine. A emissão é
// melhor-esforço: falha de persistência é apenas logada, nunca propaga para a
// operação que originou o evento (observadores que precisem de consistência
// forte devem reler o estado).
type NotificationService struct {
	DB Store
}

// NewNotificationService cria uma nova instância do serviço de notificações.
func NewNotificationService(db Store) *NotificationService {
	return &NotificationService{DB: db}
}

// Emit registra uma notificação para observadores externos.
func (s *NotificationService) Emit(equityID, kind string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Falha ao serializar payload do evento %s: %v", kind, err)
		data = []byte("{}")
	}

	event := models.EquityEvent{
		ID:        uuid.New().String(),
		EquityID:  equityID,
		Kind:      kind,
		Payload:   data,
		CreatedAt: time.Now(),
	}

	if err := s.DB.SaveEvent(event); err != nil {
		log.Printf("Falha ao persistir evento %s da equity %s: %v", kind, equityID, err)
	}
	log.Printf("Evento %s (equity %s): %s", kind, equityID, string(data))
}
