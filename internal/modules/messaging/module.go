package messaging

import (
	"github.com/saransh1220/soundwave/internal/modules/messaging/application"
	"github.com/saransh1220/soundwave/internal/modules/messaging/infrastructure/persistence/mongodb"
	"github.com/saransh1220/soundwave/internal/modules/messaging/infrastructure/websocket"
	messaging_http "github.com/saransh1220/soundwave/internal/modules/messaging/interfaces/http"
	"go.mongodb.org/mongo-driver/mongo"
)

type Module struct {
	service *application.MessageService
	handler *messaging_http.MessageHandler
	hub     *websocket.Hub
}

// NewModule wires the messaging module and starts its websocket hub. Call
// Stop on shutdown.
func NewModule(db *mongo.Database) *Module {
	repo := mongodb.NewMessageRepository(db)
	hub := websocket.NewHub()
	go hub.Run()

	service := application.NewMessageService(repo, hub)
	handler := messaging_http.NewMessageHandler(service, hub)

	return &Module{
		service: service,
		handler: handler,
		hub:     hub,
	}
}

func (m *Module) HTTPHandler() *messaging_http.MessageHandler {
	return m.handler
}

func (m *Module) Service() *application.MessageService {
	return m.service
}

// Stop closes every live websocket connection.
func (m *Module) Stop() {
	m.hub.Stop()
}
