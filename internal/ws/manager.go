package ws

import (
	"encoding/json"
	"sync"

	"procasa_backend/internal/logger"
	"procasa_backend/internal/services/dto"
)

// envelope is the single frame type pushed to sessions: full request
// snapshots, never deltas, so a reconnecting client is immediately current.
type envelope struct {
	Type    string               `json:"type"`
	Request *dto.RequestResponse `json:"request"`
}

// Manager fans request snapshots out to the sessions of every party on the
// request: the owning client and all invited professionals.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]struct{})
			}
			m.clients[client.UserID][client] = struct{}{}
			m.mu.Unlock()

		case client := <-m.unregister:
			m.mu.Lock()
			if sessions, ok := m.clients[client.UserID]; ok {
				if _, ok := sessions[client]; ok {
					delete(sessions, client)
					close(client.send)
					if len(sessions) == 0 {
						delete(m.clients, client.UserID)
					}
				}
			}
			m.mu.Unlock()
		}
	}
}

// PublishRequest implements services.SnapshotPublisher.
func (m *Manager) PublishRequest(snapshot *dto.RequestResponse) {
	payload, err := json.Marshal(envelope{Type: "request_snapshot", Request: snapshot})
	if err != nil {
		logger.Error("snapshot marshal failed", "request_id", snapshot.ID, "error", err)
		return
	}

	recipients := append([]string{snapshot.ClientID}, snapshot.SelectedProIDs...)

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, userID := range recipients {
		for client := range m.clients[userID] {
			select {
			case client.send <- payload:
			default:
				// Slow consumer: drop the frame rather than block the
				// publisher. The next snapshot supersedes it anyway.
			}
		}
	}
}

// ConnectedUsers reports how many distinct users hold open sessions.
func (m *Manager) ConnectedUsers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
