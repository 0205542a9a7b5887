package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"mentionmates/models"

	"github.com/gorilla/websocket"
)

// MessageStore persists chat messages before they are relayed.
type MessageStore interface {
	CreateMessage(in models.NewMessage) (models.Message, error)
}

type Options struct {
	// WriteWait bounds a single frame write.
	WriteWait time.Duration
	// PongWait is how long a peer may go without answering a ping.
	PongWait time.Duration
	// PingPeriod must be shorter than PongWait.
	PingPeriod time.Duration
	// MaxMessageSize caps inbound frames, in bytes.
	MaxMessageSize int64
	// SendBuffer is the per-connection outbound queue length.
	SendBuffer int
}

func DefaultOptions() Options {
	return Options{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     30 * time.Second,
		MaxMessageSize: 64 * 1024,
		SendBuffer:     256,
	}
}

type joinRequest struct {
	client    *Client
	creatorID string
}

type delivery struct {
	recipientID string
	payload     []byte
}

// Manager is the relay hub. A single goroutine (Run) applies every change to
// the connection registry; the maps are also guarded by mu so that other
// goroutines can read them.
type Manager struct {
	store MessageStore
	opts  Options

	clients    map[*Client]bool
	identities map[string]*Client

	register   chan *Client
	join       chan joinRequest
	unregister chan *Client
	deliver    chan delivery
	// done is closed once Run has returned.
	done chan struct{}

	mu sync.RWMutex
}

func NewManager(store MessageStore, opts Options) *Manager {
	return &Manager{
		store:      store,
		opts:       opts,
		clients:    make(map[*Client]bool),
		identities: make(map[string]*Client),
		register:   make(chan *Client),
		join:       make(chan joinRequest),
		unregister: make(chan *Client),
		deliver:    make(chan delivery),
		done:       make(chan struct{}),
	}
}

// Run processes registry events until ctx is cancelled, then closes every
// remaining connection's send queue.
func (m *Manager) Run(ctx context.Context) {
	defer close(m.done)
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			total := len(m.clients)
			m.mu.Unlock()
			slog.Info("✅ WebSocket client registered", "total_clients", total)

		case req := <-m.join:
			m.mu.Lock()
			if m.clients[req.client] {
				// Last join wins. A previous connection for the same creator
				// stays open but no longer receives messages.
				m.identities[req.creatorID] = req.client
			}
			m.mu.Unlock()
			slog.Info("👋 Creator joined", "creator_id", req.creatorID)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
				close(client.send)
			}
			for creatorID, registered := range m.identities {
				if registered == client {
					delete(m.identities, creatorID)
				}
			}
			total := len(m.clients)
			m.mu.Unlock()
			slog.Info("❌ WebSocket client unregistered", "total_clients", total)

		case d := <-m.deliver:
			m.mu.RLock()
			client, online := m.identities[d.recipientID]
			if online {
				select {
				case client.send <- d.payload:
				default:
					slog.Warn("⚠️ Send queue full, dropping message", "recipient_id", d.recipientID)
				}
			}
			m.mu.RUnlock()

		case <-ctx.Done():
			m.mu.Lock()
			for client := range m.clients {
				close(client.send)
			}
			m.clients = make(map[*Client]bool)
			m.identities = make(map[string]*Client)
			m.mu.Unlock()
			return
		}
	}
}

// IsOnline reports whether a creator currently has a joined connection.
func (m *Manager) IsOnline(creatorID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.identities[creatorID]
	return ok
}

func (m *Manager) ConnectedClients() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Relay persists a chat message and forwards it to the recipient if they are
// connected. Offline recipients pick it up later from the history endpoint.
func (m *Manager) Relay(ctx context.Context, in models.NewMessage) (models.Message, error) {
	msg, err := m.store.CreateMessage(in)
	if err != nil {
		return models.Message{}, err
	}

	payload, err := json.Marshal(outboundMessage{Type: typeMessage, Message: msg})
	if err != nil {
		return msg, err
	}

	select {
	case m.deliver <- delivery{recipientID: msg.RecipientID, payload: payload}:
	case <-m.done:
		// Shutting down; the message is stored and shows up in history.
	case <-ctx.Done():
		return msg, ctx.Err()
	}
	return msg, nil
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handler upgrades the request and runs the connection until it closes. The
// connection is anonymous until it sends a join envelope. ctx should be the
// same context passed to Run.
func (m *Manager) Handler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("❌ WebSocket upgrade failed", "error", err)
			return
		}

		client := &Client{
			conn:    conn,
			send:    make(chan []byte, m.opts.SendBuffer),
			manager: m,
		}

		select {
		case m.register <- client:
		case <-m.done:
			conn.Close()
			return
		case <-ctx.Done():
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump(ctx)
	}
}
