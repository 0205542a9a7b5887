package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"mentionmates/models"

	"github.com/gorilla/websocket"
)

const (
	typeJoin    = "join"
	typeMessage = "message"
)

// inboundEnvelope covers both client envelopes:
//
//	{"type":"join","creatorId":"..."}
//	{"type":"message","senderId":"...","recipientId":"...","content":"..."}
type inboundEnvelope struct {
	Type        string `json:"type"`
	CreatorID   string `json:"creatorId"`
	SenderID    string `json:"senderId"`
	RecipientID string `json:"recipientId"`
	Content     string `json:"content"`
}

type outboundMessage struct {
	Type    string         `json:"type"`
	Message models.Message `json:"message"`
}

type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	manager *Manager
}

func (c *Client) readPump(ctx context.Context) {
	m := c.manager
	defer func() {
		select {
		case m.unregister <- c:
		case <-ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(m.opts.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(m.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(m.opts.PongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				slog.Error("❌ WebSocket read error", "error", err)
			}
			return
		}

		var env inboundEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			slog.Warn("⚠️ Dropping malformed WebSocket frame", "error", err)
			continue
		}

		switch env.Type {
		case typeJoin:
			if env.CreatorID == "" {
				slog.Warn("⚠️ Dropping join without creatorId")
				continue
			}
			select {
			case m.join <- joinRequest{client: c, creatorID: env.CreatorID}:
			case <-ctx.Done():
				return
			}

		case typeMessage:
			if env.SenderID == "" || env.RecipientID == "" {
				slog.Warn("⚠️ Dropping message without sender or recipient")
				continue
			}
			msg, err := m.Relay(ctx, models.NewMessage{
				SenderID:    env.SenderID,
				RecipientID: env.RecipientID,
				Content:     env.Content,
			})
			if err != nil {
				slog.Error("❌ Failed to relay message", "sender_id", env.SenderID, "recipient_id", env.RecipientID, "error", err)
				continue
			}
			slog.Debug("📨 Message relayed", "message_id", msg.ID, "sender_id", msg.SenderID, "recipient_id", msg.RecipientID)

		default:
			slog.Warn("⚠️ Dropping WebSocket envelope with unknown type", "type", env.Type)
		}
	}
}

func (c *Client) writePump() {
	m := c.manager
	ticker := time.NewTicker(m.opts.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(m.opts.WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(m.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
