package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/gorilla/websocket"

	"bargainer/models"
)

// Channel is the persistent bidirectional negotiation channel as the session
// engine sees it. Send must only be called from the session goroutine.
type Channel interface {
	Send(msg models.Outbound) error
	Inbound() <-chan models.Inbound
	Close() error
}

// Client is the websocket-backed Channel. A read pump decodes inbound
// payloads and delivers them on a channel; malformed payloads are logged and
// dropped so the session survives them.
type Client struct {
	conn    *websocket.Conn
	inbound chan models.Inbound
}

// Dial connects to the negotiation channel and starts the read pump.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial negotiation channel: %w", err)
	}

	c := &Client{
		conn:    conn,
		inbound: make(chan models.Inbound, 16),
	}
	go c.readPump()
	return c, nil
}

func (c *Client) readPump() {
	defer close(c.inbound)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("negotiation channel closed unexpectedly", "error", err)
			}
			return
		}

		payload, err := DecodePayload(data)
		if err != nil {
			slog.Warn("dropping malformed payload", "error", err)
			continue
		}
		c.inbound <- payload
	}
}

// Inbound returns the payload stream. The channel is closed when the
// connection drops.
func (c *Client) Inbound() <-chan models.Inbound {
	return c.inbound
}

// Send writes one outbound message to the channel.
func (c *Client) Send(msg models.Outbound) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal %s message: %w", msg.Type, err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send %s message: %w", msg.Type, err)
	}
	return nil
}

func (c *Client) Close() error {
	_ = c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}
