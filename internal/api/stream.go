package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Event is one frame from a TODO's execution stream.
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Well-known event types on the todo stream.
const (
	EventMessage = "block:message"
	EventStatus  = "todo:status"
)

// MessagePayload is the payload of an EventMessage frame.
type MessagePayload struct {
	Content string `json:"content"`
}

// StatusPayload is the payload of an EventStatus frame.
type StatusPayload struct {
	Status string `json:"status"`
}

// IsTerminalStatus reports whether a todo status means execution has ended.
func IsTerminalStatus(status string) bool {
	switch strings.ToLower(status) {
	case "completed", "done", "failed", "error", "cancelled":
		return true
	}
	return false
}

// WatchTodo attaches to the todo's event stream and invokes onEvent for every
// frame until onEvent returns false, the stream closes, or ctx is done.
func (c *Client) WatchTodo(ctx context.Context, todoID string, onEvent func(Event) bool) error {
	u, err := c.streamURL(todoID)
	if err != nil {
		return err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return responseError(resp)
		}
		return &ConnectError{URL: u, Err: err}
	}
	defer conn.Close()
	c.log.Debug().Str("url", u).Msg("stream connected")

	// Unblock the read loop when the context ends.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return &ConnectError{URL: u, Err: err}
		}
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			c.log.Debug().Err(err).Msg("skipping malformed frame")
			continue
		}
		if !onEvent(ev) {
			return nil
		}
	}
}

// streamURL converts the API base URL into the websocket endpoint for a todo.
func (c *Client) streamURL(todoID string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/api/v1/todos/" + url.PathEscape(todoID) + "/stream"
	return u.String(), nil
}
