package lcu

import (
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// EventType represents LCU WebSocket event frame types
type EventType int

const (
	EventTypeSubscribe   EventType = 5
	EventTypeUnsubscribe EventType = 6
	EventTypeEvent       EventType = 8
)

const lobbyEvent = "OnJsonApiEvent_lol-lobby_v2_lobby"

// RosterHandler is called when the lobby opens, closes, or changes
// membership. inLobby is false when the lobby was deleted.
type RosterHandler func(inLobby bool)

// WebSocketClient subscribes to lobby events over the LCU WebSocket so the
// app can re-pull the roster when it changes.
type WebSocketClient struct {
	conn          *websocket.Conn
	credentials   *Credentials
	mu            sync.Mutex
	isConnected   bool
	stopChan      chan struct{}
	rosterHandler RosterHandler
	logger        *slog.Logger
}

// NewWebSocketClient creates a new WebSocket client
func NewWebSocketClient(logger *slog.Logger) *WebSocketClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &WebSocketClient{
		stopChan: make(chan struct{}),
		logger:   logger,
	}
}

// Connect establishes the WebSocket connection and subscribes to lobby events
func (w *WebSocketClient) Connect(creds *Credentials) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isConnected {
		return nil
	}

	w.credentials = creds

	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	url := fmt.Sprintf("wss://127.0.0.1:%s", creds.Port)
	header := http.Header{}
	auth := base64.StdEncoding.EncodeToString([]byte("riot:" + creds.Password))
	header.Set("Authorization", "Basic "+auth)

	conn, _, err := dialer.Dial(url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to LCU WebSocket: %w", err)
	}

	w.conn = conn
	w.isConnected = true

	if err := w.subscribe(lobbyEvent); err != nil {
		w.conn.Close()
		w.isConnected = false
		return fmt.Errorf("failed to subscribe to lobby events: %w", err)
	}

	go w.listen()

	return nil
}

func (w *WebSocketClient) subscribe(event string) error {
	msg := []interface{}{EventTypeSubscribe, event}
	return w.conn.WriteJSON(msg)
}

// listen reads frames until the connection drops or Disconnect is called
func (w *WebSocketClient) listen() {
	defer func() {
		w.mu.Lock()
		w.isConnected = false
		if w.conn != nil {
			w.conn.Close()
		}
		w.mu.Unlock()
	}()

	for {
		select {
		case <-w.stopChan:
			return
		default:
			_, message, err := w.conn.ReadMessage()
			if err != nil {
				return
			}

			w.handleMessage(message)
		}
	}
}

// handleMessage decodes a [type, event, payload] frame and dispatches
// lobby events to the roster handler.
func (w *WebSocketClient) handleMessage(data []byte) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return
	}

	if len(raw) < 3 {
		return
	}

	var eventType EventType
	if err := json.Unmarshal(raw[0], &eventType); err != nil {
		return
	}
	if eventType != EventTypeEvent {
		return
	}

	var eventName string
	if err := json.Unmarshal(raw[1], &eventName); err != nil {
		return
	}
	if eventName != lobbyEvent {
		return
	}

	var eventData struct {
		EventType string `json:"eventType"`
		URI       string `json:"uri"`
	}
	if err := json.Unmarshal(raw[2], &eventData); err != nil {
		w.logger.Debug("failed to parse lobby event", slog.Any("error", err))
		return
	}

	if w.rosterHandler == nil {
		return
	}

	switch eventData.EventType {
	case "Create", "Update":
		w.rosterHandler(true)
	case "Delete":
		w.rosterHandler(false)
	}
}

// SetRosterHandler sets the callback for lobby roster changes
func (w *WebSocketClient) SetRosterHandler(handler RosterHandler) {
	w.rosterHandler = handler
}

// Disconnect closes the WebSocket connection
func (w *WebSocketClient) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()

	close(w.stopChan)
	if w.conn != nil {
		w.conn.Close()
		w.conn = nil
	}
	w.isConnected = false
	w.stopChan = make(chan struct{})
}

// IsConnected reports whether the WebSocket is connected
func (w *WebSocketClient) IsConnected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isConnected
}
