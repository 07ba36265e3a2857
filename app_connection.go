package main

import (
	"log/slog"
	"time"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// onLobbyChange re-pulls the roster whenever the lobby changes and pushes
// it to the frontend.
func (a *App) onLobbyChange(inLobby bool) {
	if !inLobby {
		runtime.EventsEmit(a.ctx, "roster:update", map[string]interface{}{
			"inLobby": false,
		})
		return
	}

	runtime.EventsEmit(a.ctx, "roster:update", map[string]interface{}{
		"inLobby": true,
		"players": a.lcuClient.Players(),
	})
}

// pollForLeagueClient continuously checks for the League Client so the
// roster source comes and goes with it.
func (a *App) pollForLeagueClient() {
	interval := a.cfg.LCUPollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasConnected := false

	a.tryConnect()
	if a.lcuClient.IsConnected() {
		wasConnected = true
		a.connectWebSocket()
	}

	for {
		select {
		case <-a.stopPoll:
			return
		case <-ticker.C:
			isConnected := a.lcuClient.IsConnected()

			switch {
			case isConnected && !wasConnected:
				wasConnected = true
				a.connectWebSocket()
			case !isConnected:
				if wasConnected {
					a.wsClient.Disconnect()
					runtime.EventsEmit(a.ctx, "lcu:status", map[string]interface{}{
						"connected": false,
					})
					a.logger.Info("league client disconnected, waiting for reconnection")
					wasConnected = false
				}
				a.tryConnect()
				if a.lcuClient.IsConnected() {
					wasConnected = true
					a.connectWebSocket()
				}
			case isConnected && !a.wsClient.IsConnected():
				a.connectWebSocket()
			}
		}
	}
}

func (a *App) connectWebSocket() {
	creds := a.lcuClient.GetCredentials()
	if creds == nil {
		return
	}

	if err := a.wsClient.Connect(creds); err != nil {
		a.logger.Warn("lcu websocket connection failed", slog.Any("error", err))
		return
	}

	a.logger.Info("lcu websocket connected, listening for lobby changes")
}

func (a *App) tryConnect() {
	if err := a.lcuClient.Connect(); err != nil {
		runtime.EventsEmit(a.ctx, "lcu:status", map[string]interface{}{
			"connected": false,
		})
		return
	}

	runtime.EventsEmit(a.ctx, "lcu:status", map[string]interface{}{
		"connected": true,
	})
	a.onLobbyChange(true)
}
