package main

import (
	"context"
	"log/slog"

	"riftroulette/internal/config"
	"riftroulette/internal/ddragon"
	"riftroulette/internal/generator"
	"riftroulette/internal/history"
	"riftroulette/internal/lcu"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App wires the data store, generator, history and LCU roster together and
// exposes them to the frontend.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	logger *slog.Logger

	store *ddragon.Store
	gen   *generator.Generator
	hist  *history.Store

	lcuClient *lcu.Client
	wsClient  *lcu.WebSocketClient
	stopPoll  chan struct{}
}

// NewApp creates the application struct
func NewApp() *App {
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		cfg = &config.Config{}
	}

	client := ddragon.NewClient(
		ddragon.WithBaseURL(cfg.BaseURL),
		ddragon.WithLocale(cfg.Locale),
		ddragon.WithCacheDir(cfg.CacheDir),
		ddragon.WithTimeout(cfg.RequestTimeout),
		ddragon.WithLogger(logger),
	)
	store := ddragon.NewStore(client, logger)

	return &App{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		gen:       generator.New(store, generator.WithLogger(logger)),
		lcuClient: lcu.NewClient(),
		wsClient:  lcu.NewWebSocketClient(logger),
		stopPoll:  make(chan struct{}),
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	hist, err := history.New(a.cfg.HistoryPath)
	if err != nil {
		a.logger.Error("history store unavailable", slog.Any("error", err))
	} else {
		a.hist = hist
	}

	// Load reference data in the background; the frontend shows a spinner
	// until data:status reports loaded.
	go func() {
		if err := a.store.EnsureLoaded(ctx); err != nil {
			a.logger.Error("failed to load reference data", slog.Any("error", err))
			a.emitDataStatus(err)
			return
		}
		a.emitDataStatus(nil)
	}()

	a.wsClient.SetRosterHandler(a.onLobbyChange)
	go a.pollForLeagueClient()
}

// shutdown is called when the app is closing
func (a *App) shutdown(ctx context.Context) {
	close(a.stopPoll)
	a.wsClient.Disconnect()
	a.lcuClient.Disconnect()
	if a.hist != nil {
		a.hist.Close()
	}
}

func (a *App) emitDataStatus(err error) {
	data := map[string]interface{}{
		"loaded":  a.store.Loaded(),
		"version": a.store.Version(),
	}
	if err != nil {
		data["error"] = err.Error()
	}
	runtime.EventsEmit(a.ctx, "data:status", data)
}

// GenerateLoadouts rolls one loadout per player for the given mode and
// records the result in history. Failures abort the whole call; the
// frontend surfaces the error and offers retry.
func (a *App) GenerateLoadouts(players []string, mode string) (map[string]generator.Loadout, error) {
	loadouts, err := a.gen.Generate(a.ctx, players, mode)
	if err != nil {
		return nil, err
	}

	if a.hist != nil {
		if err := a.hist.Record(a.ctx, mode, loadouts); err != nil {
			a.logger.Warn("failed to record history", slog.Any("error", err))
		}
	}

	runtime.EventsEmit(a.ctx, "loadouts:generated", map[string]interface{}{
		"mode":    mode,
		"players": len(loadouts),
		"version": a.store.Version(),
	})
	return loadouts, nil
}

// RefreshData re-fetches the latest dataset version, rebuilding the store
// and discarding all derived item pools.
func (a *App) RefreshData() error {
	err := a.store.Refresh(a.ctx)
	a.emitDataStatus(err)
	return err
}

// DataStatus reports whether reference data is loaded and at which version
func (a *App) DataStatus() map[string]interface{} {
	return map[string]interface{}{
		"loaded":  a.store.Loaded(),
		"version": a.store.Version(),
	}
}

// Modes returns the supported game mode tags
func (a *App) Modes() []string {
	return generator.Modes()
}

// LobbyRoster returns the current lobby's player names, or an empty list
// when the League Client is not running or no lobby is open.
func (a *App) LobbyRoster() []string {
	return a.lcuClient.Players()
}

// RecentHistory returns the newest recorded loadouts
func (a *App) RecentHistory(limit int) ([]history.Entry, error) {
	if a.hist == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return a.hist.Recent(a.ctx, limit)
}

