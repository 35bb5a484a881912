package main

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"zoomdocs/internal/events"
	"zoomdocs/internal/models"
	"zoomdocs/internal/services"
	"zoomdocs/internal/utils"
)

// App struct
type App struct {
	ctx     context.Context
	svc     *services.Services
	log     *zap.Logger
	dbClose func() error
}

// NewApp creates a new App application struct
func NewApp(svc *services.Services, log *zap.Logger) *App {
	return &App{svc: svc, log: log}
}

// startup is called when the app starts. The context is saved so we can call
// the runtime methods, then the session bootstrap is kicked off in the
// background so the window renders immediately.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	events.EnableRuntimeEmitter()

	a.svc.Session.Startup(ctx)
	a.svc.Prefs.Startup(ctx)
	if err := a.svc.Generation.Startup(ctx); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to start generation service: %v", err))
	}
	if err := a.svc.Documents.Startup(ctx); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to start document service: %v", err))
	}

	go a.svc.Session.Bootstrap()
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

// SessionSnapshot is the session view the frontend polls on top of the
// event stream.
type SessionSnapshot struct {
	State     services.SessionState  `json:"state"`
	Loading   services.LoadingStates `json:"loading"`
	Identity  models.Identity        `json:"identity"`
	Credits   *models.Credits        `json:"credits"`
	LastError string                 `json:"lastError"`
}

// GetSession returns the current session state in one call.
func (a *App) GetSession() SessionSnapshot {
	return SessionSnapshot{
		State:     a.svc.Session.State(),
		Loading:   a.svc.Session.Loading(),
		Identity:  a.svc.Session.Identity(),
		Credits:   a.svc.Session.Credits(),
		LastError: a.svc.Session.LastError(),
	}
}

// RetryBootstrap re-runs the session bootstrap after a failure.
func (a *App) RetryBootstrap() services.SessionState {
	if err := a.svc.Session.Reset(); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to reset session: %v", err))
	}
	return a.svc.Session.Bootstrap()
}

// SavePDF downloads the current run's PDF and writes it to a location picked
// through the native save dialog. Returns the chosen path, or "" if the user
// cancelled.
func (a *App) SavePDF() (string, error) {
	pdf, err := a.svc.Generation.DownloadPDF()
	if err != nil {
		return "", err
	}

	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save PDF",
		DefaultFilename: pdf.FileName,
		Filters: []runtime.FileFilter{
			{DisplayName: "PDF Documents (*.pdf)", Pattern: "*.pdf"},
		},
	})
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", nil
	}

	if err := utils.SaveBinaryFile(path, pdf.Data); err != nil {
		runtime.LogError(a.ctx, fmt.Sprintf("failed to save pdf: %v", err))
		return "", err
	}
	return path, nil
}
