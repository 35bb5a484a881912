package main

import (
	"embed"
	"fmt"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"gorm.io/gorm/logger"

	"zoomdocs/internal/api"
	zdconfig "zoomdocs/internal/config"
	"zoomdocs/internal/database"
	zdlogger "zoomdocs/internal/logger"
	"zoomdocs/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {

	cfg, err := zdconfig.Load()
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		return
	}

	log := zdlogger.New(cfg.LogPath, cfg.Prod)
	defer log.Sync()

	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: logger.Warn,
	})
	if err != nil {
		fmt.Println("Error opening database:", err)
		return
	}

	apiClient := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.APITimeout,
	}, log)

	svc := services.NewServices(db, apiClient, log)
	app := NewApp(svc, log)

	if sqlDB, err := db.DB(); err == nil {
		app.dbClose = sqlDB.Close
	}

	// Create application with options
	err = wails.Run(&options.App{
		Title:  "ZoomDocs",
		Width:  1024,
		Height: 768,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyAlways,
			ProgramName:         "ZoomDocs",
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnShutdown:       app.shutdown,
		Bind: []interface{}{
			app,
			svc.Session,
			svc.Generation,
			svc.Documents,
			svc.Prefs,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
