package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/studyquery/backend/internal/api"
	"github.com/studyquery/backend/internal/config"
	"github.com/studyquery/backend/internal/history"
	"github.com/studyquery/backend/internal/models"
	"github.com/studyquery/backend/internal/questions"
	"github.com/studyquery/backend/internal/remote"
	"github.com/studyquery/backend/internal/state"
	"github.com/studyquery/backend/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "StudyQueryGateway.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	// Initialize slot and session state
	stateMgr := state.NewManager()

	// Initialize the inference service client
	inferenceClient := remote.NewHTTPClient(
		cfg.Inference.BaseURL,
		time.Duration(cfg.Inference.UploadTimeoutSeconds)*time.Second,
	)

	// Initialize question history (optional)
	var historyStore api.HistoryStore
	if cfg.History.Enabled {
		store, err := history.NewStore(cfg.History.DatabasePath, cfg.History.MaxEntries)
		if err != nil {
			fmt.Printf("Warning: failed to open history database: %v\n", err)
		} else {
			defer store.Close()
			historyStore = store
		}
	}

	// Load suggested questions, falling back to the built-in catalog
	var questionSet *models.QuestionSet
	questionSet, err = questions.Load(cfg.Content.SuggestedQuestionsPath)
	if err != nil {
		fmt.Printf("Warning: failed to load suggested questions: %v\n", err)
		questionSet = questions.DefaultSet()
	} else {
		fmt.Printf("Loaded %d suggested questions\n", len(questionSet.Questions))
	}

	// Initialize API handlers
	handlers := api.NewHandlers(&api.Dependencies{
		Store:         fileStore,
		State:         stateMgr,
		Remote:        inferenceClient,
		History:       historyStore,
		Questions:     questionSet,
		Version:       Version,
		UploadTimeout: time.Duration(cfg.Inference.UploadTimeoutSeconds) * time.Second,
		QueryTimeout:  time.Duration(cfg.Inference.QueryTimeoutSeconds) * time.Second,
	})

	e := echo.New()
	api.SetupMiddleware(e)

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/status") || strings.HasSuffix(path, "/health")
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	// Compression middleware; WebSocket upgrades must pass through untouched
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, "/api/ws/")
		},
	}))

	// Body limit middleware
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS configuration
	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// Register routes
	api.RegisterRoutes(e, handlers)
	api.RegisterWebSocketRoutes(e, handlers)

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Print startup banner
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           StudyQuery Gateway Server                       ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Inference: %-46s║\n", cfg.Inference.BaseURL)
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}
