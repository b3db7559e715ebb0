package main

import (
	"encoding/json"
	stdlog "log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/username/prosper/backend/src/config"
	"github.com/username/prosper/backend/src/database"
	"github.com/username/prosper/backend/src/handlers"
	"github.com/username/prosper/backend/src/logger"
	"github.com/username/prosper/backend/src/security"
	"github.com/username/prosper/backend/src/services"
	"golang.org/x/time/rate"
)

var limiter = rate.NewLimiter(rate.Every(100*time.Millisecond), 30)

func rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			logger.L.Warn("Rate limit exceeded", "path", r.URL.Path)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func enableCORS(next http.Handler) http.Handler {
	allowedOrigins := make(map[string]bool, len(config.Cfg.AllowedOrigins))
	for _, origin := range config.Cfg.AllowedOrigins {
		allowedOrigins[origin] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization, X-Requested-With")
		}

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	logger.L.Info("Prosper backend server starting...")

	if len(config.Cfg.JWTSecret) < 32 {
		stdlog.Fatal("JWT_SECRET configuration invalid: must be at least 32 characters")
	}

	logger.L.Info("Initializing database...", "path", config.Cfg.DatabasePath)
	database.InitDB(config.Cfg.DatabasePath)
	database.RunMigrations(config.Cfg.DatabasePath)

	dayCache := cache.New(services.DefaultCacheExpiration, services.CacheCleanupInterval)
	store := database.NewStore(database.DB)

	planner, err := services.NewPlannerService(store, services.SystemClock{}, dayCache, config.Cfg.MaxNavigationYears)
	if err != nil {
		stdlog.Fatalf("Failed to load planner state: %v", err)
	}

	authService := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)

	authHandler := handlers.NewAuthHandler(authService)
	calendarHandler := handlers.NewCalendarHandler(planner)
	txHandler := handlers.NewTransactionHandler(planner)
	settlementHandler := handlers.NewSettlementHandler(planner)
	vaultHandler := handlers.NewVaultHandler(planner)
	backupHandler := handlers.NewBackupHandler(planner)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(handlers.ContextualLoggerMiddleware)
	r.Use(enableCORS)
	r.Use(rateLimitMiddleware)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "Prosper Backend is running"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/login", authHandler.LoginHandler)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(authService))

			r.Get("/calendar/day", calendarHandler.HandleGetDayData)
			r.Get("/calendar/month", calendarHandler.HandleGetMonthView)
			r.Get("/calendar/upcoming", calendarHandler.HandleGetUpcoming)

			r.Get("/transactions", txHandler.HandleListTransactions)
			r.Post("/transactions", txHandler.HandleAddTransaction)
			r.Put("/transactions/{id}", txHandler.HandleUpdateTransaction)
			r.Delete("/transactions/{id}", txHandler.HandleDeleteTransaction)
			r.Post("/transactions/{id}/copy", txHandler.HandleCopyTransaction)

			r.Post("/occurrences/pay", settlementHandler.HandleRecordPayment)
			r.Post("/occurrences/unpay", settlementHandler.HandleUnpay)
			r.Post("/occurrences/toggle-skip", settlementHandler.HandleToggleSkip)

			r.Get("/vaults", vaultHandler.HandleListVaults)
			r.Post("/vaults", vaultHandler.HandleSaveVault)
			r.Put("/vaults/order", vaultHandler.HandleReorderVaults)
			r.Put("/vaults/{id}", vaultHandler.HandleSaveVault)
			r.Delete("/vaults/{id}", vaultHandler.HandleDeleteVault)

			r.Get("/jars", vaultHandler.HandleListJars)
			r.Post("/jars", vaultHandler.HandleSaveJar)
			r.Put("/jars/order", vaultHandler.HandleReorderJars)
			r.Put("/jars/{id}", vaultHandler.HandleSaveJar)
			r.Delete("/jars/{id}", vaultHandler.HandleDeleteJar)

			r.Get("/backup/export", backupHandler.HandleExport)
			r.Post("/backup/import", backupHandler.HandleImport)
			r.Post("/backup/clear", backupHandler.HandleClearAll)
		})
	})

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.L.Info("Server starting", "address", serverAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		stdlog.Fatalf("Failed to start server: %v", err)
	}
}
