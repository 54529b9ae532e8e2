package main

import (
	"net/http"
	"os"

	"github.com/fretecalc/backend/internal/auth"
	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/handlers"
	"github.com/fretecalc/backend/internal/middleware"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	log.Info("Connected to MongoDB")

	database := client.Database(db.DatabaseName())
	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	roles := &db.MongoRoleGrantCollection{Collection: database.Collection("user_roles")}
	settings := &db.MongoSettingsCollection{Collection: database.Collection("rate_settings")}
	items := &db.MongoItemCollection{Collection: database.Collection("maintenance_items")}
	events := &db.MongoEventCollection{Collection: database.Collection("replacements")}
	kmlog := &db.MongoDistanceLogCollection{Collection: database.Collection("km_records")}
	odometer := &db.MongoOdometerCollection{Collection: database.Collection("odometer")}
	banners := &db.MongoBannerCollection{Collection: database.Collection("banners")}

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("Failed to create auth service")
	}

	authHandler := handlers.NewAuthHandler(authService, users, roles)
	freightHandler := handlers.NewFreightHandler(settings, items)
	settingsHandler := handlers.NewSettingsHandler(settings, items)
	itemsHandler := handlers.NewItemsHandler(items)
	replacementsHandler := handlers.NewReplacementsHandler(events, items, odometer)
	kmlogHandler := handlers.NewKmLogHandler(kmlog, settings, items)
	gateHandler := handlers.NewGateHandler(roles)
	adminHandler := handlers.NewAdminHandler(users, roles)
	bannerHandler := handlers.NewBannerHandler(banners)

	authMW := middleware.NewAuthMiddleware(authService, roles)
	rateLimitMW := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("/api/auth/profile", authHandler.GetProfile)

	mux.HandleFunc("/api/freight/quote", freightHandler.Quote)
	mux.Handle("/api/settings", settingsHandler)
	mux.HandleFunc("/api/gate", gateHandler.Check)
	mux.HandleFunc("/api/banners", bannerHandler.ListActive)

	// Premium features: maintenance monitor and distance log.
	mux.Handle("/api/maintenance/items", authMW.RequirePremium(itemsHandler))
	mux.Handle("/api/maintenance/replacements", authMW.RequirePremium(http.HandlerFunc(replacementsHandler.Events)))
	mux.Handle("/api/maintenance/status", authMW.RequirePremium(http.HandlerFunc(replacementsHandler.Status)))
	mux.Handle("/api/maintenance/odometer", authMW.RequirePremium(http.HandlerFunc(replacementsHandler.Odometer)))
	mux.Handle("/api/kmlog", authMW.RequirePremium(kmlogHandler))

	mux.Handle("/api/admin/users", authMW.RequireAdmin(http.HandlerFunc(adminHandler.ListUsers)))
	mux.Handle("/api/admin/roles", authMW.RequireAdmin(http.HandlerFunc(adminHandler.SetRole)))
	mux.Handle("/api/admin/roles/expire", authMW.RequireAdmin(http.HandlerFunc(adminHandler.ExpireRole)))
	mux.Handle("/api/admin/banners", authMW.RequireAdmin(http.HandlerFunc(bannerHandler.Manage)))

	handler := rateLimitMW.RateLimit(120, 60)(authMW.Authenticate(mux))

	startOdometerSubscriber(odometer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.WithField("port", port).Info("HTTP server listening")
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
