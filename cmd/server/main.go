package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"itacaos/internal/db"
	"itacaos/internal/handlers"
	mw "itacaos/internal/middleware"
)

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logger.Fatal("DATABASE_URL is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is required")
	}
	port := getenv("PORT", "8080")

	dbConn, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		logger.Fatal("failed to open db", zap.Error(err))
	}
	dbConn.SetMaxOpenConns(10)
	dbConn.SetConnMaxLifetime(2 * time.Hour)
	if err = dbConn.Ping(); err != nil {
		logger.Fatal("failed to ping db", zap.Error(err))
	}
	if err := db.RunMigrations(dbConn); err != nil {
		logger.Fatal("failed migrations", zap.Error(err))
	}
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		if err := db.EnsureAdmin(context.Background(), dbConn, adminEmail, getenv("ADMIN_PASSWORD", handlers.TempPassword)); err != nil {
			logger.Fatal("failed to seed admin", zap.Error(err))
		}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(dbConn, []byte(jwtSecret))
	checkinHandler := handlers.NewCheckinHandler(dbConn)
	assessmentHandler := handlers.NewAssessmentHandler(dbConn)
	faroHandler := handlers.NewFaroHandler(dbConn)
	journalHandler := handlers.NewJournalHandler(dbConn)
	logrosHandler := handlers.NewLogrosHandler(dbConn)
	notifHandler := handlers.NewNotificationsHandler(dbConn)
	profileHandler := handlers.NewProfileHandler(dbConn)
	goalsHandler := handlers.NewGoalsHandler(dbConn)
	adminHandler := handlers.NewAdminHandler(dbConn)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", authHandler.Login)

		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)

			pr.Post("/auth/password", authHandler.ChangePassword)

			pr.Post("/checkins", checkinHandler.Submit)
			pr.Get("/checkins", checkinHandler.ListMine)
			pr.Get("/checkins/semana", checkinHandler.WeekStatus)
			pr.Get("/checkins/equipo", checkinHandler.ListTeam)

			pr.Post("/evaluaciones/hexagono", assessmentHandler.SubmitHexagono)
			pr.Get("/evaluaciones/hexagono", assessmentHandler.ListHexagono)
			pr.Post("/evaluaciones/brujula", assessmentHandler.SubmitBrujula)
			pr.Get("/evaluaciones/brujula", assessmentHandler.ListBrujula)

			pr.Post("/faros", faroHandler.Send)
			pr.Post("/faros/{id}/celebrar", faroHandler.Celebrar)
			pr.Get("/faros/recibidos", faroHandler.ListRecibidos)
			pr.Get("/faros/enviados", faroHandler.ListEnviados)
			pr.Get("/faros/publicos", faroHandler.ListPublicos)

			pr.Post("/journal", journalHandler.Add)
			pr.Get("/journal", journalHandler.List)

			pr.Post("/logros", logrosHandler.Award)
			pr.Get("/logros", logrosHandler.List)
			pr.Get("/logros/puntos", logrosHandler.Puntos)

			pr.Get("/notificaciones", notifHandler.List)
			pr.Get("/notificaciones/no-leidas", notifHandler.Unread)
			pr.Put("/notificaciones/{id}/leida", notifHandler.MarkRead)

			pr.Get("/perfil", profileHandler.GetMe)
			pr.Put("/perfil", profileHandler.UpdateMe)

			pr.Post("/metas", goalsHandler.AddMeta)
			pr.Get("/metas", goalsHandler.ListMetas)
			pr.Put("/metas/{id}/progreso", goalsHandler.UpdateMetaProgreso)
			pr.Post("/planes", goalsHandler.AddPlan)
			pr.Get("/planes", goalsHandler.ListPlanes)
			pr.Post("/ejercicios", goalsHandler.AddEjercicio)
			pr.Get("/ejercicios", goalsHandler.ListEjercicios)

			pr.Route("/admin", func(ad chi.Router) {
				ad.Get("/usuarios", adminHandler.ListUsers)
				ad.Post("/usuarios", adminHandler.AddUser)
				ad.Put("/usuarios/{email}", adminHandler.UpdateUser)
				ad.Post("/usuarios/{email}/desactivar", adminHandler.Desactivar)
				ad.Post("/usuarios/{email}/reactivar", adminHandler.Reactivar)
				ad.Post("/usuarios/{email}/reset-password", adminHandler.ResetPassword)
				ad.Get("/resumen", adminHandler.Resumen)
				ad.Get("/analytics", adminHandler.Analytics)
			})
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		logger.Info("server starting", zap.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info("server stopped")
}
