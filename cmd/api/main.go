package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sunnyops/sunny-admin/internal/config"
	"github.com/sunnyops/sunny-admin/internal/entity"
	"github.com/sunnyops/sunny-admin/internal/infra/database"
	"github.com/sunnyops/sunny-admin/internal/infra/http/handlers"
	"github.com/sunnyops/sunny-admin/internal/infra/http/middleware"
	"github.com/sunnyops/sunny-admin/internal/infra/http/view"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/gotrue"
	"github.com/sunnyops/sunny-admin/internal/infra/integration/postgrest"
	"github.com/sunnyops/sunny-admin/internal/infra/mail"
	"github.com/sunnyops/sunny-admin/internal/infra/remote"
	"github.com/sunnyops/sunny-admin/internal/usecase"
)

type repositories struct {
	trainers entity.TrainerRepositoryInterface
	sales    entity.SaleRepositoryInterface
	leads    entity.LeadRepositoryInterface
	views    entity.ViewRepositoryInterface
	profiles entity.ProfileRepositoryInterface
}

func main() {
	godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Auth gateway
	auth := gotrue.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	go auth.RunRefresh(ctx, time.Minute)

	// 2. Repositories: direct Postgres when DATABASE_URL is set,
	// otherwise the REST data API with the signed-in user's token.
	var repos repositories
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.NewDBConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()

		repos = repositories{
			trainers: database.NewTrainerRepository(db),
			sales:    database.NewSaleRepository(db),
			leads:    database.NewLeadRepository(db),
			views:    database.NewViewRepository(db),
			profiles: database.NewProfileRepository(db),
		}
	} else {
		data := postgrest.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, auth.AccessToken)
		repos = repositories{
			trainers: remote.NewTrainerRepository(data),
			sales:    remote.NewSaleRepository(data),
			leads:    remote.NewLeadRepository(data),
			views:    remote.NewViewRepository(data),
			profiles: remote.NewProfileRepository(data),
		}
	}

	// 3. Session coordinator
	sessions := usecase.NewSessionCoordinator(auth, repos.profiles, nil)
	if cfg.BackendConfigured() {
		go sessions.Initialize(ctx)
	}
	go sessions.Run(ctx)

	// 4. Mail
	var mailer usecase.EmailService
	if cfg.MailConfigured() {
		mailer = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailUser)
	}

	// 5. Use cases
	salesDashboardUC := usecase.NewGetSalesDashboardUseCase(repos.trainers, repos.sales, repos.views)
	leadsDashboardUC := usecase.NewGetLeadsDashboardUseCase(repos.trainers, repos.leads)
	expiryDashboardUC := usecase.NewGetExpiryDashboardUseCase(repos.trainers, repos.views)
	saveSaleUC := usecase.NewSaveSaleUseCase(repos.sales)
	saveLeadUC := usecase.NewSaveLeadUseCase(repos.leads)
	saveTrainerUC := usecase.NewSaveTrainerUseCase(repos.trainers)

	// 6. Views and handlers
	renderer, err := view.New(cfg.BasePath)
	if err != nil {
		log.Fatal(err)
	}

	loginHandler := handlers.NewLoginHandler(sessions, renderer, cfg.BackendConfigured(), cfg.BasePath, nil)
	salesHandler := handlers.NewSalesHandler(salesDashboardUC, saveSaleUC, saveTrainerUC, repos.sales, renderer, cfg.BasePath, nil)
	leadsHandler := handlers.NewLeadsHandler(leadsDashboardUC, saveLeadUC, repos.leads, renderer, cfg.BasePath, nil)
	ctaHandler := handlers.NewCTAHandler(expiryDashboardUC, repos.views, mailer, cfg.MailRecipient, renderer, cfg.BasePath, nil)
	callHandler := handlers.NewCallHandler(cfg.BasePath)
	apiHandler := handlers.NewAPIHandler(repos.views, nil)
	healthHandler := handlers.NewHealthHandler(db, cfg.BackendConfigured(), cfg.MailConfigured())

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Route(cfg.BasePath, func(r chi.Router) {
		r.Get("/login", loginHandler.ShowForm)
		r.Post("/login", loginHandler.Submit)
		r.Post("/logout", loginHandler.Logout)
		r.Post("/visibility", loginHandler.Visibility)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Guard(sessions, renderer, cfg.BackendConfigured(), cfg.BasePath))

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				http.Redirect(w, req, cfg.BasePath+"/sales", http.StatusSeeOther)
			})
			r.Get("/sales", salesHandler.Show)
			r.Post("/sales", salesHandler.Save)
			r.Post("/sales/trainers", salesHandler.CreateTrainer)
			r.Post("/sales/delete", salesHandler.Delete)
			r.Get("/leads", leadsHandler.Show)
			r.Post("/leads", leadsHandler.Save)
			r.Post("/leads/status", leadsHandler.Save)
			r.Post("/leads/delete", leadsHandler.Delete)
			r.Get("/cta", ctaHandler.Show)
			r.Post("/cta/digest", ctaHandler.SendDigest)
			r.Get("/call", callHandler.Handle)
		})

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "OPTIONS"},
			}))
			r.Use(middleware.APIGuard(sessions))
			r.Get("/rankings", apiHandler.Rankings)
			r.Get("/expiry-alerts", apiHandler.ExpiryAlerts)
		})
	})

	// Anything else lands on the login page.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, cfg.BasePath+"/login", http.StatusSeeOther)
	})

	log.Printf("🔥 Sunny admin listening on %s (pages under %s)", cfg.ListenAddr, cfg.BasePath)
	http.ListenAndServe(cfg.ListenAddr, r)
}
