package router

import (
	"net/http"

	_ "pet-care-planner/docs"
	mem "pet-care-planner/internal/adapters/storage/memory"
	"pet-care-planner/internal/adapters/storage/sqlstore"
	"pet-care-planner/internal/domain/caretasks"
	"pet-care-planner/internal/domain/events"
	"pet-care-planner/internal/domain/owners"
	"pet-care-planner/internal/domain/pets"
	"pet-care-planner/internal/domain/schedules"
	"pet-care-planner/internal/middleware"
	"pet-care-planner/internal/platform/logger"
	"pet-care-planner/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Logger       logger.Logger
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres/SQLite ya migrado. Si no, in-memory.
	DB *sqlstore.DB

	RateLimitPerMinute   int // 0 = sin límite
	Chronological        bool
	DefaultTimeAvailable int // 0 = owners.DefaultTimeAvailable
}

// Services agrupa los services por módulo ya cableados entre sí.
// cmd/api los reutiliza para el digest.
type Services struct {
	Owners    *owners.Service
	Pets      *pets.Service
	Tasks     *caretasks.Service
	Schedules *schedules.Service
	Events    *events.Service
}

func NewServices(opts Options) *Services {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	var (
		ownerRepo owners.Repository
		petRepo   pets.Repository
		taskRepo  caretasks.Repository
		eventRepo events.Repository
	)

	if opts.DB != nil {
		ownerRepo = sqlstore.NewOwnersRepo(opts.DB)
		petRepo = sqlstore.NewPetsRepo(opts.DB)
		taskRepo = sqlstore.NewCareTasksRepo(opts.DB)
		eventRepo = sqlstore.NewEventsRepo(opts.DB)
	} else {
		ownerRepo = mem.NewOwnerRepo()
		petRepo = mem.NewPetRepo()
		taskRepo = mem.NewCareTaskRepo()
		eventRepo = mem.NewEventRepo()
	}

	budget := opts.DefaultTimeAvailable
	if budget <= 0 {
		budget = owners.DefaultTimeAvailable
	}

	tasksSvc := caretasks.NewService(taskRepo, log)
	petsSvc := pets.NewService(petRepo, tasksSvc)
	ownersSvc := owners.NewService(ownerRepo, budget)
	eventsSvc := events.NewService(eventRepo, log)
	schedSvc := schedules.NewService(ownersSvc, petsSvc,
		schedules.NewScheduler(schedules.Options{Chronological: opts.Chronological}), log)

	// El registro de actividad escucha completions y planes generados.
	tasksSvc.OnComplete(eventsSvc)
	schedSvc.OnGenerate(eventsSvc)

	return &Services{
		Owners:    ownersSvc,
		Pets:      petsSvc,
		Tasks:     tasksSvc,
		Schedules: schedSvc,
		Events:    eventsSvc,
	}
}

func NewRouter(opts Options) http.Handler {
	return NewHandler(opts, NewServices(opts))
}

func NewHandler(opts Options, svc *Services) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier:      opts.AuthVerifier,
		Log:           log,
		RejectInvalid: opts.AuthVerifier != nil,
	}))
	r.Use(middleware.RateLimit(opts.RateLimitPerMinute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	owners.RegisterRoutes(r, svc.Owners)
	pets.RegisterRoutes(r, svc.Pets)
	caretasks.RegisterRoutes(r, svc.Tasks, svc.Pets)
	schedules.RegisterRoutes(r, svc.Schedules)
	events.RegisterRoutes(r, svc.Events, svc.Pets)

	return r
}
