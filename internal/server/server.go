package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"sandol-kakao-backend/internal/config"
	"sandol-kakao-backend/internal/meal"
	"sandol-kakao-backend/internal/store"
	"sandol-kakao-backend/internal/upstream"
)

type Server struct {
	router  *chi.Mux
	cfg     config.Config
	blocks  config.Blocks
	users   *store.UserStore
	gateway *upstream.Client
	flow    *meal.Flow
	loc     *time.Location
	log     *zap.Logger
}

func NewServer(cfg config.Config, blocks config.Blocks, users *store.UserStore, gateway *upstream.Client, flow *meal.Flow, loc *time.Location, log *zap.Logger) *Server {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	s := &Server{
		router:  r,
		cfg:     cfg,
		blocks:  blocks,
		users:   users,
		gateway: gateway,
		flow:    flow,
		loc:     loc,
		log:     log,
	}
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Post("/meal/view", s.handleMealView)
	s.router.Post("/meal/restaurant", s.handleRestaurantInfo)
	s.router.Post("/meal/register/{mealType}", s.handleMealRegister)
	s.router.Post("/meal/delete", s.handleMealDelete)
	s.router.Post("/meal/delete-all", s.handleMealDeleteAll)
	s.router.Post("/meal/submit", s.handleMealSubmit)

	s.router.Post("/notice/list", s.handleNotices)
	s.router.Post("/notice/dormitory", s.handleDormitoryNotices)

	s.router.Post("/classroom/empty/time", s.handleEmptyClassroomsByTime)
	s.router.Post("/classroom/empty/now", s.handleEmptyClassroomsByPeriod)

	s.router.Post("/statics/info", s.handleOrganizationInfo)
	s.router.Post("/statics/unit-info", s.handleUnitInfo)
	s.router.Post("/statics/shuttle", s.handleShuttle)

	s.router.Post("/get-id", s.handleGetID)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
