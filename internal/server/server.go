package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"comunidad/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

var queryDecoder = form.NewDecoder()

// storeTimeout bounds the datastore work of a single request.
const storeTimeout = 5 * time.Second

type ParticipantStore interface {
	ParticipantByEmail(ctx context.Context, email string) (*types.Participant, error)
	UpsertParticipant(ctx context.Context, participant *types.Participant) (*types.Participant, error)
}

type CategoryStore interface {
	Categories(ctx context.Context) ([]*types.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*types.Category, error)
}

type QuestionStore interface {
	Questions(ctx context.Context) ([]*types.Question, error)
}

type NeedStore interface {
	CreateNeed(ctx context.Context, need *types.Need) (*types.Need, error)
	LatestNeeds(ctx context.Context, limit uint64) ([]*types.Need, error)
}

type ReportStore interface {
	Responses(ctx context.Context, filter types.ResponseFilter) ([]*types.Response, error)
	CategoryStats(ctx context.Context) ([]*types.CategoryStat, error)
}

type HealthStore interface {
	Now(ctx context.Context) (time.Time, error)
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	participants ParticipantStore
	categories   CategoryStore
	questions    QuestionStore
	needs        NeedStore
	reports      ReportStore
	health       HealthStore

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	participants ParticipantStore,
	categories CategoryStore,
	questions QuestionStore,
	needs NeedStore,
	reports ReportStore,
	health HealthStore,
) (*Service, error) {
	if len(config.AllowedOrigins) == 0 {
		return nil, fmt.Errorf("at least one allowed CORS origin is required")
	}

	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		participants: participants,
		categories:   categories,
		questions:    questions,
		needs:        needs,
		reports:      reports,
		health:       health,
	}

	s.buildRouter(mux)

	corsPolicy := cors.New(cors.Options{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
	})

	var handler http.Handler = mux
	handler = s.StripTrailingSlash(handler)
	handler = corsPolicy.Handler(handler)
	// Recovery sits inside logging so a panic still gets its access line
	// and its request id.
	handler = s.RecoverMiddleware(handler)
	handler = s.LoggingMiddleware(handler)

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", config.ServerPort),
		Handler:           handler,
		ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
		ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
		WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the fully wrapped handler chain.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.NotFound = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowed = http.HandlerFunc(s.handleMethodNotAllowed)

	r.HandleFunc("/health", instrument("health", s.handleHealth), http.MethodGet)

	r.HandleFunc("/categories", instrument("categories", s.handleListCategories), http.MethodGet)
	r.HandleFunc("/questions", instrument("questions", s.handleListQuestions), http.MethodGet)

	r.HandleFunc("/participants/register", instrument("participants_register", s.handleRegisterParticipant), http.MethodPost)

	r.HandleFunc("/needs", instrument("needs_create", s.handleCreateNeed), http.MethodPost)
	r.HandleFunc("/needs", instrument("needs_list", s.handleListNeeds), http.MethodGet)

	r.HandleFunc("/responses", instrument("responses", s.handleListResponses), http.MethodGet)
	r.HandleFunc("/stats/categories", instrument("stats_categories", s.handleCategoryStats), http.MethodGet)

	r.Handle("/metrics", promhttp.Handler(), http.MethodGet)
}

func (s *Service) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), storeTimeout)
}
