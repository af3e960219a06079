// Package chi exposes the corpus query engine over HTTP.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/hansardlab/gavel/internal/domain"
	"github.com/hansardlab/gavel/internal/domain/listing/sort"
	billsuc "github.com/hansardlab/gavel/internal/usecase/bills"
	healthuc "github.com/hansardlab/gavel/internal/usecase/health"
	membersuc "github.com/hansardlab/gavel/internal/usecase/members"
	ministriesuc "github.com/hansardlab/gavel/internal/usecase/ministries"
	sectionsuc "github.com/hansardlab/gavel/internal/usecase/sections"
)

// cacheControl matches the staleness the response cache accepts: shared
// caches may serve for a minute and revalidate in the background.
const cacheControl = "public, s-maxage=60, stale-while-revalidate=300"

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server routes the listing and detail endpoints.
type Server struct {
	sections      *sectionsuc.Service
	bills         *billsuc.Service
	members       *membersuc.Service
	ministries    *ministriesuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler

	defSize int
	maxSize int
}

// NewServer creates an HTTP API server.
func NewServer(
	sections *sectionsuc.Service,
	bills *billsuc.Service,
	members *membersuc.Service,
	ministries *ministriesuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		sections:   sections,
		bills:      bills,
		members:    members,
		ministries: ministries,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrMemberNotFound, http.StatusNotFound, codeMemberNotFound),
		sentinelHandler(domain.ErrMinistryNotFound, http.StatusNotFound, codeMinistryNotFound),
		sentinelHandler(domain.ErrQueryFailed, http.StatusInternalServerError, codeQueryFailed),
	}
	return s
}

// WithPageSizes overrides the default and maximum page size of the listing
// endpoints. Zero values keep the listing package defaults.
func (s *Server) WithPageSizes(def, max int) *Server {
	s.defSize = def
	s.maxSize = max
	return s
}

// Routes mounts all endpoints on a router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.getHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/questions", s.listQuestions)
		r.Get("/motions", s.listMotions)
		r.Get("/bills", s.listBills)
		r.Get("/members", s.listMembers)
		r.Get("/members/{id}", s.getMember)
		r.Get("/ministries/{id}", s.getMinistry)
	})
}

// listQuestions handles GET /api/v1/questions.
func (s *Server) listQuestions(w http.ResponseWriter, r *http.Request) {
	p := listingParams(r, sort.Relevance, s.defSize, s.maxSize)

	page, err := s.sections.Questions(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCached(w, http.StatusOK, pageToDTO(page, sectionToDTO))
}

// listMotions handles GET /api/v1/motions.
func (s *Server) listMotions(w http.ResponseWriter, r *http.Request) {
	p := listingParams(r, sort.Relevance, s.defSize, s.maxSize)

	page, err := s.sections.Motions(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCached(w, http.StatusOK, pageToDTO(page, sectionToDTO))
}

// listBills handles GET /api/v1/bills.
func (s *Server) listBills(w http.ResponseWriter, r *http.Request) {
	p := listingParams(r, sort.Relevance, 50, s.maxSize)

	page, err := s.bills.List(r.Context(), p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCached(w, http.StatusOK, pageToDTO(page, billToDTO))
}

// listMembers handles GET /api/v1/members.
func (s *Server) listMembers(w http.ResponseWriter, r *http.Request) {
	p := listingParams(r, sort.Name, s.defSize, s.maxSize)
	constituency := r.URL.Query().Get("constituency")

	page, err := s.members.List(r.Context(), p, constituency)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCached(w, http.StatusOK, pageToDTO(page, memberToDTO))
}

// getMember handles GET /api/v1/members/{id}.
func (s *Server) getMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := detailParams(r, sort.Relevance)

	detail, err := s.members.Detail(r.Context(), id, p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCached(w, http.StatusOK, memberDetailToDTO(detail))
}

// getMinistry handles GET /api/v1/ministries/{id}.
func (s *Server) getMinistry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := detailParams(r, sort.Relevance)

	detail, err := s.ministries.Detail(r.Context(), id, p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeCached(w, http.StatusOK, ministryDetailToDTO(detail))
}

// getHealth handles GET /health.
func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if !report.Serving() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeCached writes a JSON response that downstream HTTP caches may hold.
func writeCached(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Cache-Control", cacheControl)
	writeJSON(w, status, v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeMessage(err))
		return true
	}
}

// safeMessage maps an error to its sentinel's message; raw driver errors
// never leak to callers.
func safeMessage(err error) string {
	sentinels := []error{
		domain.ErrMemberNotFound,
		domain.ErrMinistryNotFound,
		domain.ErrQueryFailed,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
