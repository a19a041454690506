package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gradplus/internal/api"
	"gradplus/internal/domain"
	"gradplus/internal/logging"
	"gradplus/internal/ports"
	"gradplus/internal/services/companies"
	"gradplus/internal/services/lookups"
	"gradplus/internal/workers/lookuprunner"
)

const (
	defaultWaitTimeout = 60
	maxWaitTimeout     = 300
	maxBodyBytes       = 1 << 16
)

// Server implements the generated StrictServerInterface.
type Server struct {
	companies ports.Companies
	lookups   ports.Lookups
	jobs      ports.LookupJobRepository
	processor lookuprunner.Processor
	limiter   *rate.Limiter
	log       *zap.Logger
}

func New(companies ports.Companies, lookups ports.Lookups, jobs ports.LookupJobRepository, processor lookuprunner.Processor, limiter *rate.Limiter, log *zap.Logger) *Server {
	return &Server{
		companies: companies,
		lookups:   lookups,
		jobs:      jobs,
		processor: processor,
		limiter:   limiter,
		log:       logging.OrNop(log),
	}
}

// Routes returns a chi.Router mounting the generated handlers.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestSize(maxBodyBytes))

	handler := api.NewStrictHandlerWithOptions(s, nil, api.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  badRequest,
		ResponseErrorHandlerFunc: s.internalError,
	})
	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: badRequest,
	})
	return r
}

func (s *Server) GetHealthz(_ context.Context, _ api.GetHealthzRequestObject) (api.GetHealthzResponseObject, error) {
	return api.GetHealthz200JSONResponse{Status: "ok"}, nil
}

func (s *Server) SearchCompanies(ctx context.Context, req api.SearchCompaniesRequestObject) (api.SearchCompaniesResponseObject, error) {
	c, err := s.companies.Search(ctx, req.Params.Q)
	switch {
	case err == nil:
		return api.SearchCompanies200JSONResponse(*c), nil
	case eris.Is(err, companies.ErrEmptyTerm):
		return api.SearchCompanies400JSONResponse{Error: err.Error()}, nil
	case companies.NoRecord(err):
		return api.SearchCompanies404JSONResponse{Error: err.Error()}, nil
	default:
		s.log.Warn("company search failed", zap.String("q", req.Params.Q), zap.Error(err))
		return api.SearchCompanies502JSONResponse{Error: "company lookup failed upstream"}, nil
	}
}

func (s *Server) GetCompany(ctx context.Context, req api.GetCompanyRequestObject) (api.GetCompanyResponseObject, error) {
	c, err := s.companies.Get(ctx, req.Oib)
	switch {
	case err == nil:
		return api.GetCompany200JSONResponse(*c), nil
	case eris.Is(err, companies.ErrInvalidOIB):
		return api.GetCompany400JSONResponse{Error: err.Error()}, nil
	case eris.Is(err, companies.ErrNotFound):
		return api.GetCompany404JSONResponse{Error: err.Error()}, nil
	default:
		return nil, err
	}
}

func (s *Server) PostLookup(ctx context.Context, req api.PostLookupRequestObject) (api.PostLookupResponseObject, error) {
	if req.Body == nil {
		return api.PostLookup400JSONResponse{Error: "missing body"}, nil
	}
	wait := req.Params.Wait != nil && *req.Params.Wait
	if !wait {
		id, err := s.lookups.Enqueue(ctx, req.Body.Term)
		if eris.Is(err, lookups.ErrEmptyTerm) {
			return api.PostLookup400JSONResponse{Error: err.Error()}, nil
		}
		if err != nil {
			return nil, err
		}
		return api.PostLookup202JSONResponse{Id: id}, nil
	}

	// The job is created running so background workers never claim it.
	job, err := s.lookups.Start(ctx, req.Body.Term)
	if eris.Is(err, lookups.ErrEmptyTerm) {
		return api.PostLookup400JSONResponse{Error: err.Error()}, nil
	}
	if err != nil {
		return nil, err
	}
	secs := defaultWaitTimeout
	if req.Params.Timeout != nil && *req.Params.Timeout > 0 {
		secs = min(*req.Params.Timeout, maxWaitTimeout)
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(secs)*time.Second)
	defer cancel()
	job, err = lookuprunner.ProcessInline(ctx, s.jobs, s.processor, job, s.limiter, s.log)
	if err != nil {
		return nil, err
	}
	return api.PostLookup200JSONResponse(toAPIJob(job)), nil
}

func (s *Server) GetLookup(ctx context.Context, req api.GetLookupRequestObject) (api.GetLookupResponseObject, error) {
	job, err := s.lookups.Status(ctx, req.Id)
	switch {
	case err == nil:
		return api.GetLookup200JSONResponse(toAPIJob(job)), nil
	case eris.Is(err, lookups.ErrNotFound):
		return api.GetLookup404JSONResponse{Error: err.Error()}, nil
	default:
		return nil, err
	}
}

func toAPIJob(j domain.LookupJob) api.LookupJob {
	out := api.LookupJob{Id: j.ID, Term: j.Term, Status: api.LookupStatus(j.Status), Attempts: j.Attempts}
	if j.OIB != "" {
		out.Oib = &j.OIB
	}
	if j.Reason != "" {
		out.Reason = &j.Reason
	}
	return out
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func badRequest(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.Error{Error: msg})
}
