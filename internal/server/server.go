package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/drakos74/curvefit/fitting"
	"github.com/drakos74/curvefit/internal/job"
	"github.com/drakos74/curvefit/leastsquares"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

type Handler func(r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

// Server exposes the fitting endpoints over http.
// Requests are handled one at a time.
type Server struct {
	name   string
	addr   string
	debug  bool
	mutex  *sync.Mutex
	routes []Route
}

func NewServer(name string, addr string) *Server {
	return &Server{
		name:   name,
		addr:   addr,
		mutex:  new(sync.Mutex),
		routes: make([]Route, 0),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// AddRoute adds a route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	for _, r := range route {
		s.AddRoute(r.Method, r.Action, r.Path, r.Exec)
	}
	return s
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if Method(r.Method) != route.Method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		s.mutex.Lock()
		defer s.mutex.Unlock()
		start := time.Now()
		b, code, err := route.Exec(r)
		if s.debug {
			log.Debug().
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Str("remote-address", r.RemoteAddr).
				Float64("duration", time.Since(start).Seconds()).
				Msg("handled request")
		}
		if err != nil {
			s.error(w, err, code)
			return
		}
		s.code(w, b, code)
	}
}

// Handler creates the handler serving all routes and the metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		if route.Path != "" {
			mux.HandleFunc(fmt.Sprintf("/%s/%s", route.Action, route.Path), s.handle(route))
		} else {
			mux.HandleFunc(fmt.Sprintf("/%s", route.Action), s.handle(route))
		}
	}
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Run starts the server and blocks until the context is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Str("server", s.name).Msg("could not shut down server")
		}
	}()

	log.Info().Str("server", s.name).Str("addr", s.addr).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	if code == 0 {
		code = http.StatusOK
	}
	w.WriteHeader(code)
	if _, err := w.Write(b); err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func (s *Server) error(w http.ResponseWriter, err error, code int) {
	if code == 0 || code == http.StatusOK {
		code = http.StatusInternalServerError
	}
	log.Error().Err(err).Int("code", code).Msg("error for http request")
	s.code(w, []byte(err.Error()), code)
}

func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) ([]byte, int, error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// Fit runs the json encoded job of the request and responds with the result.
func Fit() Route {
	return Route{
		Action: Api,
		Path:   "fit",
		Method: POST,
		Exec: func(r *http.Request) ([]byte, int, error) {
			var j job.Job
			if err := JsonRead(r, &j); err != nil {
				return nil, http.StatusBadRequest, err
			}
			result, err := job.Run(j)
			if err != nil {
				return nil, status(err), err
			}
			b, err := json.Marshal(result)
			if err != nil {
				return nil, http.StatusInternalServerError, fmt.Errorf("could not encode result: %w", err)
			}
			return b, http.StatusOK, nil
		},
	}
}

// status maps a fit error to the response code.
func status(err error) int {
	switch {
	case errors.Is(err, job.UnknownFitterErr),
		errors.Is(err, job.UnknownOptimizerErr),
		errors.Is(err, fitting.InsufficientDataErr),
		errors.Is(err, fitting.MissingStartErr),
		errors.Is(err, leastsquares.NoDataErr),
		errors.Is(err, leastsquares.DimensionMismatchErr):
		return http.StatusBadRequest
	case errors.Is(err, fitting.IllConditionedErr),
		errors.Is(err, leastsquares.TooManyEvaluationsErr),
		errors.Is(err, leastsquares.TooManyIterationsErr),
		errors.Is(err, leastsquares.ConvergenceErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func JsonRead(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return fmt.Errorf("empty request body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("could not decode request: %w", err)
	}
	return nil
}
