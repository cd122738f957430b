// Package httpapi exposes the development backend over HTTP. Routes:
//
//	POST {base}/auth/send-otp     issue a code
//	POST {base}/auth/verify-otp   exchange a code for a bearer token
//	GET  {base}/family/members    list other users (bearer token required)
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/expenseshare/internal/devserver/users"
	"github.com/dmitrijs2005/expenseshare/internal/logging"
)

type Server struct {
	address  string
	basePath string
	users    *users.Service
	logger   logging.Logger
}

func NewServer(address, basePath string, us *users.Service, l logging.Logger) *Server {
	return &Server{
		address:  address,
		basePath: basePath,
		users:    us,
		logger:   l.With("module", "http_server"),
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	// Routes sit on the root router so a method mismatch reaches
	// MethodNotAllowedHandler.
	r.HandleFunc(s.basePath+"/auth/send-otp", s.sendOTP).Methods(http.MethodPost)
	r.HandleFunc(s.basePath+"/auth/verify-otp", s.verifyOTP).Methods(http.MethodPost)
	r.Handle(s.basePath+"/family/members", s.requireToken(http.HandlerFunc(s.familyMembers))).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String(), "base_path", s.basePath)

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message, Status: status})
}
