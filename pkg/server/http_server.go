package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/homewardhq/homeward/pkg/application"
)

func NewHTTPServer(app application.Application, allowedOrigins []string) *HTTPServer {
	return &HTTPServer{
		Controllers:    app.Controllers(),
		Middlewares:    app.Middleware(),
		AllowedOrigins: allowedOrigins,
	}
}

type HTTPServer struct {
	Controllers    []application.Controller
	Middlewares    []mux.MiddlewareFunc
	AllowedOrigins []string

	srv *http.Server
}

func (s *HTTPServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.Middlewares...)
	for _, controller := range s.Controllers {
		controller.Register(r)
	}
	return r
}

func (s *HTTPServer) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(s.Router())
}

func (s *HTTPServer) Start(socketAddress string) error {
	s.srv = &http.Server{
		Addr:              socketAddress,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.srv.ListenAndServe()
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
