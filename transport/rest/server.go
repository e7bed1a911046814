package rest

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/matryer/way"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger     *slog.Logger
	page       *template.Template
	socketPort string
	sessionTTL time.Duration
}

// New creates the server for the game page. socketPort is where the page opens its WebSocket.
func New(logger *slog.Logger, socketPort string, sessionTTL time.Duration) (*Server, error) {
	page, err := template.ParseFS(static, "static/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Server{
		logger:     logger.With("component", "rest"),
		page:       page,
		socketPort: socketPort,
		sessionTTL: sessionTTL,
	}, nil
}

func (that *Server) Handler() http.Handler {
	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, "/ping", pingHandler)
	router.HandleFunc(http.MethodGet, "/", that.indexHandler)

	return router
}

// Start - starts HTTP server and blocks until ctx is canceled or the server fails.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}
