package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	writeWait       = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxMessageSize  = 4096
)

type gameManager interface {
	StartGame(ctx context.Context, sessionID, name1, name2 string, observer tictactoe.Observer) (*entity.Game, error)
	RestartGame(ctx context.Context, sessionID string, observer tictactoe.Observer) (*entity.Game, error)
	PlayTurn(ctx context.Context, sessionID string, cell int, observer tictactoe.Observer) (tictactoe.MoveResult, *entity.Game, error)
	GetGame(ctx context.Context, sessionID string) (*entity.Game, error)
	EndGame(ctx context.Context, sessionID string) error
}

type handlerFunc func(ctx context.Context, conn *connection, req *Request) error

type Server struct {
	logger      *slog.Logger
	gameManager gameManager
	sessionTTL  time.Duration
	origins     []string

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

// New creates the WebSocket server. allowedOrigins may be empty, in which case
// only pages served from the same host may connect.
func New(logger *slog.Logger, gameManager gameManager, sessionTTL time.Duration, allowedOrigins []string) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameManager: gameManager,
		sessionTTL:  sessionTTL,
		origins:     allowedOrigins,

		handlers: make(map[string]handlerFunc),
	}

	server.upgrader = websocket.Upgrader{
		HandshakeTimeout: writeWait,
		CheckOrigin:      server.checkOrigin,
	}

	server.handlers[actionGameStart] = server.handleStartGame
	server.handlers[actionGameTurn] = server.handleGameTurn
	server.handlers[actionGameRestart] = server.handleRestartGame
	server.handlers[actionGameState] = server.handleGameState
	server.handlers[actionGameEnd] = server.handleEndGame

	return server
}

func (that *Server) Handler() http.Handler {
	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, "/ws", that.upgradeToWebSocket)

	return router
}

// Start - starts WebSocket server and blocks until ctx is canceled or the server fails.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: that.Handler(),

		// no read/write timeouts: they would outlive the upgrade and cut long-lived sockets
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
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

// upgradeToWebSocket - upgrades the connection to WebSocket and serves it until the browser leaves.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	header := http.Header{}
	sessionID, ok := pkg.SessionID(req)
	if !ok {
		sessionID = pkg.GenerateNewSessionID()
		header.Add("Set-Cookie", pkg.NewSessionCookie(sessionID, that.sessionTTL).String())
		log.Info("session cookie not found, new one created", "session", sessionID)
	}

	socket, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer socket.Close()

	socket.SetReadLimit(maxMessageSize)

	conn := &connection{socket: socket, sessionID: sessionID}
	log = log.With("session", sessionID)
	log.Info("WebSocket connection established")

	ctx := req.Context()

	if err = that.handleConnect(ctx, conn); err != nil {
		log.Error("failed to greet client", "error", err)
		return
	}

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages", "session", conn.sessionID)

	for {
		_, data, err := conn.socket.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		var req Request
		if err = json.Unmarshal(data, &req); err != nil {
			log.Warn("failed to unmarshal message", "error", err)

			if err = conn.sendError("", ErrInvalidPayload); err != nil {
				return err
			}

			continue
		}

		handler, ok := that.handlers[req.Action]
		if !ok {
			log.Warn("unknown action", "action", req.Action)

			if err = conn.sendError(req.Action, ErrUnknownAction); err != nil {
				return err
			}

			continue
		}

		if err = handler(ctx, conn, &req); err != nil {
			log.Warn("error processing message", "action", req.Action, "error", err)

			if err = conn.sendError(req.Action, err); err != nil {
				return err
			}
		}
	}
}

func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if len(that.origins) > 0 {
		return slices.Contains(that.origins, origin)
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	// the page and the socket share a host but listen on different ports
	return originURL.Hostname() == hostname(req.Host)
}

func hostname(hostport string) string {
	u := url.URL{Host: hostport}
	return u.Hostname()
}

// connection serialises writes to one socket.
type connection struct {
	socket    *websocket.Conn
	sessionID string

	writeMu sync.Mutex
}

func (that *connection) send(action string, payload any) error {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if err := that.socket.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.socket.WriteJSON(Response{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write %s message: %w", action, err)
	}

	return nil
}

func (that *connection) sendError(action string, err error) error {
	return that.send(actionError, ErrorPayload{Action: action, Error: errorMessage(err)})
}
