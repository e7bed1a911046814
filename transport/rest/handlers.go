package rest

import (
	"bytes"
	"embed"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

//go:embed static
var static embed.FS

type pageData struct {
	SocketPort string
}

// indexHandler serves the game page and makes sure the browser has a session.
func (that *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "indexHandler")

	if _, ok := pkg.SessionID(r); !ok {
		sessionID := pkg.GenerateNewSessionID()
		http.SetCookie(w, pkg.NewSessionCookie(sessionID, that.sessionTTL))
		log.Info("session cookie not found, new one created", "session", sessionID)
	}

	var buf bytes.Buffer
	if err := that.page.Execute(&buf, pageData{SocketPort: that.socketPort}); err != nil {
		log.Error("failed to render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Error("failed to write page", "error", err)
	}
}
