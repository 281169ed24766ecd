package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRequestBytes = 16 << 10

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// MessageHandler is the part of Service the HTTP layer needs.
type MessageHandler interface {
	HandleMessage(ctx context.Context, sessionID, text string) string
}

func Handler(svc MessageHandler, logger *zap.Logger) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		var req ChatRequest
		if err := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		sessionID := strings.TrimSpace(req.SessionID)
		if sessionID == "" {
			sessionID = uuid.NewString()
			logger.Info("[Chat] Nova sessão", zap.String("session_id", sessionID))
		}

		answer := svc.HandleMessage(r.Context(), sessionID, req.Message)

		b, err := sonic.Marshal(ChatResponse{Response: answer, SessionID: sessionID})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(b)
	}
}

// Health reports liveness.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}
}

// Routes mounts the chat endpoints on a new mux.
func Routes(svc MessageHandler, logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/api/chat", Handler(svc, logger))
	mux.Handle("/healthz", Health())
	return mux
}
