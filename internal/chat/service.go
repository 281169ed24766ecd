package chat

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"jpchat/internal/lead"
	"jpchat/internal/model"
	"jpchat/internal/observability"
	"jpchat/internal/repository"
)

const defaultPersistTimeout = 3 * time.Second

// Service runs one chat turn: load the snapshot, apply the lead flow, store the result and
// hand finished conversations to the assistant. Store failures are logged and never reach
// the user.
type Service struct {
	Flow           *lead.Flow
	Conversations  ConversationStore
	Leads          LeadStore
	Assistant      Responder
	Logger         *zap.Logger
	PersistTimeout time.Duration

	locks SessionLocks
	now   func() time.Time
}

func NewService(flow *lead.Flow, conversations ConversationStore, leads LeadStore, assistant Responder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Flow:           flow,
		Conversations:  conversations,
		Leads:          leads,
		Assistant:      assistant,
		Logger:         logger,
		PersistTimeout: defaultPersistTimeout,
	}
}

// HandleMessage processes text for sessionID and returns the reply.
func (s *Service) HandleMessage(ctx context.Context, sessionID, text string) string {
	unlock := s.locks.Lock(sessionID)
	defer unlock()

	log := s.Logger.With(zap.String("session_id", sessionID))
	now := s.clock()

	conv, err := s.Conversations.GetConversation(ctx, sessionID)
	if err != nil {
		s.failure(log, "get_conversation", err)
		conv = model.NewConversation(sessionID)
	}

	s.appendMessage(ctx, log, sessionID, model.RoleUser, text, nil)

	out := s.Flow.ProcessTurn(lead.TurnInput{
		SessionID: sessionID,
		Stage:     conv.Stage,
		Lead:      conv.Lead,
		Skipped:   conv.Skipped,
		Text:      text,
	})
	observability.TurnsTotal.WithLabelValues(string(out.Stage)).Inc()
	if out.Outcome != nil && out.Outcome.Locality.Method() != "" {
		observability.LocalityResolutionsTotal.WithLabelValues(string(out.Outcome.Locality.Method())).Inc()
	}

	partial := map[string]any{
		"stage":              out.Stage,
		"ultima_mensagem_em": now,
	}
	if conv.StartedAt.IsZero() {
		partial["iniciado_em"] = now
	}
	switch {
	case out.Action == lead.ActionReset:
		partial["lead"] = nil
		partial["skipped"] = nil
		partial["finalizado_em"] = nil
	case out.Action != lead.ActionAssistant:
		partial["lead"] = out.Lead
		partial["skipped"] = out.Skipped
	}
	if out.Finalized {
		partial["finalizado_em"] = now
	}
	if err := s.Conversations.UpdateConversation(ctx, sessionID, partial); err != nil {
		s.failure(log, "update_conversation", err)
	}

	if out.Finalized {
		observability.LeadsFinalizedTotal.Inc()
		s.persistLead(ctx, log, sessionID, out.Lead)
		log.Info("[Lead] Cadastro finalizado", zap.Int("fields", len(out.Lead.Values())))
	}

	reply := out.Message
	meta := map[string]any{"action": string(out.Action)}
	if out.Action == lead.ActionAssistant {
		history, err := s.Conversations.History(ctx, sessionID)
		if err != nil {
			s.failure(log, "history", err)
		}
		// the current question is sent separately
		if n := len(history); n > 0 && history[n-1].Role == model.RoleUser && history[n-1].Content == text {
			history = history[:n-1]
		}
		reply = s.Assistant.Answer(ctx, history, text)
	}
	if out.Field != "" {
		meta["field"] = string(out.Field)
	}

	if out.Action == lead.ActionReset {
		// the log holds the answers just deleted
		if err := s.Conversations.ClearHistory(ctx, sessionID); err != nil {
			s.failure(log, "clear_history", err)
		}
	}
	s.appendMessage(ctx, log, sessionID, model.RoleAssistant, reply, meta)
	log.Debug("[Chat] Turno processado",
		zap.String("stage", string(out.Stage)),
		zap.String("action", string(out.Action)),
		zap.String("field", string(out.Field)),
	)
	return reply
}

func (s *Service) persistLead(ctx context.Context, log *zap.Logger, sessionID string, l model.Lead) {
	if s.Leads == nil {
		return
	}
	timeout := s.PersistTimeout
	if timeout <= 0 {
		timeout = defaultPersistTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := s.Leads.PersistLead(ctx, sessionID, l)
	if errors.Is(err, repository.ErrLeadExists) {
		log.Info("[Lead] Lead já registrado para a sessão")
		return
	}
	if err != nil {
		s.failure(log, "persist_lead", err)
	}
}

func (s *Service) appendMessage(ctx context.Context, log *zap.Logger, sessionID, role, text string, meta map[string]any) {
	err := s.Conversations.AppendMessage(ctx, sessionID, model.ChatMessage{
		Role:      role,
		Content:   text,
		Meta:      meta,
		CreatedAt: s.clock(),
	})
	if err != nil {
		s.failure(log, "append_message", err)
	}
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now().UTC()
	}
	return s.now()
}

func (s *Service) failure(log *zap.Logger, op string, err error) {
	observability.PersistenceFailuresTotal.WithLabelValues(op).Inc()
	log.Warn("[Store] Falha de persistência", zap.String("op", op), zap.Error(err))
}
