package chat

import (
	"context"

	"jpchat/internal/model"
)

// ConversationStore keeps the per-session snapshot and message log.
type ConversationStore interface {
	// GetConversation returns the stored snapshot, or model.NewConversation when none exists.
	GetConversation(ctx context.Context, sessionID string) (model.Conversation, error)
	// UpdateConversation merges partial into the snapshot with JSON merge-patch rules:
	// present keys replace, null keys are removed.
	UpdateConversation(ctx context.Context, sessionID string, partial map[string]any) error
	AppendMessage(ctx context.Context, sessionID string, msg model.ChatMessage) error
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	// ClearHistory drops the whole message log of the session.
	ClearHistory(ctx context.Context, sessionID string) error
}

// LeadStore persists finalized leads. A second persist for the same session must not
// overwrite the first.
type LeadStore interface {
	PersistLead(ctx context.Context, sessionID string, l model.Lead) error
}
