package model

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Meta      map[string]any `json:"meta,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ValidRole reports whether role may be stored in a conversation log.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}
