package model

import (
	"strconv"
	"time"
)

// Field names one piece of lead data collected by the dialog.
type Field string

const (
	FieldName     Field = "name"
	FieldInterest Field = "interest"
	FieldCity     Field = "city"
	FieldState    Field = "state"
	FieldAge      Field = "age"
	FieldEmail    Field = "email"
)

// KnownFields lists every field a flow may be configured with.
var KnownFields = []Field{FieldName, FieldInterest, FieldCity, FieldState, FieldAge, FieldEmail}

// DefaultFields is the standard collection order.
var DefaultFields = []Field{FieldName, FieldInterest, FieldCity, FieldState, FieldAge}

// IsKnown reports whether f is a supported field.
func (f Field) IsKnown() bool {
	for _, k := range KnownFields {
		if f == k {
			return true
		}
	}
	return false
}

// Stage is the coarse progress marker of a conversation.
type Stage string

const (
	StageNotStarted Stage = "not_started"
	StageCollecting Stage = "collecting"
	StageDone       Stage = "done"
)

// Lead is the structured record produced by the capture dialog.
// Empty strings and a zero age mean "absent".
type Lead struct {
	Name     string `json:"nome,omitempty"`
	Interest string `json:"interesse,omitempty"`
	City     string `json:"cidade,omitempty"`
	State    string `json:"estado,omitempty"`
	Age      int    `json:"idade,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Has reports whether f holds a value.
func (l Lead) Has(f Field) bool {
	return l.Value(f) != ""
}

// Value returns f formatted as text, or "" when absent.
func (l Lead) Value(f Field) string {
	switch f {
	case FieldName:
		return l.Name
	case FieldInterest:
		return l.Interest
	case FieldCity:
		return l.City
	case FieldState:
		return l.State
	case FieldAge:
		if l.Age == 0 {
			return ""
		}
		return strconv.Itoa(l.Age)
	case FieldEmail:
		return l.Email
	}
	return ""
}

// Set stores a text value for f. Age is set with SetAge.
func (l *Lead) Set(f Field, v string) {
	switch f {
	case FieldName:
		l.Name = v
	case FieldInterest:
		l.Interest = v
	case FieldCity:
		l.City = v
	case FieldState:
		l.State = v
	case FieldEmail:
		l.Email = v
	}
}

// SetAge stores the age.
func (l *Lead) SetAge(age int) { l.Age = age }

// IsEmpty reports whether no field holds a value.
func (l Lead) IsEmpty() bool {
	for _, f := range KnownFields {
		if l.Has(f) {
			return false
		}
	}
	return true
}

// Values returns the present fields as text, keyed by field name.
func (l Lead) Values() map[Field]string {
	out := make(map[Field]string)
	for _, f := range KnownFields {
		if v := l.Value(f); v != "" {
			out[f] = v
		}
	}
	return out
}

// Conversation is the persisted snapshot of one chat session.
type Conversation struct {
	SessionID     string     `json:"session_id"`
	Stage         Stage      `json:"stage"`
	Lead          Lead       `json:"lead"`
	Skipped       []Field    `json:"skipped,omitempty"`
	StartedAt     time.Time  `json:"iniciado_em"`
	LastMessageAt time.Time  `json:"ultima_mensagem_em"`
	FinalizedAt   *time.Time `json:"finalizado_em,omitempty"`
}

// NewConversation returns the default snapshot for a session that has no stored state.
func NewConversation(sessionID string) Conversation {
	return Conversation{SessionID: sessionID, Stage: StageNotStarted}
}

// IsSkipped reports whether f was explicitly skipped.
func (c Conversation) IsSkipped(f Field) bool {
	for _, s := range c.Skipped {
		if s == f {
			return true
		}
	}
	return false
}
