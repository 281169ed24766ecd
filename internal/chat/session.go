package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/redis/go-redis/v9"

	"jpchat/internal/model"
)

const (
	sessionTTL    = 24 * time.Hour
	historyLimit  = 6
	updateRetries = 3
)

var (
	ErrInvalidRole = errors.New("chat: role must be user or assistant")
	ErrConflict    = errors.New("chat: conversation changed concurrently")
)

// SessionStore is the redis-backed ConversationStore. The snapshot lives under
// "conv:<id>" as JSON and the bounded message log under "hist:<id>".
type SessionStore struct {
	Client       *redis.Client
	TTL          time.Duration
	HistoryLimit int
}

func conversationKey(id string) string { return "conv:" + id }
func historyKey(id string) string      { return "hist:" + id }

func (s *SessionStore) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return sessionTTL
}

func (s *SessionStore) limit() int {
	if s.HistoryLimit > 0 {
		return s.HistoryLimit
	}
	return historyLimit
}

func (s *SessionStore) GetConversation(ctx context.Context, sessionID string) (model.Conversation, error) {
	val, err := s.Client.Get(ctx, conversationKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewConversation(sessionID), nil
	}
	if err != nil {
		return model.Conversation{}, fmt.Errorf("get conversation %s: %w", sessionID, err)
	}

	var conv model.Conversation
	if err := sonic.Unmarshal(val, &conv); err != nil {
		return model.Conversation{}, fmt.Errorf("decode conversation %s: %w", sessionID, err)
	}
	if conv.Stage == "" {
		conv.Stage = model.StageNotStarted
	}
	conv.SessionID = sessionID
	return conv, nil
}

func (s *SessionStore) UpdateConversation(ctx context.Context, sessionID string, partial map[string]any) error {
	patch, err := sonic.Marshal(partial)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}
	key := conversationKey(sessionID)

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			current, err = sonic.Marshal(model.NewConversation(sessionID))
		}
		if err != nil {
			return err
		}

		merged, err := jsonpatch.MergePatch(current, patch)
		if err != nil {
			return fmt.Errorf("merge patch: %w", err)
		}
		var conv model.Conversation
		if err := sonic.Unmarshal(merged, &conv); err != nil {
			return fmt.Errorf("patch yields invalid conversation: %w", err)
		}
		conv.SessionID = sessionID
		data, err := sonic.Marshal(conv)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, key, data, s.ttl())
			return nil
		})
		return err
	}

	for i := 0; i < updateRetries; i++ {
		err = s.Client.Watch(ctx, txf, key)
		if !errors.Is(err, redis.TxFailedErr) {
			if err != nil {
				return fmt.Errorf("update conversation %s: %w", sessionID, err)
			}
			return nil
		}
	}
	return ErrConflict
}

func (s *SessionStore) AppendMessage(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	if !model.ValidRole(msg.Role) {
		return ErrInvalidRole
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	b, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	key := historyKey(sessionID)
	_, err = s.Client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, b)
		p.LTrim(ctx, key, int64(-s.limit()), -1)
		p.Expire(ctx, key, s.ttl())
		return nil
	})
	if err != nil {
		return fmt.Errorf("append message %s: %w", sessionID, err)
	}
	return nil
}

// History returns the retained messages, oldest first.
func (s *SessionStore) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	vals, err := s.Client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", sessionID, err)
	}

	msgs := make([]model.ChatMessage, 0, len(vals))
	for _, v := range vals {
		var m model.ChatMessage
		if err := sonic.UnmarshalString(v, &m); err != nil {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs, nil
}

func (s *SessionStore) ClearHistory(ctx context.Context, sessionID string) error {
	if err := s.Client.Del(ctx, historyKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear history %s: %w", sessionID, err)
	}
	return nil
}
