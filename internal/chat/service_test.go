package chat

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jpchat/internal/lead"
	"jpchat/internal/locality"
	"jpchat/internal/model"
	"jpchat/internal/repository"
)

type fakeLeads struct {
	mu    sync.Mutex
	saved map[string]model.Lead
	err   error
	calls int
}

func (f *fakeLeads) PersistLead(_ context.Context, id string, l model.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if f.saved == nil {
		f.saved = map[string]model.Lead{}
	}
	if _, ok := f.saved[id]; ok {
		return repository.ErrLeadExists
	}
	f.saved[id] = l
	return nil
}

type fakeResponder struct {
	history  []model.ChatMessage
	question string
}

func (f *fakeResponder) Answer(_ context.Context, history []model.ChatMessage, q string) string {
	f.history, f.question = history, q
	return "resposta do assistente"
}

// brokenStore fails every operation.
type brokenStore struct{}

var errDown = errors.New("store down")

func (brokenStore) GetConversation(context.Context, string) (model.Conversation, error) {
	return model.Conversation{}, errDown
}
func (brokenStore) UpdateConversation(context.Context, string, map[string]any) error {
	return errDown
}
func (brokenStore) AppendMessage(context.Context, string, model.ChatMessage) error { return errDown }
func (brokenStore) History(context.Context, string) ([]model.ChatMessage, error) {
	return nil, errDown
}
func (brokenStore) ClearHistory(context.Context, string) error { return errDown }

func newTestService(t *testing.T, store ConversationStore, leads LeadStore, fields ...model.Field) (*Service, *fakeResponder) {
	t.Helper()
	if len(fields) == 0 {
		fields = model.DefaultFields
	}
	flow, err := lead.NewFlow(fields, lead.NewValidator(locality.Default()), nil)
	require.NoError(t, err)
	responder := &fakeResponder{}
	return NewService(flow, store, leads, responder, zaptest.NewLogger(t)), responder
}

func TestService_FullConversation(t *testing.T) {
	store, _ := setupStore(t)
	leads := &fakeLeads{}
	svc, responder := newTestService(t, store, leads, model.FieldName, model.FieldCity, model.FieldAge)
	ctx := context.Background()
	msgs := lead.PortugueseMessages{}

	reply := svc.HandleMessage(ctx, "s1", "oi")
	assert.Contains(t, reply, msgs.Prompt(model.FieldName))

	conv, err := store.GetConversation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StageCollecting, conv.Stage)
	assert.False(t, conv.StartedAt.IsZero())
	started := conv.StartedAt

	svc.HandleMessage(ctx, "s1", "Maria")
	svc.HandleMessage(ctx, "s1", "centro de palhoca")
	reply = svc.HandleMessage(ctx, "s1", "17")

	want := model.Lead{Name: "Maria", City: "Palhoça", Age: 17}
	assert.Equal(t, msgs.Completed(want), reply)
	assert.Equal(t, want, leads.saved["s1"])

	conv, err = store.GetConversation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StageDone, conv.Stage)
	assert.Equal(t, want, conv.Lead)
	assert.Equal(t, started, conv.StartedAt)
	require.NotNil(t, conv.FinalizedAt)

	reply = svc.HandleMessage(ctx, "s1", "quando abrem as inscrições?")
	assert.Equal(t, "resposta do assistente", reply)
	assert.Equal(t, "quando abrem as inscrições?", responder.question)
	require.NotEmpty(t, responder.history)
	assert.NotEqual(t, "quando abrem as inscrições?", responder.history[len(responder.history)-1].Content)
	assert.Equal(t, 1, leads.calls)
}

func TestService_DeleteDataClearsSnapshot(t *testing.T) {
	store, _ := setupStore(t)
	svc, _ := newTestService(t, store, &fakeLeads{})
	ctx := context.Background()

	svc.HandleMessage(ctx, "s1", "oi")
	svc.HandleMessage(ctx, "s1", "Maria")
	reply := svc.HandleMessage(ctx, "s1", "apagar meus dados")
	assert.Equal(t, lead.PortugueseMessages{}.DataDeleted(), reply)

	conv, err := store.GetConversation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StageNotStarted, conv.Stage)
	assert.True(t, conv.Lead.IsEmpty())
}

func TestService_DeleteDataClearsMessageLog(t *testing.T) {
	store, _ := setupStore(t)
	store.HistoryLimit = 20
	svc, responder := newTestService(t, store, &fakeLeads{}, model.FieldName)
	ctx := context.Background()

	svc.HandleMessage(ctx, "s1", "oi")
	svc.HandleMessage(ctx, "s1", "Maria Souza")
	svc.HandleMessage(ctx, "s1", "apagar meus dados")

	msgs, err := store.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, model.RoleAssistant, msgs[0].Role)
	assert.Equal(t, lead.PortugueseMessages{}.DataDeleted(), msgs[0].Content)

	// later assistant turns never see the deleted answer
	svc.HandleMessage(ctx, "s1", "pular cadastro")
	svc.HandleMessage(ctx, "s1", "o que é o programa?")
	for _, m := range responder.history {
		assert.NotContains(t, m.Content, "Maria Souza")
	}
}

func TestService_SkipFlowDoesNotPersist(t *testing.T) {
	store, _ := setupStore(t)
	leads := &fakeLeads{}
	svc, _ := newTestService(t, store, leads)
	ctx := context.Background()

	svc.HandleMessage(ctx, "s1", "oi")
	svc.HandleMessage(ctx, "s1", "Maria")
	svc.HandleMessage(ctx, "s1", "pular cadastro")

	conv, err := store.GetConversation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StageDone, conv.Stage)
	assert.Equal(t, "Maria", conv.Lead.Name)
	assert.Zero(t, leads.calls)
}

func TestService_StoreFailuresNeverReachUser(t *testing.T) {
	leads := &fakeLeads{err: errors.New("db down")}
	svc, _ := newTestService(t, brokenStore{}, leads, model.FieldName)
	ctx := context.Background()

	reply := svc.HandleMessage(ctx, "s1", "oi")
	assert.Contains(t, reply, lead.PortugueseMessages{}.Prompt(model.FieldName))

	// the snapshot never persists, so every turn restarts the dialog
	reply = svc.HandleMessage(ctx, "s1", "Maria")
	assert.Contains(t, reply, lead.PortugueseMessages{}.Welcome())
}

func TestService_PersistFailureStillCompletes(t *testing.T) {
	store, _ := setupStore(t)
	leads := &fakeLeads{err: errors.New("db down")}
	svc, _ := newTestService(t, store, leads, model.FieldName)
	ctx := context.Background()

	svc.HandleMessage(ctx, "s1", "oi")
	reply := svc.HandleMessage(ctx, "s1", "Maria")
	assert.Equal(t, lead.PortugueseMessages{}.Completed(model.Lead{Name: "Maria"}), reply)
	assert.Equal(t, 1, leads.calls)
}

func TestService_ConcurrentSessions(t *testing.T) {
	store, _ := setupStore(t)
	leads := &fakeLeads{}
	svc, _ := newTestService(t, store, leads, model.FieldName)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			svc.HandleMessage(ctx, id, "oi")
			svc.HandleMessage(ctx, id, "Nome "+id)
		}(id)
	}
	wg.Wait()

	assert.Len(t, leads.saved, 4)
	assert.Equal(t, "Nome c", leads.saved["c"].Name)
}
