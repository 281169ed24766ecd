package lead

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jpchat/internal/model"
)

func newTestFlow(t *testing.T, fields ...model.Field) *Flow {
	t.Helper()
	if len(fields) == 0 {
		fields = model.DefaultFields
	}
	f, err := NewFlow(fields, newTestValidator(), PortugueseMessages{})
	require.NoError(t, err)
	return f
}

// play feeds a turn and carries the resulting snapshot forward.
func play(f *Flow, in *TurnInput, text string) TurnOutput {
	in.Text = text
	out := f.ProcessTurn(*in)
	in.Stage, in.Lead, in.Skipped = out.Stage, out.Lead, out.Skipped
	return out
}

func TestFlow_EndToEnd(t *testing.T) {
	f := newTestFlow(t)
	msgs := PortugueseMessages{}
	in := &TurnInput{SessionID: "s-1", Stage: model.StageNotStarted}

	out := play(f, in, "oi")
	assert.Equal(t, model.StageCollecting, out.Stage)
	assert.Equal(t, ActionPrompt, out.Action)
	assert.Equal(t, model.FieldName, out.Field)
	assert.Contains(t, out.Message, msgs.Prompt(model.FieldName))
	assert.True(t, out.Lead.IsEmpty(), "the opening message is not an answer")

	out = play(f, in, "Maria")
	assert.Equal(t, "Maria", out.Lead.Name)
	assert.Equal(t, model.FieldInterest, out.Field)
	assert.Equal(t, msgs.Prompt(model.FieldInterest), out.Message)

	out = play(f, in, "quero ser aluna")
	assert.Equal(t, model.FieldCity, out.Field)

	out = play(f, in, "moro em palhoca")
	assert.Equal(t, "Palhoça", out.Lead.City)
	assert.Equal(t, model.FieldState, out.Field)

	out = play(f, in, "XX")
	assert.Equal(t, ActionRetry, out.Action)
	assert.Equal(t, model.StageCollecting, out.Stage)
	assert.Equal(t, model.FieldState, out.Field)
	assert.Equal(t, msgs.Retry(model.FieldState), out.Message)

	out = play(f, in, "santa catarina")
	assert.Equal(t, "SC", out.Lead.State)
	assert.Equal(t, model.FieldAge, out.Field)

	out = play(f, in, "9")
	assert.Equal(t, ActionRetry, out.Action)

	out = play(f, in, "17 anos")
	require.True(t, out.Finalized)
	assert.Equal(t, model.StageDone, out.Stage)
	assert.Equal(t, ActionFinalize, out.Action)
	assert.Equal(t, model.Lead{
		Name:     "Maria",
		Interest: "quero ser aluna",
		City:     "Palhoça",
		State:    "SC",
		Age:      17,
	}, out.Lead)
	assert.Equal(t, msgs.Completed(out.Lead), out.Message)

	out = play(f, in, "quando começam as aulas?")
	assert.Equal(t, ActionAssistant, out.Action)
	assert.Equal(t, model.StageDone, out.Stage)
	assert.False(t, out.Finalized)
	assert.Empty(t, out.Message)
}

func TestFlow_DeleteDataMidCollection(t *testing.T) {
	f := newTestFlow(t)
	in := &TurnInput{SessionID: "s-2", Stage: model.StageNotStarted}
	play(f, in, "olá")
	play(f, in, "João")
	play(f, in, "ser professor")

	out := play(f, in, "apagar dados")
	assert.Equal(t, model.StageNotStarted, out.Stage)
	assert.Equal(t, ActionReset, out.Action)
	assert.True(t, out.Lead.IsEmpty())
	assert.Empty(t, out.Skipped)
	assert.Equal(t, PortugueseMessages{}.DataDeleted(), out.Message)

	out = play(f, in, "oi de novo")
	assert.Equal(t, model.StageCollecting, out.Stage)
	assert.Equal(t, model.FieldName, out.Field)
}

func TestFlow_DeleteDataAfterDone(t *testing.T) {
	f := newTestFlow(t)
	out := f.ProcessTurn(TurnInput{
		Stage: model.StageDone,
		Lead:  model.Lead{Name: "Ana"},
		Text:  "quero excluir meus dados",
	})
	assert.Equal(t, model.StageNotStarted, out.Stage)
	assert.True(t, out.Lead.IsEmpty())
}

func TestFlow_SkipWholeFlowKeepsPartialLead(t *testing.T) {
	f := newTestFlow(t)
	in := &TurnInput{Stage: model.StageNotStarted}
	play(f, in, "oi")
	play(f, in, "Ana")

	out := play(f, in, "pular cadastro")
	assert.Equal(t, model.StageDone, out.Stage)
	assert.Equal(t, ActionSkipFlow, out.Action)
	assert.False(t, out.Finalized)
	assert.Equal(t, "Ana", out.Lead.Name)

	out = play(f, in, "pular cadastro")
	assert.Equal(t, ActionAssistant, out.Action, "done conversations go to the assistant")
}

func TestFlow_SkipField(t *testing.T) {
	f := newTestFlow(t, model.FieldName, model.FieldAge)
	in := &TurnInput{Stage: model.StageNotStarted}
	play(f, in, "oi")
	play(f, in, "Ana")

	out := play(f, in, "prefiro não informar")
	require.True(t, out.Finalized)
	assert.Equal(t, []model.Field{model.FieldAge}, out.Skipped)
	assert.Equal(t, model.Lead{Name: "Ana"}, out.Lead)
}

func TestFlow_AllSkippedStillFinalizes(t *testing.T) {
	f := newTestFlow(t, model.FieldName, model.FieldCity)
	in := &TurnInput{Stage: model.StageNotStarted}
	play(f, in, "oi")
	play(f, in, "pular")

	out := play(f, in, "pular")
	require.True(t, out.Finalized)
	assert.Equal(t, model.StageDone, out.Stage)
	assert.True(t, out.Lead.IsEmpty())
}

func TestFlow_InvalidEmailSkipsField(t *testing.T) {
	f := newTestFlow(t, model.FieldName, model.FieldEmail, model.FieldAge)
	in := &TurnInput{Stage: model.StageNotStarted}
	play(f, in, "oi")
	play(f, in, "Ana")

	out := play(f, in, "não tenho")
	assert.Equal(t, ActionPrompt, out.Action)
	assert.Equal(t, model.FieldAge, out.Field)
	assert.Contains(t, out.Skipped, model.FieldEmail)
	require.NotNil(t, out.Outcome)
	assert.Equal(t, Skip, out.Outcome.Kind)
}

func TestFlow_EmptyAnswerRetries(t *testing.T) {
	f := newTestFlow(t)
	out := f.ProcessTurn(TurnInput{Stage: model.StageCollecting, Text: "   "})
	assert.Equal(t, ActionRetry, out.Action)
	assert.Equal(t, model.FieldName, out.Field)
}

func TestFlow_DoesNotMutateInput(t *testing.T) {
	f := newTestFlow(t, model.FieldName, model.FieldEmail)
	skipped := make([]model.Field, 0, 4)
	in := TurnInput{Stage: model.StageCollecting, Lead: model.Lead{Name: "Ana"}, Skipped: skipped, Text: "pular"}
	out := f.ProcessTurn(in)
	assert.Empty(t, in.Skipped)
	assert.Equal(t, []model.Field{model.FieldEmail}, out.Skipped)
}

func TestFlow_CollectingWithNothingPendingFinalizes(t *testing.T) {
	f := newTestFlow(t, model.FieldName)
	out := f.ProcessTurn(TurnInput{Stage: model.StageCollecting, Lead: model.Lead{Name: "Ana"}, Text: "oi"})
	assert.True(t, out.Finalized)
	assert.Equal(t, model.StageDone, out.Stage)
}

func TestNewFlow_Rejects(t *testing.T) {
	v := newTestValidator()

	_, err := NewFlow(nil, v, nil)
	assert.Error(t, err)

	_, err = NewFlow([]model.Field{model.FieldName, model.FieldName}, v, nil)
	assert.Error(t, err)

	_, err = NewFlow([]model.Field{"phone"}, v, nil)
	assert.Error(t, err)

	_, err = NewFlow([]model.Field{model.FieldName}, nil, nil)
	assert.Error(t, err)
}
