package lead

import (
	"errors"
	"fmt"

	"jpchat/internal/model"
)

// Action tells the caller what a turn did.
type Action string

const (
	ActionPrompt    Action = "prompt"
	ActionRetry     Action = "retry"
	ActionFinalize  Action = "finalize"
	ActionReset     Action = "reset"
	ActionSkipFlow  Action = "skip_flow"
	ActionAssistant Action = "assistant"
)

// TurnInput is the conversation snapshot plus the new user message.
type TurnInput struct {
	SessionID string
	Stage     model.Stage
	Lead      model.Lead
	Skipped   []model.Field
	Text      string
}

// TurnOutput is the next snapshot and the reply for the user. Message is empty when
// Action is ActionAssistant.
type TurnOutput struct {
	Stage     model.Stage
	Lead      model.Lead
	Skipped   []model.Field
	Message   string
	Finalized bool
	Action    Action
	// Field is the field the turn asked about, answered, or will ask next.
	Field   model.Field
	Outcome *Outcome
}

// Flow is the lead-capture state machine. It performs no I/O and is safe for concurrent
// use; callers serialize turns of the same session.
type Flow struct {
	fields    []model.Field
	validator *Validator
	messages  MessageComposer
}

// NewFlow validates the field order and builds a flow.
func NewFlow(fields []model.Field, validator *Validator, messages MessageComposer) (*Flow, error) {
	if len(fields) == 0 {
		return nil, errors.New("lead flow: no fields configured")
	}
	if validator == nil {
		return nil, errors.New("lead flow: nil validator")
	}
	seen := make(map[model.Field]bool, len(fields))
	for _, f := range fields {
		if !f.IsKnown() {
			return nil, fmt.Errorf("lead flow: unknown field %q", f)
		}
		if seen[f] {
			return nil, fmt.Errorf("lead flow: duplicate field %q", f)
		}
		seen[f] = true
	}
	if messages == nil {
		messages = PortugueseMessages{}
	}
	return &Flow{
		fields:    append([]model.Field(nil), fields...),
		validator: validator,
		messages:  messages,
	}, nil
}

// Fields returns the configured order.
func (f *Flow) Fields() []model.Field {
	return append([]model.Field(nil), f.fields...)
}

// ProcessTurn applies one user message to the snapshot.
func (f *Flow) ProcessTurn(in TurnInput) TurnOutput {
	out := TurnOutput{
		Stage:   in.Stage,
		Lead:    in.Lead,
		Skipped: append([]model.Field(nil), in.Skipped...),
	}
	if out.Stage == "" {
		out.Stage = model.StageNotStarted
	}

	switch DetectCommand(in.Text) {
	case CommandDeleteData:
		return TurnOutput{
			Stage:   model.StageNotStarted,
			Lead:    model.Lead{},
			Message: f.messages.DataDeleted(),
			Action:  ActionReset,
		}
	case CommandSkipFlow:
		if out.Stage != model.StageDone {
			out.Stage = model.StageDone
			out.Message = f.messages.FlowSkipped()
			out.Action = ActionSkipFlow
			return out
		}
	}

	switch out.Stage {
	case model.StageNotStarted:
		first := f.fields[0]
		out.Stage = model.StageCollecting
		out.Lead = model.Lead{}
		out.Skipped = nil
		out.Field = first
		out.Message = f.messages.Welcome() + "\n\n" + f.messages.Prompt(first)
		out.Action = ActionPrompt
		return out

	case model.StageCollecting:
		return f.collect(in.Text, out)
	}

	out.Action = ActionAssistant
	return out
}

func (f *Flow) collect(text string, out TurnOutput) TurnOutput {
	field, ok := f.pending(out.Lead, out.Skipped)
	if !ok {
		return f.finalize(out)
	}

	if DetectCommand(text) == CommandSkipField {
		out.Skipped = append(out.Skipped, field)
		return f.advance(out)
	}

	res := f.validator.Validate(field, text)
	out.Outcome = &res
	switch res.Kind {
	case Invalid:
		out.Field = field
		out.Message = f.messages.Retry(field)
		out.Action = ActionRetry
		return out
	case Skip:
		out.Skipped = append(out.Skipped, field)
	case Accepted:
		if field == model.FieldAge {
			out.Lead.SetAge(res.Age)
		} else {
			out.Lead.Set(field, res.Value)
		}
	}
	return f.advance(out)
}

// advance asks the next pending field or finalizes when none is left.
func (f *Flow) advance(out TurnOutput) TurnOutput {
	next, ok := f.pending(out.Lead, out.Skipped)
	if !ok {
		return f.finalize(out)
	}
	out.Field = next
	out.Message = f.messages.Prompt(next)
	out.Action = ActionPrompt
	return out
}

func (f *Flow) finalize(out TurnOutput) TurnOutput {
	out.Stage = model.StageDone
	out.Finalized = true
	out.Message = f.messages.Completed(out.Lead)
	out.Action = ActionFinalize
	return out
}

// pending returns the first configured field that is neither filled nor skipped.
func (f *Flow) pending(l model.Lead, skipped []model.Field) (model.Field, bool) {
	for _, field := range f.fields {
		if l.Has(field) {
			continue
		}
		if containsField(skipped, field) {
			continue
		}
		return field, true
	}
	return "", false
}

func containsField(list []model.Field, f model.Field) bool {
	for _, x := range list {
		if x == f {
			return true
		}
	}
	return false
}
