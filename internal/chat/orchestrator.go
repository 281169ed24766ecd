package chat

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"jpchat/internal/model"
	"jpchat/internal/observability"
)

const (
	emptyQuestionReply = "Por favor, digite sua pergunta! Estou aqui para ajudar. 😄"
	connectionReply    = "Ops, parece que estou com um probleminha de conexão... 😅 Poderia tentar de novo em um instante?"
)

var errNoChoices = errors.New("assistant: empty completion")

// Responder answers free-form questions once the lead dialog is done.
type Responder interface {
	Answer(ctx context.Context, history []model.ChatMessage, question string) string
}

// Assistant answers with an OpenAI-compatible chat completion grounded on the knowledge
// base prompt.
type Assistant struct {
	Client       *openai.Client
	Model        string
	SystemPrompt string
	Logger       *zap.Logger
}

// Answer never fails: empty questions and transport errors get a friendly reply.
func (a *Assistant) Answer(ctx context.Context, history []model.ChatMessage, question string) string {
	if strings.TrimSpace(question) == "" {
		return emptyQuestionReply
	}

	answer, err := CallLLM(ctx, a.Client, a.Model, a.SystemPrompt, history, question)
	if err != nil {
		observability.AssistantRequestsTotal.WithLabelValues("error").Inc()
		a.logger().Error("[LLM] Erro ao consultar o assistente", zap.Error(err))
		return connectionReply
	}
	observability.AssistantRequestsTotal.WithLabelValues("ok").Inc()
	return answer
}

func (a *Assistant) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func CallLLM(
	ctx context.Context,
	client *openai.Client,
	modelName string,
	systemPrompt string,
	history []model.ChatMessage,
	userMessage string,
) (string, error) {

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	// histórico
	for _, m := range history {
		if !model.ValidRole(m.Role) {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	// nova pergunta
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       modelName,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
