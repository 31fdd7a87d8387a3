package assistant

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "Eres un asistente del portal de citas para el simulador de manejo. Redactas explicaciones de preguntas del examen teórico de conducción. Responde en español, en tono neutro, con un máximo de tres oraciones."

type ServiceConfig struct {
	OpenAIAPIKey string
	Model        string
}

type Service struct {
	client *openai.Client
	model  string
}

// Draft is an explanation proposal; Source says whether the model or the
// local template produced it.
type Draft struct {
	Explanation string `json:"explanation"`
	Source      string `json:"source"`
}

// NewService builds the assistant. Without an API key the service stays
// usable and answers from the local template.
func NewService(cfg ServiceConfig) *Service {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = openai.GPT4oMini
	}
	s := &Service{model: model}
	if key := strings.TrimSpace(cfg.OpenAIAPIKey); key != "" {
		s.client = openai.NewClient(key)
	}
	return s
}

// DraftExplanation proposes an explanation for a question the admin is
// editing. Model failures degrade to the local template, never to an
// error.
func (s *Service) DraftExplanation(ctx context.Context, question, correctOption string) (Draft, error) {
	question = strings.TrimSpace(question)
	correctOption = strings.TrimSpace(correctOption)
	if question == "" || correctOption == "" {
		return Draft{}, fmt.Errorf("pregunta y respuesta correcta son obligatorias")
	}
	if len(question) > 1200 {
		return Draft{}, fmt.Errorf("pregunta demasiado larga")
	}

	if s.client == nil {
		return Draft{Explanation: localExplanation(question, correctOption), Source: "local"}, nil
	}

	explanation, err := s.draftWithModel(ctx, question, correctOption)
	if err != nil {
		return Draft{Explanation: localExplanation(question, correctOption), Source: "local_fallback"}, nil
	}
	return Draft{Explanation: explanation, Source: "openai"}, nil
}

func (s *Service) draftWithModel(ctx context.Context, question, correctOption string) (string, error) {
	prompt := fmt.Sprintf("Pregunta del examen: %s\nRespuesta correcta: %s\nExplica brevemente por qué esa respuesta es la correcta.", question, correctOption)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: 0.4,
		MaxTokens:   200,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("empty completion")
	}
	return out, nil
}

func localExplanation(question, correctOption string) string {
	return fmt.Sprintf("La respuesta correcta es %q. Consulta el reglamento de tránsito vigente para el fundamento de esta regla; la pregunta evalúa: %s", correctOption, question)
}
