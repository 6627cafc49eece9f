package openai

import (
	"context"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

type IChatGPT interface {
	GenerateEncouragement(ctx context.Context, req EncouragementRequest) (string, error)
}

type EncouragementRequest struct {
	UserName     string `json:"user_name"`
	CapColor     string `json:"cap_color"`
	TotalCaps    int    `json:"total_caps"`
	TotalPoints  int    `json:"total_points"`
	WeeklyStreak int    `json:"weekly_streak"`
}

type chatGPTService struct {
	client *openai.Client
	model  string
}

func NewChatGPT() IChatGPT {
	apiKey := os.Getenv("OPENAI_API_KEY")
	model := os.Getenv("OPENAI_CHAT_MODEL")

	if model == "" {
		model = openai.GPT4
	}

	return &chatGPTService{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *chatGPTService) GenerateEncouragement(ctx context.Context, req EncouragementRequest) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleSystem,
			Content: `Voce e a voz do Totem IA, um totem de reciclagem de tampinhas plasticas.

Sua tarefa:
1. Agradecer o deposito da tampinha de forma calorosa
2. Reforcar o impacto ambiental da reciclagem de plastico
3. Mencionar os pontos TAMPS acumulados quando fizer sentido

Regras importantes:
- SEMPRE responda em Portugues do Brasil, de forma curta e animada
- Resposta com no maximo 2 frases, pronta para ser falada em voz alta
- Nao use emojis nem formatacao, apenas texto corrido
- Varie as mensagens, nunca repita a mesma estrutura

Exemplo:
Usuario: depositou uma tampinha Azul, total de 42 tampinhas e 210 pontos
Voce: "Mais uma tampinha azul salva do oceano! Voce ja soma 210 pontos TAMPS, continue assim."`,
		},
		{
			Role: openai.ChatMessageRoleUser,
			Content: fmt.Sprintf(
				"%s depositou uma tampinha %s. Total: %d tampinhas, %d pontos TAMPS, %d semanas seguidas reciclando.",
				req.UserName, req.CapColor, req.TotalCaps, req.TotalPoints, req.WeeklyStreak,
			),
		},
	}

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.7,
			MaxTokens:   150,
		},
	)

	if err != nil {
		return "", fmt.Errorf("ChatGPT API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from ChatGPT")
	}

	return resp.Choices[0].Message.Content, nil
}
