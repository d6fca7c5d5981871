package adapter

import (
	"context"

	"github.com/dustin/vibewatch-backend/internal/recommendation"
	"github.com/dustin/vibewatch-backend/pkg/llm"
)

// ChatClientToChatModel adapts llm.Client to recommendation.ChatModel
type ChatClientToChatModel struct {
	client llm.Client
}

// NewChatClientToChatModel creates a new adapter
func NewChatClientToChatModel(client llm.Client) recommendation.ChatModel {
	return &ChatClientToChatModel{
		client: client,
	}
}

func (a *ChatClientToChatModel) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}

	return a.client.Chat(ctx, messages)
}
