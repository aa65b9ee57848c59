package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/thelab/fan-chat/backend/internal/config"
	"github.com/thelab/fan-chat/backend/internal/model/chat"
)

// Service answers chat prompts through the configured language model.
type Service struct {
	chatModel model.ChatModel
	chain     compose.Runnable[map[string]any, *schema.Message]
	system    string
}

// NewService creates the chat model from cfg and compiles the prompt chain.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return NewServiceWithModel(ctx, chatModel)
}

// NewServiceWithModel compiles the prompt chain around an existing chat model.
func NewServiceWithModel(ctx context.Context, chatModel model.ChatModel) (*Service, error) {
	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		chain:     runnable,
		system:    SystemPrompt(),
	}, nil
}

// Respond sends one prompt and classifies the reply as text or table.
func (s *Service) Respond(ctx context.Context, query string) (chat.Response, error) {
	message, err := s.chain.Invoke(ctx, map[string]any{
		"system": s.system,
		"query":  query,
	})
	if err != nil {
		return chat.Response{}, fmt.Errorf("failed to run AI chain: %w", err)
	}
	if message == nil {
		return chat.Response{}, fmt.Errorf("language model returned no message")
	}

	response, err := ParseResponse(message.Content)
	if err != nil {
		return chat.Response{}, err
	}

	log.Printf("[ai] generated response kind=%s length=%d", response.Kind, len(message.Content))
	return response, nil
}

// GetChatModel returns the underlying chat model.
func (s *Service) GetChatModel() model.ChatModel {
	return s.chatModel
}
