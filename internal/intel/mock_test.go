package intel

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/intel-cli/pkg/anthropic"
)

// --- Anthropic Mock ---

type mockAnthropicClient struct {
	mock.Mock
}

func (m *mockAnthropicClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*anthropic.MessageResponse), args.Error(1)
}

// textResponse builds a single-text-block response.
func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		ID:         "msg_test",
		Content:    []anthropic.ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
		Usage:      anthropic.TokenUsage{InputTokens: 10, OutputTokens: 20},
	}
}

// echoClient is a pure function of its request: it answers with the user
// prompt prefixed by a marker. Used for determinism tests.
type echoClient struct {
	calls int
}

func (c *echoClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	c.calls++
	return textResponse("echo: " + req.Messages[0].Content), nil
}

// panicClient simulates an unexpected fault inside the pipeline.
type panicClient struct{}

func (panicClient) CreateMessage(context.Context, anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	panic("backend exploded")
}

// --- Ensure interface compliance ---
var (
	_ anthropic.Client = (*mockAnthropicClient)(nil)
	_ anthropic.Client = (*echoClient)(nil)
	_ anthropic.Client = panicClient{}
)
