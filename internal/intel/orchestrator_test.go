package intel

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOrchestrator_HappyPath(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse(`{"news": ["Acme ships v2"]}`), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("Outlook: strong"), nil).Once()

	orch := New(client, testAnthropicConfig())
	result := orch.Run(context.Background(), "Acme")

	assert.Empty(t, result.Error)
	assert.Equal(t, "Acme", result.Company)
	assert.Equal(t, `{"news": ["Acme ships v2"]}`, result.RawData)
	assert.Equal(t, "Outlook: strong", result.Analysis)
	assert.NotEmpty(t, result.RunID)

	require.Len(t, result.Transcript, 2)
	assert.Equal(t, "Collected data for Acme", result.Transcript[0].Input)
	assert.Equal(t, `{"news": ["Acme ships v2"]}`, result.Transcript[0].Output)
	assert.Equal(t, "Analyze company data", result.Transcript[1].Input)
	assert.Equal(t, "Outlook: strong", result.Transcript[1].Output)
	client.AssertNumberOfCalls(t, "CreateMessage", 2)
}

func TestOrchestrator_BlankCompany(t *testing.T) {
	for _, company := range []string{"", "   ", "\t\n"} {
		client := &mockAnthropicClient{}

		orch := New(client, testAnthropicConfig())
		result := orch.Run(context.Background(), company)

		assert.Equal(t, "invalid company name provided", result.Error)
		assert.Empty(t, result.Company)
		assert.Empty(t, result.RawData)
		assert.Empty(t, result.Analysis)
		assert.Empty(t, result.Transcript)
		client.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
	}
}

func TestOrchestrator_CollectionFailure(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, eris.New("backend unreachable"))

	orch := New(client, testAnthropicConfig())
	result := orch.Run(context.Background(), "Acme")

	assert.Contains(t, result.Error, "error collecting data for Acme")
	assert.Contains(t, result.Error, "backend unreachable")
	assert.Empty(t, result.RawData)
	assert.Empty(t, result.Analysis)
	assert.Empty(t, result.Transcript)
	// Analysis stage never runs.
	client.AssertNumberOfCalls(t, "CreateMessage", 1)
}

func TestOrchestrator_AnalysisFailure(t *testing.T) {
	client := &mockAnthropicClient{}
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(textResponse("collected data"), nil).Once()
	client.On("CreateMessage", mock.Anything, mock.Anything).
		Return(nil, eris.New("rate limited")).Once()

	orch := New(client, testAnthropicConfig())
	result := orch.Run(context.Background(), "Acme")

	assert.Equal(t, "collected data", result.RawData)
	assert.Empty(t, result.Analysis)
	assert.Contains(t, result.Error, "error analyzing company data")

	require.Len(t, result.Transcript, 1)
	assert.Equal(t, "Collected data for Acme", result.Transcript[0].Input)
}

func TestOrchestrator_Deterministic(t *testing.T) {
	run := func() *RunResult {
		orch := New(&echoClient{}, testAnthropicConfig())
		return orch.Run(context.Background(), "Acme")
	}

	first := run()
	second := run()

	// RunID is a per-run UUID; everything else is a pure function of input.
	assert.NotEqual(t, first.RunID, second.RunID)
	first.RunID = ""
	second.RunID = ""
	assert.Equal(t, first, second)
}

func TestOrchestrator_RecoversFromPanic(t *testing.T) {
	orch := New(panicClient{}, testAnthropicConfig())

	var result *RunResult
	assert.NotPanics(t, func() {
		result = orch.Run(context.Background(), "Acme")
	})

	require.NotNil(t, result)
	assert.Contains(t, result.Error, "orchestration error for Acme")
	assert.Contains(t, result.Error, "backend exploded")
	assert.Empty(t, result.RawData)
	assert.Empty(t, result.Analysis)
	assert.Empty(t, result.Transcript)
}

func TestOrchestrator_FreshTranscriptPerOrchestrator(t *testing.T) {
	client := &echoClient{}

	first := New(client, testAnthropicConfig()).Run(context.Background(), "Acme")
	second := New(client, testAnthropicConfig()).Run(context.Background(), "Acme")

	// No cross-run aliasing: each run's transcript has exactly its own
	// two entries.
	assert.Len(t, first.Transcript, 2)
	assert.Len(t, second.Transcript, 2)
	assert.Equal(t, 4, client.calls)
}
