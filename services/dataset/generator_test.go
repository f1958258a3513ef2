package dataset

import (
	"context"
	"fmt"
	"testing"

	"datasetforge/pkg/config"
	"datasetforge/pkg/llm"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

type adapterMock struct {
	completeFn func(ctx context.Context, req llm.CompletionRequest) (llm.Response, error)
}

func (m *adapterMock) Complete(ctx context.Context, req llm.CompletionRequest) (llm.Response, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, req)
	}
	return llm.Response{}, llm.ProviderError{Provider: "mock", Message: "not configured"}
}

func newTestGenerator(adapter llm.ProviderAdapter) *Generator {
	router := llm.NewRouter("mock")
	router.RegisterProvider("mock", adapter)

	cfg := &config.Config{}
	cfg.Model.Name = "test-model"
	return NewGenerator(router, cfg)
}

func TestGenerateModelFailureYieldsExactCount(t *testing.T) {
	g := newTestGenerator(&adapterMock{})

	for _, count := range []int{0, 1, 3, 8, 25} {
		pairs := g.Generate(context.Background(), "Some source text. With two sentences.", count)
		require.Len(t, pairs, count)
		for _, p := range pairs {
			require.NotEmpty(t, p.Prompt)
			require.NotEmpty(t, p.Completion)
		}
	}
}

func TestGenerateParsesModelArray(t *testing.T) {
	g := newTestGenerator(&adapterMock{
		completeFn: func(_ context.Context, req llm.CompletionRequest) (llm.Response, error) {
			require.Equal(t, "test-model", req.Model)
			return llm.Response{Content: `[
				{"prompt": "Q1", "completion": "A1"},
				{"prompt": "Q2", "completion": "A2"}
			]`}, nil
		},
	})

	pairs := g.Generate(context.Background(), "text", 2)
	require.Equal(t, []QAPair{{Prompt: "Q1", Completion: "A1"}, {Prompt: "Q2", Completion: "A2"}}, pairs)
}

func TestGenerateBackfillsShortfall(t *testing.T) {
	g := newTestGenerator(&adapterMock{
		completeFn: func(context.Context, llm.CompletionRequest) (llm.Response, error) {
			return llm.Response{Content: `[{"prompt": "Q1", "completion": "A1"}]`}, nil
		},
	})

	pairs := g.Generate(context.Background(), "Source sentence one. Source sentence two.", 5)
	require.Len(t, pairs, 5)
	require.Equal(t, QAPair{Prompt: "Q1", Completion: "A1"}, pairs[0])
}

func TestGenerateTruncatesSurplusFromTail(t *testing.T) {
	var content string
	for i := 0; i < 10; i++ {
		content += fmt.Sprintf("{\"prompt\": \"Q%d\", \"completion\": \"A%d\"}\n", i, i)
	}
	g := newTestGenerator(&adapterMock{
		completeFn: func(context.Context, llm.CompletionRequest) (llm.Response, error) {
			return llm.Response{Content: content}, nil
		},
	})

	pairs := g.Generate(context.Background(), "text", 3)
	require.Len(t, pairs, 3)
	require.Equal(t, "Q0", pairs[0].Prompt)
	require.Equal(t, "Q2", pairs[2].Prompt)
}

func TestGenerateDropsRecordsMissingKeys(t *testing.T) {
	g := newTestGenerator(&adapterMock{
		completeFn: func(context.Context, llm.CompletionRequest) (llm.Response, error) {
			return llm.Response{Content: `[
				{"prompt": "Q1", "completion": "A1"},
				{"question": "not a prompt"},
				{"prompt": "Q2"}
			]`}, nil
		},
	})

	pairs := g.Generate(context.Background(), "Source text for backfill.", 2)
	require.Len(t, pairs, 2)
	require.Equal(t, QAPair{Prompt: "Q1", Completion: "A1"}, pairs[0])
}

func TestFallbackPairsExactCountOnDegenerateText(t *testing.T) {
	for _, text := range []string{"", "   ", "word", "No punctuation here at all"} {
		pairs := fallbackPairs(text, 7)
		require.Len(t, pairs, 7, "text %q", text)
		for _, p := range pairs {
			require.NotEmpty(t, p.Prompt)
			require.NotEmpty(t, p.Completion)
		}
	}
}

func TestFallbackPairsCountIsDeterministic(t *testing.T) {
	text := "First sentence of the corpus. Second sentence with more words. Third one!"
	for i := 0; i < 5; i++ {
		require.Len(t, fallbackPairs(text, 11), 11)
	}
}
