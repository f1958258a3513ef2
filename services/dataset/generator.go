package dataset

import (
	"context"
	"fmt"

	"datasetforge/pkg/config"
	"datasetforge/pkg/llm"

	"go.uber.org/zap"
)

// Generator produces question/answer pairs from source text, asking
// the model once and reconciling whatever comes back against the
// requested count.
type Generator struct {
	router *llm.Router
	model  string
}

func NewGenerator(router *llm.Router, cfg *config.Config) *Generator {
	return &Generator{router: router, model: cfg.Model.Name}
}

// Generate returns exactly count pairs. A failed model call or
// malformed response is absorbed: the shortfall is backfilled by the
// deterministic fallback generator, surplus is truncated from the
// tail.
func (g *Generator) Generate(ctx context.Context, text string, count int) []QAPair {
	if count <= 0 {
		return []QAPair{}
	}

	pairs := g.fromModel(ctx, text, count)

	if len(pairs) < count {
		pairs = append(pairs, fallbackPairs(text, count-len(pairs))...)
	}
	if len(pairs) > count {
		pairs = pairs[:count]
	}
	return pairs
}

func (g *Generator) fromModel(ctx context.Context, text string, count int) []QAPair {
	resp, err := g.router.Complete(ctx, llm.CompletionRequest{
		Messages:    []llm.Message{{Role: "user", Content: qaPrompt(text, count)}},
		Model:       g.model,
		Temperature: 0.5,
		MaxTokens:   4000,
	})
	if err != nil {
		zap.L().Warn("model call failed, using fallback generation", zap.Error(err))
		return nil
	}

	records := llm.Records(resp.Content, []string{"prompt", "completion"})
	pairs := make([]QAPair, 0, len(records))
	for _, record := range records {
		pairs = append(pairs, QAPair{
			Prompt:     asString(record["prompt"]),
			Completion: asString(record["completion"]),
		})
	}
	return pairs
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func qaPrompt(text string, count int) string {
	return fmt.Sprintf(`Based on the following text, generate %d high-quality question-answer pairs that would be suitable for training a language model.

Types of questions to include (as appropriate for the text):
- Factual questions about key information in the text
- Conceptual questions that test understanding of main ideas
- Inferential questions that require reasoning about the text
- Summary questions that ask about the main points
- Vocabulary questions about important terms (if applicable)

Each pair should consist of:
- A clear, concise question (prompt)
- A complete, accurate answer (completion)

Requirements:
- Generate exactly %d question-answer pairs
- Ensure questions are diverse and not repetitive
- Make questions unambiguous and answers comprehensive
- Focus on the most important information in the text
- Avoid yes/no questions unless they test specific factual information

Text:
%s

Respond with a JSON array of exactly %d objects of the form {"prompt": "question", "completion": "answer"}, no surrounding prose.`, count, count, text, count)
}
