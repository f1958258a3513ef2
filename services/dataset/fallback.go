package dataset

import (
	"fmt"
	"math/rand"
	"strings"
)

// fallbackPairs synthesizes question/answer pairs without a model. It
// cycles through four strategies keyed by index: quote a source
// sentence, quote an extracted key phrase, a generic key-points
// question, and a generic section-topic question. The raw material is
// the first sentences and a sampled set of 3-word phrases; degenerate
// or empty text still yields exactly count pairs.
func fallbackPairs(text string, count int) []QAPair {
	if count <= 0 {
		return []QAPair{}
	}

	sentences := leadingSentences(text, 5)
	phrases := samplePhrases(text, 10)

	pairs := make([]QAPair, 0, count)
	for i := 0; i < count; i++ {
		switch i % 4 {
		case 0:
			if len(sentences) > 0 {
				sentence := sentences[(i/4)%len(sentences)]
				pairs = append(pairs, QAPair{
					Prompt:     fmt.Sprintf("What does the text state in the passage: %q?", sentence),
					Completion: fmt.Sprintf("The text states: %s.", sentence),
				})
				continue
			}
			pairs = append(pairs, genericPair(i))
		case 1:
			if len(phrases) > 0 {
				phrase := phrases[rand.Intn(len(phrases))]
				pairs = append(pairs, QAPair{
					Prompt:     fmt.Sprintf("What is meant by %q in this text?", phrase),
					Completion: fmt.Sprintf("%q refers to a concept discussed in the source text.", phrase),
				})
				continue
			}
			pairs = append(pairs, genericPair(i))
		case 2:
			completion := "The text covers the key points of the provided content."
			if len(sentences) > 0 {
				completion = fmt.Sprintf("The key points include: %s.", sentences[0])
			}
			pairs = append(pairs, QAPair{
				Prompt:     fmt.Sprintf("What are the key points discussed in the text? (Q%d)", i+1),
				Completion: completion,
			})
		default:
			section := i/4 + 1
			pairs = append(pairs, QAPair{
				Prompt:     fmt.Sprintf("What is the main topic of section %d?", section),
				Completion: fmt.Sprintf("Section %d discusses content from the source text.", section),
			})
		}
	}
	return pairs
}

func genericPair(i int) QAPair {
	return QAPair{
		Prompt:     fmt.Sprintf("What is this text about? (Q%d)", i+1),
		Completion: fmt.Sprintf("This is a text about the content provided. (A%d)", i+1),
	}
}

// leadingSentences returns up to limit non-empty sentences from the
// start of the text.
func leadingSentences(text string, limit int) []string {
	split := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})

	sentences := make([]string, 0, limit)
	for _, s := range split {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == limit {
			break
		}
	}
	return sentences
}

// samplePhrases picks up to limit random 3-word phrases from the text.
func samplePhrases(text string, limit int) []string {
	words := strings.Fields(text)
	if len(words) < 3 {
		return nil
	}

	phrases := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		start := rand.Intn(len(words) - 2)
		phrases = append(phrases, strings.Join(words[start:start+3], " "))
	}
	return phrases
}
