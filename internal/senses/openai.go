package senses

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAIResolver asks a chat model for the lexicographer-file tag of a
// word's most frequent sense. It is an optional stand-in for a local sense
// index; answers are validated against the closed lexname vocabulary and
// anything off-vocabulary resolves to "no information".
type OpenAIResolver struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	limiter Waiter
	baseURL string
}

// Waiter blocks until a call to the given URL is allowed to proceed.
// Satisfied by worker.Limiter.
type Waiter interface {
	Wait(ctx context.Context, rawURL string) error
}

// NewOpenAIResolver creates a new OpenAI-backed resolver
func NewOpenAIResolver(apiKey, model, baseURL string, timeout time.Duration, limiter Waiter) (*OpenAIResolver, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	if model == "" {
		model = openai.GPT4oMini
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIResolver{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   model,
		timeout: timeout,
		limiter: limiter,
		baseURL: clientConfig.BaseURL,
	}, nil
}

const senseSystemPrompt = `You are a WordNet sense lookup. Given a word and its language,
answer with the lexicographer file name (lexname) of the word's most
frequent WordNet sense, e.g. "noun.animal" or "verb.motion".
Answer with the lexname only. If the word has no WordNet sense, answer
"none".`

// Lookup asks the model for the lexname of the word's primary sense
func (r *OpenAIResolver) Lookup(ctx context.Context, word, language string) ([]Sense, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, nil
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx, r.baseURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0,
		MaxTokens:   16,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: senseSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("word: %s\nlanguage: %s", word, language)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, nil
	}

	answer := strings.TrimSpace(strings.ToLower(resp.Choices[0].Message.Content))
	answer = strings.Trim(answer, `"'.`)
	// noun.Tops is the only lexname with an uppercase letter
	if answer == "noun.tops" {
		answer = "noun.Tops"
	}
	if !IsLexname(answer) {
		return nil, nil
	}

	pos := ""
	if idx := strings.Index(answer, "."); idx > 0 {
		pos = answer[:idx]
	}

	return []Sense{{Lexname: answer, POS: pos}}, nil
}

// IsAvailable checks if the provider is properly configured and reachable
func (r *OpenAIResolver) IsAvailable(ctx context.Context) bool {
	_, err := r.client.ListModels(ctx)
	return err == nil
}
