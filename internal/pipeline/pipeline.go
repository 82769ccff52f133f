// Package pipeline produces grounded answers for scheme questions:
// normalize the query, retrieve matching documents, build a prompt from
// conversation history and sources, generate, then record the interaction.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/schemenav/schemenav/internal/models"
	"github.com/schemenav/schemenav/internal/retrieval"
	"github.com/schemenav/schemenav/internal/sessions"
)

const promptTemplate = "You are an assistant knowledgeable in Karnataka agriculture schemes.\n" +
	"Conversation so far:\n%s\n\n" +
	"Here are relevant document excerpts (with ids):\n%s\n" +
	"User question: %s\n\n" +
	"Answer clearly, cite using [id]. If unsure, say you cannot find authoritative source and suggest next steps."

const systemPrompt = "You are an assistant."

// ModelUnavailableReply is returned in place of an answer when the LLM
// call fails; generation errors never fail the whole exchange.
const ModelUnavailableReply = "Sorry, I couldn't get a response from the LLM at this time."

const (
	snippetLimit = 300
	defaultTopK  = 6
)

// ChatModel is the narrow generation surface the pipeline needs.
// Satisfied by any eino chat model.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Retriever finds documents relevant to a query.
type Retriever interface {
	Search(ctx context.Context, query string, k int) ([]retrieval.Document, error)
}

// Pipeline wires the answer stages together.
type Pipeline struct {
	model     ChatModel
	retriever Retriever
	log       *InteractionLog
	topK      int
}

// New creates a pipeline. log may be nil to disable interaction logging.
func New(chatModel ChatModel, retriever Retriever, log *InteractionLog, topK int) *Pipeline {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Pipeline{
		model:     chatModel,
		retriever: retriever,
		log:       log,
		topK:      topK,
	}
}

// Respond answers one turn of a conversation. history is the prior
// turns of the session, oldest first. Retrieval failures abort the
// exchange; generation failures degrade to a fixed reply.
func (p *Pipeline) Respond(ctx context.Context, userID, query string, history []sessions.Message) (string, error) {
	normalized := normalizeQuery(query)

	docs, err := p.retriever.Search(ctx, normalized, p.topK)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}

	prompt := buildPrompt(history, docs, normalized)

	answer := p.generate(ctx, prompt)

	retrievedIDs := make([]string, len(docs))
	for i, d := range docs {
		retrievedIDs[i] = d.ID
	}
	if p.log != nil {
		rec := Interaction{
			Ts:           float64(time.Now().UnixNano()) / 1e9,
			UserID:       userID,
			Query:        normalized,
			Answer:       answer,
			RetrievedIDs: retrievedIDs,
		}
		if err := p.log.Append(rec); err != nil {
			slog.Warn("could not log interaction", "error", err)
		}
	}

	return answer, nil
}

func (p *Pipeline) generate(ctx context.Context, prompt string) string {
	msgs := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	result, err := p.model.Generate(ctx, msgs)
	if err != nil {
		slog.Error("chat completion failed", "error", models.HandleError(err))
		return ModelUnavailableReply
	}
	return strings.TrimSpace(result.Content)
}

// normalizeQuery trims and collapses internal whitespace. The stage is
// deliberately thin; it is the hook where query rewriting would go.
func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// buildPrompt renders the conversation transcript and cited source
// snippets into the generation prompt.
func buildPrompt(history []sessions.Message, docs []retrieval.Document, query string) string {
	var prev strings.Builder
	for i, msg := range history {
		if i > 0 {
			prev.WriteString("\n")
		}
		switch msg.Role {
		case "user":
			prev.WriteString("User: " + msg.Content)
		default:
			prev.WriteString("Assistant: " + msg.Content)
		}
	}

	var sources strings.Builder
	for _, d := range docs {
		snippet := d.Text
		// Cap on a rune boundary; corpus text is largely Kannada and a
		// byte slice would cut mid-character.
		if r := []rune(snippet); len(r) > snippetLimit {
			snippet = string(r[:snippetLimit])
		}
		snippet = strings.ReplaceAll(snippet, "\n", " ")
		fmt.Fprintf(&sources, "[%s] %s...\n", d.ID, snippet)
	}

	return fmt.Sprintf(promptTemplate, prev.String(), sources.String(), query)
}
