package generation

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/conversation"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/llm"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/retrieval"
	"github.com/Aishjainam-coder/Bot-GPT-TASK/internal/infrastructure/metrics"
)

// RAGInstruction prefixes the retrieved context in the system prompt.
const RAGInstruction = "You are a helpful assistant that answers questions based on the provided context. " +
	"Use only the information from the context to answer. " +
	"If the context doesn't contain the answer, say so.\n\n"

const instrumentationScope = "github.com/Aishjainam-coder/Bot-GPT-TASK/internal/domain/generation"

// MessageStore reads and appends conversation messages.
type MessageStore interface {
	ListMessages(ctx context.Context, conversationID uint) ([]*conversation.Message, error)
	CreateMessage(ctx context.Context, msg *conversation.Message) error
}

// ContextRetriever selects document chunks relevant to a query.
type ContextRetriever interface {
	Retrieve(ctx context.Context, conversationID uint, mode conversation.Mode, query string) ([]string, error)
}

// Options tunes the model call.
type Options struct {
	Model             string
	MaxResponseTokens int
	MaxContextTokens  int
	Temperature       float32
	Timeout           time.Duration
	// Redact prepares message text for log lines. Nil drops the text.
	Redact func(string) string
}

// HistoryBudget is the token budget available to history and system prompt.
func (o Options) HistoryBudget() int {
	return o.MaxContextTokens - o.MaxResponseTokens
}

// Orchestrator builds the prompt for a new user message, calls the model and
// stores the assistant reply.
type Orchestrator struct {
	messages  MessageStore
	retriever ContextRetriever
	client    llm.Client
	opts      Options
	tracer    trace.Tracer
	meters    replyInstruments
	log       zerolog.Logger
}

// NewOrchestrator wires the generation pipeline.
func NewOrchestrator(messages MessageStore, retriever ContextRetriever, client llm.Client, opts Options, log zerolog.Logger) *Orchestrator {
	log = log.With().Str("component", "generation-orchestrator").Logger()
	meters, err := newReplyInstruments(otel.Meter(instrumentationScope))
	if err != nil {
		log.Warn().Err(err).Msg("otel reply instruments unavailable")
	}
	return &Orchestrator{
		messages:  messages,
		retriever: retriever,
		client:    client,
		opts:      opts,
		tracer:    otel.Tracer(instrumentationScope),
		meters:    meters,
		log:       log,
	}
}

// GenerateReply answers userMessage, which must already be stored. Model
// failures produce a stored fallback reply instead of an error; only storage
// and retrieval failures are returned.
func (o *Orchestrator) GenerateReply(ctx context.Context, conv *conversation.Conversation, userMessage *conversation.Message) (*conversation.Message, error) {
	ctx, span := o.tracer.Start(ctx, "generation.GenerateReply", trace.WithAttributes(
		attribute.Int64("conversation.id", int64(conv.ID)),
		attribute.String("conversation.mode", string(conv.Mode)),
	))
	defer span.End()

	req, err := o.buildRequest(ctx, conv, userMessage)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, err
	}

	started := time.Now()
	reply := o.complete(ctx, req)
	elapsed := time.Since(started).Seconds()
	metrics.RecordReply(string(conv.Mode), string(reply.Kind), reply.TokensUsed, elapsed)
	o.meters.record(ctx, string(conv.Mode), reply, elapsed)

	if reply.Kind == ReplyFallback {
		span.RecordError(reply.Failure)
		o.log.Error().
			Err(reply.Failure).
			Uint("conversation_id", conv.ID).
			Str("model", req.Model).
			Str("prompt", o.redact(userMessage.Content)).
			Msg("model call failed, storing fallback reply")
	}

	assistant := &conversation.Message{
		ConversationID: conv.ID,
		Role:           conversation.RoleAssistant,
		Content:        reply.Content,
		TokensUsed:     reply.TokensUsed,
		ModelUsed:      reply.Model,
	}
	if err := o.messages.CreateMessage(ctx, assistant); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store reply")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("reply.kind", string(reply.Kind)),
		attribute.Int("reply.tokens", reply.TokensUsed),
	)
	return assistant, nil
}

func (o *Orchestrator) redact(text string) string {
	if o.opts.Redact == nil {
		return "[REDACTED]"
	}
	return o.opts.Redact(text)
}

func (o *Orchestrator) buildRequest(ctx context.Context, conv *conversation.Conversation, userMessage *conversation.Message) (llm.CompletionRequest, error) {
	stored, err := o.messages.ListMessages(ctx, conv.ID)
	if err != nil {
		return llm.CompletionRequest{}, err
	}

	history := make([]llm.ChatMessage, 0, len(stored)+2)

	systemPrompt, err := o.systemPrompt(ctx, conv, userMessage.Content)
	if err != nil {
		return llm.CompletionRequest{}, err
	}
	if systemPrompt != "" {
		history = append(history, llm.ChatMessage{Role: llm.RoleSystem, Content: systemPrompt})
	}

	for _, msg := range stored {
		if msg.ID == userMessage.ID {
			continue
		}
		history = append(history, llm.ChatMessage{Role: llm.Role(msg.Role), Content: msg.Content})
	}
	history = append(history, llm.ChatMessage{Role: llm.RoleUser, Content: userMessage.Content})

	truncated := llm.TruncateMessages(history, o.opts.HistoryBudget())
	if dropped := len(history) - len(truncated); dropped > 0 {
		metrics.RecordTruncation(dropped)
		o.log.Debug().
			Uint("conversation_id", conv.ID).
			Int("dropped", dropped).
			Int("budget", o.opts.HistoryBudget()).
			Msg("truncated history")
	}

	req := llm.CompletionRequest{
		Model:       o.opts.Model,
		MaxTokens:   o.opts.MaxResponseTokens,
		Temperature: o.opts.Temperature,
	}
	if len(truncated) > 0 && truncated[0].Role == llm.RoleSystem {
		req.SystemPrompt = truncated[0].Content
		truncated = truncated[1:]
	}
	req.Messages = truncated
	return req, nil
}

func (o *Orchestrator) systemPrompt(ctx context.Context, conv *conversation.Conversation, query string) (string, error) {
	if conv.Mode != conversation.ModeRAG {
		return "", nil
	}

	chunks, err := o.retriever.Retrieve(ctx, conv.ID, conv.Mode, query)
	if err != nil {
		return "", err
	}
	metrics.RecordRetrieval(len(chunks))

	contextBlock := retrieval.BuildContext(chunks)
	if contextBlock == "" {
		return "", nil
	}
	return RAGInstruction + contextBlock, nil
}

func (o *Orchestrator) complete(ctx context.Context, req llm.CompletionRequest) Reply {
	callCtx := ctx
	if o.opts.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, o.opts.Timeout)
		defer cancel()
	}

	completion, err := o.client.CreateCompletion(callCtx, req)
	if err != nil {
		return fallbackReply(err)
	}
	if completion == nil {
		return fallbackReply(errors.New("empty completion"))
	}
	return generatedReply(completion, req.Model)
}
