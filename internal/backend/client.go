package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/halcyon-ai/halcyon/internal/session"
	"github.com/halcyon-ai/halcyon/internal/tools"
)

// Client wraps the genai client. Construct once at startup; a construction
// failure is a configuration error and the process should exit.
type Client struct {
	client *genai.Client
}

// New establishes connectivity to the Gemini API with the given API key.
func New(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is empty")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("configure genai client: %w", err)
	}
	return &Client{client: c}, nil
}

// Session is the handle to the one server-side chat this process drives.
// It is created once and never recreated; there is no reconnect logic.
type Session struct {
	chat          *genai.Chat
	client        *genai.Client
	model         string
	dispatcher    *tools.Dispatcher
	maxToolRounds int
}

// OpenSession creates the chat session bound to a model, a static tool set,
// and generation options.
func (c *Client) OpenSession(ctx context.Context, model string, dispatcher *tools.Dispatcher, opts Options) (*Session, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: declarationsFor(dispatcher.Registry()),
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(ClampThinkingBudget(opts.ThinkingBudget)),
		},
	}
	if opts.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(opts.SystemPrompt, genai.RoleUser)
	}

	chat, err := c.client.Chats.Create(ctx, model, cfg, nil)
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}

	maxRounds := opts.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = defaultMaxToolRounds
	}

	return &Session{
		chat:          chat,
		client:        c.client,
		model:         model,
		dispatcher:    dispatcher,
		maxToolRounds: maxRounds,
	}, nil
}

// Send forwards one user turn and runs the function-calling cycle until the
// model produces a final textual answer. Errors are non-fatal to the
// process; the caller decides what to do. There is no retry.
func (s *Session) Send(ctx context.Context, text string) (*Reply, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	for round := 0; ; round++ {
		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			break
		}
		if round >= s.maxToolRounds {
			return nil, fmt.Errorf("model exceeded %d tool rounds without a final answer", s.maxToolRounds)
		}

		parts := make([]genai.Part, 0, len(calls))
		for _, call := range calls {
			parts = append(parts, genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					ID:       call.ID,
					Name:     call.Name,
					Response: s.invoke(ctx, call),
				},
			})
		}

		resp, err = s.chat.SendMessage(ctx, parts...)
		if err != nil {
			return nil, fmt.Errorf("send tool results: %w", err)
		}
	}

	return &Reply{
		Text:       resp.Text(),
		HasContent: hasContent(resp),
	}, nil
}

// invoke runs a single function call through the dispatcher and shapes the
// result for the wire. Tool failures become error payloads the model reads;
// they never abort the exchange.
func (s *Session) invoke(ctx context.Context, call *genai.FunctionCall) map[string]any {
	args, err := json.Marshal(call.Args)
	if err != nil {
		return map[string]any{"error": fmt.Sprintf("unserializable arguments: %v", err)}
	}
	result := s.dispatcher.Execute(ctx, call.Name, args)
	if result.IsError {
		return map[string]any{"error": result.Content}
	}
	return map[string]any{"output": result.Content}
}

// CountTokens asks the backend how many tokens the given turn sequence
// would consume as context. Failure is recoverable: callers keep the
// previous estimate.
func (s *Session) CountTokens(ctx context.Context, turns []session.Turn) (int, error) {
	res, err := s.client.Models.CountTokens(ctx, s.model, contentsFromTurns(turns), nil)
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return int(res.TotalTokens), nil
}

// hasContent reports whether the response carried candidate content.
func hasContent(resp *genai.GenerateContentResponse) bool {
	return len(resp.Candidates) > 0 &&
		resp.Candidates[0].Content != nil &&
		len(resp.Candidates[0].Content.Parts) > 0
}

// contentsFromTurns converts mirror turns into genai contents, mapping the
// agent role onto the model role.
func contentsFromTurns(turns []session.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Role == session.RoleAgent {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}
