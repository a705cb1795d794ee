// Package backend owns connectivity to the Gemini API and the single chat
// session the agent speaks through. The Gemini side keeps the authoritative
// conversation state; callers only ever see Send and CountTokens.
//
// Tool dispatch happens inside Send: while the model answers with function
// calls, the session routes them through the injected dispatcher and feeds
// the responses back, invisibly to the caller, until a final textual answer
// arrives.
package backend

// Reply is the final outcome of one Send exchange.
type Reply struct {
	// Text is the model's final textual answer.
	Text string

	// HasContent reports whether the response carried content worth
	// mirroring. A response without content is tolerated and surfaced to
	// the operator as a warning by the caller.
	HasContent bool
}

// Options configures a session at open time.
type Options struct {
	// ThinkingBudget caps the model's internal deliberation, in tokens.
	// Valid range 0 to 24000; values outside are clamped. Higher values
	// trade latency for answer quality.
	ThinkingBudget int32

	// SystemPrompt is prepended server-side to the session, when set.
	SystemPrompt string

	// MaxToolRounds bounds how many function-call cycles a single Send
	// may run before giving up. 0 uses the default.
	MaxToolRounds int
}

const (
	// DefaultThinkingBudget is used when no budget is configured.
	DefaultThinkingBudget = 256

	// MaxThinkingBudget is the upper end of the documented budget range.
	MaxThinkingBudget = 24000

	defaultMaxToolRounds = 32
)

// ClampThinkingBudget forces n into the documented [0, MaxThinkingBudget]
// range.
func ClampThinkingBudget(n int32) int32 {
	if n < 0 {
		return 0
	}
	if n > MaxThinkingBudget {
		return MaxThinkingBudget
	}
	return n
}
