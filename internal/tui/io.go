// Package tui defines the IO contract between the turn loop and the
// terminal, plus the plain-terminal implementation.
package tui

// IO is the contract between the turn loop and the user interface. Each
// method maps to a distinct visual event so the loop never depends on a
// rendering implementation, and tests can substitute a scripted fake.
type IO interface {
	// ReadInput blocks until the operator submits a line.
	// Returns ("", io.EOF) when input is exhausted.
	ReadInput() (string, error)

	// Busy signals that a message is being sent and processed.
	Busy()

	// AgentText displays the model's final answer for a turn.
	AgentText(text string)

	// SystemMessage displays a neutral notice (startup banner, farewell).
	SystemMessage(text string)

	// Warning displays a recoverable problem (token count unavailable,
	// response carried no content).
	Warning(text string)

	// Error displays a failed exchange with prominent styling.
	Error(text string)

	// SetTokens updates the token count shown in the next input prompt.
	SetTokens(n int)
}
