// Package agent drives the interactive turn loop: read operator input,
// forward it to the backend session, print the answer, and keep the token
// estimate current from the conversation mirror.
package agent

import (
	"context"
	"io"
	"strings"

	"github.com/halcyon-ai/halcyon/internal/backend"
	"github.com/halcyon-ai/halcyon/internal/session"
	"github.com/halcyon-ai/halcyon/internal/tui"
)

// Backend is the slice of the session the loop needs. Satisfied by
// *backend.Session; tests substitute a scripted fake.
type Backend interface {
	Send(ctx context.Context, text string) (*backend.Reply, error)
	CountTokens(ctx context.Context, turns []session.Turn) (int, error)
}

// Agent owns one conversation: a backend session, the local mirror, and
// the IO layer. All collaborators are injected at construction; the agent
// holds no global state.
type Agent struct {
	backend Backend
	mirror  *session.Mirror
	io      tui.IO
}

// New creates an agent over the given session, mirror, and IO.
func New(b Backend, mirror *session.Mirror, ui tui.IO) *Agent {
	return &Agent{backend: b, mirror: mirror, io: ui}
}

// Run starts the interactive loop. It returns nil on a clean exit
// (sentinel input, EOF, or interrupt); any single turn's failure is
// reported and the loop continues.
func (a *Agent) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			a.farewell()
			return nil
		}

		input, err := a.io.ReadInput()
		if err != nil {
			if err == io.EOF {
				a.farewell()
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if isSentinel(input) {
			a.farewell()
			return nil
		}
		if input == "" {
			continue
		}

		a.runTurn(ctx, input)

		// An interrupt during the exchange terminates after the turn
		// settles; nothing is in flight at this point.
		if ctx.Err() != nil {
			a.farewell()
			return nil
		}
	}
}

// RunOnce executes a single prompt non-interactively.
func (a *Agent) RunOnce(ctx context.Context, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil
	}
	a.runTurn(ctx, prompt)
	return ctx.Err()
}

// runTurn performs one full exchange: mirror the user turn, send, mirror
// the agent turn, print, and refresh the token estimate. Every failure
// path leaves the loop ready for the next input.
func (a *Agent) runTurn(ctx context.Context, input string) {
	a.mirror.AddUser(input)
	a.io.Busy()

	reply, err := a.backend.Send(ctx, input)
	if err != nil {
		a.io.Error("exchange failed: " + err.Error())
		return
	}

	if reply.HasContent {
		a.mirror.AddAgent(reply.Text)
	} else {
		a.io.Warning("response carried no content; skipping history mirror")
	}

	a.io.AgentText(reply.Text)

	count, err := a.backend.CountTokens(ctx, a.mirror.Turns())
	if err != nil {
		// Keep the previous estimate; counting must never break a turn.
		a.io.Warning("could not update token count: " + err.Error())
		if a.mirror.TokenCount() == 0 {
			// No backend count has succeeded yet; show the rough
			// local estimate rather than a misleading zero.
			est := a.mirror.EstimateTokens()
			a.mirror.SetTokenCount(est)
			a.io.SetTokens(est)
		}
		return
	}
	a.mirror.SetTokenCount(count)
	a.io.SetTokens(count)
}

func (a *Agent) farewell() {
	a.io.SystemMessage("Goodbye!")
}

// isSentinel reports whether input asks to end the session.
func isSentinel(input string) bool {
	switch strings.ToLower(input) {
	case "exit", "quit":
		return true
	}
	return false
}
