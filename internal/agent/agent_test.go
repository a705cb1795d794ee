package agent

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/halcyon-ai/halcyon/internal/backend"
	"github.com/halcyon-ai/halcyon/internal/session"
)

// fakeBackend scripts Send and CountTokens outcomes and records calls.
type fakeBackend struct {
	sendCalls   []string
	sendReply   *backend.Reply
	sendErr     error
	countCalls  int
	countResult int
	countErr    error
}

func (f *fakeBackend) Send(_ context.Context, text string) (*backend.Reply, error) {
	f.sendCalls = append(f.sendCalls, text)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	if f.sendReply != nil {
		return f.sendReply, nil
	}
	return &backend.Reply{Text: "ok", HasContent: true}, nil
}

func (f *fakeBackend) CountTokens(_ context.Context, _ []session.Turn) (int, error) {
	f.countCalls++
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.countResult, nil
}

// scriptedIO feeds a fixed input sequence and records output events.
type scriptedIO struct {
	inputs   []string
	agent    []string
	system   []string
	warnings []string
	errors   []string
	tokens   []int
}

func (s *scriptedIO) ReadInput() (string, error) {
	if len(s.inputs) == 0 {
		return "", io.EOF
	}
	next := s.inputs[0]
	s.inputs = s.inputs[1:]
	return next, nil
}

func (s *scriptedIO) Busy()                     {}
func (s *scriptedIO) AgentText(text string)     { s.agent = append(s.agent, text) }
func (s *scriptedIO) SystemMessage(text string) { s.system = append(s.system, text) }
func (s *scriptedIO) Warning(text string)       { s.warnings = append(s.warnings, text) }
func (s *scriptedIO) Error(text string)         { s.errors = append(s.errors, text) }
func (s *scriptedIO) SetTokens(n int)           { s.tokens = append(s.tokens, n) }

func newAgent(b *fakeBackend, ui *scriptedIO) (*Agent, *session.Mirror) {
	m := session.NewMirror()
	return New(b, m, ui), m
}

func TestRun_SentinelTerminatesWithoutSend(t *testing.T) {
	for _, sentinel := range []string{"exit", "EXIT", "quit", "Quit", "qUiT"} {
		b := &fakeBackend{}
		ui := &scriptedIO{inputs: []string{sentinel}}
		a, m := newAgent(b, ui)

		if err := a.Run(context.Background()); err != nil {
			t.Fatalf("%s: unexpected error: %v", sentinel, err)
		}
		if len(b.sendCalls) != 0 {
			t.Errorf("%s: send should not be invoked", sentinel)
		}
		if m.Len() != 0 {
			t.Errorf("%s: mirror should stay empty", sentinel)
		}
		if len(ui.system) == 0 || !strings.Contains(ui.system[len(ui.system)-1], "Goodbye") {
			t.Errorf("%s: expected a farewell, got %v", sentinel, ui.system)
		}
	}
}

func TestRun_EmptyInputIsANoOp(t *testing.T) {
	b := &fakeBackend{}
	ui := &scriptedIO{inputs: []string{"", "   ", "quit"}}
	a, m := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.sendCalls) != 0 {
		t.Error("empty input must never invoke send")
	}
	if m.Len() != 0 {
		t.Error("empty input must never mutate the mirror")
	}
}

func TestRun_MirrorAppendDiscipline(t *testing.T) {
	b := &fakeBackend{sendReply: &backend.Reply{Text: "answer", HasContent: true}, countResult: 42}
	ui := &scriptedIO{inputs: []string{"hello", "quit"}}
	a, m := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	turns := m.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected exactly one user + one agent turn, got %d", len(turns))
	}
	if turns[0].Role != session.RoleUser || turns[0].Text != "hello" {
		t.Errorf("user turn: got %+v", turns[0])
	}
	if turns[1].Role != session.RoleAgent || turns[1].Text != "answer" {
		t.Errorf("agent turn: got %+v", turns[1])
	}
	if m.TokenCount() != 42 {
		t.Errorf("token count: got %d, want 42", m.TokenCount())
	}
	if len(ui.tokens) != 1 || ui.tokens[0] != 42 {
		t.Errorf("IO token updates: got %v", ui.tokens)
	}
}

func TestRun_NoContentResponseWarnsAndSkipsMirror(t *testing.T) {
	b := &fakeBackend{sendReply: &backend.Reply{Text: "", HasContent: false}}
	ui := &scriptedIO{inputs: []string{"hello", "quit"}}
	a, m := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("only the user turn should be mirrored, got %d turns", m.Len())
	}
	if len(ui.warnings) == 0 {
		t.Error("expected a warning about the missing content")
	}
}

func TestRun_CountFailureKeepsPreviousEstimate(t *testing.T) {
	b := &fakeBackend{countErr: errors.New("quota exceeded")}
	ui := &scriptedIO{inputs: []string{"hello", "quit"}}
	a, m := newAgent(b, ui)
	m.SetTokenCount(99)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("count failure must not escape the loop: %v", err)
	}
	if m.TokenCount() != 99 {
		t.Errorf("previous estimate must be retained, got %d", m.TokenCount())
	}
	if len(ui.tokens) != 0 {
		t.Errorf("IO must not receive a token update, got %v", ui.tokens)
	}
	found := false
	for _, w := range ui.warnings {
		if strings.Contains(w, "token count") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a token count warning, got %v", ui.warnings)
	}
}

func TestRun_CountFailureWithNoPriorUsesLocalEstimate(t *testing.T) {
	b := &fakeBackend{sendReply: &backend.Reply{Text: "ok", HasContent: true}, countErr: errors.New("unavailable")}
	ui := &scriptedIO{inputs: []string{"hello world", "quit"}}
	a, m := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// "hello world" + "ok" is 13 chars, so the chars/4 estimate is 3.
	want := m.EstimateTokens()
	if want != 3 {
		t.Fatalf("local estimate: got %d, want 3", want)
	}
	if m.TokenCount() != want {
		t.Errorf("token count: got %d, want local estimate %d", m.TokenCount(), want)
	}
	if len(ui.tokens) != 1 || ui.tokens[0] != want {
		t.Errorf("IO token updates: got %v, want [%d]", ui.tokens, want)
	}
}

func TestRun_SendFailureIsRecoverable(t *testing.T) {
	b := &fakeBackend{sendErr: errors.New("backend unavailable")}
	ui := &scriptedIO{inputs: []string{"first", "second", "quit"}}
	a, _ := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("a failed exchange must not end the loop: %v", err)
	}
	if len(b.sendCalls) != 2 {
		t.Errorf("loop should keep accepting input after a failure, sends: %v", b.sendCalls)
	}
	if len(ui.errors) != 2 {
		t.Errorf("each failure should surface a diagnostic, got %v", ui.errors)
	}
}

func TestRun_EOFTerminates(t *testing.T) {
	b := &fakeBackend{}
	ui := &scriptedIO{} // no inputs: first read returns EOF
	a, _ := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("EOF should be a clean exit: %v", err)
	}
	if len(ui.system) == 0 {
		t.Error("expected a farewell on EOF")
	}
}

func TestRun_CancelledContextTerminates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := &fakeBackend{}
	ui := &scriptedIO{inputs: []string{"hello"}}
	a, _ := newAgent(b, ui)

	if err := a.Run(ctx); err != nil {
		t.Fatalf("interrupt should be a clean exit: %v", err)
	}
	if len(b.sendCalls) != 0 {
		t.Error("no send should happen after cancellation")
	}
}

func TestRun_EndToEndHelloQuit(t *testing.T) {
	b := &fakeBackend{sendReply: &backend.Reply{Text: "hi!", HasContent: true}, countResult: 7}
	ui := &scriptedIO{inputs: []string{"hello", "quit"}}
	a, _ := newAgent(b, ui)

	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.sendCalls) != 1 || b.sendCalls[0] != "hello" {
		t.Errorf("expected exactly one send with %q, got %v", "hello", b.sendCalls)
	}
	if len(ui.agent) != 1 || ui.agent[0] != "hi!" {
		t.Errorf("expected one printed response, got %v", ui.agent)
	}
	if len(ui.system) != 1 || !strings.Contains(ui.system[0], "Goodbye") {
		t.Errorf("expected a single farewell, got %v", ui.system)
	}
}

func TestRunOnce(t *testing.T) {
	b := &fakeBackend{sendReply: &backend.Reply{Text: "done", HasContent: true}, countResult: 3}
	ui := &scriptedIO{}
	a, m := newAgent(b, ui)

	if err := a.RunOnce(context.Background(), "do the thing"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.sendCalls) != 1 {
		t.Fatalf("expected one send, got %v", b.sendCalls)
	}
	if m.Len() != 2 {
		t.Errorf("expected both turns mirrored, got %d", m.Len())
	}
}
