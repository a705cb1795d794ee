package session

import "testing"

func TestMirror_AppendOrder(t *testing.T) {
	m := NewMirror()
	m.AddUser("hello")
	m.AddAgent("hi there")
	m.AddUser("bye")

	turns := m.Turns()
	if len(turns) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(turns))
	}
	if turns[0].Role != RoleUser || turns[0].Text != "hello" {
		t.Errorf("turn 0: got %+v", turns[0])
	}
	if turns[1].Role != RoleAgent || turns[1].Text != "hi there" {
		t.Errorf("turn 1: got %+v", turns[1])
	}
	if turns[2].Role != RoleUser {
		t.Errorf("turn 2: got %+v", turns[2])
	}
}

func TestMirror_TurnsIsACopy(t *testing.T) {
	m := NewMirror()
	m.AddUser("original")

	turns := m.Turns()
	turns[0].Text = "mutated"

	if got := m.Turns()[0].Text; got != "original" {
		t.Errorf("mirror was mutated through the returned slice: %q", got)
	}
}

func TestMirror_TokenCount(t *testing.T) {
	m := NewMirror()
	if m.TokenCount() != 0 {
		t.Errorf("fresh mirror should report 0 tokens, got %d", m.TokenCount())
	}
	m.SetTokenCount(1234)
	if m.TokenCount() != 1234 {
		t.Errorf("expected 1234, got %d", m.TokenCount())
	}
}

func TestMirror_EstimateTokens(t *testing.T) {
	m := NewMirror()
	m.AddUser("aaaa")      // 4 chars
	m.AddAgent("bbbbbbbb") // 8 chars
	if got := m.EstimateTokens(); got != 3 {
		t.Errorf("expected 12/4=3, got %d", got)
	}
}
