package tui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	agentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// PlainIO implements IO on a plain terminal: bufio.Scanner input, styled
// fmt output. The input prompt carries the previous turn's token count.
type PlainIO struct {
	scanner *bufio.Scanner
	out     io.Writer
	errOut  io.Writer
	tokens  int
}

// NewPlainIO creates a PlainIO reading stdin and writing stdout/stderr.
func NewPlainIO() *PlainIO {
	s := bufio.NewScanner(os.Stdin)
	s.Buffer(make([]byte, 1024*1024), 1024*1024)
	return &PlainIO{scanner: s, out: os.Stdout, errOut: os.Stderr}
}

func (p *PlainIO) ReadInput() (string, error) {
	fmt.Fprintf(p.out, "\n%s ", promptStyle.Render(fmt.Sprintf("You (%d):", p.tokens)))
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// PromptLine prints prompt and reads one line through the same scanner
// the turn loop uses. A second reader over stdin would drain buffered
// bytes past the first line and starve the loop of its input.
func (p *PlainIO) PromptLine(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s ", prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *PlainIO) Busy() {
	fmt.Fprintln(p.out, faintStyle.Render("Sending message and processing..."))
}

func (p *PlainIO) AgentText(text string) {
	fmt.Fprintf(p.out, "\n%s %s\n", agentStyle.Render("Agent:"), text)
}

func (p *PlainIO) SystemMessage(text string) {
	fmt.Fprintln(p.out, text)
}

func (p *PlainIO) Warning(text string) {
	fmt.Fprintln(p.errOut, warnStyle.Render("warning: "+text))
}

func (p *PlainIO) Error(text string) {
	fmt.Fprintln(p.errOut, errorStyle.Render("error: "+text))
}

func (p *PlainIO) SetTokens(n int) {
	p.tokens = n
}
