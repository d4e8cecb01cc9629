package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hsiuhsiu/engmat-go/pkg/engmat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0076A8")).
			Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// chrome is the number of lines around the scrollback: title, input, help.
const chrome = 4

type consoleModel struct {
	ctx        context.Context
	engine     *engmat.Engine
	input      textinput.Model
	scrollback viewport.Model
	transcript []string
	history    []string
	histIdx    int
	busy       bool
	ready      bool
}

type evalMsg struct {
	expr string
	out  string
	err  error
}

func newConsoleModel(ctx context.Context, e *engmat.Engine) *consoleModel {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(">> ")
	ti.Placeholder = "expression"
	ti.Focus()

	return &consoleModel{
		ctx:    ctx,
		engine: e,
		input:  ti,
	}
}

func (m *consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(1, msg.Height-chrome)
		if !m.ready {
			m.scrollback = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.scrollback.Width = msg.Width
			m.scrollback.Height = height
		}
		m.input.Width = max(10, msg.Width-4)
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit

		case tea.KeyEnter:
			expr := strings.TrimSpace(m.input.Value())
			if expr == "" || m.busy {
				return m, nil
			}
			if expr == "exit" || expr == "quit" {
				return m, tea.Quit
			}
			m.history = append(m.history, expr)
			m.histIdx = len(m.history)
			m.input.Reset()
			m.busy = true
			return m, m.evaluate(expr)

		case tea.KeyUp:
			if m.histIdx > 0 {
				m.histIdx--
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.histIdx < len(m.history)-1 {
				m.histIdx++
				m.input.SetValue(m.history[m.histIdx])
				m.input.CursorEnd()
			} else {
				m.histIdx = len(m.history)
				m.input.Reset()
			}
			return m, nil
		}

	case evalMsg:
		m.busy = false
		m.transcript = append(m.transcript, promptStyle.Render(">> ")+msg.expr)
		if msg.err != nil {
			m.transcript = append(m.transcript, errorStyle.Render(fmt.Sprintf("Error: %v", msg.err)))
		} else if out := strings.TrimRight(msg.out, "\n"); out != "" {
			m.transcript = append(m.transcript, resultStyle.Render(out))
		}
		m.refresh()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.scrollback, cmd = m.scrollback.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *consoleModel) evaluate(expr string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.engine.EvaluateString(m.ctx, expr)
		return evalMsg{expr: expr, out: out, err: err}
	}
}

func (m *consoleModel) refresh() {
	if !m.ready {
		return
	}
	m.scrollback.SetContent(strings.Join(m.transcript, "\n"))
	m.scrollback.GotoBottom()
}

func (m *consoleModel) View() string {
	if !m.ready {
		return "Starting engine..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("MATLAB Engine"))
	b.WriteString(" ")
	b.WriteString(fmt.Sprintf("buffer %d bytes", m.engine.BufferSize()))
	b.WriteString("\n")
	b.WriteString(m.scrollback.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter evaluate • ↑/↓ history • ctrl+c quit"))
	return b.String()
}

func runInteractive(ctx context.Context, lib *engmat.Library) error {
	e, err := lib.OpenEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	p := tea.NewProgram(newConsoleModel(ctx, e), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
