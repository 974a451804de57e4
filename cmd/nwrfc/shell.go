package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/nwrfc/client"
	"github.com/wippyai/nwrfc/rfc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0A6ED1")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#0A6ED1"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type shellState int

const (
	stateSelectFunc shellState = iota
	stateInputArgs
	stateShowResult
)

type shellModel struct {
	ctx      context.Context
	err      error
	conn     *client.Connection
	fn       *rfc.Function
	result   string
	funcs    []string
	inputs   []textinput.Model
	params   []rfc.Parameter
	selected int
	focusIdx int
	state    shellState
}

type describedMsg struct {
	err error
	fn  *rfc.Function
}

type callResultMsg struct {
	err    error
	result string
}

func newShellModel(ctx context.Context, conn *client.Connection, funcs []string) *shellModel {
	return &shellModel{
		ctx:   ctx,
		conn:  conn,
		funcs: funcs,
		state: stateSelectFunc,
	}
}

func (m *shellModel) Init() tea.Cmd {
	return nil
}

func (m *shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.funcs)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.funcs) == 0 {
					return m, nil
				}
				return m, m.describe
			case stateInputArgs:
				return m, m.callFunction
			case stateShowResult:
				m.reset()
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			if m.state != stateSelectFunc {
				m.reset()
			}
		}

	case describedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateShowResult
			return m, nil
		}
		m.fn = msg.fn
		m.prepareInputs()
		if len(m.inputs) == 0 {
			return m, m.callFunction
		}
		m.state = stateInputArgs
		return m, nil

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		cmds := make([]tea.Cmd, 0, len(m.inputs))
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *shellModel) reset() {
	m.state = stateSelectFunc
	m.fn = nil
	m.inputs = nil
	m.params = nil
	m.result = ""
	m.err = nil
}

func (m *shellModel) describe() tea.Msg {
	fn, err := m.conn.Function(m.ctx, m.funcs[m.selected])
	return describedMsg{fn: fn, err: err}
}

// prepareInputs offers one input per scalar parameter the caller sends
func (m *shellModel) prepareInputs() {
	m.params = m.params[:0]
	for _, p := range m.fn.Parameters() {
		if p.Direction.Sent() && p.Type.IsScalar() {
			m.params = append(m.params, p)
		}
	}
	m.inputs = make([]textinput.Model, len(m.params))
	for i, p := range m.params {
		ti := textinput.New()
		ti.Placeholder = typeLabel(p)
		ti.Prompt = p.Name + ": "
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *shellModel) callFunction() tea.Msg {
	call := m.fn.NewCall()
	for i, input := range m.inputs {
		if input.Value() == "" {
			continue
		}
		if err := assignArg(call, m.params[i].Name+"="+input.Value()); err != nil {
			return callResultMsg{err: err}
		}
	}
	if err := call.Invoke(m.ctx); err != nil {
		return callResultMsg{err: err}
	}
	out, err := results(call)
	if err != nil {
		return callResultMsg{err: err}
	}
	text, err := yaml.Marshal(out)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: string(text)}
}

func (m *shellModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("NW RFC"))
	b.WriteString(" ")
	b.WriteString(m.conn.SysID())
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		if len(m.funcs) == 0 {
			b.WriteString("No function modules available.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			return b.String()
		}
		b.WriteString("Select a function module:\n\n")
		for i, f := range m.funcs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + f))
			} else {
				b.WriteString("  " + funcStyle.Render(f))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • q quit"))

	case stateInputArgs:
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(m.fn.Name())))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(typeLabel(m.params[i])))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		name := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Result of %s:\n\n", funcStyle.Render(name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runShell(ctx context.Context, conn *client.Connection, funcs []string) error {
	p := tea.NewProgram(newShellModel(ctx, conn, funcs), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
