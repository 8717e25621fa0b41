// Package tui shows the wallet's barcode in a terminal: a ticket input on
// top, the current token's barcode under it, refreshed every window.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"src.goblgobl.com/ticketgimp"
	"src.goblgobl.com/ticketgimp/barcode"
	"src.goblgobl.com/ticketgimp/log"
	"src.goblgobl.com/ticketgimp/refresh"
)

var (
	accent     = lipgloss.Color("#d500f9")
	background = lipgloss.Color("#080c18")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(background).
			Padding(0, 2)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(accent)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555"))
)

type tickMsg time.Time

type Model struct {
	wallet    *ticketgimp.Wallet
	encoder   barcode.Encoder
	scheduler *refresh.Scheduler
	input     textinput.Model
	now       func() time.Time

	// the token the barcode was rendered for
	rendered string
	code     string
	// last storage or barcode failure
	err      error
}

func New(wallet *ticketgimp.Wallet, encoder barcode.Encoder) Model {
	input := textinput.New()
	input.Placeholder = "insert ticket here"
	input.Prompt = ""
	input.CharLimit = 4096
	input.Width = 60
	input.SetValue(wallet.Raw())
	input.Focus()

	return Model{
		wallet:    wallet,
		encoder:   encoder,
		scheduler: ticketgimp.NewScheduler(wallet),
		input:     input,
		now:       time.Now,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick(m.scheduler.Interval))
}

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.scheduler.Stop()
			return m, tea.Quit
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if value := m.input.Value(); value != before {
			// saved on every change, there's no submit
			m.err = m.wallet.Save(value)
			if m.err != nil {
				log.Error("tui_save", zap.Error(m.err))
			}
		}
		m.render()
		return m, cmd

	case tickMsg:
		m.scheduler.Sample(time.Time(msg))
		m.render()
		return m, tick(m.scheduler.Interval)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Re-renders the barcode when the token changed since the last render.
func (m *Model) render() {
	text := m.wallet.Current().Text()
	if text == m.rendered {
		return
	}
	m.rendered = text
	m.code = ""
	if text == "" {
		return
	}

	code, err := m.encoder.Terminal(text)
	if err != nil {
		m.err = err
		log.Error("tui_barcode", zap.Error(err))
		return
	}
	m.code = code
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TicketGimp"))
	b.WriteString("\n\n")
	b.WriteString(inputStyle.Render(m.input.View()))
	b.WriteString("\n\n")
	if m.code != "" {
		b.WriteString(m.code)
		b.WriteString("\n")
	}
	b.WriteString(m.status())
	b.WriteString("\n")
	return b.String()
}

func (m Model) status() string {
	if m.err != nil {
		return errorStyle.Render(m.err.Error())
	}

	state := m.wallet.Current()
	switch state.Status {
	case ticketgimp.StatusReady:
		left := math.Ceil(state.Token.Expires().Sub(m.now()).Seconds())
		if left < 0 {
			left = 0
		}
		return statusStyle.Render(fmt.Sprintf("%s  (refreshes in %ds)", state.Token.BearerId, int(left)))
	case ticketgimp.StatusMalformed:
		return errorStyle.Render("that doesn't look like a ticket")
	case ticketgimp.StatusUnderivable:
		return errorStyle.Render("this ticket can't produce a token")
	}
	return statusStyle.Render("no ticket")
}

// Runs until the user quits.
func Run(wallet *ticketgimp.Wallet, encoder barcode.Encoder) error {
	m := New(wallet, encoder)
	m.render()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
