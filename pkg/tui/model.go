// Package tui renders a practice session in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/japaniel/wordchallenge/pkg/practice"
)

// WordChecker tells whether a sentence uses a word. *usage.Analyzer
// satisfies it.
type WordChecker interface {
	UsesWord(sentence, word string) bool
}

type wordLoadedMsg struct{ err error }

type submittedMsg struct{ err error }

type alertMsg string

// Model is the bubbletea model of the practice screen.
type Model struct {
	ctx     context.Context
	session *practice.Session
	checker WordChecker
	alerts  <-chan string
	styles  Styles

	input   textarea.Model
	pending []string
	width   int
	// hint is recomputed when the draft changes, not on every render.
	hint string
}

// New builds a model for session. alerts is usually ChanNotifier.C() of the
// notifier installed on the session; checker may be nil.
func New(ctx context.Context, session *practice.Session, alerts <-chan string, checker WordChecker) Model {
	ta := textarea.New()
	ta.Placeholder = "Type your sentence..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(4)
	ta.SetWidth(60)
	ta.Focus()

	return Model{
		ctx:     ctx,
		session: session,
		checker: checker,
		alerts:  alerts,
		styles:  NewStyles(),
		input:   ta,
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadWord(), m.waitForAlert(), textarea.Blink)
}

func (m Model) loadWord() tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.LoadNextWord(m.ctx)
		return wordLoadedMsg{err: err}
	}
}

func (m Model) submit() tea.Cmd {
	return func() tea.Msg {
		_, err := m.session.SubmitSentence(m.ctx)
		return submittedMsg{err: err}
	}
}

func (m Model) waitForAlert() tea.Cmd {
	if m.alerts == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-m.alerts:
			if !ok {
				return nil
			}
			return alertMsg(msg)
		case <-m.ctx.Done():
			return nil
		}
	}
}

// Alert returns the notification currently shown, if any.
func (m Model) Alert() string {
	if len(m.pending) == 0 {
		return ""
	}
	return m.pending[0]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w < 20 {
			w = 20
		}
		m.input.SetWidth(w)
		return m, nil

	case alertMsg:
		m.pending = append(m.pending, string(msg))
		return m, m.waitForAlert()

	case wordLoadedMsg:
		if msg.err == nil {
			m.input.Reset()
			m.hint = ""
			return m, m.input.Focus()
		}
		return m, nil

	case submittedMsg:
		if m.session.Snapshot().Submitted {
			m.input.Blur()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The alert is modal: only dismissal keys are honoured.
	if len(m.pending) > 0 {
		switch msg.String() {
		case "enter", "esc":
			m.pending = m.pending[1:]
		}
		return m, nil
	}

	st := m.session.Snapshot()
	switch msg.String() {
	case "ctrl+s":
		if m.session.CanSubmit() {
			return m, m.submit()
		}
		return m, nil
	case "ctrl+n":
		if st.Submitted && !st.Fetching {
			return m, m.loadWord()
		}
		return m, nil
	case "ctrl+r":
		if st.Word == nil && !st.Fetching {
			return m, m.loadWord()
		}
		return m, nil
	}

	if st.Word == nil || st.Submitted {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != st.Draft {
		m.session.EditDraft(v)
		st.Draft = v
		m.hint = m.usageHint(st)
	}
	return m, cmd
}

func (m Model) View() string {
	if alert := m.Alert(); alert != "" {
		body := alert + "\n\n" + m.styles.Muted.Render("[enter] OK")
		return lipgloss.Place(m.width, 10, lipgloss.Center, lipgloss.Center, m.styles.Alert.Render(body))
	}

	st := m.session.Snapshot()
	if st.Word == nil {
		var b strings.Builder
		b.WriteString("Loading...")
		if !st.Fetching {
			b.WriteString("\n\n" + m.styles.Muted.Render("ctrl+r retry • ctrl+c quit"))
		}
		return b.String()
	}

	w := st.Word
	var card strings.Builder
	card.WriteString(m.styles.Word.Render(w.Word))
	card.WriteString("  ")
	card.WriteString(m.styles.Badge(w.Difficulty).Render(string(w.Difficulty)))
	card.WriteString("\n\n")
	card.WriteString(m.styles.Meaning.Render(w.Meaning))
	card.WriteString("\n\n")
	card.WriteString(m.input.View())
	card.WriteString("\n\n")
	card.WriteString("Score: ")
	card.WriteString(m.styles.Score(st.Feedback).Render(fmt.Sprintf("%.1f", st.Score)))

	if m.hint != "" && !st.Submitted {
		card.WriteString("\n")
		card.WriteString(m.styles.Hint.Render(m.hint))
	}

	return m.styles.Title.Render("Word Challenge") + "\n" +
		m.styles.Card.Render(card.String()) + "\n" +
		m.footer(st)
}

func (m Model) usageHint(st practice.State) string {
	if m.checker == nil || st.Submitted || strings.TrimSpace(st.Draft) == "" {
		return ""
	}
	if m.checker.UsesWord(st.Draft, st.Word.Word) {
		return ""
	}
	return fmt.Sprintf("Your sentence does not use %q yet.", st.Word.Word)
}

func (m Model) footer(st practice.State) string {
	var action string
	switch {
	case st.Submitted:
		action = m.styles.Key.Render("ctrl+n") + " Next Word"
	case st.InFlight:
		action = m.styles.Muted.Render("Scoring...")
	case m.session.CanSubmit():
		action = m.styles.Key.Render("ctrl+s") + " Submit Sentence"
	default:
		action = m.styles.Muted.Render("ctrl+s Submit Sentence")
	}
	return action + m.styles.Muted.Render(" • ctrl+c quit")
}
