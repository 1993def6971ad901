// Package tui is the terminal front end: a URL input, a busy indicator,
// the results list and a dismissible error banner.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hamed0406/uptimetracker/internal/form"
	"github.com/hamed0406/uptimetracker/internal/notify"
	"github.com/hamed0406/uptimetracker/internal/render"
	"github.com/hamed0406/uptimetracker/internal/session"
)

// Model is the Bubble Tea model for the tracker.
type Model struct {
	ctx    context.Context
	sess   *session.Orchestrator
	form   *form.Form
	banner *notify.Banner

	input   textinput.Model
	spinner spinner.Model
	styles  Styles

	snap       session.Snapshot
	notice     *notify.Notice
	validation string

	updates     <-chan session.Snapshot
	unsubscribe func()
}

var _ tea.Model = (*Model)(nil)

type (
	snapshotMsg  session.Snapshot
	checkDoneMsg session.Outcome
)

func NewModel(ctx context.Context, sess *session.Orchestrator, f *form.Form, banner *notify.Banner) *Model {
	ti := textinput.New()
	ti.Placeholder = "Enter website URL"
	ti.Prompt = "URL: "
	ti.Width = 50
	ti.SetValue(f.Value())
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))

	updates, unsubscribe := sess.Subscribe()
	return &Model{
		ctx:         ctx,
		sess:        sess,
		form:        f,
		banner:      banner,
		input:       ti,
		spinner:     s,
		styles:      DefaultStyles(),
		snap:        sess.Snapshot(),
		notice:      banner.Current(),
		updates:     updates,
		unsubscribe: unsubscribe,
	}
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, sess *session.Orchestrator, f *form.Form, banner *notify.Banner) error {
	m := NewModel(ctx, sess, f, banner)
	defer m.unsubscribe()
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSnapshot(m.updates))
}

func waitForSnapshot(ch <-chan session.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return snapshotMsg(s)
	}
}

func waitForOutcome(ch <-chan session.Outcome) tea.Cmd {
	return func() tea.Msg {
		return checkDoneMsg(<-ch)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.unsubscribe()
			return m, tea.Quit
		case "esc":
			if m.notice != nil {
				m.banner.Dismiss(m.notice.ID)
				m.notice = nil
			}
			return m, nil
		case "enter":
			return m, m.submit()
		}

	case snapshotMsg:
		m.snap = session.Snapshot(msg)
		return m, waitForSnapshot(m.updates)

	case checkDoneMsg:
		m.snap = m.sess.Snapshot()
		m.notice = m.banner.Current()
		return m, nil

	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.form.UpdateURL(m.input.Value())
	return m, cmd
}

// submit validates the draft; a valid one enters the loading state
// immediately and the outcome arrives as a checkDoneMsg.
func (m *Model) submit() tea.Cmd {
	m.form.UpdateURL(m.input.Value())
	req, err := m.form.Request()
	if err != nil {
		m.validation = form.Message(err)
		return nil
	}
	m.validation = ""

	done := m.sess.Start(m.ctx, req)
	m.snap = m.sess.Snapshot()
	return tea.Batch(waitForOutcome(done), m.spinner.Tick)
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Global Uptime Tracker"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render("Check how your website responds from regions around the world."))
	b.WriteString("\n\n")

	if m.notice != nil {
		b.WriteString(m.styles.Banner.Render(m.notice.Text + "  (esc to dismiss)"))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.validation != "" {
		b.WriteString(m.styles.Validation.Render(m.validation))
		b.WriteString("\n")
	}

	if m.snap.Loading {
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " " + m.styles.Loading.Render("Checking uptime..."))
		b.WriteString("\n")
	}

	if m.snap.HasResults {
		b.WriteString("\n")
		b.WriteString(m.styles.Heading.Render(render.Heading))
		b.WriteString("\n")
		for i, line := range render.Lines(m.snap.Results) {
			style := m.styles.Down
			if strings.EqualFold(m.snap.Results[i].Status, "up") {
				style = m.styles.Up
			}
			b.WriteString("  " + style.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("enter: check  esc: dismiss error  ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}
