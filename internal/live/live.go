// Package live shows a TCK run as it happens: a progress bar over the
// candidate x instantiator matrix, the trial in flight and the failures so far.
package live

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dkoosis/tck/pkg/render"
	"github.com/dkoosis/tck/pkg/tck"
)

const maxFailuresShown = 8

type startMsg struct {
	platform string
	total    int
}

type trialMsg struct {
	candidate    string
	instantiator string
}

type outcomeMsg struct {
	ok  bool
	err error
}

type endTestMsg struct{}

type doneMsg struct{}

// sender is the part of *tea.Program the reporter needs.
type sender interface {
	Send(msg tea.Msg)
}

// Reporter forwards reporter calls to the live view.
type Reporter struct {
	program sender
}

func (r *Reporter) StartTests(platform string, candidates, instantiators []string) {
	r.program.Send(startMsg{platform: platform, total: len(candidates) * len(instantiators)})
}

func (r *Reporter) StartTest(candidate, instantiator string) {
	r.program.Send(trialMsg{candidate: candidate, instantiator: instantiator})
}

func (r *Reporter) Result(instantiated bool) { r.program.Send(outcomeMsg{ok: instantiated}) }

func (r *Reporter) Exception(err error) { r.program.Send(outcomeMsg{err: err}) }

func (r *Reporter) EndTest() { r.program.Send(endTestMsg{}) }

func (r *Reporter) EndInstantiator(string) {}

func (r *Reporter) EndTests() { r.program.Send(doneMsg{}) }

// Run starts the view on out and calls run with a reporter feeding it.
// It returns once run has finished and the view has drawn its last frame.
func Run(ctx context.Context, out io.Writer, theme render.Theme, run func(ctx context.Context, r tck.Reporter) error) error {
	program := tea.NewProgram(newModel(theme),
		tea.WithContext(ctx),
		tea.WithOutput(out),
		tea.WithInput(nil),
	)

	runErr := make(chan error, 1)
	go func() {
		err := run(ctx, &Reporter{program: program})
		program.Send(doneMsg{})
		runErr <- err
	}()

	if _, err := program.Run(); err != nil {
		<-runErr
		return fmt.Errorf("live view: %w", err)
	}
	return <-runErr
}

type failure struct {
	candidate    string
	instantiator string
	err          error
}

type model struct {
	theme    render.Theme
	spinner  spinner.Model
	progress progress.Model

	platform     string
	total        int
	finished     int
	passed       int
	candidate    string
	instantiator string
	outcome      *outcomeMsg
	failures     []failure
	started      time.Time
	done         bool
}

func newModel(theme render.Theme) model {
	return model{
		theme:    theme,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(theme.Heading)),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		started:  time.Now(),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.progress.Width = max(10, min(60, msg.Width-30))
	case startMsg:
		m.platform, m.total = msg.platform, msg.total
	case trialMsg:
		m.candidate, m.instantiator = msg.candidate, msg.instantiator
		m.outcome = nil
	case outcomeMsg:
		m.outcome = &msg
	case endTestMsg:
		m.finished++
		if m.outcome != nil && m.outcome.ok && m.outcome.err == nil {
			m.passed++
		} else {
			f := failure{candidate: m.candidate, instantiator: m.instantiator}
			if m.outcome != nil {
				f.err = m.outcome.err
			}
			m.failures = append(m.failures, f)
		}
		m.outcome = nil
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.finished) / float64(m.total)
}

func (m model) View() string {
	var sb strings.Builder
	if m.platform != "" {
		sb.WriteString(m.theme.Muted.Render(m.platform) + "\n")
	}
	sb.WriteString(m.progress.ViewAs(m.percent()))
	sb.WriteString(fmt.Sprintf(" %d/%d", m.finished, m.total))
	if failed := m.finished - m.passed; failed > 0 {
		sb.WriteString(" " + m.theme.Raised.Render(fmt.Sprintf("%s %d", m.theme.Cells.Raised, failed)))
	}
	sb.WriteString("\n")

	if m.done {
		sb.WriteString(m.theme.Bold.Render(fmt.Sprintf("done in %s", time.Since(m.started).Round(time.Millisecond))) + "\n")
	} else if m.candidate != "" {
		sb.WriteString(m.spinner.View() + " " + m.candidate + m.theme.Muted.Render(" with "+m.instantiator) + "\n")
	}

	shown := m.failures
	if len(shown) > maxFailuresShown {
		shown = shown[len(shown)-maxFailuresShown:]
	}
	for _, f := range shown {
		status := render.StatusFail
		if f.err != nil {
			status = render.StatusError
		}
		icon, style := m.theme.Cell(status)
		line := fmt.Sprintf("%s %s / %s", icon, f.candidate, f.instantiator)
		if f.err != nil {
			msg, _, _ := strings.Cut(f.err.Error(), "\n")
			line += ": " + msg
		}
		sb.WriteString(style.Render(line) + "\n")
	}
	return sb.String()
}
