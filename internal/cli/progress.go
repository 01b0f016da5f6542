package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/structmc/structmc/pkg/dag"
	"github.com/structmc/structmc/pkg/sampler"
)

// stepMsg carries chain progress into the bubbletea model.
type stepMsg struct {
	step  int
	total int
	score float64
}

// doneMsg signals that the chain finished or failed.
type doneMsg struct{ err error }

// chainProgressModel renders a live progress line while the chain runs.
type chainProgressModel struct {
	step  int
	total int
	score float64
	err   error
}

func (m chainProgressModel) Init() tea.Cmd { return nil }

func (m chainProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.step, m.total, m.score = msg.step, msg.total, msg.score
		return m, nil
	case doneMsg:
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			// Detach the view; the chain keeps running to completion.
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m chainProgressModel) View() string {
	if m.total == 0 {
		return StyleDim.Render("waiting for chain...") + "\n"
	}

	const width = 30
	filled := m.step * width / m.total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := 100 * m.step / m.total

	return fmt.Sprintf("%s %s %s  %s %s\n",
		StyleTitle.Render("sampling"),
		StyleNumber.Render(bar),
		StyleValue.Render(fmt.Sprintf("%3d%%", pct)),
		StyleDim.Render("score"),
		StyleNumber.Render(fmt.Sprintf("%.4f", m.score)),
	)
}

// runWithProgressView executes the chain while displaying a bubbletea
// progress view. Progress updates are throttled so the view does not
// become the bottleneck of short steps.
func runWithProgressView(ctx context.Context, s *sampler.Sampler, init *dag.State, opts sampler.Options) (*sampler.Result, error) {
	prog := tea.NewProgram(chainProgressModel{}, tea.WithOutput(os.Stderr))

	const every = 100
	s.OnStep = func(step, total int, score float64) {
		if step%every == 0 || step == total {
			prog.Send(stepMsg{step: step, total: total, score: score})
		}
	}

	var result *sampler.Result
	var runErr error
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		result, runErr = s.Run(ctx, init, opts)
		prog.Send(doneMsg{err: runErr})
	}()

	if _, err := prog.Run(); err != nil {
		return nil, err
	}
	<-finished
	return result, runErr
}
