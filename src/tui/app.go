package tui

import (
	"context"
	"sync/atomic"

	"subtrack/src/dashboard"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// App runs the dashboard controller behind a bubbletea program.
type App struct {
	ctrl     *dashboard.Controller
	prompter *Prompter
	program  atomic.Pointer[tea.Program]
}

func NewApp(api dashboard.API, nav dashboard.Navigator, logger *zap.Logger) *App {
	a := &App{}
	a.prompter = newPrompter(a.send)
	a.ctrl = dashboard.New(api, a.prompter, nav,
		dashboard.WithLogger(logger),
		// Send must not run inside Update, which is where most edits happen.
		dashboard.WithOnChange(func() { go a.send(viewChangedMsg{}) }),
	)
	return a
}

func (a *App) send(msg tea.Msg) bool {
	p := a.program.Load()
	if p == nil {
		return false
	}
	p.Send(msg)
	return true
}

// Status shows text in the status line. Call it from outside the event
// loop, e.g. from a navigator callback.
func (a *App) Status(text string) {
	a.send(statusMsg{text: text})
}

func (a *App) Run(ctx context.Context) error {
	p := tea.NewProgram(newModel(ctx, a.ctrl, a.prompter), tea.WithAltScreen(), tea.WithContext(ctx))
	a.program.Store(p)
	defer a.program.Store(nil)
	// a modal left open on exit must not strand the command waiting on it
	defer a.prompter.shutdown()

	_, err := p.Run()
	return err
}
