package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type alertMsg struct{ text string }

type confirmMsg struct{ text string }

// Prompter shows alerts and confirmations as modals inside the program and
// blocks the caller until the user answers. It must not be called from
// Update itself.
type Prompter struct {
	// post delivers msg to the program, reporting false when none is running.
	post    func(tea.Msg) bool
	mu      sync.Mutex // one prompt at a time
	answers chan bool
	done    chan struct{}
	stop    sync.Once
}

func newPrompter(post func(tea.Msg) bool) *Prompter {
	return &Prompter{post: post, answers: make(chan bool, 1), done: make(chan struct{})}
}

func (p *Prompter) Alert(msg string) {
	p.ask(alertMsg{text: msg})
}

func (p *Prompter) Confirm(msg string) bool {
	return p.ask(confirmMsg{text: msg})
}

func (p *Prompter) ask(msg tea.Msg) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.done:
		return false
	default:
	}
	if !p.post(msg) {
		return false
	}
	select {
	case v := <-p.answers:
		return v
	case <-p.done:
		return false
	}
}

// shutdown releases a pending prompt with a negative answer. Later prompts
// return false at once.
func (p *Prompter) shutdown() {
	p.stop.Do(func() { close(p.done) })
}

// answer unblocks the pending prompt. It never blocks the event loop.
func (p *Prompter) answer(v bool) {
	select {
	case p.answers <- v:
	default:
	}
}
