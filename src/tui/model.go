package tui

import (
	"context"
	"errors"

	"subtrack/src/dashboard"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// viewChangedMsg tells the model to take a fresh snapshot from the controller.
type viewChangedMsg struct{}

type statusMsg struct{ text string }

type opDoneMsg struct {
	op  string
	err error
}

type modalKind int

const (
	modalNone modalKind = iota
	modalAlert
	modalConfirm
)

type field int

const (
	fieldName field = iota
	fieldAmount
	fieldCycle
	fieldCategory
	fieldCustom
	fieldStart
)

var fieldLabels = map[field]string{
	fieldName:     "Name",
	fieldAmount:   "Amount",
	fieldCycle:    "Billing cycle",
	fieldCategory: "Category",
	fieldCustom:   "Custom category",
	fieldStart:    "Start date",
}

type model struct {
	ctx      context.Context
	ctrl     *dashboard.Controller
	prompter *Prompter
	keys     keyMap

	view   dashboard.View
	cursor int
	focus  field
	inputs map[field]*textinput.Model

	modal     modalKind
	modalText string

	status    string
	statusErr bool
	width     int
}

func newModel(ctx context.Context, ctrl *dashboard.Controller, prompter *Prompter) model {
	m := model{
		ctx:      ctx,
		ctrl:     ctrl,
		prompter: prompter,
		keys:     defaultKeys(),
		inputs:   map[field]*textinput.Model{},
	}
	placeholders := map[field]string{
		fieldName:   "Netflix",
		fieldAmount: "649",
		fieldCustom: "Gaming",
		fieldStart:  "YYYY-MM-DD",
	}
	for f, ph := range placeholders {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = ph
		in.CharLimit = 64
		m.inputs[f] = &in
	}
	m.view = ctrl.View()
	return m
}

func (m model) Init() tea.Cmd {
	return m.run("refresh", m.ctrl.Refresh)
}

// run executes a controller operation off the event loop.
func (m model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

// fields lists the form fields currently shown, in tab order.
func (m model) fields() []field {
	fs := []field{fieldName, fieldAmount, fieldCycle, fieldCategory}
	if m.view.Form.CustomCategoryVisible {
		fs = append(fs, fieldCustom)
	}
	return append(fs, fieldStart)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewChangedMsg:
		m.sync()
		return m, nil

	case alertMsg:
		m.modal, m.modalText = modalAlert, msg.text
		return m, nil

	case confirmMsg:
		m.modal, m.modalText = modalConfirm, msg.text
		return m, nil

	case statusMsg:
		m.status, m.statusErr = msg.text, false
		return m, nil

	case opDoneMsg:
		m.sync()
		m.setStatus(msg)
		return m, nil

	case tea.KeyMsg:
		if m.modal != modalNone {
			return m.updateModal(msg), nil
		}
		if m.view.Form.Visible {
			return m.updateForm(msg)
		}
		return m.updateDashboard(msg)
	}
	return m, nil
}

func (m *model) setStatus(msg opDoneMsg) {
	var verr *dashboard.ValidationError
	switch {
	case msg.err == nil && msg.op == "export":
		// the navigator usually reports the saved path first
		if m.status == exportingText {
			m.status, m.statusErr = "Export complete", false
		}
	case msg.err == nil:
		m.status, m.statusErr = doneText[msg.op], false
	case errors.As(msg.err, &verr), errors.Is(msg.err, dashboard.ErrDeclined):
		// nothing new to report
		m.status, m.statusErr = "", false
	case errors.Is(msg.err, dashboard.ErrBusy):
		m.status, m.statusErr = "Busy: wait for the current change to finish", true
	default:
		m.status, m.statusErr = msg.err.Error(), true
	}
}

const exportingText = "Exporting…"

var doneText = map[string]string{
	"refresh": "",
	"save":    "Subscription saved",
	"delete":  "Subscription deleted",
}

// sync takes a fresh snapshot and mirrors the form into the inputs.
func (m *model) sync() {
	m.view = m.ctrl.View()
	f := m.view.Form
	values := map[field]string{
		fieldName:   f.Name,
		fieldAmount: f.Amount,
		fieldCustom: f.CustomCategory,
		fieldStart:  f.StartDate,
	}
	for fld, v := range values {
		if in := m.inputs[fld]; in.Value() != v {
			in.SetValue(v)
		}
	}
	if n := len(m.view.Subscriptions); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if !f.Visible {
		m.focus = fieldName
		m.blurAll()
	}
	if !containsField(m.fields(), m.focus) {
		m.focus = fieldStart
	}
}

func (m model) updateModal(msg tea.KeyMsg) model {
	switch m.modal {
	case modalAlert:
		if key.Matches(msg, m.keys.Dismiss) {
			m.modal = modalNone
			m.prompter.answer(true)
		}
	case modalConfirm:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.modal = modalNone
			m.prompter.answer(true)
		case key.Matches(msg, m.keys.No):
			m.modal = modalNone
			m.prompter.answer(false)
		}
	}
	return m
}

func (m model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		m.ctrl.ToggleAddForm()
		m.sync()
		return m, m.focusField(fieldName)
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Subscriptions)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(m.view.Subscriptions) {
			id := m.view.Subscriptions[m.cursor].ID
			return m, m.run("delete", func(ctx context.Context) error {
				return m.ctrl.DeleteSubscription(ctx, id)
			})
		}
	case key.Matches(msg, m.keys.Export):
		m.status, m.statusErr = exportingText, false
		return m, m.run("export", m.ctrl.ExportToExcel)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run("refresh", m.ctrl.Refresh)
	}
	return m, nil
}

func (m model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.ctrl.ToggleAddForm()
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		return m, m.run("save", m.ctrl.SaveSubscription)
	case key.Matches(msg, m.keys.Next):
		return m, m.focusField(m.step(1))
	case key.Matches(msg, m.keys.Prev):
		return m, m.focusField(m.step(-1))
	}

	switch m.focus {
	case fieldCycle, fieldCategory:
		delta := 0
		switch {
		case key.Matches(msg, m.keys.Left):
			delta = -1
		case key.Matches(msg, m.keys.Right):
			delta = 1
		}
		if delta != 0 {
			m.cycleOption(delta)
			m.sync()
		}
		return m, nil
	}

	in := m.inputs[m.focus]
	updated, cmd := in.Update(msg)
	*in = updated
	value, fld := in.Value(), m.focus
	m.ctrl.UpdateForm(func(f *dashboard.Form) {
		switch fld {
		case fieldName:
			f.Name = value
		case fieldAmount:
			f.Amount = value
		case fieldCustom:
			f.CustomCategory = value
		case fieldStart:
			f.StartDate = value
		}
	})
	m.view = m.ctrl.View()
	return m, cmd
}

func (m *model) cycleOption(delta int) {
	f := m.view.Form
	if m.focus == fieldCycle {
		next := rotate(dashboard.BillingCycles, f.BillingCycle, delta)
		m.ctrl.UpdateForm(func(f *dashboard.Form) { f.BillingCycle = next })
		return
	}
	m.ctrl.HandleCategoryChange(rotate(dashboard.Categories, f.Category, delta))
}

func (m model) step(delta int) field {
	fs := m.fields()
	for i, f := range fs {
		if f == m.focus {
			return fs[(i+delta+len(fs))%len(fs)]
		}
	}
	return fs[0]
}

func (m *model) focusField(f field) tea.Cmd {
	m.blurAll()
	m.focus = f
	if in, ok := m.inputs[f]; ok {
		return in.Focus()
	}
	return nil
}

func (m *model) blurAll() {
	for _, in := range m.inputs {
		in.Blur()
	}
}

func rotate(options []string, current string, delta int) string {
	for i, o := range options {
		if o == current {
			return options[(i+delta+len(options))%len(options)]
		}
	}
	return options[0]
}

func containsField(fs []field, f field) bool {
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}
