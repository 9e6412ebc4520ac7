package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"subtrack/src/dashboard"
	"subtrack/src/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memAPI struct {
	mu      sync.Mutex
	subs    []models.Subscription
	created []models.CreateSubscriptionRequest
	deleted []int64
}

func (a *memAPI) Metrics(context.Context) (*models.MetricsSummary, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	m := &models.MetricsSummary{TotalSubscriptions: len(a.subs)}
	for _, s := range a.subs {
		m.TotalMonthly += s.MonthlyCost
		m.Categories = append(m.Categories, models.CategoryAmount{Name: s.Category, Amount: s.MonthlyCost})
	}
	m.TotalAnnual = m.TotalMonthly * 12
	return m, nil
}

func (a *memAPI) Subscriptions(context.Context) ([]models.Subscription, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.Subscription(nil), a.subs...), nil
}

func (a *memAPI) Renewals(context.Context) ([]models.RenewalEntry, error) {
	return nil, nil
}

func (a *memAPI) CreateSubscription(_ context.Context, req models.CreateSubscriptionRequest) (*models.APIResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.created = append(a.created, req)
	return &models.APIResponse{ID: 99, Message: "Subscription added successfully"}, nil
}

func (a *memAPI) DeleteSubscription(_ context.Context, id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.deleted = append(a.deleted, id)
	for i, s := range a.subs {
		if s.ID == id {
			a.subs = append(a.subs[:i], a.subs[i+1:]...)
			break
		}
	}
	return nil
}

type nopNavigator struct{}

func (nopNavigator) Navigate(context.Context, string) error { return errors.New("no browser") }

type harness struct {
	t      *testing.T
	api    *memAPI
	m      model
	posted chan tea.Msg
}

func newHarness(t *testing.T) *harness {
	h := &harness{
		t: t,
		api: &memAPI{subs: []models.Subscription{
			{ID: 1, Name: "Netflix", Amount: 649, BillingCycle: "monthly", Category: "Entertainment", MonthlyCost: 649},
			{ID: 2, Name: "Spotify", Amount: 119, BillingCycle: "monthly", Category: "Music", MonthlyCost: 119},
		}},
		posted: make(chan tea.Msg, 4),
	}
	prompter := newPrompter(func(msg tea.Msg) bool {
		h.posted <- msg
		return true
	})
	ctrl := dashboard.New(h.api, prompter, nopNavigator{}, dashboard.WithLogger(zap.NewNop()))
	h.m = newModel(context.Background(), ctrl, prompter)
	h.exec(h.m.Init())
	return h
}

// exec runs cmd to completion and feeds its message back into the model.
func (h *harness) exec(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	h.update(cmd())
}

func (h *harness) update(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(model)
	return cmd
}

func (h *harness) key(k tea.KeyType) tea.Cmd {
	return h.update(tea.KeyMsg{Type: k})
}

func (h *harness) runes(s string) {
	for _, r := range s {
		h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// prompt runs cmd in the background, answers the modal it raises with
// answer, and returns the operation result.
func (h *harness) prompt(cmd tea.Cmd, answer tea.KeyMsg) opDoneMsg {
	h.t.Helper()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-h.posted:
		h.update(msg)
	case <-time.After(5 * time.Second):
		h.t.Fatal("no prompt was raised")
	}
	require.NotEqual(h.t, modalNone, h.m.modal)
	h.update(answer)
	require.Equal(h.t, modalNone, h.m.modal)

	msg := <-done
	h.update(msg)
	return msg.(opDoneMsg)
}

func TestInitialRender(t *testing.T) {
	h := newHarness(t)
	out := h.m.View()
	require.Contains(t, out, "Netflix")
	require.Contains(t, out, "₹768.00")
	require.Contains(t, out, "No renewals in the next 90 days")
	require.Contains(t, out, "84.5%")
}

func TestAddFormFlow(t *testing.T) {
	h := newHarness(t)
	h.runes("a")
	require.True(t, h.m.view.Form.Visible)
	require.Equal(t, fieldName, h.m.focus)

	h.runes("Hotstar")
	h.key(tea.KeyTab)
	h.runes("299")
	h.key(tea.KeyTab) // cycle
	h.key(tea.KeyRight)
	require.Equal(t, "quarterly", h.m.view.Form.BillingCycle)
	h.key(tea.KeyTab) // category
	h.key(tea.KeyLeft)
	require.Equal(t, dashboard.OtherCategory, h.m.view.Form.Category)
	require.Contains(t, h.m.fields(), fieldCustom)
	h.key(tea.KeyTab)
	require.Equal(t, fieldCustom, h.m.focus)
	h.runes("Streaming")
	h.key(tea.KeyTab)
	h.runes("2024-02-01")

	h.exec(h.key(tea.KeyEnter))

	require.Len(t, h.api.created, 1)
	require.Equal(t, models.CreateSubscriptionRequest{
		Name: "Hotstar", Amount: 299, BillingCycle: "quarterly",
		Category: "Other", CustomCategory: "Streaming", StartDate: "2024-02-01",
	}, h.api.created[0])
	require.False(t, h.m.view.Form.Visible)
	require.Equal(t, "Subscription saved", h.m.status)
	require.Empty(t, h.m.inputs[fieldName].Value())
}

func TestSaveValidationShowsAlert(t *testing.T) {
	h := newHarness(t)
	h.runes("a")
	h.runes("Hotstar")

	cmd := h.key(tea.KeyEnter)
	done := h.prompt(cmd, tea.KeyMsg{Type: tea.KeyEnter})

	var verr *dashboard.ValidationError
	require.ErrorAs(t, done.err, &verr)
	require.Equal(t, "Please fill all required fields", verr.Message)
	require.Empty(t, h.api.created)
	require.True(t, h.m.view.Form.Visible)
	require.Empty(t, h.m.status)
}

func TestDeleteConfirmed(t *testing.T) {
	h := newHarness(t)
	h.key(tea.KeyDown)

	cmd := h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	done := h.prompt(cmd, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})

	require.NoError(t, done.err)
	require.Equal(t, []int64{2}, h.api.deleted)
	require.Len(t, h.m.view.Subscriptions, 1)
	require.Equal(t, 0, h.m.cursor)
	require.Equal(t, "Subscription deleted", h.m.status)
}

func TestDeleteDeclined(t *testing.T) {
	h := newHarness(t)

	cmd := h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	done := h.prompt(cmd, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	require.ErrorIs(t, done.err, dashboard.ErrDeclined)
	require.Empty(t, h.api.deleted)
	require.Empty(t, h.m.status)
}

func TestEscClosesForm(t *testing.T) {
	h := newHarness(t)
	h.runes("a")
	h.runes("q") // typed into the name field, not quit
	require.Equal(t, "q", h.m.view.Form.Name)

	h.key(tea.KeyEsc)
	require.False(t, h.m.view.Form.Visible)
	require.False(t, strings.Contains(h.m.View(), "Add subscription"))
}

func TestExportError(t *testing.T) {
	h := newHarness(t)
	h.exec(h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}))
	require.True(t, h.m.statusErr)
	require.Contains(t, h.m.status, "no browser")
}

func TestPromptReleasedOnShutdown(t *testing.T) {
	posted := make(chan tea.Msg, 1)
	p := newPrompter(func(msg tea.Msg) bool {
		posted <- msg
		return true
	})

	answer := make(chan bool, 1)
	go func() { answer <- p.Confirm("Are you sure you want to delete this subscription?") }()
	<-posted

	p.shutdown()
	select {
	case v := <-answer:
		require.False(t, v)
	case <-time.After(5 * time.Second):
		t.Fatal("prompt still blocked after shutdown")
	}

	p.shutdown()
	require.False(t, p.Confirm("again?"))
	require.Empty(t, posted)
}
