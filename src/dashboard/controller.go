package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"subtrack/src/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExportPath is where the server serves the workbook download.
const ExportPath = "/api/export"

const deleteConfirmation = "Are you sure you want to delete this subscription?"

// ErrBusy is returned when a save or delete is attempted while another one
// is still outstanding.
var ErrBusy = errors.New("another change is still in progress")

// ErrDeclined is returned when the user does not confirm a delete.
var ErrDeclined = errors.New("delete not confirmed")

// API is the subset of the REST API the dashboard reads and writes.
type API interface {
	Metrics(ctx context.Context) (*models.MetricsSummary, error)
	Subscriptions(ctx context.Context) ([]models.Subscription, error)
	Renewals(ctx context.Context) ([]models.RenewalEntry, error)
	CreateSubscription(ctx context.Context, req models.CreateSubscriptionRequest) (*models.APIResponse, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// Prompter shows blocking messages to the user.
type Prompter interface {
	Alert(msg string)
	Confirm(msg string) bool
}

// Navigator opens a server path the way a browser would.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

type region int

const (
	metricsRegion region = iota
	subscriptionsRegion
	renewalsRegion
	numRegions
)

func (r region) String() string {
	switch r {
	case metricsRegion:
		return "metrics"
	case subscriptionsRegion:
		return "subscriptions"
	case renewalsRegion:
		return "renewals"
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// load tracks the newest request issued for a region.
type load struct {
	gen    uint64
	cancel context.CancelFunc
}

// Controller fetches dashboard data and keeps the view-model current. It is
// safe for concurrent use; the front-end reads snapshots through View.
type Controller struct {
	api      API
	prompt   Prompter
	nav      Navigator
	logger   *zap.Logger
	onChange func()

	mu       sync.Mutex
	view     View
	form     Form
	loads    [numRegions]load
	mutating bool
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithOnChange registers fn to run after every view change. It is called
// without the controller's lock held.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

func New(api API, prompt Prompter, nav Navigator, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		prompt: prompt,
		nav:    nav,
		logger: zap.L(),
		form:   newForm(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View returns a copy of the current view-model.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.view.clone()
	v.Form = c.form
	return v
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

// begin starts a new load of r, cancelling any older one still in flight.
func (c *Controller) begin(ctx context.Context, r region) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	l := &c.loads[r]
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	l.cancel = cancel
	return ctx, l.gen
}

// finish applies a load result if gen is still the newest load of r. It
// reports whether the result was applied; stale results are dropped
// whatever their error.
func (c *Controller) finish(r region, gen uint64, err error, apply func(*View)) (bool, error) {
	c.mu.Lock()
	l := &c.loads[r]
	if l.gen != gen {
		c.mu.Unlock()
		c.logger.Debug("discarding stale load", zap.Stringer("region", r), zap.Uint64("gen", gen))
		return false, nil
	}
	l.cancel()
	l.cancel = nil
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn("load failed", zap.Stringer("region", r), zap.Error(err))
		return false, fmt.Errorf("load %s: %w", r, err)
	}
	apply(&c.view)
	c.mu.Unlock()
	c.changed()
	return true, nil
}

// LoadMetrics replaces the totals and category breakdown. On failure the
// region keeps whatever it showed before.
func (c *Controller) LoadMetrics(ctx context.Context) error {
	ctx, gen := c.begin(ctx, metricsRegion)
	m, err := c.api.Metrics(ctx)
	if err == nil && m == nil {
		err = errors.New("empty metrics response")
	}
	_, err = c.finish(metricsRegion, gen, err, func(v *View) { v.setMetrics(m) })
	return err
}

// LoadSubscriptions replaces the subscriptions table, in server order.
func (c *Controller) LoadSubscriptions(ctx context.Context) error {
	ctx, gen := c.begin(ctx, subscriptionsRegion)
	subs, err := c.api.Subscriptions(ctx)
	_, err = c.finish(subscriptionsRegion, gen, err, func(v *View) { v.setSubscriptions(subs) })
	return err
}

// LoadRenewals replaces the renewals list, or shows RenewalsPlaceholder
// when there are none.
func (c *Controller) LoadRenewals(ctx context.Context) error {
	ctx, gen := c.begin(ctx, renewalsRegion)
	renewals, err := c.api.Renewals(ctx)
	_, err = c.finish(renewalsRegion, gen, err, func(v *View) { v.setRenewals(renewals) })
	return err
}

// Refresh runs the three loads concurrently. Each region updates as soon as
// its own response arrives; Refresh returns once all three are done.
func (c *Controller) Refresh(ctx context.Context) error {
	var (
		g    errgroup.Group
		errs [numRegions]error
	)
	g.Go(func() error { errs[metricsRegion] = c.LoadMetrics(ctx); return nil })
	g.Go(func() error { errs[subscriptionsRegion] = c.LoadSubscriptions(ctx); return nil })
	g.Go(func() error { errs[renewalsRegion] = c.LoadRenewals(ctx); return nil })
	g.Wait()
	return errors.Join(errs[:]...)
}

// ToggleAddForm flips the add form between hidden and visible.
func (c *Controller) ToggleAddForm() {
	c.mu.Lock()
	c.form.Visible = !c.form.Visible
	c.mu.Unlock()
	c.changed()
}

// HandleCategoryChange selects category. "Other" reveals the custom
// category field; anything else hides and clears it.
func (c *Controller) HandleCategoryChange(category string) {
	c.mu.Lock()
	c.form.Category = category
	if category == OtherCategory {
		c.form.CustomCategoryVisible = true
	} else {
		c.form.CustomCategoryVisible = false
		c.form.CustomCategory = ""
	}
	c.mu.Unlock()
	c.changed()
}

// UpdateForm applies a front-end edit to the form's text fields. Category
// changes should go through HandleCategoryChange.
func (c *Controller) UpdateForm(edit func(*Form)) {
	c.mu.Lock()
	edit(&c.form)
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mutating {
		return false
	}
	c.mutating = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	c.mutating = false
	c.mu.Unlock()
}

// SaveSubscription validates the form and creates the subscription. A
// validation failure is shown through the Prompter and returned as a
// *ValidationError without any request. Once the server answers with JSON,
// the form is reset and collapsed and the dashboard refreshed.
func (c *Controller) SaveSubscription(ctx context.Context) error {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	req, err := form.request()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.prompt.Alert(verr.Message)
		}
		return err
	}

	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	resp, err := c.api.CreateSubscription(ctx, req)
	if err != nil {
		c.logger.Warn("create subscription failed", zap.String("name", req.Name), zap.Error(err))
		return fmt.Errorf("create subscription: %w", err)
	}
	if resp == nil {
		resp = &models.APIResponse{}
	}
	if resp.Error != "" {
		c.logger.Warn("server rejected subscription", zap.String("name", req.Name), zap.String("error", resp.Error))
	} else {
		c.logger.Info("subscription saved", zap.Int64("id", resp.ID), zap.String("name", req.Name))
	}

	c.mu.Lock()
	c.form = newForm()
	c.mu.Unlock()
	c.changed()

	return c.Refresh(ctx)
}

// DeleteSubscription asks for confirmation, deletes id and refreshes. A
// declined confirmation sends nothing and returns ErrDeclined.
func (c *Controller) DeleteSubscription(ctx context.Context, id int64) error {
	if !c.prompt.Confirm(deleteConfirmation) {
		return ErrDeclined
	}

	if !c.acquire() {
		return ErrBusy
	}
	defer c.release()

	if err := c.api.DeleteSubscription(ctx, id); err != nil {
		c.logger.Warn("delete subscription failed", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("delete subscription %d: %w", id, err)
	}
	c.logger.Info("subscription deleted", zap.Int64("id", id))

	return c.Refresh(ctx)
}

// ExportToExcel hands the export download to the Navigator.
func (c *Controller) ExportToExcel(ctx context.Context) error {
	if err := c.nav.Navigate(ctx, ExportPath); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
