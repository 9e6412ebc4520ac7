package export

import (
	"fmt"
	"io"
	"sort"
	"time"

	"subtrack/src/models"
	"subtrack/src/util"

	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet       = "Summary"
	SubscriptionsSheet = "All Subscriptions"
	RenewalsSheet      = "Upcoming Renewals"

	// Filename is the download name of the workbook.
	Filename    = "subscription_insights.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	urgentDays   = 7
	topSubsLimit = 10
)

// Report is everything a workbook is built from.
type Report struct {
	Metrics       *models.MetricsSummary
	Subscriptions []models.Subscription
	Renewals      []models.RenewalEntry
	GeneratedAt   time.Time
	HorizonDays   int
}

type styles struct {
	title, heading, subtle   int
	monthly, annual, bold    int
	grayHeader, blueHeader   int
	redHeader, urgent, money int
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, r Report) error {
	f, err := Build(r)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Build lays out the Summary, All Subscriptions and Upcoming Renewals sheets.
func Build(r Report) (*excelize.File, error) {
	if r.Metrics == nil {
		r.Metrics = &models.MetricsSummary{}
	}
	if r.HorizonDays <= 0 {
		r.HorizonDays = 90
	}

	f := excelize.NewFile()
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SubscriptionsSheet, RenewalsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	steps := []func(*excelize.File, styles, Report) error{
		summarySheet,
		subscriptionsSheet,
		renewalsSheet,
	}
	for _, step := range steps {
		if err := step(f, st, r); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	solid := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	center := &excelize.Alignment{Horizontal: "center"}
	money := "#,##0.00"

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: &excelize.Font{Size: 18, Bold: true}}},
		{&st.heading, &excelize.Style{Font: &excelize.Font{Size: 14, Bold: true}}},
		{&st.subtle, &excelize.Style{Font: &excelize.Font{Size: 10, Italic: true}}},
		{&st.monthly, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "0000FF"}}},
		{&st.annual, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "008000"}}},
		{&st.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&st.grayHeader, &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: solid("D3D3D3")}},
		{&st.blueHeader, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: solid("4472C4"), Alignment: center}},
		{&st.redHeader, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "FFFFFF"}, Fill: solid("FF6B6B"), Alignment: center}},
		{&st.urgent, &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: solid("FFD700")}},
		{&st.money, &excelize.Style{CustomNumFmt: &money}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("create style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

func summarySheet(f *excelize.File, st styles, r Report) error {
	const sh = SummarySheet
	m := r.Metrics
	w := newWriter(f, sh)

	w.set("A1", "Subscription Spending Insights", st.title)
	if err := f.MergeCell(sh, "A1", "D1"); err != nil {
		return err
	}
	w.set("A2", "Generated: "+r.GeneratedAt.Format("2006-01-02 15:04"), st.subtle)

	w.set("A4", "Key Metrics", st.heading)
	w.set("A5", "Total Monthly Cost:", 0)
	w.set("B5", fmt.Sprintf("₹%.2f", m.TotalMonthly), st.monthly)
	w.set("A6", "Total Annual Cost:", 0)
	w.set("B6", fmt.Sprintf("₹%.2f", m.TotalAnnual), st.annual)
	w.set("A7", "Active Subscriptions:", 0)
	w.set("B7", m.TotalSubscriptions, st.bold)

	w.set("A9", "Spending by Category", st.heading)
	w.set("A10", "Category", st.grayHeader)
	w.set("B10", "Monthly Cost", st.grayHeader)
	w.set("C10", "Percentage", st.grayHeader)

	row := 11
	for _, c := range m.Categories {
		pct := 0.0
		if m.TotalMonthly > 0 {
			pct = c.Amount / m.TotalMonthly * 100
		}
		w.set(cell("A", row), c.Name, 0)
		w.set(cell("B", row), c.Amount, st.money)
		w.set(cell("C", row), fmt.Sprintf("%.1f%%", pct), 0)
		row++
	}
	if w.err != nil {
		return w.err
	}

	if len(m.Categories) > 0 {
		err := f.AddChart(sh, "E9", &excelize.Chart{
			Type: excelize.Pie,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$B$10", sh),
				Categories: fmt.Sprintf("'%s'!$A$11:$A$%d", sh, row-1),
				Values:     fmt.Sprintf("'%s'!$B$11:$B$%d", sh, row-1),
			}},
			Title:     []excelize.RichTextRun{{Text: "Spending by Category"}},
			Dimension: excelize.ChartDimension{Width: 480, Height: 320},
		})
		if err != nil {
			return fmt.Errorf("add category chart: %w", err)
		}
	}

	top := topByMonthlyCost(r.Subscriptions, topSubsLimit)
	w.set(cell("A", row+2), "Top Subscriptions by Monthly Cost", st.heading)
	headerRow := row + 3
	w.set(cell("A", headerRow), "Subscription", st.grayHeader)
	w.set(cell("B", headerRow), "Monthly Cost", st.grayHeader)
	chartRow := headerRow + 1
	for _, s := range top {
		w.set(cell("A", chartRow), s.Name, 0)
		w.set(cell("B", chartRow), s.MonthlyCost, st.money)
		chartRow++
	}
	if w.err != nil {
		return w.err
	}

	if len(top) > 0 {
		err := f.AddChart(sh, cell("E", row+10), &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{{
				Name:       fmt.Sprintf("'%s'!$B$%d", sh, headerRow),
				Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", sh, headerRow+1, chartRow-1),
				Values:     fmt.Sprintf("'%s'!$B$%d:$B$%d", sh, headerRow+1, chartRow-1),
			}},
			Title:     []excelize.RichTextRun{{Text: "Top Subscriptions by Monthly Cost"}},
			Dimension: excelize.ChartDimension{Width: 640, Height: 384},
		})
		if err != nil {
			return fmt.Errorf("add top subscriptions chart: %w", err)
		}
	}

	return setWidths(f, sh, map[string]float64{"A": 25, "B": 15, "C": 15})
}

func subscriptionsSheet(f *excelize.File, st styles, r Report) error {
	const sh = SubscriptionsSheet
	w := newWriter(f, sh)

	w.set("A1", "All Subscriptions", st.title)
	w.header(3, st.blueHeader, "Name", "Amount", "Billing Cycle", "Category", "Start Date", "Renewal Date", "Monthly Cost")

	for i, s := range r.Subscriptions {
		row := 4 + i
		w.set(cell("A", row), s.Name, 0)
		w.set(cell("B", row), s.Amount, st.money)
		w.set(cell("C", row), util.Capitalize(s.BillingCycle), 0)
		w.set(cell("D", row), s.Category, 0)
		w.set(cell("E", row), s.StartDate, 0)
		w.set(cell("F", row), s.RenewalDate, 0)
		w.set(cell("G", row), s.MonthlyCost, st.money)
	}
	if w.err != nil {
		return w.err
	}

	return setWidths(f, sh, map[string]float64{"A": 25, "B": 12, "C": 15, "D": 20, "E": 15, "F": 15, "G": 15})
}

func renewalsSheet(f *excelize.File, st styles, r Report) error {
	const sh = RenewalsSheet
	w := newWriter(f, sh)

	w.set("A1", fmt.Sprintf("Upcoming Renewals (Next %d Days)", r.HorizonDays), st.title)
	if len(r.Renewals) == 0 {
		w.set("A3", fmt.Sprintf("No upcoming renewals in the next %d days", r.HorizonDays), 0)
		return w.err
	}

	w.header(3, st.redHeader, "Name", "Amount", "Billing Cycle", "Category", "Renewal Date", "Days Until Renewal")
	for i, rn := range r.Renewals {
		row := 4 + i
		w.set(cell("A", row), rn.Name, 0)
		w.set(cell("B", row), rn.Amount, st.money)
		w.set(cell("C", row), util.Capitalize(rn.BillingCycle), 0)
		w.set(cell("D", row), rn.Category, 0)
		w.set(cell("E", row), rn.RenewalDate, 0)
		style := 0
		if rn.DaysUntil <= urgentDays {
			style = st.urgent
		}
		w.set(cell("F", row), rn.DaysUntil, style)
	}
	if w.err != nil {
		return w.err
	}

	return setWidths(f, sh, map[string]float64{"A": 25, "B": 12, "C": 15, "D": 20, "E": 15, "F": 18})
}

func topByMonthlyCost(subs []models.Subscription, n int) []models.Subscription {
	sorted := make([]models.Subscription, len(subs))
	copy(sorted, subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MonthlyCost > sorted[j].MonthlyCost
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// sheetWriter keeps the first error so sheet layouts read top to bottom.
type sheetWriter struct {
	f     *excelize.File
	sheet string
	err   error
}

func newWriter(f *excelize.File, sheet string) *sheetWriter {
	return &sheetWriter{f: f, sheet: sheet}
}

func (w *sheetWriter) set(ref string, v any, style int) {
	if w.err != nil {
		return
	}
	if w.err = w.f.SetCellValue(w.sheet, ref, v); w.err != nil {
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, ref, ref, style)
	}
}

func (w *sheetWriter) header(row, style int, titles ...string) {
	for i, t := range titles {
		ref, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			w.err = err
			return
		}
		w.set(ref, t, style)
	}
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func setWidths(f *excelize.File, sheet string, widths map[string]float64) error {
	for col, width := range widths {
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}
