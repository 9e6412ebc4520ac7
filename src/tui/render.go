package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 24

func (m model) View() string {
	v := m.view
	sections := []string{
		titleStyle.Render("Subscription Tracker"),
		m.renderCards(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderCategories(), " ", m.renderRenewals()),
		m.renderSubscriptions(),
	}
	if v.Form.Visible {
		sections = append(sections, m.renderForm())
	}
	if m.modal != modalNone {
		sections = append(sections, m.renderModal())
	}
	sections = append(sections, m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderCards() string {
	v := m.view
	value := func(s string) string {
		if !v.MetricsLoaded {
			return "…"
		}
		return s
	}
	card := func(label, val string, style lipgloss.Style) string {
		return cardStyle.Render(cardLabelStyle.Render(label) + "\n" + style.Render(val))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Monthly cost", value(v.MonthlyCost), monthlyStyle),
		card("Annual cost", value(v.AnnualCost), annualStyle),
		card("Active subscriptions", value(v.TotalSubscriptions), countStyle),
	)
}

func (m model) renderCategories() string {
	v := m.view
	var b strings.Builder
	b.WriteString(headingStyle.Render("Spending by category"))
	if v.MetricsLoaded {
		b.WriteString(mutedStyle.Render("  total " + v.CategoryTotal))
	}
	b.WriteString("\n")
	if !v.MetricsLoaded {
		b.WriteString(faintStyle.Render("Loading…"))
		return panelStyle.Render(b.String())
	}
	if len(v.Categories) == 0 {
		b.WriteString(faintStyle.Render("No categories yet"))
	}
	for i, c := range v.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%-16s %s (%s%%)\n%s", c.Name, c.Amount, c.PercentText, bar(c.Bar))
	}
	return panelStyle.Render(b.String())
}

func bar(fraction float64) string {
	filled := int(fraction*barWidth + 0.5)
	return barFillStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

func (m model) renderRenewals() string {
	v := m.view
	var b strings.Builder
	b.WriteString(headingStyle.Render("Upcoming renewals"))
	b.WriteString("\n")
	switch {
	case !v.RenewalsLoaded:
		b.WriteString(faintStyle.Render("Loading…"))
	case len(v.Renewals) == 0:
		b.WriteString(mutedStyle.Render(v.RenewalsPlaceholder))
	default:
		for i, r := range v.Renewals {
			if i > 0 {
				b.WriteString("\n")
			}
			days := daysStyle
			if r.Urgent {
				days = urgentStyle
			}
			fmt.Fprintf(&b, "%-18s %10s  %s\n%s",
				r.Name, r.Amount, days.Render(r.DaysText), mutedStyle.Render(r.RenewalDate))
		}
	}
	return panelStyle.Render(b.String())
}

var subscriptionColumns = []struct {
	title string
	width int
}{
	{"Name", 18}, {"Amount", 10}, {"Cycle", 10}, {"Category", 14},
	{"Start", 11}, {"Renews", 11}, {"Monthly", 11},
}

func (m model) renderSubscriptions() string {
	v := m.view
	var b strings.Builder
	b.WriteString(headingStyle.Render("All subscriptions"))
	b.WriteString("\n")
	if !v.SubscriptionsLoaded {
		b.WriteString(faintStyle.Render("Loading…"))
		return panelStyle.Render(b.String())
	}

	header := make([]string, len(subscriptionColumns))
	for i, c := range subscriptionColumns {
		header[i] = pad(c.title, c.width)
	}
	b.WriteString(tableHeaderStyle.Render("  " + strings.Join(header, " ")))

	if len(v.Subscriptions) == 0 {
		b.WriteString("\n" + faintStyle.Render("  No subscriptions yet. Press a to add one."))
	}
	for i, s := range v.Subscriptions {
		cells := []string{s.Name, s.Amount, s.BillingCycle, s.Category, s.StartDate, s.RenewalDate, s.MonthlyCost}
		for j, c := range subscriptionColumns {
			cells[j] = pad(cells[j], c.width)
		}
		line := strings.Join(cells, " ")
		b.WriteString("\n")
		if i == m.cursor && !v.Form.Visible {
			b.WriteString(selectedRowStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
	}
	return panelStyle.Render(b.String())
}

func (m model) renderForm() string {
	f := m.view.Form
	var b strings.Builder
	b.WriteString(headingStyle.Render("Add subscription"))
	for _, fld := range m.fields() {
		label := pad(fieldLabels[fld], 16)
		if fld == m.focus {
			label = focusedLabelStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		var value string
		switch fld {
		case fieldCycle:
			value = "‹ " + f.BillingCycle + " ›"
		case fieldCategory:
			value = "‹ " + f.Category + " ›"
		default:
			value = m.inputs[fld].View()
		}
		b.WriteString("\n" + label + " " + value)
	}
	return formStyle.Render(b.String())
}

func (m model) renderModal() string {
	hint := "enter: ok"
	if m.modal == modalConfirm {
		hint = "y: yes   n: no"
	}
	return modalStyle.Render(headingStyle.Render(m.modalText) + "\n\n" + mutedStyle.Render(hint))
}

func (m model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return statusErrorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m model) renderHelp() string {
	bindings := m.keys.dashboardHelp()
	if m.view.Form.Visible {
		bindings = m.keys.formHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return faintStyle.Render(strings.Join(parts, " • "))
}

// pad truncates or right-pads s to width cells.
func pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w > width {
		r := []rune(s)
		for lipgloss.Width(string(r)) > width-1 && len(r) > 0 {
			r = r[:len(r)-1]
		}
		return string(r) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}
