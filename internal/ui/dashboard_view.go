package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"taskboard/internal/dashboard"
)

const maxBarWidth = 40

func (m Model) renderDashboard() string {
	if content, done := m.body(len(m.snap.Items)); done {
		return content
	}
	items := m.snap.Items
	sum := dashboard.Summarize(items)

	cards := []struct {
		label string
		value int
	}{
		{"Total Tasks", sum.Total},
		{"Completed", sum.Completed},
		{"In Progress", sum.InProgress},
		{"Blocked", sum.Blocked},
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = cardStyle(i).Render(fmt.Sprintf("%s\n%d", c.label, c.value))
	}

	completed := dashboard.CompletedPerDay(items)
	due := dashboard.DuePerDay(items)
	hours := dashboard.HoursHistogram(items)

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	b.WriteString("\n\n")
	b.WriteString(renderDaySeries("Completed tasks per day", completed, chartColors[1]))
	b.WriteString("\n")
	b.WriteString(renderDaySeries("Tasks due per day", due, chartColors[0]))
	b.WriteString("\n")
	b.WriteString(renderHistogram(hours))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(dashboard.DescribeHours(hours, len(items))))
	return b.String()
}

func renderDaySeries(title string, days []dashboard.DayCount, color lipgloss.Color) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(days) == 0 {
		b.WriteString(mutedStyle.Render(dashboard.DescribeDays(title, days)))
		b.WriteString("\n")
		return b.String()
	}
	labels := make([]string, len(days))
	counts := make([]int, len(days))
	for i, d := range days {
		labels[i] = dashboard.ShortDate(d.Date)
		counts[i] = d.Count
	}
	b.WriteString(renderBars(labels, counts, color))
	return b.String()
}

func renderHistogram(buckets []dashboard.Bucket) string {
	labels := make([]string, len(buckets))
	counts := make([]int, len(buckets))
	for i, bk := range buckets {
		labels[i] = bk.Label + "h"
		counts[i] = bk.Count
	}
	return titleStyle.Render("Estimation hours distribution") + "\n" +
		renderBars(labels, counts, chartColors...)
}

// barLength scales count so the largest bar fits maxBarWidth cells.
func barLength(count, peak int) int {
	if count <= 0 {
		return 0
	}
	if peak <= maxBarWidth {
		return count
	}
	return max(count*maxBarWidth/peak, 1)
}

// renderBars draws one horizontal bar per label, cycling through colors.
func renderBars(labels []string, counts []int, colors ...lipgloss.Color) string {
	labelWidth := 0
	peak := 0
	for i, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
		peak = max(peak, counts[i])
	}
	var b strings.Builder
	for i, l := range labels {
		bar := lipgloss.NewStyle().Foreground(colors[i%len(colors)])
		b.WriteString(runewidth.FillLeft(l, labelWidth))
		b.WriteString(" ")
		b.WriteString(bar.Render(strings.Repeat("█", barLength(counts[i], peak))))
		b.WriteString(fmt.Sprintf(" %d\n", counts[i]))
	}
	return b.String()
}
