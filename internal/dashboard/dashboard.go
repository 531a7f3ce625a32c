// Package dashboard derives the summary metrics and chart series shown on the
// dashboard page. Everything here is a pure function of the task list.
package dashboard

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"taskboard/internal/task"
)

// MaxDays caps the per-day series to the most recent buckets.
const MaxDays = 14

type Summary struct {
	Total      int
	Completed  int
	InProgress int
	Blocked    int
}

func Summarize(tasks []task.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			s.Completed++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusBlocked:
			s.Blocked++
		}
	}
	return s
}

type DayCount struct {
	Date  string
	Count int
}

// CompletedPerDay groups completed tasks by due date, which stands in for the
// completion date the endpoint does not provide.
func CompletedPerDay(tasks []task.Task) []DayCount {
	return perDay(tasks, func(t task.Task) bool { return t.Status == task.StatusCompleted })
}

func DuePerDay(tasks []task.Task) []DayCount {
	return perDay(tasks, func(task.Task) bool { return true })
}

func perDay(tasks []task.Task, keep func(task.Task) bool) []DayCount {
	counts := map[string]int{}
	for _, t := range tasks {
		if !keep(t) {
			continue
		}
		day, ok := CalendarDate(t.DueDate)
		if !ok {
			continue
		}
		counts[day]++
	}
	out := make([]DayCount, 0, len(counts))
	for d, n := range counts {
		out = append(out, DayCount{Date: d, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > MaxDays {
		out = out[len(out)-MaxDays:]
	}
	return out
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// CalendarDate returns the UTC YYYY-MM-DD of an ISO-8601 date or timestamp.
func CalendarDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC().Format(time.DateOnly), true
		}
	}
	return "", false
}

type Bucket struct {
	Label string
	Count int
}

type hoursRange struct {
	label string
	upper float64 // exclusive
}

var hoursRanges = []hoursRange{
	{"0-2", 3},
	{"3-5", 6},
	{"6-8", 9},
	{"9-16", 17},
	{"17+", math.Inf(1)},
}

// HoursHistogram counts tasks per estimate range, in range order. Fractional
// estimates land in the range whose whole-hour span contains them.
func HoursHistogram(tasks []task.Task) []Bucket {
	out := make([]Bucket, len(hoursRanges))
	for i, r := range hoursRanges {
		out[i].Label = r.label
	}
	for _, t := range tasks {
		h := t.EstimatedHours
		if h < 0 || math.IsNaN(h) {
			continue
		}
		for i, r := range hoursRanges {
			if h < r.upper {
				out[i].Count++
				break
			}
		}
	}
	return out
}

// DescribeDays renders a per-day series as a one-line caption, e.g.
// "Tasks due per day: 4/1: 2 tasks, 4/2: 1 tasks".
func DescribeDays(title string, days []DayCount) string {
	if len(days) == 0 {
		return "No data available for " + strings.ToLower(title)
	}
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, fmt.Sprintf("%s: %d tasks", ShortDate(d.Date), d.Count))
	}
	return title + ": " + strings.Join(parts, ", ")
}

func DescribeHours(buckets []Bucket, total int) string {
	if total == 0 {
		return "No data available for estimation hours"
	}
	parts := make([]string, 0, len(buckets))
	for _, b := range buckets {
		pct := int(math.Round(float64(b.Count) / float64(total) * 100))
		parts = append(parts, fmt.Sprintf("%s hours: %d tasks (%d%%)", b.Label, b.Count, pct))
	}
	return "Estimation hours distribution: " + strings.Join(parts, ", ")
}

// ShortDate turns "2025-04-01" into "4/1".
func ShortDate(day string) string {
	ts, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return day
	}
	return fmt.Sprintf("%d/%d", int(ts.Month()), ts.Day())
}
