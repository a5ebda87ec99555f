package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// DueSoonWindow is how far ahead of today a due date still counts as due soon.
const DueSoonWindow = 7 * 24 * time.Hour

// EmptySummary is the summary returned when there are no tasks.
const EmptySummary = "✨ You have no tasks yet. Add one and start being awesome!"

const summarySeparator = " | "

// Insights is the derived summary over all tasks.
type Insights struct {
	Total        int     `json:"total"`
	Status       Tally   `json:"status"`
	Priority     Tally   `json:"priority"`
	DueSoon      int     `json:"due_soon"`
	Overdue      int     `json:"overdue"`
	BusiestDay   *string `json:"busiest_day"`
	BusiestCount int     `json:"busiest_count"`
	Summary      string  `json:"summary"`
}

// Compute derives Insights from tasks as of now. Only the UTC calendar date
// of now is used. Nil entries are ignored.
func Compute(tasks []*domain.Task, now time.Time) Insights {
	var result Insights
	var byDay Tally

	today := calendarDate(now)
	soonCutoff := today.Add(DueSoonWindow)

	for _, t := range tasks {
		if t == nil {
			continue
		}
		result.Total++
		result.Status.Add(string(t.Status))
		result.Priority.Add(priorityKey(t.Priority))

		due, ok := t.ParsedDueDate()
		if !ok {
			continue
		}
		switch {
		case due.Before(today):
			if t.Status != domain.StatusCompleted {
				result.Overdue++
			}
		case !due.After(soonCutoff):
			result.DueSoon++
		}
		byDay.Add(due.Format(domain.DueDateLayout))
	}

	if result.Total == 0 {
		result.Summary = EmptySummary
		return result
	}

	if day, count, ok := byDay.Max(); ok {
		result.BusiestDay = &day
		result.BusiestCount = count
	}

	result.Summary = summarize(result)
	return result
}

// priorityKey folds a missing priority into the default one.
func priorityKey(p domain.Priority) string {
	if p == "" {
		return string(domain.DefaultPriority)
	}
	return string(p)
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func summarize(in Insights) string {
	topPriority, _, _ := in.Priority.Max()

	parts := []string{
		fmt.Sprintf("📋 Total tasks: %d", in.Total),
		fmt.Sprintf("✅ Completed: %d", in.Status.Get(string(domain.StatusCompleted))),
		fmt.Sprintf("⏳ Pending: %d", in.Status.Get(string(domain.StatusPending))),
		fmt.Sprintf("⚠️ Overdue: %d", in.Overdue),
		fmt.Sprintf("📅 Due soon (7 days): %d", in.DueSoon),
		fmt.Sprintf("🔥 Common priority: %s", topPriority),
	}
	if in.BusiestDay != nil {
		parts = append(parts, fmt.Sprintf("🗓️ Busiest day: %s (%d tasks)", *in.BusiestDay, in.BusiestCount))
	}
	return strings.Join(parts, summarySeparator)
}
