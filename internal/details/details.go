package details

import "taskboard/internal/task"

// Field is one labelled line of the details panel.
type Field struct {
	Label string
	Value string
}

// Panel is the open/closed state of the side panel and the task it shows.
// The owner clears its own selection when the panel closes.
type Panel struct {
	Task *task.Task
	open bool
}

func (p Panel) IsOpen() bool {
	return p.open && p.Task != nil
}

func (p *Panel) Show(t task.Task) {
	p.Task = &t
	p.open = true
}

func (p *Panel) Close() {
	p.open = false
}

func (p Panel) Title() string {
	if p.Task == nil {
		return ""
	}
	return p.Task.Name
}

func (p Panel) Fields() []Field {
	if p.Task == nil {
		return nil
	}
	return Fields(*p.Task)
}

func Fields(t task.Task) []Field {
	return []Field{
		{Label: "Status", Value: task.FormatStatus(string(t.Status))},
		{Label: "Priority", Value: task.FormatPriority(string(t.Priority))},
		{Label: "Task ID", Value: t.ID},
		{Label: "Description", Value: t.Description},
		{Label: "Assignee", Value: t.Assignee},
		{Label: "Due Date", Value: t.DueDate},
		{Label: "Estimated Hours", Value: task.FormatHours(t.EstimatedHours)},
		{Label: "Remarks", Value: t.Remarks},
	}
}
