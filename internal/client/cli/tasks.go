package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/tasktracker/internal/client/api"
)

var errUsage = errors.New("usage")

// dueLayout is also accepted by the server, so a shown due date can be typed back.
const dueLayout = "2006-01-02T15:04"

// List prints the user's tasks, newest first. Optional args are the status
// and priority filters; "-" or "all" skips a filter.
func (a *App) List(ctx context.Context, args []string) error {
	var status, priority string
	if len(args) > 0 {
		status = filterArg(args[0])
	}
	if len(args) > 1 {
		priority = filterArg(args[1])
	}

	tasks, err := a.client.ListTasks(ctx, status, priority)
	if err != nil {
		a.report(err)
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tDUE\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, formatDue(t), t.Title)
	}
	return w.Flush()
}

// Add prompts for the fields of a new task. Empty answers take server defaults.
func (a *App) Add(ctx context.Context) error {
	var nt api.NewTask
	var err error

	if nt.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if nt.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	if nt.Priority, err = getSimpleText(a.reader, "Priority: low, medium, high (default medium)", a.out); err != nil {
		return err
	}
	if nt.DueDate, err = getSimpleText(a.reader, "Due date YYYY-MM-DD or YYYY-MM-DDTHH:MM (optional)", a.out); err != nil {
		return err
	}

	t, err := a.client.CreateTask(ctx, nt)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Task #%d created\n", t.ID)
	return nil
}

// Done marks a task as done.
func (a *App) Done(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "done <id>")
	if err != nil {
		return err
	}

	status := "done"
	if _, err := a.client.UpdateTask(ctx, id, api.TaskPatch{Status: &status}); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Task #%d marked as done\n", id)
	return nil
}

// Edit shows each field of a task and asks for a new value. An empty answer
// keeps the current value; "-" clears the description or due date.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "edit <id>")
	if err != nil {
		return err
	}

	t, err := a.client.GetTask(ctx, id)
	if err != nil {
		a.report(err)
		return err
	}

	var p api.TaskPatch
	changed := false

	ask := func(prompt, current string) (string, bool, error) {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", prompt, current), a.out)
		if err != nil || v == "" {
			return "", false, err
		}
		return v, true, nil
	}

	if v, ok, err := ask("Title", t.Title); err != nil {
		return err
	} else if ok {
		p.Title = &v
		changed = true
	}

	if v, ok, err := ask("Description", t.Description); err != nil {
		return err
	} else if ok {
		if v == "-" {
			v = ""
		}
		p.Description = &v
		changed = true
	}

	if v, ok, err := ask("Status", t.Status); err != nil {
		return err
	} else if ok {
		p.Status = &v
		changed = true
	}

	if v, ok, err := ask("Priority", t.Priority); err != nil {
		return err
	} else if ok {
		p.Priority = &v
		changed = true
	}

	if v, ok, err := ask("Due date, - to clear", formatDue(*t)); err != nil {
		return err
	} else if ok {
		if v == "-" {
			p.ClearDueDate = true
		} else {
			p.DueDate = &v
		}
		changed = true
	}

	if !changed {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	if _, err := a.client.UpdateTask(ctx, id, p); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Task #%d updated\n", id)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := a.taskID(args, "delete <id>")
	if err != nil {
		return err
	}

	if err := a.client.DeleteTask(ctx, id); err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Task #%d deleted\n", id)
	return nil
}

func (a *App) taskID(args []string, usage string) (int64, error) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage:", usage)
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Invalid task id:", args[0])
		return 0, errUsage
	}
	return id, nil
}

func filterArg(s string) string {
	if s == "-" || s == "all" {
		return ""
	}
	return s
}

func formatDue(t api.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	return t.DueDate.UTC().Format(dueLayout)
}
