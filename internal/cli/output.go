package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/ehsaniara/ezbatch/internal/ezbatch/ledger"
	"github.com/ehsaniara/ezbatch/internal/ezbatch/scheduler"
)

const timeLayout = "2006-01-02 15:04:05"

// stateColor picks the colour a run or submission state is printed in.
func stateColor(state string) *color.Color {
	switch state {
	case "COMPLETED", "SUCCEEDED":
		return color.New(color.FgGreen)
	case "FAILED":
		return color.New(color.FgRed)
	case "SUBMITTING", "DEFINITIONS_REGISTERED", "SUBMITTED", "RUNNABLE", "STARTING":
		return color.New(color.FgYellow)
	case "PENDING":
		return color.New(color.FgCyan)
	case "RUNNING":
		return color.New(color.FgBlue)
	default:
		return color.New(color.Reset)
	}
}

// padState pads before colouring so escape codes do not break alignment.
func padState(state string, width int) string {
	return stateColor(state).Sprint(fmt.Sprintf("%-*s", width, state))
}

func printRunList(w io.Writer, runs []*ledger.Run) {
	idWidth := len("RUN ID")
	workflowWidth := len("WORKFLOW")
	stateWidth := len("STATE")
	for _, run := range runs {
		idWidth = max(idWidth, len(run.RunID))
		workflowWidth = max(workflowWidth, len(run.Workflow))
		stateWidth = max(stateWidth, len(run.State))
	}
	idWidth += 2
	workflowWidth = min(workflowWidth+2, 40)
	stateWidth += 2

	_, _ = fmt.Fprintf(w, "%-*s %-*s %-*s %-19s %s\n",
		idWidth, "RUN ID",
		workflowWidth, "WORKFLOW",
		stateWidth, "STATE",
		"SUBMITTED",
		"JOBS")
	_, _ = fmt.Fprintf(w, "%s %s %s %s %s\n",
		strings.Repeat("-", idWidth),
		strings.Repeat("-", workflowWidth),
		strings.Repeat("-", stateWidth),
		strings.Repeat("-", 19),
		strings.Repeat("-", 4))

	for _, run := range runs {
		name := run.Workflow
		if len(name) > workflowWidth {
			name = name[:workflowWidth-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-*s %-*s %s %-19s %d/%d\n",
			idWidth, run.RunID,
			workflowWidth, name,
			padState(run.State, stateWidth),
			formatTime(run.SubmittedAt),
			len(run.Jobs), len(run.Order))
	}
}

func printJobList(w io.Writer, jobs []scheduler.JobSummary) {
	nameWidth := len("NAME")
	idWidth := len("JOB ID")
	taskWidth := len("TASK ID")
	for _, j := range jobs {
		nameWidth = max(nameWidth, len(j.Name))
		idWidth = max(idWidth, len(j.JobID))
		taskWidth = max(taskWidth, len(j.TaskID))
	}
	nameWidth = min(nameWidth+2, 60)
	idWidth += 2
	taskWidth += 2

	_, _ = fmt.Fprintf(w, "%-*s %-*s %-*s %s\n", nameWidth, "NAME", idWidth, "JOB ID", taskWidth, "TASK ID", "STATUS")
	_, _ = fmt.Fprintf(w, "%s %s %s %s\n",
		strings.Repeat("-", nameWidth),
		strings.Repeat("-", idWidth),
		strings.Repeat("-", taskWidth),
		strings.Repeat("-", len("STATUS")))

	for _, j := range jobs {
		name := j.Name
		if len(name) > nameWidth {
			name = name[:nameWidth-3] + "..."
		}
		task := j.TaskID
		if task == "" {
			task = "-"
		}
		_, _ = fmt.Fprintf(w, "%-*s %-*s %-*s %s\n",
			nameWidth, name,
			idWidth, j.JobID,
			taskWidth, task,
			stateColor(j.Status).Sprint(j.Status))
	}
}

func printRun(w io.Writer, run *ledger.Run) {
	_, _ = fmt.Fprintf(w, "Run ID: %s\n", run.RunID)
	_, _ = fmt.Fprintf(w, "Workflow: %s\n", run.Workflow)
	_, _ = fmt.Fprintf(w, "State: %s\n", stateColor(run.State).Sprint(run.State))
	if run.Queue != "" {
		_, _ = fmt.Fprintf(w, "Queue: %s\n", run.Queue)
	}
	_, _ = fmt.Fprintf(w, "Submitted: %s\n", formatTime(run.SubmittedAt))
	if run.Error != "" {
		_, _ = fmt.Fprintf(w, "Error: %s\n", run.Error)
	}
	printJobIDs(w, run.Order, run.Jobs)
}

// printJobIDs lists jobs in submission order followed by any job missing
// from order. Jobs that were never submitted show a dash.
func printJobIDs(w io.Writer, order []string, ids map[string]string) {
	names := append([]string(nil), order...)
	listed := make(map[string]bool, len(order))
	for _, name := range order {
		listed[name] = true
	}
	var extra []string
	for name := range ids {
		if !listed[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)
	if len(names) == 0 {
		return
	}

	width := len("JOB")
	for _, name := range names {
		width = max(width, len(name))
	}
	width += 2

	_, _ = fmt.Fprintf(w, "\n%-*s %s\n", width, "JOB", "JOB ID")
	_, _ = fmt.Fprintf(w, "%s %s\n", strings.Repeat("-", width), strings.Repeat("-", 6))
	for _, name := range names {
		id := ids[name]
		if id == "" {
			id = "-"
		}
		_, _ = fmt.Fprintf(w, "%-*s %s\n", width, name, id)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
