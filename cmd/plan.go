package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/focus-cli/internal/adapters/storage"
	"github.com/xvierd/focus-cli/internal/config"
	"github.com/xvierd/focus-cli/internal/domain"
	"github.com/xvierd/focus-cli/internal/planner"
	"github.com/xvierd/focus-cli/internal/ports"
)

var (
	planDays  int
	planWeeks int
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan [subject[:chapter,chapter]...]",
	Short: "Generate a study timetable",
	Long: `Spread the chosen chapters over a number of days, one after another, and
add them to the timetable. Several subjects may be combined in one plan:

  focus plan tax:gst,income cost --days 3

Subject and chapter names may be abbreviated. A subject without chapters
plans every chapter. With no arguments, the configured subjects are listed.
The timetable is kept in the sqlite database at --db.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			listSubjects(cmd.OutOrStdout(), app.config.Subjects)
			return nil
		}

		selections, err := parseSelections(args)
		if err != nil {
			return err
		}

		target := planner.Target{Kind: planner.TargetDaily, Value: planDays}
		if cmd.Flags().Changed("weeks") {
			target = planner.Target{Kind: planner.TargetWeekly, Value: planWeeks}
		}

		tasks, err := buildPlan(app.config.Subjects, selections, target, time.Now())
		if err != nil {
			return err
		}

		plans, closePlans, err := openPlans()
		if err != nil {
			return err
		}
		defer func() { _ = closePlans() }()

		timetable, err := addPlan(context.Background(), plans, tasks)
		if err != nil {
			return err
		}

		if jsonOutput {
			return writePlanJSON(cmd.OutOrStdout(), tasks, timetable)
		}
		writePlan(cmd.OutOrStdout(), tasks, timetable)
		return nil
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the timetable and overall progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, closePlans, err := openPlans()
		if err != nil {
			return err
		}
		defer func() { _ = closePlans() }()

		tasks, err := plans.FindAll(context.Background())
		if err != nil {
			return fmt.Errorf("failed to load timetable: %w", err)
		}

		if jsonOutput {
			return writePlanJSON(cmd.OutOrStdout(), tasks, tasks)
		}
		writeTimetable(cmd.OutOrStdout(), tasks)
		return nil
	},
}

var planDoneCmd = &cobra.Command{
	Use:     "done <n>...",
	Aliases: []string{"toggle"},
	Short:   "Toggle completion of timetable tasks by number",
	Long:    `Mark the numbered tasks from "focus plan show" as done, or undo the mark.`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, closePlans, err := openPlans()
		if err != nil {
			return err
		}
		defer func() { _ = closePlans() }()

		toggled, timetable, err := toggleTasks(context.Background(), plans, args)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, t := range toggled {
			mark := "Not done"
			if t.Completed {
				mark = "Done"
			}
			fmt.Fprintf(w, "  %s: %s (%s)\n", mark, t.Title, t.Subject)
		}
		fmt.Fprintf(w, "\nProgress: %d%% of %d tasks\n", domain.PlanProgress(timetable), len(timetable))
		return nil
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <n>...",
	Short: "Remove timetable tasks by number",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, closePlans, err := openPlans()
		if err != nil {
			return err
		}
		defer func() { _ = closePlans() }()

		removed, err := deleteTasks(context.Background(), plans, args)
		if err != nil {
			return err
		}
		for _, t := range removed {
			fmt.Fprintf(cmd.OutOrStdout(), "  Removed: %s (%s)\n", t.Title, t.Subject)
		}
		return nil
	},
}

var planClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every task from the timetable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plans, closePlans, err := openPlans()
		if err != nil {
			return err
		}
		defer func() { _ = closePlans() }()

		if err := plans.Clear(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "  Timetable cleared.")
		return nil
	},
}

func init() {
	planCmd.Flags().IntVar(&planDays, "days", 7, "Number of days to plan over")
	planCmd.Flags().IntVar(&planWeeks, "weeks", 0, "Number of weeks to plan over (overrides --days)")

	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planDoneCmd)
	planCmd.AddCommand(planDeleteCmd)
	planCmd.AddCommand(planClearCmd)
}

// openPlans returns the timetable store and its closer. The timetable always
// lives in the sqlite file at dbPath, so it survives runs that keep sessions
// in memory.
func openPlans() (ports.StudyPlanRepository, func() error, error) {
	if app.driver == storage.DriverSQLite {
		return app.storage.Plans(), func() error { return nil }, nil
	}

	if err := os.MkdirAll(getDir(dbPath), 0750); err != nil {
		return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	store, err := storage.New(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open timetable: %w", err)
	}
	return store.Plans(), store.Close, nil
}

// parseSelections reads "subject" or "subject:chapter,chapter" arguments.
func parseSelections(args []string) ([]planner.Selection, error) {
	selections := make([]planner.Selection, 0, len(args))
	for _, arg := range args {
		subject, chapters, _ := strings.Cut(arg, ":")
		subject = strings.TrimSpace(subject)
		if subject == "" {
			return nil, fmt.Errorf("missing subject in %q", arg)
		}

		sel := planner.Selection{Subject: subject}
		for _, ch := range strings.Split(chapters, ",") {
			if ch = strings.TrimSpace(ch); ch != "" {
				sel.Chapters = append(sel.Chapters, ch)
			}
		}
		selections = append(selections, sel)
	}
	return selections, nil
}

// buildPlan resolves the selections against subjects and spreads the
// chapters over the target window starting at start.
func buildPlan(subjects []config.SubjectConfig, selections []planner.Selection, target planner.Target, start time.Time) ([]domain.StudyTask, error) {
	days, err := target.Days()
	if err != nil {
		return nil, err
	}

	candidates := make([]planner.Subject, len(subjects))
	for i, s := range subjects {
		candidates[i] = planner.Subject{Name: s.Name, Chapters: s.Chapters}
	}

	items, err := planner.ResolveSelections(selections, candidates)
	if err != nil {
		return nil, err
	}

	return planner.Generate(items, days, start)
}

// addPlan appends tasks to the timetable and returns the whole timetable.
func addPlan(ctx context.Context, plans ports.StudyPlanRepository, tasks []domain.StudyTask) ([]domain.StudyTask, error) {
	if err := plans.Add(ctx, tasks); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	timetable, err := plans.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable: %w", err)
	}
	return timetable, nil
}

// pickTasks resolves 1-based task numbers as listed by "plan show".
func pickTasks(tasks []domain.StudyTask, args []string) ([]domain.StudyTask, error) {
	picked := make([]domain.StudyTask, 0, len(args))
	seen := make(map[int]bool)
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return nil, fmt.Errorf("invalid task number %q", arg)
		}
		if n < 1 || n > len(tasks) {
			return nil, fmt.Errorf("%w: #%d (timetable has %d tasks)", domain.ErrStudyTaskNotFound, n, len(tasks))
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		picked = append(picked, tasks[n-1])
	}
	return picked, nil
}

// toggleTasks flips the completion mark of the numbered tasks and returns
// them with the updated timetable.
func toggleTasks(ctx context.Context, plans ports.StudyPlanRepository, args []string) ([]domain.StudyTask, []domain.StudyTask, error) {
	tasks, err := plans.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load timetable: %w", err)
	}
	picked, err := pickTasks(tasks, args)
	if err != nil {
		return nil, nil, err
	}

	for i := range picked {
		picked[i].ToggleComplete()
		if err := plans.SetCompleted(ctx, picked[i].ID, picked[i].Completed); err != nil {
			return nil, nil, fmt.Errorf("failed to update %q: %w", picked[i].Title, err)
		}
	}

	timetable, err := plans.FindAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load timetable: %w", err)
	}
	return picked, timetable, nil
}

// deleteTasks removes the numbered tasks and returns them.
func deleteTasks(ctx context.Context, plans ports.StudyPlanRepository, args []string) ([]domain.StudyTask, error) {
	tasks, err := plans.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load timetable: %w", err)
	}
	picked, err := pickTasks(tasks, args)
	if err != nil {
		return nil, err
	}

	for _, t := range picked {
		if err := plans.Delete(ctx, t.ID); err != nil {
			return nil, fmt.Errorf("failed to remove %q: %w", t.Title, err)
		}
	}
	return picked, nil
}

func subjectNames(tasks []domain.StudyTask) string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range tasks {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			names = append(names, t.Subject)
		}
	}
	return strings.Join(names, ", ")
}

func writePlanJSON(w io.Writer, tasks, timetable []domain.StudyTask) error {
	if tasks == nil {
		tasks = []domain.StudyTask{}
	}
	jsonData, err := json.MarshalIndent(map[string]interface{}{
		"tasks":    tasks,
		"count":    len(tasks),
		"progress": domain.PlanProgress(timetable),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}

// writePlan prints the generated tasks and the progress of the timetable.
func writePlan(w io.Writer, added, timetable []domain.StudyTask) {
	if len(added) == 0 {
		return
	}
	fmt.Fprintf(w, "📅 Study plan: %s (%d chapters)\n\n", subjectNames(added), len(added))
	for _, t := range added {
		fmt.Fprintf(w, "  %s  %-40s  %s\n", t.Date.Format("Mon Jan 2"), t.Title, t.TimeSlot)
	}
	fmt.Fprintf(w, "\nProgress: %d%% of %d tasks\n", domain.PlanProgress(timetable), len(timetable))
}

// writeTimetable lists every task with the number used by done and delete.
func writeTimetable(w io.Writer, tasks []domain.StudyTask) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No study tasks planned yet.")
		fmt.Fprintln(w, "\nRun \"focus plan <subject>\" to generate a timetable.")
		return
	}

	fmt.Fprintf(w, "📅 Timetable (%d tasks)\n\n", len(tasks))
	for i, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Fprintf(w, "  %2d. [%s] %s  %-40s  %s\n", i+1, mark, t.Date.Format("Mon Jan 2"), t.Title, t.Subject)
	}
	fmt.Fprintf(w, "\nProgress: %d%%\n", domain.PlanProgress(tasks))
}

func listSubjects(w io.Writer, subjects []config.SubjectConfig) {
	if len(subjects) == 0 {
		fmt.Fprintln(w, "No subjects configured.")
		return
	}
	fmt.Fprintln(w, "Subjects:")
	for _, s := range subjects {
		fmt.Fprintf(w, "  %-30s %d chapters\n", s.Name, len(s.Chapters))
	}
	fmt.Fprintln(w, "\nRun \"focus plan <subject>\" to generate a timetable.")
}
