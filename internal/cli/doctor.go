package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/gitstrap/internal/config"
	"github.com/rileyhilliard/gitstrap/internal/doctor"
	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
	"github.com/rileyhilliard/gitstrap/internal/sshkey"
	"github.com/rileyhilliard/gitstrap/internal/ui"
	"github.com/rileyhilliard/gitstrap/internal/verify"
)

var doctorJSON bool

// doctorCmd diagnoses everything the setup sequence configures.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the machine's git and SSH setup",
	Long: `Run read-only diagnostic checks over everything gitstrap configures:

  - git, curl, and OpenSSH tools on PATH
  - global git identity and default branch
  - SSH key pair, ssh-agent, and ~/.ssh/config overrides
  - config file validity
  - SSH connectivity to the git hosting provider

Exits non-zero when any check fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand()
	},
}

// DoctorOutput is the JSON shape of `gitstrap doctor --json`.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput groups results under their check category.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput totals the results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

func doctorCommand() error {
	cfg, err := config.Load(Config())
	if err != nil {
		return err
	}

	checks := collectChecks(cfg)

	if doctorJSON {
		// The checks are read-only, so the machine-readable path runs them
		// concurrently instead of animating a checklist.
		results := doctor.RunAllParallel(checks)
		if err := outputDoctorJSON(checks, results); err != nil {
			return err
		}
		return exitOnFailures(results)
	}

	items := make([]ui.ChecklistItem, len(checks))
	results := make([]doctor.CheckResult, len(checks))
	ran := make([]bool, len(checks))
	for i, check := range checks {
		idx, c := i, check
		items[i] = ui.ChecklistItem{
			Name: c.Name(),
			Run: func() ui.ChecklistResult {
				results[idx] = c.Run()
				ran[idx] = true
				return toChecklistResult(results[idx])
			},
		}
	}

	if _, err := ui.RunChecklist(items); err != nil {
		return err
	}

	// An interrupted checklist leaves checks unexecuted; summarizing their
	// zero values would count them as passes.
	executed, allRan := executedResults(results, ran)
	if !allRan {
		return errors.New(errors.ErrExec,
			fmt.Sprintf("Diagnostics interrupted after %d of %d checks", len(executed), len(checks)),
			"Re-run gitstrap doctor to get a full report.")
	}

	fmt.Println()
	fmt.Println(doctor.Summary(executed))
	return exitOnFailures(executed)
}

// executedResults filters results down to the checks that actually ran and
// reports whether that was all of them.
func executedResults(results []doctor.CheckResult, ran []bool) ([]doctor.CheckResult, bool) {
	executed := make([]doctor.CheckResult, 0, len(results))
	for i, r := range results {
		if ran[i] {
			executed = append(executed, r)
		}
	}
	return executed, len(executed) == len(results)
}

// collectChecks builds the full diagnostic suite from the loaded config.
func collectChecks(cfg *config.Config) []doctor.Check {
	runner := exec.NewLocal()
	log := logger.Default()

	checks := doctor.RequiredToolChecks(runner)
	checks = append(checks,
		&doctor.ConfigCheck{Path: Config()},
		&doctor.IdentityCheck{Runner: runner},
		&doctor.DefaultBranchCheck{Runner: runner, Want: cfg.DefaultBranch},
		&doctor.KeyCheck{KeyPath: cfg.KeyPath},
		&doctor.AgentCheck{Agent: sshkey.NewAgent(runner, log, osGetenv, osSetenv)},
		&doctor.IdentityOverrideCheck{Host: cfg.GitHost, KeyPath: cfg.KeyPath},
		&doctor.ConnectivityCheck{
			Verifier: verify.NewVerifier(runner, log),
			User:     cfg.GitSSHUser,
			Host:     cfg.GitHost,
		},
	)
	return checks
}

// toChecklistResult maps a check result onto the checklist renderer.
func toChecklistResult(r doctor.CheckResult) ui.ChecklistResult {
	status := ui.ChecklistFail
	switch r.Status {
	case doctor.StatusPass:
		status = ui.ChecklistPass
	case doctor.StatusWarn:
		status = ui.ChecklistWarn
	}
	return ui.ChecklistResult{
		Status:     status,
		Message:    r.Message,
		Suggestion: r.Suggestion,
	}
}

// exitOnFailures converts failed checks into a non-zero exit.
func exitOnFailures(results []doctor.CheckResult) error {
	if doctor.HasFailures(results) {
		fixable := doctor.FixableCount(results)
		if fixable > 0 {
			muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
			fmt.Println(muted.Render("Run `gitstrap setup` to address the fixable issues."))
		}
		os.Exit(1)
	}
	return nil
}

// outputDoctorJSON renders results grouped by category.
func outputDoctorJSON(checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := make(map[string][]doctor.CheckResult)
	var categoryOrder []string

	for i, check := range checks {
		cat := check.Category()
		if _, exists := grouped[cat]; !exists {
			categoryOrder = append(categoryOrder, cat)
		}
		grouped[cat] = append(grouped[cat], results[i])
	}

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(categoryOrder)),
	}
	for _, cat := range categoryOrder {
		output.Categories = append(output.Categories, CategoryOutput{
			Name:    cat,
			Results: grouped[cat],
		})
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: counts[doctor.StatusWarn] == 0 && counts[doctor.StatusFail] == 0,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}
