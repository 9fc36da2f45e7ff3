// Command gosheets fetches a workbook, resolves every formula in it, and
// submits the results (spec §6). It favors the standard library for the
// program's own lifecycle and structured logs, the way the wiki blueprint's
// command entrypoint does.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/wix-sheets/gosheets/internal/boundary"
	"github.com/wix-sheets/gosheets/internal/eval"
	"github.com/wix-sheets/gosheets/internal/registry"
)

const defaultIntakeURL = "https://www.wix.com/_serverless/hiring-task-spreadsheet-evaluator/sheets"

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:   "gosheets <email>",
		Short: "Resolve a hosted spreadsheet workbook and submit the results",
		Long: `gosheets fetches a raw workbook from the intake URL, resolves every
formula cell, and POSTs the resolved sheets back under the given email.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intakeURL, _ := cmd.Flags().GetString("intake-url")
			return run(cmd.Context(), log, intakeURL, args[0])
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().String("intake-url", envDefault("GOSHEETS_INTAKE_URL", defaultIntakeURL), "URL to GET the raw workbook from")
	root.Version = versionString()
	root.SetVersionTemplate("gosheets {{.Version}}\n")

	if err := fang.Execute(context.Background(), root); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, intakeURL, email string) error {
	start := time.Now()

	log.Info("fetching workbook", "url", intakeURL)
	raw, err := boundary.FetchWorkbook(ctx, intakeURL)
	if err != nil {
		return fmt.Errorf("fetch workbook: %w", err)
	}
	log.Info("fetched workbook", "sheets", len(raw.Sheets))

	wb := boundary.Convert(raw)

	ev := eval.New(registry.New())
	boundary.Resolve(wb, ev)

	results := make([]boundary.ResolvedSheet, len(wb.Sheets))
	for i, s := range wb.Sheets {
		results[i] = boundary.Render(s)
	}

	log.Info("submitting results", "url", wb.SubmissionURL, "elapsed", time.Since(start))
	if err := boundary.Submit(ctx, wb.SubmissionURL, boundary.SubmissionBody{Email: email, Results: results}); err != nil {
		return fmt.Errorf("submit results: %w", err)
	}

	log.Info("done", "elapsed", time.Since(start))
	return nil
}

func versionString() string {
	if v := os.Getenv("GOSHEETS_VERSION"); strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			return bi.Main.Version
		}
	}
	return "dev"
}

func envDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}
