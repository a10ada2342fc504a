// Operator CLI for the Provolx AI service: latency benchmarks and the
// one-time migration off the old Node.js AI service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"provolx/provolx/services/bench"
	"provolx/provolx/services/migrate"
	"provolx/provolx/utils/color"
	"provolx/provolx/utils/jsonutils"
)

var (
	noColor    bool
	jsonOutput bool
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, color.Error("error: "+err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "provolxctl",
		Short:         "Operator tooling for the Provolx AI service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.Disable()
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable coloured output")
	root.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the raw report as JSON")

	root.AddCommand(newBenchCmd(), newMigrateCmd())
	return root
}

func newBenchCmd() *cobra.Command {
	opts := bench.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure response times of the AI service (and optionally the backend)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !jsonOutput {
				fmt.Fprintln(out, color.Heading("Starting Provolx Benchmark Tests..."))
				fmt.Fprintln(out, strings.Repeat("=", 50))
			}

			report := bench.NewRunner(opts).Run(cmd.Context())
			if jsonOutput {
				fmt.Fprintln(out, jsonutils.ToJSON(report))
				return nil
			}
			printBenchReport(cmd, report)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.AIURL, "ai-url", opts.AIURL, "base URL of the AI service")
	cmd.Flags().StringVar(&opts.BackendURL, "backend-url", "", "base URL of the backend (skipped when empty)")
	cmd.Flags().IntVar(&opts.Workers, "workers", opts.Workers, "max concurrent requests")
	cmd.Flags().IntVar(&opts.HealthRequests, "health-requests", opts.HealthRequests, "requests per concurrent health run")
	cmd.Flags().IntVar(&opts.ChatRequests, "chat-requests", opts.ChatRequests, "requests per concurrent chat run")
	return cmd
}

func printBenchReport(cmd *cobra.Command, report bench.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run: %s\n\n", report.RunID)

	for _, res := range report.Single {
		if res.Success {
			fmt.Fprintf(out, "%s %-20s %8.1f ms  status=%d", color.Status(true), res.Endpoint, res.ResponseTimeMs, res.StatusCode)
			if res.ResponseLength > 0 {
				fmt.Fprintf(out, "  bytes=%d", res.ResponseLength)
			}
			fmt.Fprintln(out)
			continue
		}
		detail := res.Error
		if detail == "" {
			detail = fmt.Sprintf("status=%d", res.StatusCode)
		}
		fmt.Fprintf(out, "%s %-20s %s\n", color.Status(false), res.Endpoint, detail)
	}

	fmt.Fprintln(out, color.Heading("\nConcurrent runs"))
	for _, c := range report.Concurrent {
		if c.Error != "" {
			fmt.Fprintf(out, "  %-20s %d/%d  %s\n", c.Endpoint, c.SuccessfulRequests, c.TotalRequests, color.Warning(c.Error))
			continue
		}
		fmt.Fprintf(out, "  %-20s %d/%d  avg=%.1fms min=%.1fms max=%.1fms median=%.1fms\n",
			c.Endpoint, c.SuccessfulRequests, c.TotalRequests,
			*c.AvgResponseTime, *c.MinResponseTime, *c.MaxResponseTime, *c.MedianResponseTime)
	}

	fmt.Fprintln(out, "\n"+strings.Repeat("=", 50))
	fmt.Fprintln(out, color.Heading("BENCHMARK SUMMARY"))
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Successful tests: %d\n", report.Successful)
	fmt.Fprintf(out, "Failed tests: %d\n", report.Failed)

	if failed := report.FailedResults(); len(failed) > 0 {
		fmt.Fprintln(out, color.Error("\nFailed tests:"))
		for _, res := range failed {
			reason := res.Error
			if reason == "" {
				reason = fmt.Sprintf("unexpected status %d", res.StatusCode)
			}
			fmt.Fprintf(out, "  - %s: %s\n", res.Endpoint, reason)
		}
	}
}

func newMigrateCmd() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Point a project at the new AI service on port 8001",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			report, err := migrate.Run(root)
			if jsonOutput {
				fmt.Fprintln(out, jsonutils.ToJSON(report))
			} else {
				for _, step := range report.Steps {
					fmt.Fprintln(out, color.Info("✓ "+step))
				}
			}
			if err != nil {
				return err
			}
			if !jsonOutput {
				fmt.Fprintln(out, color.Heading("\nMigration complete!"))
				fmt.Fprintln(out, migrate.NextSteps)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", ".", "project root containing ai-service/, backend/ and frontend/")
	return cmd
}
