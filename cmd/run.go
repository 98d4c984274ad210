package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intel-cli/internal/intel"
	anthropicpkg "github.com/sells-group/intel-cli/pkg/anthropic"
)

// defaultCompany is the identifier used when --company is not given.
const defaultCompany = "Soulpage IT Solutions"

var (
	runCompany string
	runJSON    bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the intelligence pipeline for a single company",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Credential check happens before any orchestration logic.
		if err := cfg.ValidateCredentials(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		client := anthropicpkg.NewClient(cfg.Anthropic.Key)
		orch := intel.New(client, cfg.Anthropic)

		result := orch.Run(ctx, runCompany)

		if interruptErr := ctx.Err(); interruptErr != nil {
			return interruptErr
		}

		zap.L().Info("run finished",
			zap.String("run_id", result.RunID),
			zap.String("company", runCompany),
			zap.Bool("failed", result.Error != ""),
			zap.Int("transcript_entries", len(result.Transcript)),
		)

		if runJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		fmt.Print(intel.FormatReport(result))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runCompany, "company", defaultCompany, "company name to research")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the raw result as JSON instead of the text report")
	rootCmd.AddCommand(runCmd)
}
