package cmd

import (
	"context"
	"fmt"
	"log"

	"dsikea/core/config"
	"dsikea/core/database"
	"dsikea/core/logger"
	"dsikea/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Run the consistency audit",
	Long: `Scans the catalog and the transaction log for invariant
violations: negative stock, totals that do not match their lines, and
transactions linked to the wrong kind of counterparty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}

		report, err := audit.NewService(db, logg).Run(context.Background())
		if err != nil {
			return err
		}

		if report.OK() {
			logg.Info("Audit passed", zap.Int("checked", report.Checked))
			return nil
		}

		for _, v := range report.Violations {
			logg.Warn("Violation",
				zap.String("kind", v.Kind),
				zap.String("entity", v.Entity),
				zap.String("id", v.ID),
				zap.String("detail", v.Detail),
			)
		}
		return fmt.Errorf("audit found %d violations in %d records", len(report.Violations), report.Checked)
	},
}

func init() {
	RootCmd.AddCommand(auditCmd)
}
