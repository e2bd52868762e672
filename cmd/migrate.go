package cmd

import (
	"log"

	"dsikea/core/config"
	"dsikea/core/database"
	"dsikea/core/logger"

	catalogmodels "dsikea/feature/catalog/models"
	customermodels "dsikea/feature/customers/models"
	providermodels "dsikea/feature/providers/models"
	txmodels "dsikea/feature/transactions/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// allModels lists every persisted model, in dependency order.
func allModels() []any {
	return []any{
		&catalogmodels.Furniture{},
		&customermodels.Customer{},
		&providermodels.Provider{},
		&txmodels.Transaction{},
		&txmodels.TransactionLine{},
	}
}

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long:  `Creates or updates the database schema for all models.`,
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

		if err := db.AutoMigrate(allModels()...); err != nil {
			return err
		}

		logg.Info("Migration completed", zap.Int("models", len(allModels())))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
