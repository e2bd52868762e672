package transactions

import (
	"dsikea/core/storage"
	"dsikea/feature/catalog"
	"dsikea/feature/customers"
	"dsikea/feature/providers"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature wires the transaction feature from its collaborators. The
// storage client may be nil, which disables snapshot archival.
func NewFeature(db *gorm.DB, cat *catalog.Service, cust *customers.Service,
	prov *providers.Service, client storage.Client, bucket string, logger *zap.Logger) *Feature {

	furniture := cat.Store()
	ledger := cat.Ledger()
	custStore := cust.Store()
	provStore := prov.Store()

	store := NewStore(db)
	resolver := NewResolver(furniture, ledger)
	builder := NewBuilder(resolver, furniture, ledger, custStore, provStore, store, logger)
	reversal := NewReversal(ledger, logger)
	archiver := NewArchiver(client, bucket, logger)

	svc := NewService(store, builder, reversal, custStore, provStore, archiver, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service returns the transaction service for collaborating features.
func (f *Feature) Service() *Service {
	return f.service
}

// Archiver returns the snapshot archiver so startup can ensure its bucket.
func (f *Feature) Archiver() *Archiver {
	return f.service.archiver
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "transactions"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
