package database

import (
	"context"

	"github.com/princinho/catalogadmin/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// AdminStore holds the single administrator.
type AdminStore interface {
	// Create fails with ErrRegistrationClosed once any admin exists.
	Create(ctx context.Context, admin *models.Admin) error
	// FindByUsername returns ErrNotFound when no admin has that username.
	FindByUsername(ctx context.Context, username string) (*models.Admin, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Admin, error)
	UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error
}

type ProductStore interface {
	List(ctx context.Context, page, limit int) ([]models.Product, int64, error)
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error)
	Insert(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, id bson.ObjectID, u models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// SettingsStore holds the singleton contact settings document.
type SettingsStore interface {
	// Get returns ErrNotFound until the first Save.
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, whatsappNumber, telegramUsername string) (*models.Settings, error)
}

type Stores struct {
	Admins   AdminStore
	Products ProductStore
	Settings SettingsStore
}

// EnsureIndexes is implemented by stores that need indexes at startup.
type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates indexes on every store that has them.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	for _, st := range []any{s.Admins, s.Products, s.Settings} {
		if ix, ok := st.(indexer); ok {
			if err := ix.EnsureIndexes(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}
