package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"github.com/rs/zerolog"

	"github.com/kardexlab/inventory-api/internal/core/domain"
	"github.com/kardexlab/inventory-api/internal/core/ports"
)

// AdminSeed describes the default administrator account.
type AdminSeed struct {
	Username string
	Email    string
	Password string
	FullName string
}

// Bootstrap ensures unique indexes and seeds the base data set: the two
// built-in roles, the default administrator, and a starter catalogue.
// Idempotent; safe to run repeatedly.
func Bootstrap(ctx context.Context, db *mongo.Database, admin AdminSeed, hasher ports.PasswordHasher, log zerolog.Logger) error {
	if err := ensureIndexes(ctx, db); err != nil {
		return err
	}

	roles := NewRoleRepository(db)
	users := NewUserRepository(db)

	if err := seedRoles(ctx, roles, log); err != nil {
		return err
	}
	if err := seedAdmin(ctx, users, roles, admin, hasher, log); err != nil {
		return err
	}
	return seedCatalogue(ctx, db, log)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		userCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		roleCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: unique},
		},
		productCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique},
		},
		inventoryCollection: {
			{Keys: bson.D{{Key: "product_id", Value: 1}}, Options: unique},
		},
		movementCollection: {
			{Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func seedRoles(ctx context.Context, roles *RoleRepository, log zerolog.Logger) error {
	seeds := []domain.Role{
		{Name: domain.RoleAdministrator, Description: "Full access to the system"},
		{Name: domain.RoleUser, Description: "Limited access, cannot delete products"},
	}

	for _, seed := range seeds {
		if _, err := roles.FindByName(ctx, seed.Name); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrRoleNotFound) {
			return err
		}

		seed.CreatedAt = time.Now().UTC()
		if _, err := roles.Create(ctx, &seed); err != nil {
			return err
		}
		log.Info().Str("role", seed.Name).Msg("seeded role")
	}
	return nil
}

func seedAdmin(ctx context.Context, users *UserRepository, roles *RoleRepository, admin AdminSeed, hasher ports.PasswordHasher, log zerolog.Logger) error {
	if _, err := users.FindByEmail(ctx, admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	role, err := roles.FindByName(ctx, domain.RoleAdministrator)
	if err != nil {
		return err
	}

	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, &domain.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: hash,
		FullName:     admin.FullName,
		Active:       true,
		RoleID:       role.ID,
		RoleName:     role.Name,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("seeded administrator")
	return nil
}

func seedCatalogue(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	products := NewProductRepository(db)
	inventory := NewInventoryRepository(db)

	blueprint := []struct {
		product domain.Product
		stock   int
	}{
		{domain.Product{Code: "PRD-LP14", Name: "Laptop Pro 14", Description: "Portable workstation", SalePrice: 1299.99, MinStock: 5}, 12},
		{domain.Product{Code: "PRD-MW34", Name: "Monitor UltraWide 34", Description: "IPS 144Hz monitor", SalePrice: 799.50, MinStock: 3}, 6},
		{domain.Product{Code: "PRD-MERGO", Name: "Mouse Ergo MX", Description: "Wireless ergonomic mouse", SalePrice: 89.99, MinStock: 15}, 30},
	}

	now := time.Now().UTC()
	for _, entry := range blueprint {
		if _, err := products.FindByCode(ctx, entry.product.Code); err == nil {
			continue
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			return err
		}

		entry.product.CreatedAt = now
		entry.product.UpdatedAt = now
		created, err := products.Create(ctx, &entry.product)
		if err != nil {
			return err
		}
		if err := inventory.InitStock(ctx, created.ID, entry.stock); err != nil {
			return err
		}
		log.Info().Str("code", created.Code).Int("stock", entry.stock).Msg("seeded product")
	}
	return nil
}
