package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

const (
	inventoryCollection = "inventory"
	movementCollection  = "movements"
)

// InventoryRepository persists stock levels and movement history.
type InventoryRepository struct {
	inventory *mongo.Collection
	movements *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{
		inventory: db.Collection(inventoryCollection),
		movements: db.Collection(movementCollection),
	}
}

type inventoryDoc struct {
	ProductID primitive.ObjectID `bson:"product_id"`
	Quantity  int                `bson:"quantity"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type movementDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID primitive.ObjectID `bson:"product_id"`
	Type      string             `bson:"type"`
	Quantity  int                `bson:"quantity"`
	Notes     string             `bson:"notes,omitempty"`
	UserID    string             `bson:"user_id"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *InventoryRepository) FindByProduct(ctx context.Context, productID string) (*domain.Inventory, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	var doc inventoryDoc
	if err := r.inventory.FindOne(ctx, bson.M{"product_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find inventory: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *InventoryRepository) List(ctx context.Context) ([]domain.Inventory, error) {
	cursor, err := r.inventory.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []inventoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}

	levels := make([]domain.Inventory, 0, len(docs))
	for _, doc := range docs {
		levels = append(levels, *doc.toDomain())
	}
	return levels, nil
}

func (r *InventoryRepository) InitStock(ctx context.Context, productID string, quantity int) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return domain.ErrProductNotFound
	}

	_, err = r.inventory.InsertOne(ctx, inventoryDoc{
		ProductID: oid,
		Quantity:  quantity,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("init stock: %w", err)
	}
	return nil
}

// AdjustStock applies delta atomically. The filter embeds the non-negative
// constraint so a concurrent "out" past zero loses cleanly instead of
// corrupting the count.
func (r *InventoryRepository) AdjustStock(ctx context.Context, productID string, delta int) (*domain.Inventory, error) {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	filter := bson.M{"product_id": oid}
	if delta < 0 {
		filter["quantity"] = bson.M{"$gte": -delta}
	}

	var doc inventoryDoc
	err = r.inventory.FindOneAndUpdate(ctx, filter,
		bson.M{
			"$inc": bson.M{"quantity": delta},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return doc.toDomain(), nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("adjust stock: %w", err)
	}

	// No match: either the row is missing or the delta would go negative.
	if delta < 0 {
		if findErr := r.inventory.FindOne(ctx, bson.M{"product_id": oid}).Err(); findErr == nil {
			return nil, domain.ErrInsufficientStock
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *InventoryRepository) RecordMovement(ctx context.Context, movement *domain.Movement) (*domain.Movement, error) {
	oid, err := primitive.ObjectIDFromHex(movement.ProductID)
	if err != nil {
		return nil, domain.ErrProductNotFound
	}

	doc := movementDoc{
		ProductID: oid,
		Type:      string(movement.Type),
		Quantity:  movement.Quantity,
		Notes:     movement.Notes,
		UserID:    movement.UserID,
		CreatedAt: movement.CreatedAt,
	}

	res, err := r.movements.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert movement: %w", err)
	}

	created := *movement
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *InventoryRepository) ListMovements(ctx context.Context, productID string) ([]domain.Movement, error) {
	filter := bson.M{}
	if productID != "" {
		oid, err := primitive.ObjectIDFromHex(productID)
		if err != nil {
			return nil, domain.ErrProductNotFound
		}
		filter["product_id"] = oid
	}

	cursor, err := r.movements.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []movementDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode movements: %w", err)
	}

	movements := make([]domain.Movement, 0, len(docs))
	for _, doc := range docs {
		movements = append(movements, domain.Movement{
			ID:        doc.ID.Hex(),
			ProductID: doc.ProductID.Hex(),
			Type:      domain.MovementType(doc.Type),
			Quantity:  doc.Quantity,
			Notes:     doc.Notes,
			UserID:    doc.UserID,
			CreatedAt: doc.CreatedAt,
		})
	}
	return movements, nil
}

func (d *inventoryDoc) toDomain() *domain.Inventory {
	return &domain.Inventory{
		ProductID: d.ProductID.Hex(),
		Quantity:  d.Quantity,
		UpdatedAt: d.UpdatedAt,
	}
}
