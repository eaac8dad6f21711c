package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

const (
	userCollection = "users"
	roleCollection = "roles"
)

// UserRepository persists user accounts. It also reads the roles collection
// to resolve each user's role name, since the domain treats the pair as one
// unit.
type UserRepository struct {
	users *mongo.Collection
	roles *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		users: db.Collection(userCollection),
		roles: db.Collection(roleCollection),
	}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	FullName     string             `bson:"full_name,omitempty"`
	Active       bool               `bson:"active"`
	RoleID       primitive.ObjectID `bson:"role_id"`
	CreatedAt    time.Time          `bson:"created_at"`
	LastAccess   *time.Time         `bson:"last_access,omitempty"`
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	// Role names are resolved once per distinct role, not per user.
	names := make(map[primitive.ObjectID]string)
	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		name, ok := names[doc.RoleID]
		if !ok {
			name = r.roleName(ctx, doc.RoleID)
			names[doc.RoleID] = name
		}
		users = append(users, *doc.toDomain(name))
	}
	return users, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	roleID, err := primitive.ObjectIDFromHex(user.RoleID)
	if err != nil {
		return nil, domain.ErrRoleNotFound
	}

	doc := userDoc{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FullName:     user.FullName,
		Active:       user.Active,
		RoleID:       roleID,
		CreatedAt:    user.CreatedAt,
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"password_hash": passwordHash}})
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"active": active}})
}

func (r *UserRepository) SetRole(ctx context.Context, id, roleID string) error {
	rid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return domain.ErrRoleNotFound
	}
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"role_id": rid}})
}

func (r *UserRepository) UpdateLastAccess(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"last_access": at}})
}

func (r *UserRepository) CountByRole(ctx context.Context, roleID string) (int64, error) {
	rid, err := primitive.ObjectIDFromHex(roleID)
	if err != nil {
		return 0, domain.ErrRoleNotFound
	}
	count, err := r.users.CountDocuments(ctx, bson.M{"role_id": rid})
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return count, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(r.roleName(ctx, doc.RoleID)), nil
}

func (r *UserRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}
	res, err := r.users.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// roleName resolves a role id to its name. A dangling reference falls back
// to the default User role name, mirroring how the rest of the system treats
// a user without a resolvable role.
func (r *UserRepository) roleName(ctx context.Context, roleID primitive.ObjectID) string {
	var doc roleDoc
	if err := r.roles.FindOne(ctx, bson.M{"_id": roleID}).Decode(&doc); err != nil {
		return domain.RoleUser
	}
	return doc.Name
}

func (d *userDoc) toDomain(roleName string) *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FullName:     d.FullName,
		Active:       d.Active,
		RoleID:       d.RoleID.Hex(),
		RoleName:     roleName,
		CreatedAt:    d.CreatedAt,
		LastAccess:   d.LastAccess,
	}
}
