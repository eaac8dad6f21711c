package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kardexlab/inventory-api/internal/core/domain"
)

// In-memory fakes shared by the service tests. They honour the same error
// contracts as the Mongo repositories.

type stubUserRepo struct {
	users      map[string]*domain.User
	seq        int
	lastAccess map[string]time.Time
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users:      make(map[string]*domain.User),
		lastAccess: make(map[string]time.Time),
	}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) SetActive(_ context.Context, id string, active bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Active = active
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, roleID string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RoleID = roleID
	return nil
}

func (r *stubUserRepo) UpdateLastAccess(_ context.Context, id string, at time.Time) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	r.lastAccess[id] = at
	return nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, roleID string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
	seq   int
}

func newStubRoleRepo() *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	_, _ = r.Create(context.Background(), &domain.Role{Name: domain.RoleAdministrator})
	_, _ = r.Create(context.Background(), &domain.Role{Name: domain.RoleUser})
	return r
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	if role, ok := r.roles[id]; ok {
		clone := *role
		return &clone, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			clone := *role
			return &clone, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]domain.Role, error) {
	out := make([]domain.Role, 0, len(r.roles))
	for _, role := range r.roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.seq++
	clone := *role
	clone.ID = fmt.Sprintf("role-%d", r.seq)
	r.roles[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubRoleRepo) mustID(name string) string {
	for id, role := range r.roles {
		if role.Name == name {
			return id
		}
	}
	panic("role not seeded: " + name)
}

// plainHasher avoids bcrypt cost in tests that do not exercise hashing.
type plainHasher struct{}

func (plainHasher) Hash(plaintext string) (string, error) { return "hash:" + plaintext, nil }
func (plainHasher) Verify(plaintext, hash string) bool    { return "hash:"+plaintext == hash }

// staticTokens issues predictable tokens keyed by user id.
type staticTokens struct{}

func (staticTokens) Issue(user *domain.User) (string, time.Time, error) {
	return "token-" + user.ID, time.Now().Add(time.Hour), nil
}

func (staticTokens) Validate(token string) (string, error) {
	if len(token) > 6 && token[:6] == "token-" {
		return token[6:], nil
	}
	return "", domain.ErrTokenInvalid
}

type stubProductRepo struct {
	products map[string]*domain.Product
	seq      int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok && !p.Deleted {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.Deleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.seq++
	clone := *product
	clone.ID = fmt.Sprintf("product-%d", r.seq)
	r.products[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Deleted = true
	return nil
}

type stubInventoryRepo struct {
	stock     map[string]int
	movements []domain.Movement
	seq       int
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{stock: make(map[string]int)}
}

func (r *stubInventoryRepo) FindByProduct(_ context.Context, productID string) (*domain.Inventory, error) {
	qty, ok := r.stock[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &domain.Inventory{ProductID: productID, Quantity: qty}, nil
}

func (r *stubInventoryRepo) List(_ context.Context) ([]domain.Inventory, error) {
	out := make([]domain.Inventory, 0, len(r.stock))
	for id, qty := range r.stock {
		out = append(out, domain.Inventory{ProductID: id, Quantity: qty})
	}
	return out, nil
}

func (r *stubInventoryRepo) InitStock(_ context.Context, productID string, quantity int) error {
	r.stock[productID] = quantity
	return nil
}

func (r *stubInventoryRepo) AdjustStock(_ context.Context, productID string, delta int) (*domain.Inventory, error) {
	qty, ok := r.stock[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if qty+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	r.stock[productID] = qty + delta
	return &domain.Inventory{ProductID: productID, Quantity: qty + delta}, nil
}

func (r *stubInventoryRepo) RecordMovement(_ context.Context, movement *domain.Movement) (*domain.Movement, error) {
	r.seq++
	clone := *movement
	clone.ID = fmt.Sprintf("movement-%d", r.seq)
	r.movements = append(r.movements, clone)
	copy := clone
	return &copy, nil
}

func (r *stubInventoryRepo) ListMovements(_ context.Context, productID string) ([]domain.Movement, error) {
	out := make([]domain.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		if productID == "" || m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
