package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/princinho/catalogadmin/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore keeps admins, products and settings in process memory. It backs
// STORE_DRIVER=memory for local runs and the handler tests.
type MemoryStore struct {
	mu       sync.RWMutex
	admin    *models.Admin
	products map[bson.ObjectID]*models.Product
	settings *models.Settings
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[bson.ObjectID]*models.Product),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// NewMemoryStores returns Stores backed by a single MemoryStore.
func NewMemoryStores() *Stores {
	m := NewMemoryStore()
	return &Stores{
		Admins:   memoryAdmins{m},
		Products: memoryProducts{m},
		Settings: memorySettings{m},
	}
}

type memoryAdmins struct{ m *MemoryStore }

// Create checks for an existing admin and inserts under the same lock.
func (a memoryAdmins) Create(ctx context.Context, admin *models.Admin) error {
	m := a.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.admin != nil {
		return ErrRegistrationClosed
	}
	now := m.now()
	admin.ID = bson.NewObjectID()
	admin.Singleton = models.AdminSingletonKey
	admin.CreatedAt = now
	admin.UpdatedAt = now

	cp := *admin
	m.admin = &cp
	return nil
}

func (a memoryAdmins) FindByUsername(ctx context.Context, username string) (*models.Admin, error) {
	m := a.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.admin == nil || m.admin.Username != username {
		return nil, ErrNotFound
	}
	cp := *m.admin
	return &cp, nil
}

func (a memoryAdmins) FindByID(ctx context.Context, id bson.ObjectID) (*models.Admin, error) {
	m := a.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.admin == nil || m.admin.ID != id {
		return nil, ErrNotFound
	}
	cp := *m.admin
	return &cp, nil
}

func (a memoryAdmins) UpdatePassword(ctx context.Context, id bson.ObjectID, passwordHash string) error {
	m := a.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.admin == nil || m.admin.ID != id {
		return ErrNotFound
	}
	m.admin.PasswordHash = passwordHash
	m.admin.UpdatedAt = m.now()
	return nil
}

type memoryProducts struct{ m *MemoryStore }

func copyProduct(p *models.Product) *models.Product {
	cp := *p
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		cp.OriginalPrice = &v
	}
	return &cp
}

func (s memoryProducts) List(ctx context.Context, page, limit int) ([]models.Product, int64, error) {
	m := s.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := make([]*models.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.Hex() > all[j].ID.Hex()
	})

	items := make([]models.Product, 0)
	if page < 1 || limit < 1 || page-1 >= (len(all)+limit-1)/limit {
		return items, int64(len(all)), nil
	}
	start := (page - 1) * limit
	end := min(start+limit, len(all))
	for _, p := range all[start:end] {
		items = append(items, *copyProduct(p))
	}
	return items, int64(len(all)), nil
}

func (s memoryProducts) FindByID(ctx context.Context, id bson.ObjectID) (*models.Product, error) {
	m := s.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyProduct(p), nil
}

func (s memoryProducts) Insert(ctx context.Context, p *models.Product) error {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	p.ID = bson.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products[p.ID] = copyProduct(p)
	return nil
}

func (s memoryProducts) Update(ctx context.Context, id bson.ObjectID, u models.ProductUpdate) (*models.Product, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	u.Apply(p)
	p.UpdatedAt = m.now()
	return copyProduct(p), nil
}

func (s memoryProducts) Delete(ctx context.Context, id bson.ObjectID) error {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

type memorySettings struct{ m *MemoryStore }

func (s memorySettings) Get(ctx context.Context) (*models.Settings, error) {
	m := s.m
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return nil, ErrNotFound
	}
	cp := *m.settings
	return &cp, nil
}

func (s memorySettings) Save(ctx context.Context, whatsappNumber, telegramUsername string) (*models.Settings, error) {
	m := s.m
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.settings = &models.Settings{
		ID:               models.SettingsID,
		WhatsappNumber:   whatsappNumber,
		TelegramUsername: telegramUsername,
		UpdatedAt:        &now,
	}
	cp := *m.settings
	return &cp, nil
}
