package users

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/greeter/internal/common"
	"github.com/dmitrijs2005/greeter/internal/server/models"
)

// InMemoryRepository keeps users in a map guarded by a single mutex. The id
// counter lives under the same lock so allocation and storage never race.
type InMemoryRepository struct {
	mu     sync.Mutex
	lastID int64
	users  map[int64]models.User
	order  []int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[int64]models.User)}
}

func (r *InMemoryRepository) NextID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	return r.lastID, nil
}

// FindAll returns users in insertion order.
func (r *InMemoryRepository) FindAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]models.User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.users[id])
	}
	return result, nil
}

func (r *InMemoryRepository) Add(ctx context.Context, user models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return models.User{}, common.ErrorAlreadyExists
	}

	r.users[user.ID] = user
	r.order = append(r.order, user.ID)

	// ids added from outside the allocator must not be handed out again
	if user.ID > r.lastID {
		r.lastID = user.ID
	}

	return user, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, id int64, greeting string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return models.User{}, common.ErrorNotFound
	}

	user.Greeting = greeting
	r.users[id] = user

	return user, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}

	delete(r.users, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}

	return true, nil
}
