// Package memstore keeps users, plants and orders in process memory with the
// same method set as the Mongo repositories. It backs `serve --in-memory`
// and the service and controller tests.
package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/plantnet/app/models"
	"github.com/shashiranjanraj/plantnet/app/repositories"
	"github.com/shashiranjanraj/plantnet/pkg/collection"
)

// Store holds all three collections behind one lock, in insertion order.
type Store struct {
	mu     sync.Mutex
	users  []models.User
	plants []models.Plant
	orders []models.Order
}

func New() *Store { return &Store{} }

// Snapshot is a deep copy of every collection.
type Snapshot struct {
	Users  []models.User
	Plants []models.Plant
	Orders []models.Order
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Users:  append([]models.User(nil), s.users...),
		Plants: append([]models.Plant(nil), s.plants...),
		Orders: append([]models.Order(nil), s.orders...),
	}
}

func (s *Store) Users() *Users   { return &Users{s} }
func (s *Store) Plants() *Plants { return &Plants{s} }
func (s *Store) Orders() *Orders { return &Orders{s} }

// ─── Users ────────────────────────────────────────────────────────────────────

type Users struct{ s *Store }

func (u *Users) index(email string) int {
	for i := range u.s.users {
		if u.s.users[i].Email == email {
			return i
		}
	}
	return -1
}

func (u *Users) FindByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if i := u.index(email); i >= 0 {
		return u.s.users[i], nil
	}
	return models.User{}, repositories.ErrNotFound
}

func (u *Users) FirstOrCreate(_ context.Context, user models.User) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if i := u.index(user.Email); i >= 0 {
		return u.s.users[i], nil
	}
	user.ID = primitive.NewObjectID()
	u.s.users = append(u.s.users, user)
	return user, nil
}

func (u *Users) AllExcept(_ context.Context, email string) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	return collection.Filter(u.s.users, func(user models.User) bool { return user.Email != email }), nil
}

func (u *Users) MarkRequested(_ context.Context, email string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	i := u.index(email)
	if i < 0 || u.s.users[i].Status == models.UserStatusRequested {
		return false, nil
	}
	u.s.users[i].Status = models.UserStatusRequested
	return true, nil
}

func (u *Users) SetRole(_ context.Context, email, role string) (bool, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	i := u.index(email)
	if i < 0 {
		return false, nil
	}
	u.s.users[i].Role = role
	u.s.users[i].Status = models.UserStatusVerified
	return true, nil
}

// ─── Plants ───────────────────────────────────────────────────────────────────

type Plants struct{ s *Store }

func (p *Plants) index(id primitive.ObjectID) int {
	for i := range p.s.plants {
		if p.s.plants[i].ID == id {
			return i
		}
	}
	return -1
}

func (p *Plants) Create(_ context.Context, plant *models.Plant) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	plant.ID = primitive.NewObjectID()
	p.s.plants = append(p.s.plants, *plant)
	return nil
}

func (p *Plants) All(context.Context) ([]models.Plant, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return append([]models.Plant{}, p.s.plants...), nil
}

func (p *Plants) FindByID(_ context.Context, id primitive.ObjectID) (models.Plant, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if i := p.index(id); i >= 0 {
		return p.s.plants[i], nil
	}
	return models.Plant{}, repositories.ErrNotFound
}

func (p *Plants) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Plant, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	want := collection.KeyBy(ids, func(id primitive.ObjectID) primitive.ObjectID { return id })
	return collection.Filter(p.s.plants, func(plant models.Plant) bool {
		_, ok := want[plant.ID]
		return ok
	}), nil
}

func (p *Plants) Update(_ context.Context, id primitive.ObjectID, in models.Plant) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return false, nil
	}
	cur := &p.s.plants[i]
	cur.Name, cur.Category, cur.Description = in.Name, in.Category, in.Description
	cur.Price, cur.ImageURL = in.Price, in.ImageURL
	return true, nil
}

func (p *Plants) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return false, nil
	}
	p.s.plants = append(p.s.plants[:i:i], p.s.plants[i+1:]...)
	return true, nil
}

func (p *Plants) Increment(_ context.Context, id primitive.ObjectID, delta int) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	i := p.index(id)
	if i < 0 {
		return false, nil
	}
	p.s.plants[i].Quantity += delta
	return true, nil
}

func (p *Plants) Decrement(_ context.Context, id primitive.ObjectID, delta int) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	i := p.index(id)
	if i < 0 || p.s.plants[i].Quantity < delta {
		return false, nil
	}
	p.s.plants[i].Quantity -= delta
	return true, nil
}

// ─── Orders ───────────────────────────────────────────────────────────────────

type Orders struct{ s *Store }

func (o *Orders) index(id primitive.ObjectID) int {
	for i := range o.s.orders {
		if o.s.orders[i].ID == id {
			return i
		}
	}
	return -1
}

func (o *Orders) Create(_ context.Context, order *models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	order.ID = primitive.NewObjectID()
	o.s.orders = append(o.s.orders, *order)
	return nil
}

func (o *Orders) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	if i := o.index(id); i >= 0 {
		return o.s.orders[i], nil
	}
	return models.Order{}, repositories.ErrNotFound
}

func (o *Orders) ByCustomer(_ context.Context, email string) ([]models.Order, error) {
	return o.filter(func(ord models.Order) bool { return ord.Customer.Email == email }), nil
}

func (o *Orders) BySeller(_ context.Context, email string) ([]models.Order, error) {
	return o.filter(func(ord models.Order) bool { return ord.Seller == email }), nil
}

func (o *Orders) filter(keep func(models.Order) bool) []models.Order {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	return collection.Filter(o.s.orders, keep)
}

func (o *Orders) DeleteIfStatus(_ context.Context, id primitive.ObjectID, status string) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	i := o.index(id)
	if i < 0 || o.s.orders[i].Status != status {
		return false, nil
	}
	o.s.orders = append(o.s.orders[:i:i], o.s.orders[i+1:]...)
	return true, nil
}

func (o *Orders) SwapStatus(_ context.Context, id primitive.ObjectID, from, to string) (bool, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()
	i := o.index(id)
	if i < 0 || o.s.orders[i].Status != from {
		return false, nil
	}
	o.s.orders[i].Status = to
	return true, nil
}

// Insert helpers for fixtures; they bypass service rules.

func (s *Store) PutUser(u models.User) models.User {
	out, _ := s.Users().FirstOrCreate(context.Background(), u)
	return out
}

func (s *Store) PutPlant(p models.Plant) models.Plant {
	_ = s.Plants().Create(context.Background(), &p)
	return p
}

func (s *Store) PutOrder(o models.Order) models.Order {
	_ = s.Orders().Create(context.Background(), &o)
	return o
}
