// Package memstore is an in-memory implementation of the storage
// interfaces, used by handler and middleware tests in place of mongo.
// Semantics mirror mongostore: owner-scoped mutations, duplicate-key
// errors on the unique fields, indistinguishable not-found.
package memstore

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaadi/models"
	"gaadi/storage"
)

type Store struct {
	mu       sync.Mutex
	profiles map[primitive.ObjectID]models.Profile
	details  map[primitive.ObjectID]models.ProfileDetails
	accounts map[string]models.Account

	// StatusErr, when set, makes StatusByOwner fail; lets gate tests
	// exercise the fail-open path.
	StatusErr error
}

func New() *Store {
	return &Store{
		profiles: map[primitive.ObjectID]models.Profile{},
		details:  map[primitive.ObjectID]models.ProfileDetails{},
		accounts: map[string]models.Account{},
	}
}

func (s *Store) Profiles() storage.IProfileStorage { return (*profileMem)(s) }
func (s *Store) Details() storage.IDetailsStorage  { return (*detailsMem)(s) }
func (s *Store) Accounts() storage.IAccountStorage { return (*accountMem)(s) }

type profileMem Store

func (m *profileMem) List(ctx context.Context) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Profile{}
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

func (m *profileMem) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Profile, error) {
	owner := models.NormalizeEmail(ownerEmail)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Profile{}
	for _, p := range m.profiles {
		if p.OwnerEmail == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *profileMem) GetByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error) {
	owner := models.NormalizeEmail(ownerEmail)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.OwnerEmail == owner {
			cp := p
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *profileMem) GetByKey(ctx context.Context, key string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.VehicleID == key {
			cp := p
			return &cp, nil
		}
	}
	if oid, err := primitive.ObjectIDFromHex(key); err == nil {
		if p, ok := m.profiles[oid]; ok {
			return &p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *profileMem) StatusByOwner(ctx context.Context, ownerEmail string) (string, error) {
	if m.StatusErr != nil {
		return "", m.StatusErr
	}
	p, err := m.GetByOwner(ctx, ownerEmail)
	if err != nil {
		return "", err
	}
	return p.Status, nil
}

func (m *profileMem) Create(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.profiles {
		if existing.OwnerEmail == p.OwnerEmail || existing.VehicleID == p.VehicleID {
			return storage.ErrDuplicate
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.profiles[p.ID] = *p
	return nil
}

func (m *profileMem) Replace(ctx context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ID]; !ok {
		return storage.ErrNotFound
	}
	p.UpdatedAt = time.Now().UTC()
	m.profiles[p.ID] = *p
	return nil
}

func (m *profileMem) Update(ctx context.Context, id primitive.ObjectID, ch storage.ProfileChanges) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if ch.FullName != nil {
		p.FullName = *ch.FullName
	}
	if ch.DrivingLicense != nil {
		p.DrivingLicense = *ch.DrivingLicense
	}
	if ch.RoadPermit != nil {
		p.RoadPermit = *ch.RoadPermit
	}
	if ch.NationalID != nil {
		p.NationalID = *ch.NationalID
	}
	if ch.Gender != nil {
		p.Gender = *ch.Gender
	}
	if ch.ContactNumber != nil {
		p.ContactNumber = *ch.ContactNumber
	}
	if ch.VehicleNumber != nil {
		p.VehicleNumber = *ch.VehicleNumber
	}
	if ch.VehicleID != nil {
		p.VehicleID = *ch.VehicleID
	}
	p.UpdatedAt = time.Now().UTC()
	m.profiles[id] = p
	return &p, nil
}

func (m *profileMem) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.profiles, id)
	return nil
}

func (m *profileMem) DeleteByVehicleID(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.profiles {
		if p.VehicleID == vehicleID {
			delete(m.profiles, id)
			return nil
		}
	}
	return nil
}

type detailsMem Store

func (m *detailsMem) GetByVehicleID(ctx context.Context, vehicleID string) (*models.ProfileDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.details {
		if d.VehicleID == vehicleID {
			cp := cloneDetails(d)
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *detailsMem) Create(ctx context.Context, d *models.ProfileDetails) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.details {
		if existing.VehicleID == d.VehicleID {
			return storage.ErrDuplicate
		}
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	for i := range d.Routes {
		if d.Routes[i].ID.IsZero() {
			d.Routes[i].ID = primitive.NewObjectID()
		}
	}
	for i := range d.Drivers {
		if d.Drivers[i].ID.IsZero() {
			d.Drivers[i].ID = primitive.NewObjectID()
		}
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	m.details[d.ID] = cloneDetails(*d)
	return nil
}

func (m *detailsMem) DeleteByVehicleID(ctx context.Context, vehicleID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, d := range m.details {
		if d.VehicleID == vehicleID {
			delete(m.details, id)
			return nil
		}
	}
	return nil
}

// mutate runs fn against the owned document under the lock and stores
// the result. fn returning false means "target sub-record not found".
func (m *detailsMem) mutate(id primitive.ObjectID, owner string, fn func(*models.ProfileDetails) bool) (*models.ProfileDetails, error) {
	owner = models.NormalizeEmail(owner)
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.details[id]
	if !ok || d.OwnerEmail != owner {
		return nil, storage.ErrNotFound
	}
	cp := cloneDetails(d)
	if !fn(&cp) {
		return nil, storage.ErrNotFound
	}
	cp.UpdatedAt = time.Now().UTC()
	m.details[id] = cloneDetails(cp)
	return &cp, nil
}

func (m *detailsMem) UpdateDriver(ctx context.Context, id primitive.ObjectID, owner string, driverID primitive.ObjectID, drv models.Driver) (*models.ProfileDetails, error) {
	drv.ID = driverID
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		for i := range d.Drivers {
			if d.Drivers[i].ID == driverID {
				d.Drivers[i] = drv
				return true
			}
		}
		return false
	})
}

func (m *detailsMem) AddDriver(ctx context.Context, id primitive.ObjectID, owner string, drv models.Driver) (*models.ProfileDetails, error) {
	if drv.ID.IsZero() {
		drv.ID = primitive.NewObjectID()
	}
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		d.Drivers = append(d.Drivers, drv)
		return true
	})
}

func (m *detailsMem) RemoveDriver(ctx context.Context, id primitive.ObjectID, owner string, driverID primitive.ObjectID) (*models.ProfileDetails, error) {
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		kept := d.Drivers[:0]
		for _, drv := range d.Drivers {
			if drv.ID != driverID {
				kept = append(kept, drv)
			}
		}
		d.Drivers = kept
		return true
	})
}

func (m *detailsMem) AddRoute(ctx context.Context, id primitive.ObjectID, owner string, route models.Route) (*models.ProfileDetails, error) {
	if route.ID.IsZero() {
		route.ID = primitive.NewObjectID()
	}
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		d.Routes = append(d.Routes, route)
		return true
	})
}

func (m *detailsMem) RemoveRoute(ctx context.Context, id primitive.ObjectID, owner string, routeID primitive.ObjectID) (*models.ProfileDetails, error) {
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		kept := d.Routes[:0]
		for _, r := range d.Routes {
			if r.ID != routeID {
				kept = append(kept, r)
			}
		}
		d.Routes = kept
		return true
	})
}

func (m *detailsMem) SetVehicleInfo(ctx context.Context, id primitive.ObjectID, owner string, v models.VehicleInfo) (*models.ProfileDetails, error) {
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		d.Vehicle = v
		return true
	})
}

func (m *detailsMem) AddVehicleImage(ctx context.Context, id primitive.ObjectID, owner string, url string) (*models.ProfileDetails, error) {
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		d.Vehicle.Images = append(d.Vehicle.Images, url)
		return true
	})
}

func (m *detailsMem) RemoveVehicleImage(ctx context.Context, id primitive.ObjectID, owner string, url string) (*models.ProfileDetails, error) {
	return m.mutate(id, owner, func(d *models.ProfileDetails) bool {
		kept := d.Vehicle.Images[:0]
		for _, u := range d.Vehicle.Images {
			if u != url {
				kept = append(kept, u)
			}
		}
		d.Vehicle.Images = kept
		return true
	})
}

func cloneDetails(d models.ProfileDetails) models.ProfileDetails {
	cp := d
	cp.Routes = append([]models.Route(nil), d.Routes...)
	cp.Drivers = append([]models.Driver(nil), d.Drivers...)
	cp.Vehicle.Images = append([]string(nil), d.Vehicle.Images...)
	return cp
}

type accountMem Store

func (m *accountMem) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[models.NormalizeEmail(email)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &a, nil
}

func (m *accountMem) Create(ctx context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := models.NormalizeEmail(a.Email)
	if _, ok := m.accounts[email]; ok {
		return storage.ErrDuplicate
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Email = email
	m.accounts[email] = *a
	return nil
}

func (m *accountMem) UpsertGoogle(ctx context.Context, email, name, avatar, googleID string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := models.NormalizeEmail(email)
	a, ok := m.accounts[key]
	if !ok {
		a = models.Account{
			ID:           primitive.NewObjectID(),
			Email:        key,
			AuthProvider: "google",
			CreatedAt:    time.Now().Unix(),
		}
	}
	a.Name = name
	a.Avatar = avatar
	a.GoogleID = &googleID
	a.LastSeen = time.Now().Unix()
	m.accounts[key] = a
	return &a, nil
}

func (m *accountMem) TouchLastSeen(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[models.NormalizeEmail(email)]; ok {
		a.LastSeen = time.Now().Unix()
		m.accounts[models.NormalizeEmail(email)] = a
	}
	return nil
}
