package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gaadi/models"
)

var (
	// ErrNotFound covers both a missing document and a document owned
	// by someone else; callers must not be able to tell them apart.
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
	ErrInvalidID = errors.New("invalid id")
)

type IStorage interface {
	Profiles() IProfileStorage
	Details() IDetailsStorage
	Accounts() IAccountStorage
}

type IProfileStorage interface {
	List(ctx context.Context) ([]models.Profile, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]models.Profile, error)
	GetByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error)
	// GetByKey resolves by vehicleId slug first, then by hex ObjectID.
	GetByKey(ctx context.Context, key string) (*models.Profile, error)
	// StatusByOwner is the gate's lookup: the stored status string, or
	// ErrNotFound when the identity has no profile yet.
	StatusByOwner(ctx context.Context, ownerEmail string) (string, error)
	Create(ctx context.Context, p *models.Profile) error
	Replace(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, id primitive.ObjectID, ch ProfileChanges) (*models.Profile, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByVehicleID(ctx context.Context, vehicleID string) error
}

// ProfileChanges is the allowed-field patch for PUT /api/profile/:id.
// Nil fields are left untouched. VehicleID is recomputed by the caller
// whenever VehicleNumber is set, keeping the slug in sync.
type ProfileChanges struct {
	FullName       *string
	DrivingLicense *string
	RoadPermit     *string
	NationalID     *string
	Gender         *string
	ContactNumber  *string
	VehicleNumber  *string
	VehicleID      *string
}

// Empty reports whether the patch would touch nothing.
func (ch ProfileChanges) Empty() bool {
	return ch.FullName == nil && ch.DrivingLicense == nil && ch.RoadPermit == nil &&
		ch.NationalID == nil && ch.Gender == nil && ch.ContactNumber == nil &&
		ch.VehicleNumber == nil && ch.VehicleID == nil
}

// IDetailsStorage holds the extended vehicle record. The mutation
// methods form the closed operation set of the partial update engine:
// each one is atomic and scoped by (document id, owner email), and
// returns ErrNotFound when that pair matches nothing.
type IDetailsStorage interface {
	GetByVehicleID(ctx context.Context, vehicleID string) (*models.ProfileDetails, error)
	Create(ctx context.Context, d *models.ProfileDetails) error
	DeleteByVehicleID(ctx context.Context, vehicleID string) error

	UpdateDriver(ctx context.Context, id primitive.ObjectID, owner string, driverID primitive.ObjectID, d models.Driver) (*models.ProfileDetails, error)
	AddDriver(ctx context.Context, id primitive.ObjectID, owner string, d models.Driver) (*models.ProfileDetails, error)
	RemoveDriver(ctx context.Context, id primitive.ObjectID, owner string, driverID primitive.ObjectID) (*models.ProfileDetails, error)
	AddRoute(ctx context.Context, id primitive.ObjectID, owner string, r models.Route) (*models.ProfileDetails, error)
	RemoveRoute(ctx context.Context, id primitive.ObjectID, owner string, routeID primitive.ObjectID) (*models.ProfileDetails, error)
	SetVehicleInfo(ctx context.Context, id primitive.ObjectID, owner string, v models.VehicleInfo) (*models.ProfileDetails, error)
	AddVehicleImage(ctx context.Context, id primitive.ObjectID, owner string, url string) (*models.ProfileDetails, error)
	RemoveVehicleImage(ctx context.Context, id primitive.ObjectID, owner string, url string) (*models.ProfileDetails, error)
}

type IAccountStorage interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, a *models.Account) error
	// UpsertGoogle gets or creates the account for a Google identity,
	// refreshing name/avatar/lastSeen on every login.
	UpsertGoogle(ctx context.Context, email, name, avatar, googleID string) (*models.Account, error)
	TouchLastSeen(ctx context.Context, email string) error
}
