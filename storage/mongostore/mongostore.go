package mongostore

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"gaadi/pkg/logger"
	"gaadi/storage"
)

const (
	collProfiles = "vehicles"
	collDetails  = "vehicle_details"
	collAccounts = "accounts"
)

type Store struct {
	profiles storage.IProfileStorage
	details  storage.IDetailsStorage
	accounts storage.IAccountStorage
}

func New(db *mongo.Database, log logger.ILogger) *Store {
	return &Store{
		profiles: NewProfileRepo(db.Collection(collProfiles), log),
		details:  NewDetailsRepo(db.Collection(collDetails), log),
		accounts: NewAccountRepo(db.Collection(collAccounts), log),
	}
}

func (s *Store) Profiles() storage.IProfileStorage { return s.profiles }
func (s *Store) Details() storage.IDetailsStorage  { return s.details }
func (s *Store) Accounts() storage.IAccountStorage { return s.accounts }

// mapErr converts driver errors into the storage sentinels handlers
// dispatch on.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicate
	}
	return err
}
