package mongostore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gaadi/models"
	"gaadi/pkg/logger"
	"gaadi/storage"
)

type profileRepo struct {
	col *mongo.Collection
	log logger.ILogger
}

func NewProfileRepo(col *mongo.Collection, log logger.ILogger) storage.IProfileStorage {
	return &profileRepo{col: col, log: log}
}

func (r *profileRepo) List(ctx context.Context) ([]models.Profile, error) {
	return r.list(ctx, bson.M{})
}

func (r *profileRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]models.Profile, error) {
	return r.list(ctx, bson.M{"ownerEmail": models.NormalizeEmail(ownerEmail)})
}

func (r *profileRepo) list(ctx context.Context, filter bson.M) ([]models.Profile, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		r.log.Error("failed to list profiles", logger.Error(err))
		return nil, err
	}
	defer cur.Close(ctx)

	profiles := []models.Profile{}
	if err := cur.All(ctx, &profiles); err != nil {
		r.log.Error("failed to decode profiles", logger.Error(err))
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepo) GetByOwner(ctx context.Context, ownerEmail string) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"ownerEmail": models.NormalizeEmail(ownerEmail)}).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *profileRepo) GetByKey(ctx context.Context, key string) (*models.Profile, error) {
	var p models.Profile
	err := r.col.FindOne(ctx, bson.M{"vehicleId": key}).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Fall back to the raw document id.
	oid, oidErr := primitive.ObjectIDFromHex(key)
	if oidErr != nil {
		return nil, storage.ErrNotFound
	}
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *profileRepo) StatusByOwner(ctx context.Context, ownerEmail string) (string, error) {
	var doc struct {
		Status string `bson:"status"`
	}
	opts := options.FindOne().SetProjection(bson.M{"status": 1})
	err := r.col.FindOne(ctx, bson.M{"ownerEmail": models.NormalizeEmail(ownerEmail)}, opts).Decode(&doc)
	if err != nil {
		return "", mapErr(err)
	}
	return doc.Status, nil
}

func (r *profileRepo) Create(ctx context.Context, p *models.Profile) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			r.log.Error("failed to create profile", logger.Error(err))
		}
		return mapErr(err)
	}
	return nil
}

func (r *profileRepo) Replace(ctx context.Context, p *models.Profile) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		r.log.Error("failed to replace profile", logger.Error(err))
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *profileRepo) Update(ctx context.Context, id primitive.ObjectID, ch storage.ProfileChanges) (*models.Profile, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if ch.FullName != nil {
		set["fullName"] = *ch.FullName
	}
	if ch.DrivingLicense != nil {
		set["drivingLicense"] = *ch.DrivingLicense
	}
	if ch.RoadPermit != nil {
		set["roadPermit"] = *ch.RoadPermit
	}
	if ch.NationalID != nil {
		set["nationalId"] = *ch.NationalID
	}
	if ch.Gender != nil {
		set["gender"] = *ch.Gender
	}
	if ch.ContactNumber != nil {
		set["contactNumber"] = *ch.ContactNumber
	}
	if ch.VehicleNumber != nil {
		set["vehicleNumber"] = *ch.VehicleNumber
	}
	if ch.VehicleID != nil {
		set["vehicleId"] = *ch.VehicleID
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p models.Profile
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (r *profileRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Error("failed to delete profile", logger.Error(err))
		return err
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *profileRepo) DeleteByVehicleID(ctx context.Context, vehicleID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"vehicleId": vehicleID})
	if err != nil {
		r.log.Error("failed to delete profile by vehicleId", logger.Error(err))
	}
	return err
}
