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

type detailsRepo struct {
	col *mongo.Collection
	log logger.ILogger
}

func NewDetailsRepo(col *mongo.Collection, log logger.ILogger) storage.IDetailsStorage {
	return &detailsRepo{col: col, log: log}
}

func (r *detailsRepo) GetByVehicleID(ctx context.Context, vehicleID string) (*models.ProfileDetails, error) {
	var d models.ProfileDetails
	err := r.col.FindOne(ctx, bson.M{"vehicleId": vehicleID}).Decode(&d)
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (r *detailsRepo) Create(ctx context.Context, d *models.ProfileDetails) error {
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

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			r.log.Error("failed to create vehicle details", logger.Error(err))
		}
		return mapErr(err)
	}
	return nil
}

func (r *detailsRepo) DeleteByVehicleID(ctx context.Context, vehicleID string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"vehicleId": vehicleID})
	if err != nil {
		r.log.Error("failed to delete vehicle details", logger.Error(err))
	}
	return err
}

// ownedFilter scopes every mutation to (document id, owner email).
// A mismatch on either looks exactly like a missing document.
func ownedFilter(id primitive.ObjectID, owner string) bson.M {
	return bson.M{"_id": id, "ownerEmail": models.NormalizeEmail(owner)}
}

// apply runs one atomic owner-scoped update and returns the document
// as it is afterwards.
func (r *detailsRepo) apply(ctx context.Context, filter, update bson.M) (*models.ProfileDetails, error) {
	set, ok := update["$set"].(bson.M)
	if !ok {
		set = bson.M{}
		update["$set"] = set
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d models.ProfileDetails
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&d)
	if err != nil {
		return nil, mapErr(err)
	}
	return &d, nil
}

func (r *detailsRepo) UpdateDriver(ctx context.Context, id primitive.ObjectID, owner string, driverID primitive.ObjectID, d models.Driver) (*models.ProfileDetails, error) {
	d.ID = driverID
	filter := ownedFilter(id, owner)
	filter["drivers._id"] = driverID
	return r.apply(ctx, filter, bson.M{"$set": bson.M{"drivers.$": d}})
}

func (r *detailsRepo) AddDriver(ctx context.Context, id primitive.ObjectID, owner string, d models.Driver) (*models.ProfileDetails, error) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$push": bson.M{"drivers": d}})
}

func (r *detailsRepo) RemoveDriver(ctx context.Context, id primitive.ObjectID, owner string, driverID primitive.ObjectID) (*models.ProfileDetails, error) {
	// Pulling an absent id still matches the document: no-op success.
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$pull": bson.M{"drivers": bson.M{"_id": driverID}}})
}

func (r *detailsRepo) AddRoute(ctx context.Context, id primitive.ObjectID, owner string, route models.Route) (*models.ProfileDetails, error) {
	if route.ID.IsZero() {
		route.ID = primitive.NewObjectID()
	}
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$push": bson.M{"routes": route}})
}

func (r *detailsRepo) RemoveRoute(ctx context.Context, id primitive.ObjectID, owner string, routeID primitive.ObjectID) (*models.ProfileDetails, error) {
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$pull": bson.M{"routes": bson.M{"_id": routeID}}})
}

func (r *detailsRepo) SetVehicleInfo(ctx context.Context, id primitive.ObjectID, owner string, v models.VehicleInfo) (*models.ProfileDetails, error) {
	// Wholesale replace of the sub-object, not a merge.
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$set": bson.M{"vehicle": v}})
}

func (r *detailsRepo) AddVehicleImage(ctx context.Context, id primitive.ObjectID, owner string, url string) (*models.ProfileDetails, error) {
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$push": bson.M{"vehicle.images": url}})
}

func (r *detailsRepo) RemoveVehicleImage(ctx context.Context, id primitive.ObjectID, owner string, url string) (*models.ProfileDetails, error) {
	return r.apply(ctx, ownedFilter(id, owner), bson.M{"$pull": bson.M{"vehicle.images": url}})
}
