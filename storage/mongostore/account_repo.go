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

type accountRepo struct {
	col *mongo.Collection
	log logger.ILogger
}

func NewAccountRepo(col *mongo.Collection, log logger.ILogger) storage.IAccountStorage {
	return &accountRepo{col: col, log: log}
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := r.col.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)}).Decode(&a)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *accountRepo) Create(ctx context.Context, a *models.Account) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.Email = models.NormalizeEmail(a.Email)
	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			r.log.Error("failed to create account", logger.Error(err))
		}
		return mapErr(err)
	}
	return nil
}

func (r *accountRepo) UpsertGoogle(ctx context.Context, email, name, avatar, googleID string) (*models.Account, error) {
	now := time.Now().Unix()
	email = models.NormalizeEmail(email)

	update := bson.M{
		"$set": bson.M{
			"name":     name,
			"avatar":   avatar,
			"googleId": googleID,
			"lastSeen": now,
		},
		"$setOnInsert": bson.M{
			"_id":          primitive.NewObjectID(),
			"email":        email,
			"authProvider": "google",
			"createdAt":    now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var a models.Account
	err := r.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&a)
	if err != nil {
		r.log.Error("failed to upsert google account", logger.Error(err))
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *accountRepo) TouchLastSeen(ctx context.Context, email string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": models.NormalizeEmail(email)},
		bson.M{"$set": bson.M{"lastSeen": time.Now().Unix()}},
	)
	if err != nil {
		r.log.Error("failed to touch lastSeen", logger.Error(err))
	}
	return err
}
