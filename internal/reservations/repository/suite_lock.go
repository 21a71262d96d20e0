package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"suitestay/pkg/config"
)

// SuiteLock is an advisory lock held while one booking request checks
// and inserts a reservation for a suite. The unique _id makes the
// second concurrent locker fail with a duplicate-key error, which the
// service reports as a conflict.
type SuiteLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

type SuiteLockRepository interface {
	Create(ctx context.Context, lock *SuiteLock) (*SuiteLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoSuiteLockRepository struct {
	collection *mongo.Collection
}

func NewSuiteLockRepository(cfg *config.Config) SuiteLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSuiteLockRepository{
		collection: db.Collection("Suite_locks"),
	}
}

// Create returns the driver's duplicate-key error when the lock is
// already held. ExpiresAt is honoured by a TTL index so a crashed
// request cannot wedge the suite.
func (r *mongoSuiteLockRepository) Create(ctx context.Context, lock *SuiteLock) (*SuiteLock, error) {
	lock.CreatedAt = time.Now()

	if _, err := r.collection.InsertOne(ctx, lock); err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoSuiteLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
