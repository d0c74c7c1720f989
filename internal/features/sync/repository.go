package sync

import (
	"context"

	"club-sync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SyncRepository interface {
	Create(ctx context.Context, run *Run) error
	Update(ctx context.Context, run *Run) error
	List(ctx context.Context, kind Kind, limit int64) ([]Run, error)
	Latest(ctx context.Context, kind Kind) (*Run, error)
	EnsureIndexes(ctx context.Context) error
}

type SyncRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSyncRepository(db *database.MongodbDB) SyncRepository {
	return &SyncRepositoryImpl{
		collection: db.DB.Collection("sync_runs"),
	}
}

func (r *SyncRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sync_type", Value: 1}, {Key: "started_at", Value: -1}}},
	})
	return err
}

func (r *SyncRepositoryImpl) Create(ctx context.Context, run *Run) error {
	res, err := r.collection.InsertOne(ctx, run)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		run.ID = oid
	}
	return nil
}

func (r *SyncRepositoryImpl) Update(ctx context.Context, run *Run) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": run.ID}, run)
	return err
}

func (r *SyncRepositoryImpl) List(ctx context.Context, kind Kind, limit int64) ([]Run, error) {
	filter := bson.M{}
	if kind != "" {
		filter["sync_type"] = kind
	}
	if limit <= 0 {
		limit = 50
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	runs := []Run{}
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *SyncRepositoryImpl) Latest(ctx context.Context, kind Kind) (*Run, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "started_at", Value: -1}})

	var run Run
	err := r.collection.FindOne(ctx, bson.M{"sync_type": kind}, opts).Decode(&run)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}
