package group

import (
	"context"

	"club-sync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GroupRepository interface {
	Create(ctx context.Context, g *Group) error
	Update(ctx context.Context, g *Group) error
	GetByID(ctx context.Context, id string) (*Group, error)
	GetBySpondID(ctx context.Context, spondID string) (*Group, error)
	List(ctx context.Context, search string, limit, skip int64) ([]Group, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type GroupRepositoryImpl struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *database.MongodbDB) GroupRepository {
	return &GroupRepositoryImpl{
		collection: db.DB.Collection("groups"),
	}
}

func (r *GroupRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "spond_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}

func (r *GroupRepositoryImpl) Create(ctx context.Context, g *Group) error {
	res, err := r.collection.InsertOne(ctx, g)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid
	}
	return nil
}

func (r *GroupRepositoryImpl) Update(ctx context.Context, g *Group) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	return err
}

func (r *GroupRepositoryImpl) GetByID(ctx context.Context, id string) (*Group, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Callers pass either a Mongo id or a Spond id.
		return r.GetBySpondID(ctx, id)
	}

	var g Group
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepositoryImpl) GetBySpondID(ctx context.Context, spondID string) (*Group, error) {
	var g Group
	err := r.collection.FindOne(ctx, bson.M{"spond_id": spondID}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *GroupRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *GroupRepositoryImpl) List(ctx context.Context, search string, limit, skip int64) ([]Group, int64, error) {
	filter := bson.M{}
	if search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	groups := []Group{}
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}
