package member

import (
	"context"

	"club-sync/internal/database"
	"club-sync/internal/spond"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MemberRepository interface {
	Create(ctx context.Context, m *Member) error
	Update(ctx context.Context, m *Member) error
	GetByID(ctx context.Context, id string) (*Member, error)
	GetBySpondID(ctx context.Context, spondID string) (*Member, error)
	List(ctx context.Context, filters Filters, limit, skip int64) ([]Member, int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ProfileLookup(ctx context.Context) (map[string]spond.RawRecord, error)
	EnsureIndexes(ctx context.Context) error
}

type MemberRepositoryImpl struct {
	collection *mongo.Collection
}

func NewMemberRepository(db *database.MongodbDB) MemberRepository {
	return &MemberRepositoryImpl{
		collection: db.DB.Collection("members"),
	}
}

func (r *MemberRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "spond_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "group_id", Value: 1}}},
		{Keys: bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}},
	})
	return err
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, m *Member) error {
	res, err := r.collection.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *MemberRepositoryImpl) Update(ctx context.Context, m *Member) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	return err
}

func (r *MemberRepositoryImpl) GetByID(ctx context.Context, id string) (*Member, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Callers pass either a Mongo id or a Spond id.
		return r.GetBySpondID(ctx, id)
	}

	var m Member
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepositoryImpl) GetBySpondID(ctx context.Context, spondID string) (*Member, error) {
	var m Member
	err := r.collection.FindOne(ctx, bson.M{"spond_id": spondID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MemberRepositoryImpl) List(ctx context.Context, filters Filters, limit, skip int64) ([]Member, int64, error) {
	filter := bson.M{}
	if filters.GroupID != "" {
		filter["group_id"] = filters.GroupID
	}
	if filters.SubgroupID != "" {
		filter["subgroup_uids"] = filters.SubgroupID
	}
	if filters.Search != "" {
		regex := bson.M{"$regex": filters.Search, "$options": "i"}
		filter["$or"] = []bson.M{
			{"first_name": regex},
			{"last_name": regex},
			{"email": regex},
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	members := []Member{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

// ProfileLookup loads every member's profile keyed by Spond id. Used to
// enrich synthesized attendance entries when the wire data carries bare ids.
func (r *MemberRepositoryImpl) ProfileLookup(ctx context.Context) (map[string]spond.RawRecord, error) {
	opts := options.Find().SetProjection(bson.M{"spond_id": 1, "profile": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	lookup := make(map[string]spond.RawRecord)
	for cursor.Next(ctx) {
		var m Member
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		if m.Profile != nil {
			lookup[m.SpondID] = m.Profile
		}
	}
	return lookup, cursor.Err()
}
