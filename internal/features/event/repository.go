package event

import (
	"context"
	"errors"
	"time"

	"club-sync/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository interface {
	Create(ctx context.Context, ev *Event) error
	Update(ctx context.Context, ev *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySpondID(ctx context.Context, spondID string) (*Event, error)
	List(ctx context.Context, filters Filters, limit, skip int64) ([]Event, int64, error)
	ListAll(ctx context.Context) ([]Event, error)
	ListBetween(ctx context.Context, start, end time.Time) ([]Event, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*Stats, error)
	EnsureIndexes(ctx context.Context) error
}

type EventRepositoryImpl struct {
	collection *mongo.Collection
}

func NewEventRepository(db *database.MongodbDB) EventRepository {
	return &EventRepositoryImpl{
		collection: db.DB.Collection("events"),
	}
}

func (r *EventRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "spond_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "start_time", Value: -1}}},
		{Keys: bson.D{{Key: "sync_status", Value: 1}}},
	})
	return err
}

func (r *EventRepositoryImpl) Create(ctx context.Context, ev *Event) error {
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, ev)
	return err
}

func (r *EventRepositoryImpl) Update(ctx context.Context, ev *Event) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": ev.ID}, ev)
	return err
}

func (r *EventRepositoryImpl) GetByID(ctx context.Context, id string) (*Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var ev Event
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *EventRepositoryImpl) GetBySpondID(ctx context.Context, spondID string) (*Event, error) {
	var ev Event
	err := r.collection.FindOne(ctx, bson.M{"spond_id": spondID}).Decode(&ev)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func buildFilter(filters Filters) bson.M {
	filter := bson.M{}

	if filters.EventType != "" {
		filter["event_type"] = filters.EventType
	}
	if !filters.IncludeCancelled {
		filter["cancelled"] = false
	}
	if !filters.IncludeHidden {
		filter["hidden"] = false
	}
	if filters.SyncStatus != "" {
		filter["sync_status"] = filters.SyncStatus
	}

	timeRange := bson.M{}
	if filters.StartDate != nil {
		timeRange["$gte"] = *filters.StartDate
	}
	if filters.EndDate != nil {
		timeRange["$lte"] = *filters.EndDate
	}
	if len(timeRange) > 0 {
		filter["start_time"] = timeRange
	}

	if filters.Search != "" {
		pattern := primitive.Regex{Pattern: filters.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"heading": bson.M{"$regex": pattern}},
			bson.M{"description": bson.M{"$regex": pattern}},
		}
	}

	return filter
}

func (r *EventRepositoryImpl) List(ctx context.Context, filters Filters, limit, skip int64) ([]Event, int64, error) {
	filter := buildFilter(filters)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: -1}}).
		SetLimit(limit).
		SetSkip(skip)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventRepositoryImpl) ListAll(ctx context.Context) ([]Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) ListBetween(ctx context.Context, start, end time.Time) ([]Event, error) {
	filter := bson.M{"start_time": bson.M{"$gte": start, "$lte": end}}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *EventRepositoryImpl) Stats(ctx context.Context) (*Stats, error) {
	now := time.Now().UTC()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	upcoming, err := r.collection.CountDocuments(ctx, bson.M{"start_time": bson.M{"$gte": now}})
	if err != nil {
		return nil, err
	}
	cancelled, err := r.collection.CountDocuments(ctx, bson.M{"cancelled": true})
	if err != nil {
		return nil, err
	}

	cursor, err := r.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$event_type", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	byType := map[string]int64{}
	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		byType[row.ID] = row.Count
	}

	return &Stats{
		TotalEvents:     total,
		UpcomingEvents:  upcoming,
		PastEvents:      total - upcoming,
		CancelledEvents: cancelled,
		EventsByType:    byType,
	}, nil
}
