package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"eventdesk/internal/models"
	"eventdesk/pkg/database"
)

type EventRepository interface {
	Insert(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	FindByTagsExcept(ctx context.Context, tags []string, exclude primitive.ObjectID) ([]models.Event, error)
	ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type eventRepository struct {
	db *database.Mongo
}

func NewEventRepository(db *database.Mongo) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := r.db.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection("events"), nil
}

func (r *eventRepository) Insert(ctx context.Context, event *models.Event) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	res, err := coll.InsertOne(ctx, event)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		event.ID = id
	}
	return nil
}

func (r *eventRepository) Update(ctx context.Context, event *models.Event) error {
	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	event.UpdatedAt = time.Now().UTC()

	res, err := coll.ReplaceOne(ctx, bson.M{"_id": event.ID}, event)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	var event models.Event
	if err := coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FindByTagsExcept returns all events sharing at least one of the given tags,
// excluding the given id. An empty tag list matches nothing.
func (r *eventRepository) FindByTagsExcept(ctx context.Context, tags []string, exclude primitive.ObjectID) ([]models.Event, error) {
	if len(tags) == 0 {
		return []models.Event{}, nil
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"tags": bson.M{"$in": tags},
		"_id":  bson.M{"$ne": exclude},
	}
	cur, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.Event{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return false, err
	}

	count, err := coll.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
