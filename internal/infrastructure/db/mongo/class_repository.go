package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

const collectionClasses = "classes"

// ClassRepository implements ports.ClassRepository using MongoDB.
type ClassRepository struct {
	col *mongo.Collection
}

var _ ports.ClassRepository = (*ClassRepository)(nil)

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{col: db.Collection(collectionClasses)}
}

func classIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
		{Keys: bson.D{{Key: "instructor_id", Value: 1}}},
		{Keys: bson.D{{Key: "scheduled_date_time", Value: 1}}},
	}
}

func (r *ClassRepository) Create(ctx context.Context, c *domain.Class) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return unavailable("insert class", err)
	}
	return nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c domain.Class
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrClassNotFound
		}
		return nil, unavailable("find class", err)
	}
	return &c, nil
}

// List returns sessions ordered by start time. An empty instructorID
// returns every session.
func (r *ClassRepository) List(ctx context.Context, instructorID string) ([]*domain.Class, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if instructorID != "" {
		filter["instructor_id"] = instructorID
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date_time", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("find classes", err)
	}
	classes := []*domain.Class{}
	if err := cur.All(ctx, &classes); err != nil {
		return nil, unavailable("decode classes", err)
	}
	return classes, nil
}

func (r *ClassRepository) Update(ctx context.Context, c *domain.Class) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return unavailable("update class", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return unavailable("delete class", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}
