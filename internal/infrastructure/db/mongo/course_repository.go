package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

const collectionCourses = "courses"

// CourseRepository implements ports.CourseRepository using MongoDB.
type CourseRepository struct {
	col *mongo.Collection
}

var _ ports.CourseRepository = (*CourseRepository)(nil)

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

func courseIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "publication_status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return unavailable("insert course", err)
	}
	return nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var c domain.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, unavailable("find course", err)
	}
	return &c, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Course, error) {
	if len(ids) == 0 {
		return []*domain.Course{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// List returns one page, newest first.
func (r *CourseRepository) List(ctx context.Context, f ports.CourseListFilter) ([]*domain.Course, int64, error) {
	filter := bson.M{}
	if f.PublishedOnly {
		filter["publication_status"] = string(domain.PublicationPublished)
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(skip(f.Page, f.Limit)).
		SetLimit(int64(f.Limit))

	courses, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}

	countCtx, cancel := withTimeout(ctx)
	defer cancel()
	total, err := r.col.CountDocuments(countCtx, filter)
	if err != nil {
		return nil, 0, unavailable("count courses", err)
	}
	return courses, total, nil
}

func (r *CourseRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Course, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("find courses", err)
	}
	courses := []*domain.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, unavailable("decode courses", err)
	}
	return courses, nil
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return unavailable("update course", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// Delete removes the course document only.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return unavailable("delete course", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
