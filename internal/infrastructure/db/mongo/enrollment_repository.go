package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
)

const collectionEnrollments = "enrollments"

// EnrollmentRepository implements ports.EnrollmentRepository using MongoDB.
type EnrollmentRepository struct {
	col *mongo.Collection
}

var _ ports.EnrollmentRepository = (*EnrollmentRepository)(nil)

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{col: db.Collection(collectionEnrollments)}
}

func enrollmentIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// one record per (student, course) whatever its status
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "course_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "course_id", Value: 1}}},
	}
}

// Create inserts the enrollment. A second record for the same pair fails
// inside the store, so concurrent attempts cannot both succeed.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEnrollment
		}
		return unavailable("insert enrollment", err)
	}
	return nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id string) (*domain.Enrollment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var e domain.Enrollment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, unavailable("find enrollment", err)
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID string) ([]*domain.Enrollment, error) {
	return r.find(ctx, bson.M{"course_id": courseID})
}

func (r *EnrollmentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Enrollment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "enrollment_date", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("find enrollments", err)
	}
	enrollments := []*domain.Enrollment{}
	if err := cur.All(ctx, &enrollments); err != nil {
		return nil, unavailable("decode enrollments", err)
	}
	return enrollments, nil
}

// UpdateStatus atomically sets status and updated_at and returns the
// document as stored after the update.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status domain.EnrollmentStatus, at time.Time) (*domain.Enrollment, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": string(status), "updated_at": at.UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e domain.Enrollment
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&e); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, unavailable("update enrollment", err)
	}
	return &e, nil
}

func (r *EnrollmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return unavailable("delete enrollment", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}
