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

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username,omitempty"`
	Email        string    `bson:"email,omitempty"`
	Phone        string    `bson:"phone"`
	ProfileImage string    `bson:"profile_img,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
}

func (mu mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID,
		Username:     mu.Username,
		Email:        mu.Email,
		Phone:        mu.Phone,
		ProfileImage: mu.ProfileImage,
		PasswordHash: mu.PasswordHash,
		Role:         domain.Role(mu.Role),
		Status:       domain.UserStatus(mu.Status),
		CreatedAt:    mu.CreatedAt.UTC(),
		UpdatedAt:    mu.UpdatedAt.UTC(),
	}
}

func userIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
		// email is optional, so only documents that carry one take part.
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.D{{Key: "email", Value: bson.D{{Key: "$type", Value: "string"}}}},
			),
		},
		{Keys: bson.D{{Key: "username", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
}

// Create inserts a new user. The unique indexes turn a concurrent duplicate
// into domain.ErrDuplicateIdentity.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoUser(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateIdentity
		}
		return unavailable("insert user", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var mu mongoUser
	if err := r.col.FindOne(ctx, filter).Decode(&mu); err != nil {
		if isNoDocuments(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, unavailable("find user", err)
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByPhoneOrEmail(ctx context.Context, phone, email string) (*domain.User, error) {
	or := bson.A{bson.M{"phone": phone}}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	return r.findOne(ctx, bson.M{"$or": or})
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, nil)
}

// List returns one page ordered by filter.SortField with _id as tiebreaker.
func (r *UserRepository) List(ctx context.Context, filter ports.UserListFilter) ([]*domain.User, int64, error) {
	dir := -1
	if filter.Ascending {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortField, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(skip(filter.Page, filter.Limit)).
		SetLimit(int64(filter.Limit))

	users, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	countCtx, cancel := withTimeout(ctx)
	defer cancel()
	total, err := r.col.CountDocuments(countCtx, bson.M{})
	if err != nil {
		return nil, 0, unavailable("count users", err)
	}
	return users, total, nil
}

func (r *UserRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, unavailable("find users", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, unavailable("decode users", err)
	}

	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": user.ID}, toMongoUser(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateIdentity
		}
		return unavailable("update user", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return unavailable("delete user", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
