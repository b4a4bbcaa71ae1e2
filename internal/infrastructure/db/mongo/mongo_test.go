package mongo

import (
	"errors"
	"math"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Phanuelx/Education-App/internal/core/domain"
)

func TestUnavailableWrapsBothErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := unavailable("find user", cause)

	if !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected the driver error to be kept, got %v", err)
	}
}

func TestSkip(t *testing.T) {
	cases := []struct {
		page, limit int
		want        int64
	}{
		{1, 10, 0},
		{3, 10, 20},
		{0, 10, 0},
		{-2, 5, 0},
		{math.MaxInt32, 100, (math.MaxInt32 - 1) * 100},
		{2, -5, 0},
	}
	for _, tc := range cases {
		if got := skip(tc.page, tc.limit); got != tc.want {
			t.Fatalf("skip(%d, %d) = %d, want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}

func TestIsNoDocuments(t *testing.T) {
	if !isNoDocuments(mongo.ErrNoDocuments) {
		t.Fatal("expected ErrNoDocuments to match")
	}
	if isNoDocuments(errors.New("other")) {
		t.Fatal("unexpected match")
	}
}

func uniqueKeys(models []mongo.IndexModel) map[string]bool {
	out := make(map[string]bool)
	for _, m := range models {
		if m.Options == nil || m.Options.Unique == nil || !*m.Options.Unique {
			continue
		}
		keys := m.Keys.(bson.D)
		name := ""
		for i, k := range keys {
			if i > 0 {
				name += ","
			}
			name += k.Key
		}
		out[name] = true
	}
	return out
}

func TestUniqueIndexes(t *testing.T) {
	users := uniqueKeys(userIndexes())
	if !users["phone"] || !users["email"] {
		t.Fatalf("expected unique phone and email indexes, got %v", users)
	}
	enrollments := uniqueKeys(enrollmentIndexes())
	if !enrollments["user_id,course_id"] {
		t.Fatalf("expected unique (user_id, course_id) index, got %v", enrollments)
	}
	if len(uniqueKeys(classIndexes())) != 0 || len(uniqueKeys(courseIndexes())) != 0 {
		t.Fatal("classes and courses carry no unique secondary index")
	}
}

func TestMongoUserRoundTripKeepsHash(t *testing.T) {
	u := &domain.User{ID: "u1", Phone: "1", PasswordHash: "h", Role: domain.RoleTeacher, Status: domain.UserActive}
	got := toMongoUser(u).toDomain()
	if got.PasswordHash != "h" || got.Role != domain.RoleTeacher || got.Status != domain.UserActive {
		t.Fatalf("unexpected user: %+v", got)
	}
}
