package ports

import (
	"math"
	"testing"
)

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{"defaults", 0, 0, 1, DefaultPageSize},
		{"negative", -3, -1, 1, DefaultPageSize},
		{"size capped", 2, 500, 2, MaxPageSize},
		{"page capped", math.MaxInt, 100, MaxPage, 100},
		{"kept", 4, 25, 4, 25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := NormalizePage(tc.page, tc.size)
			if page != tc.wantPage || size != tc.wantSize {
				t.Fatalf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tc.page, tc.size, page, size, tc.wantPage, tc.wantSize)
			}
		})
	}
}

func TestNewPageInfo(t *testing.T) {
	info := NewPageInfo(21, 2, 10)
	if info.TotalPages != 3 || !info.HasNext || !info.HasPrev {
		t.Fatalf("unexpected page info: %+v", info)
	}
	last := NewPageInfo(21, 3, 10)
	if last.HasNext {
		t.Fatalf("last page reported a next page: %+v", last)
	}
}
