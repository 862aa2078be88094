package models

import (
	"strings"
	"testing"
	"time"

	"realestate/app/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }
func str(s string) *string     { return &s }

func validListingInput() *ListingInput {
	return &ListingInput{
		Title:       "Sea view flat",
		Description: "Two bedrooms, close to the beach",
		Price:       price(1200),
		Address:     "1 Harbour Road",
		City:        "Lisbon",
	}
}

func TestListingInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *ListingInput)
		wantMsg string
	}{
		{name: "valid listing", mutate: func(in *ListingInput) {}},
		{name: "zero price is allowed", mutate: func(in *ListingInput) { in.Price = price(0) }},
		{name: "blank title", mutate: func(in *ListingInput) { in.Title = "   " }, wantMsg: "Title is required"},
		{name: "title too long", mutate: func(in *ListingInput) { in.Title = strings.Repeat("a", 101) }, wantMsg: "Title is too long"},
		{name: "description too long", mutate: func(in *ListingInput) { in.Description = strings.Repeat("a", 1001) }, wantMsg: "Description is too long"},
		{name: "missing price", mutate: func(in *ListingInput) { in.Price = nil }, wantMsg: "Price is required"},
		{name: "negative price", mutate: func(in *ListingInput) { in.Price = price(-1) }, wantMsg: "Price must be positive"},
		{name: "missing address", mutate: func(in *ListingInput) { in.Address = "" }, wantMsg: "Address is required"},
		{name: "missing city", mutate: func(in *ListingInput) { in.City = "" }, wantMsg: "City is required"},
		{name: "bad image url", mutate: func(in *ListingInput) { in.Image = "not a url" }, wantMsg: "Invalid image URL"},
		{name: "bad contact email", mutate: func(in *ListingInput) { in.ContactEmail = "nope" }, wantMsg: "Invalid contact email"},
		{
			name: "first failure reported",
			mutate: func(in *ListingInput) {
				in.Title = ""
				in.City = ""
			},
			wantMsg: "Title is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validListingInput()
			tt.mutate(in)
			err := in.Validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			var verr *validation.Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestListingInputContactSnapshot(t *testing.T) {
	in := validListingInput()
	assert.False(t, in.HasContactSnapshot())

	in.ContactEmail = "owner@example.com"
	in.FillContact(&Contact{Name: "Ann", Email: "ann@example.com", Phone: "123"})
	assert.True(t, in.HasContactSnapshot())
	assert.Equal(t, "Ann", in.ContactName)
	assert.Equal(t, "owner@example.com", in.ContactEmail)
	assert.Equal(t, "123", in.ContactPhone)

	l := in.Listing()
	assert.Equal(t, 1200.0, l.Price)
	assert.Equal(t, "Ann", l.ContactName)
	assert.True(t, l.ID.IsZero())
}

func TestListingPatch(t *testing.T) {
	t.Run("id required", func(t *testing.T) {
		err := (&ListingPatch{ID: "  "}).Validate()
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Listing ID is required", verr.Message)
	})

	t.Run("present but empty field rejected", func(t *testing.T) {
		err := (&ListingPatch{ID: "abc", City: str(" ")}).Validate()
		var verr *validation.Error
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "City is required", verr.Message)
	})

	t.Run("image may be cleared", func(t *testing.T) {
		assert.NoError(t, (&ListingPatch{ID: "abc", Image: str("")}).Validate())
	})

	t.Run("apply leaves absent fields", func(t *testing.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		l := validListingInput().Listing()
		l.BeforeCreate(created)

		later := created.Add(time.Hour)
		l.Apply(&ListingPatch{ID: l.ID.Hex(), Title: str("New"), Price: price(0)}, later)

		assert.Equal(t, "New", l.Title)
		assert.Equal(t, 0.0, l.Price)
		assert.Equal(t, "Lisbon", l.City)
		assert.Equal(t, created, l.CreatedAt)
		assert.Equal(t, later, l.UpdatedAt)
	})

	t.Run("set contains only present fields", func(t *testing.T) {
		set := (&ListingPatch{ID: "abc", Title: str("T"), Price: price(5)}).Set()
		assert.Len(t, set, 2)
		assert.Equal(t, "T", set["title"])
		assert.Equal(t, 5.0, set["price"])
	})
}

func TestListingBeforeCreate(t *testing.T) {
	l := &Listing{Title: "t"}
	assert.True(t, l.ID.IsZero())
	now := time.Now()
	l.BeforeCreate(now)
	assert.False(t, l.ID.IsZero())
	assert.Equal(t, now, l.CreatedAt)
	assert.Equal(t, now, l.UpdatedAt)
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{25, 10, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := &PageResult[Listing]{Total: tt.total, Limit: tt.limit}
		assert.Equal(t, tt.want, p.PageCount(), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestDeleteRequest(t *testing.T) {
	var verr *validation.Error

	require.ErrorAs(t, (&DeleteRequest{ID: "  "}).ValidateListing(), &verr)
	assert.Equal(t, "Listing ID is required", verr.Message)

	require.ErrorAs(t, (&DeleteRequest{}).ValidateBlog(), &verr)
	assert.Equal(t, "Blog ID is required", verr.Message)

	require.ErrorAs(t, (&DeleteRequest{}).ValidateContact(), &verr)
	assert.Equal(t, "Contact ID is required", verr.Message)

	r := &DeleteRequest{ID: " abc "}
	require.NoError(t, r.ValidateListing())
	assert.Equal(t, "abc", r.ID)
}
