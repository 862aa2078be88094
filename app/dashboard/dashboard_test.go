package dashboard

import (
	"context"
	"errors"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"realestate/app/auth"
	"realestate/app/client"
	"realestate/app/models"
	"realestate/app/repositories"
	"realestate/app/routes"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var secret = []byte("dashboard-secret")

// setupAPI serves the full router over an in-memory store.
func setupAPI(t *testing.T) *client.Client {
	t.Helper()
	db, err := repositories.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(routes.SetupRoutes(routes.Dependencies{
		Store:  repositories.NewBadgerStore(db),
		Auth:   auth.NewCookieAuthenticator("", secret),
		Logger: zerolog.Nop(),
	}))
	t.Cleanup(srv.Close)

	token, err := auth.SignSession(secret, auth.User{ID: "admin"}, time.Hour, time.Now())
	require.NoError(t, err)
	return client.New(srv.URL, client.WithHTTPClient(srv.Client()), client.WithSession("", token))
}

func price(v float64) *float64 { return &v }

type item struct {
	ID   string
	Name string
}

func itemID(i *item) string { return i.ID }

func TestReduce(t *testing.T) {
	a, b, c := &item{"a", "A"}, &item{"b", "B"}, &item{"c", "C"}
	items := []*item{a, b}

	tests := []struct {
		name   string
		change Change[item]
		want   []*item
	}{
		{name: "added appends", change: Change[item]{Kind: Added, Item: c}, want: []*item{a, b, c}},
		{name: "updated replaces", change: Change[item]{Kind: Updated, ID: "b", Item: &item{"b", "B2"}}, want: []*item{a, {"b", "B2"}}},
		{name: "updated unknown id", change: Change[item]{Kind: Updated, ID: "z", Item: c}, want: []*item{a, b}},
		{name: "deleted filters", change: Change[item]{Kind: Deleted, ID: "a"}, want: []*item{b}},
		{name: "deleted unknown id", change: Change[item]{Kind: Deleted, ID: "z"}, want: []*item{a, b}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(items, itemID, tt.change)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Reduce() mismatch (-want +got):\n%s", diff)
			}
			assert.Len(t, items, 2)
		})
	}
}

func TestListScreenPagination(t *testing.T) {
	var calls []int
	fetch := func(ctx context.Context, page, limit int) ([]*item, int64, error) {
		calls = append(calls, page)
		return []*item{{ID: "x"}}, 13, nil
	}
	s := NewListScreen[item](fetch, itemID, 6, "Failed")
	ctx := context.Background()

	assert.Equal(t, Idle, s.State())
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, Loaded, s.State())
	assert.Equal(t, 3, s.PageCount())
	assert.False(t, s.CanPrev())
	assert.True(t, s.CanNext())

	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Next(ctx))
	assert.Equal(t, 3, s.Page())
	assert.False(t, s.CanNext())
	require.NoError(t, s.Next(ctx))
	assert.Equal(t, 3, s.Page())

	require.NoError(t, s.Prev(ctx))
	assert.Equal(t, 2, s.Page())
	require.NoError(t, s.SetPage(ctx, -4))
	assert.Equal(t, 1, s.Page())
	require.NoError(t, s.Prev(ctx))

	assert.Equal(t, []int{1, 2, 3, 2, 1}, calls)
}

func TestListScreenDropsOvertakenLoad(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context, page, limit int) ([]*item, int64, error) {
		if page == 2 {
			close(entered)
			<-release
		}
		return []*item{{ID: strconv.Itoa(page)}}, 20, nil
	}
	s := NewListScreen[item](fetch, itemID, 6, "Failed")
	ctx := context.Background()

	slow := make(chan error, 1)
	go func() { slow <- s.SetPage(ctx, 2) }()
	<-entered

	require.NoError(t, s.SetPage(ctx, 3))
	close(release)
	require.NoError(t, <-slow)

	assert.Equal(t, 3, s.Page())
	assert.Equal(t, Loaded, s.State())
	assert.Equal(t, []*item{{ID: "3"}}, s.Items())
}

func TestListScreenApplyTotals(t *testing.T) {
	fetch := func(ctx context.Context, page, limit int) ([]*item, int64, error) {
		return []*item{{ID: "a"}}, 1, nil
	}
	s := NewListScreen[item](fetch, itemID, 6, "Failed")
	require.NoError(t, s.Load(context.Background()))

	s.Apply(Change[item]{Kind: Added, Item: &item{ID: "b"}})
	assert.Equal(t, int64(2), s.Total())
	s.Apply(Change[item]{Kind: Deleted, ID: "missing"})
	assert.Equal(t, int64(2), s.Total())
	s.Apply(Change[item]{Kind: Deleted, ID: "a"})
	assert.Equal(t, int64(1), s.Total())
	assert.Equal(t, []*item{{ID: "b"}}, s.Items())
}

func TestListScreenFailure(t *testing.T) {
	var fail error
	fetch := func(ctx context.Context, page, limit int) ([]*item, int64, error) {
		return nil, 0, fail
	}
	s := NewListScreen[item](fetch, itemID, 6, "Failed to fetch items")

	fail = &client.APIError{Status: 503, Message: "The database is currently unavailable. Please try again later."}
	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, Failed, s.State())
	assert.Equal(t, "The database is currently unavailable. Please try again later.", s.Err())

	fail = errors.New("connection refused")
	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, "Failed to fetch items", s.Err())
}

func TestDialog(t *testing.T) {
	ctx := context.Background()
	d := NewDialog[models.BlogInput]("Failed to add blog")

	_, err := d.Submit(ctx, ValidateBlogForm, nil)
	assert.ErrorIs(t, err, ErrDialogClosed)

	d.Open(models.BlogInput{})
	assert.Equal(t, Open, d.State())
	_, err = d.Submit(ctx, ValidateBlogForm, func(context.Context, *models.BlogInput) error {
		t.Fatal("invalid form must not be sent")
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidForm)
	assert.Equal(t, Open, d.State())
	assert.Equal(t, map[string]string{
		"title":       "Please fill in the title",
		"description": "Please fill in the description",
	}, d.FieldErrors())

	d.Edit(func(b *models.BlogInput) { b.Title, b.Description = "T", "D" })
	sendErr := &client.APIError{Status: 400, Message: "No contact found. Please create a contact first."}
	_, err = d.Submit(ctx, ValidateBlogForm, func(context.Context, *models.BlogInput) error { return sendErr })
	assert.ErrorIs(t, err, sendErr)
	assert.Equal(t, Open, d.State())
	assert.Equal(t, "No contact found. Please create a contact first.", d.Alert())
	assert.Empty(t, d.FieldErrors())

	sent, err := d.Submit(ctx, ValidateBlogForm, func(_ context.Context, b *models.BlogInput) error {
		assert.Equal(t, Submitting, d.State())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, models.BlogInput{Title: "T", Description: "D"}, sent)
	assert.Equal(t, Closed, d.State())
	assert.Equal(t, models.BlogInput{}, d.Draft())
}

func TestValidateListingForm(t *testing.T) {
	tests := []struct {
		name string
		in   models.ListingInput
		want map[string]string
	}{
		{
			name: "empty form",
			want: map[string]string{
				"title":       "Please fill in the title",
				"description": "Please fill in the description",
				"price":       "Please fill in the price",
				"address":     "Please fill in the address",
				"city":        "Please fill in the city",
			},
		},
		{
			name: "rule violations",
			in:   models.ListingInput{Title: "T", Description: "D", Price: price(-1), Address: "A", City: "C", Image: "nope"},
			want: map[string]string{
				"price": "Price must be positive",
				"image": "Invalid image URL",
			},
		},
		{
			name: "blank title",
			in:   models.ListingInput{Title: "   ", Description: "D", Price: price(0), Address: "A", City: "C"},
			want: map[string]string{"title": "Please fill in the title"},
		},
		{
			name: "valid",
			in:   models.ListingInput{Title: " T ", Description: "D", Price: price(1), Address: "A", City: "C"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			got := ValidateListingForm(&in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ValidateListingForm() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.in.Title, in.Title)
		})
	}
}

func TestValidateContactForm(t *testing.T) {
	got := ValidateContactForm(&models.ContactInput{Email: "nope"})
	assert.Equal(t, map[string]string{
		"name":  "Please fill in the name",
		"email": "Invalid email address",
		"phone": "Please fill in the phone",
	}, got)
	assert.Nil(t, ValidateContactForm(&models.ContactInput{Name: "A", Email: "a@x.com", Phone: "1"}))
}

func TestImageOrDefault(t *testing.T) {
	assert.Equal(t, DefaultImage, ImageOrDefault(""))
	assert.Equal(t, DefaultImage, ImageOrDefault("house.png"))
	assert.Equal(t, DefaultImage, ImageOrDefault("::bad"))
	assert.Equal(t, "https://img.example.com/a.jpg", ImageOrDefault("https://img.example.com/a.jpg"))
}

func TestContactPanel(t *testing.T) {
	ctx := context.Background()
	p := NewContactPanel(setupAPI(t))

	require.NoError(t, p.Load(ctx))
	assert.Equal(t, Loaded, p.State())
	assert.Nil(t, p.Contact())
	assert.False(t, p.StartEdit())

	p.AddDialog.Open(models.ContactInput{Name: "A", Email: "a@x.com", Phone: "1"})
	require.NoError(t, p.SubmitAdd(ctx))
	require.NotNil(t, p.Contact())
	assert.Equal(t, "A", p.Contact().Name)

	p.AddDialog.Open(models.ContactInput{Name: "B", Email: "a@x.com", Phone: "2"})
	require.Error(t, p.SubmitAdd(ctx))
	assert.Equal(t, "Contact already exists for this user", p.AddDialog.Alert())

	require.True(t, p.StartEdit())
	p.EditDialog.Edit(func(in *models.ContactInput) { in.Phone = "555" })
	require.NoError(t, p.SubmitEdit(ctx))
	assert.Equal(t, "555", p.Contact().Phone)
	assert.Equal(t, Closed, p.EditDialog.State())

	require.NoError(t, p.Delete(ctx))
	assert.Nil(t, p.Contact())
	require.NoError(t, p.Load(ctx))
	assert.Nil(t, p.Contact())
}

func TestBlogsScreen(t *testing.T) {
	ctx := context.Background()
	api := setupAPI(t)
	s := NewBlogsScreen(api)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, BlogsPageSize, s.Limit())

	s.AddDialog.Open(models.BlogInput{Title: "T", Description: "D"})
	require.Error(t, s.SubmitAdd(ctx))
	assert.Equal(t, "No contact found. Please create a contact first.", s.AddDialog.Alert())
	assert.Empty(t, s.Items())

	_, err := api.CreateContact(ctx, &models.ContactInput{Name: "A", Email: "a@x.com", Phone: "1"})
	require.NoError(t, err)

	require.NoError(t, s.SubmitAdd(ctx))
	require.Len(t, s.Items(), 1)
	blog := s.Items()[0]
	assert.Equal(t, "A", blog.Author)
	assert.Equal(t, int64(1), s.Total())

	s.StartEdit(blog)
	s.EditDialog.Edit(func(b *models.Blog) { b.Title = "T2" })
	require.NoError(t, s.SubmitEdit(ctx))
	assert.Equal(t, "T2", s.Items()[0].Title)

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, "T2", s.Items()[0].Title)

	require.NoError(t, s.Delete(ctx, blog.ID.Hex()))
	assert.Empty(t, s.Items())
	assert.Equal(t, int64(0), s.Total())

	require.Error(t, s.Delete(ctx, blog.ID.Hex()))
	assert.Equal(t, "Blog not found", s.Err())
}

func TestListingsScreen(t *testing.T) {
	ctx := context.Background()
	api := setupAPI(t)
	_, err := api.CreateContact(ctx, &models.ContactInput{Name: "A", Email: "a@x.com", Phone: "1"})
	require.NoError(t, err)

	s := NewListingsScreen(api)
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, ListingsPageSize, s.Limit())

	s.AddDialog.Open(models.ListingInput{Title: "Loft"})
	assert.ErrorIs(t, s.SubmitAdd(ctx), ErrInvalidForm)
	assert.Contains(t, s.AddDialog.FieldErrors(), "city")

	s.AddDialog.Edit(func(in *models.ListingInput) {
		in.Description, in.Price, in.Address, in.City = "Bright", price(250000), "1 Main St", "Springfield"
	})
	require.NoError(t, s.SubmitAdd(ctx))
	require.Len(t, s.Items(), 1)
	listing := s.Items()[0]
	assert.Equal(t, "a@x.com", listing.ContactEmail)
	assert.Equal(t, DefaultImage, ImageOrDefault(listing.Image))

	s.StartEdit(listing)
	s.EditDialog.Edit(func(l *models.Listing) { l.Price = 200000 })
	require.NoError(t, s.SubmitEdit(ctx))
	edited := *listing
	edited.Price = 200000
	if diff := cmp.Diff(&edited, s.Items()[0]); diff != "" {
		t.Errorf("cached listing mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.Load(ctx))
	assert.Equal(t, float64(200000), s.Items()[0].Price)
	assert.Equal(t, "Bright", s.Items()[0].Description)

	require.NoError(t, s.Delete(ctx, listing.ID.Hex()))
	assert.Empty(t, s.Items())
	assert.Error(t, s.Delete(ctx, primitive.NewObjectID().Hex()))
	assert.Equal(t, "Listing not found", s.Err())
}
