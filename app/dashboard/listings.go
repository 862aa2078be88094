package dashboard

import (
	"context"

	"realestate/app/models"
)

// ListingsPageSize is the page size of the listings screen.
const ListingsPageSize = 10

// ListingsScreen is the listings page: a paginated grid plus add and edit
// dialogs.
type ListingsScreen struct {
	*ListScreen[models.Listing]
	AddDialog  *Dialog[models.ListingInput]
	EditDialog *Dialog[models.Listing]

	api API
}

func NewListingsScreen(api API) *ListingsScreen {
	fetch := func(ctx context.Context, page, limit int) ([]*models.Listing, int64, error) {
		resp, err := api.ListListings(ctx, page, limit)
		if err != nil {
			return nil, 0, err
		}
		return resp.Listings, resp.Total, nil
	}
	return &ListingsScreen{
		ListScreen: NewListScreen[models.Listing](fetch, listingID, ListingsPageSize, "Failed to fetch listings"),
		AddDialog:  NewDialog[models.ListingInput]("Failed to add listing"),
		EditDialog: NewDialog[models.Listing]("Failed to update listing"),
		api:        api,
	}
}

func listingID(l *models.Listing) string { return l.ID.Hex() }

// SubmitAdd creates the draft listing and appends the server's copy.
func (s *ListingsScreen) SubmitAdd(ctx context.Context) error {
	var created *models.Listing
	_, err := s.AddDialog.Submit(ctx, ValidateListingForm, func(ctx context.Context, in *models.ListingInput) error {
		var err error
		created, err = s.api.CreateListing(ctx, in)
		return err
	})
	if err != nil {
		return err
	}
	s.Apply(Change[models.Listing]{Kind: Added, Item: created})
	return nil
}

// StartEdit opens the edit dialog on a copy of l.
func (s *ListingsScreen) StartEdit(l *models.Listing) {
	s.EditDialog.Open(*l)
}

// SubmitEdit sends the edited listing and replaces the cached entry with
// the draft.
func (s *ListingsScreen) SubmitEdit(ctx context.Context) error {
	edited, err := s.EditDialog.Submit(ctx,
		func(l *models.Listing) map[string]string { return ValidateListingForm(listingForm(l)) },
		func(ctx context.Context, l *models.Listing) error {
			_, err := s.api.UpdateListing(ctx, listingPatch(l))
			return err
		})
	if err != nil {
		return err
	}
	s.Apply(Change[models.Listing]{Kind: Updated, ID: edited.ID.Hex(), Item: &edited})
	return nil
}

// Delete removes the listing and drops it from the cache.
func (s *ListingsScreen) Delete(ctx context.Context, id string) error {
	if _, err := s.api.DeleteListing(ctx, id); err != nil {
		s.Fail(err, "Failed to delete listing")
		return err
	}
	s.Apply(Change[models.Listing]{Kind: Deleted, ID: id})
	return nil
}

func listingForm(l *models.Listing) *models.ListingInput {
	price := l.Price
	return &models.ListingInput{
		Title:        l.Title,
		Description:  l.Description,
		Price:        &price,
		Address:      l.Address,
		City:         l.City,
		Image:        l.Image,
		Facilities:   l.Facilities,
		ContactName:  l.ContactName,
		ContactEmail: l.ContactEmail,
		ContactPhone: l.ContactPhone,
	}
}

func listingPatch(l *models.Listing) *models.ListingPatch {
	f := listingForm(l)
	return &models.ListingPatch{
		ID:           l.ID.Hex(),
		Title:        &f.Title,
		Description:  &f.Description,
		Price:        f.Price,
		Address:      &f.Address,
		City:         &f.City,
		Image:        &f.Image,
		Facilities:   &f.Facilities,
		ContactName:  optional(f.ContactName),
		ContactEmail: optional(f.ContactEmail),
		ContactPhone: optional(f.ContactPhone),
	}
}

// optional leaves empty snapshot fields out of a patch.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
