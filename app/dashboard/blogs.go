package dashboard

import (
	"context"

	"realestate/app/models"
)

// BlogsPageSize is the page size of the blogs screen.
const BlogsPageSize = 6

// BlogsScreen is the blogs page.
type BlogsScreen struct {
	*ListScreen[models.Blog]
	AddDialog  *Dialog[models.BlogInput]
	EditDialog *Dialog[models.Blog]

	api API
}

func NewBlogsScreen(api API) *BlogsScreen {
	fetch := func(ctx context.Context, page, limit int) ([]*models.Blog, int64, error) {
		resp, err := api.ListBlogs(ctx, page, limit)
		if err != nil {
			return nil, 0, err
		}
		return resp.Blogs, resp.Total, nil
	}
	return &BlogsScreen{
		ListScreen: NewListScreen[models.Blog](fetch, blogID, BlogsPageSize, "Failed to fetch blogs"),
		AddDialog:  NewDialog[models.BlogInput]("Failed to add blog"),
		EditDialog: NewDialog[models.Blog]("Failed to update blog"),
		api:        api,
	}
}

func blogID(b *models.Blog) string { return b.ID.Hex() }

func (s *BlogsScreen) SubmitAdd(ctx context.Context) error {
	var created *models.Blog
	_, err := s.AddDialog.Submit(ctx, ValidateBlogForm, func(ctx context.Context, in *models.BlogInput) error {
		var err error
		created, err = s.api.CreateBlog(ctx, in)
		return err
	})
	if err != nil {
		return err
	}
	s.Apply(Change[models.Blog]{Kind: Added, Item: created})
	return nil
}

func (s *BlogsScreen) StartEdit(b *models.Blog) {
	s.EditDialog.Open(*b)
}

func (s *BlogsScreen) SubmitEdit(ctx context.Context) error {
	edited, err := s.EditDialog.Submit(ctx,
		func(b *models.Blog) map[string]string {
			return ValidateBlogForm(&models.BlogInput{Title: b.Title, Description: b.Description})
		},
		func(ctx context.Context, b *models.Blog) error {
			title, description := b.Title, b.Description
			_, err := s.api.UpdateBlog(ctx, &models.BlogPatch{ID: b.ID.Hex(), Title: &title, Description: &description})
			return err
		})
	if err != nil {
		return err
	}
	s.Apply(Change[models.Blog]{Kind: Updated, ID: edited.ID.Hex(), Item: &edited})
	return nil
}

func (s *BlogsScreen) Delete(ctx context.Context, id string) error {
	if _, err := s.api.DeleteBlog(ctx, id); err != nil {
		s.Fail(err, "Failed to delete blog")
		return err
	}
	s.Apply(Change[models.Blog]{Kind: Deleted, ID: id})
	return nil
}
