package dashboard

import (
	"net/url"

	"realestate/app/models"
	"realestate/app/validation"
)

// DefaultImage is shown on listing cards without a usable image URL.
const DefaultImage = "https://dummyimage.com/600x400/000/fff&text=No+Image"

// ImageOrDefault returns image when it parses as an absolute URL.
func ImageOrDefault(image string) string {
	if image == "" {
		return DefaultImage
	}
	u, err := url.Parse(image)
	if err != nil || u.Scheme == "" {
		return DefaultImage
	}
	return image
}

type requiredField struct {
	name  string
	empty bool
}

// collect merges the validator messages for v with a "Please fill in the"
// message for every empty required field. Nil means the form is valid.
func collect(v interface{}, required []requiredField) map[string]string {
	out := map[string]string{}
	for field, msg := range validation.All(v) {
		out[field] = msg
	}
	for _, f := range required {
		if f.empty {
			out[f.name] = "Please fill in the " + f.name
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ValidateListingForm reports every problem with a listing form at once,
// keyed by field. The form itself is not modified.
func ValidateListingForm(in *models.ListingInput) map[string]string {
	draft := *in
	return collect(&draft, []requiredField{
		{"title", isBlank(draft.Title)},
		{"description", isBlank(draft.Description)},
		{"price", draft.Price == nil},
		{"address", isBlank(draft.Address)},
		{"city", isBlank(draft.City)},
	})
}

// ValidateBlogForm reports an empty title or description.
func ValidateBlogForm(in *models.BlogInput) map[string]string {
	draft := *in
	return collect(&draft, []requiredField{
		{"title", isBlank(draft.Title)},
		{"description", isBlank(draft.Description)},
	})
}

// ValidateContactForm reports every problem with a contact form.
func ValidateContactForm(in *models.ContactInput) map[string]string {
	draft := *in
	return collect(&draft, []requiredField{
		{"name", isBlank(draft.Name)},
		{"phone", isBlank(draft.Phone)},
	})
}

func isBlank(s string) bool {
	validation.Trim(&s)
	return s == ""
}
