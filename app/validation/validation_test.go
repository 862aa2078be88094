package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string  `json:"name" validate:"required,max=5"`
	Email   string  `json:"email" validate:"required,email"`
	Site    string  `json:"site" validate:"urlorempty"`
	Nick    *string `json:"nick,omitempty" validate:"omitnil,min=1"`
	Comment string  `json:"comment" validate:"required"`
}

func (s *sample) Normalize() {
	Trim(&s.Name)
	Trim(&s.Email)
	Trim(s.Nick)
}

func (s *sample) Messages() map[string]string {
	return map[string]string{
		"name.required":  "Name is required",
		"name.max":       "Name is too long",
		"email.required": "Email is required",
		"email.email":    "Invalid email address",
		"nick.min":       "Nick is required",
	}
}

func strPtr(s string) *string { return &s }

func TestFirst(t *testing.T) {
	tests := []struct {
		name    string
		in      *sample
		wantMsg string
	}{
		{
			name: "valid",
			in:   &sample{Name: "Ann", Email: "a@x.com", Comment: "hi"},
		},
		{
			name:    "whitespace only name",
			in:      &sample{Name: "   ", Email: "a@x.com", Comment: "hi"},
			wantMsg: "Name is required",
		},
		{
			name:    "first failure wins",
			in:      &sample{Name: "toolongname", Email: "nope"},
			wantMsg: "Name is too long",
		},
		{
			name:    "bad email",
			in:      &sample{Name: "Ann", Email: "nope", Comment: "hi"},
			wantMsg: "Invalid email address",
		},
		{
			name:    "empty pointer value is checked",
			in:      &sample{Name: "Ann", Email: "a@x.com", Nick: strPtr("  "), Comment: "hi"},
			wantMsg: "Nick is required",
		},
		{
			name:    "relative url rejected",
			in:      &sample{Name: "Ann", Email: "a@x.com", Site: "/img.png", Comment: "hi"},
			wantMsg: "site is invalid",
		},
		{
			name: "absolute url accepted",
			in:   &sample{Name: "Ann", Email: "a@x.com", Site: "https://example.com/a.png", Comment: "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := First(tt.in)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var verr *Error
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantMsg, verr.Message)
		})
	}
}

func TestFirstTrimsInPlace(t *testing.T) {
	in := &sample{Name: "  Ann ", Email: " a@x.com ", Comment: "hi"}
	require.NoError(t, First(in))
	assert.Equal(t, "Ann", in.Name)
	assert.Equal(t, "a@x.com", in.Email)
}

func TestAll(t *testing.T) {
	errs := All(&sample{Name: "", Email: "bad"})
	assert.Equal(t, map[string]string{
		"name":    "Name is required",
		"email":   "Invalid email address",
		"comment": "comment is invalid",
	}, errs)

	assert.Nil(t, All(&sample{Name: "Ann", Email: "a@x.com", Comment: "hi"}))
}
