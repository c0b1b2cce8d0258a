package validation

import (
	"testing"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contactForm struct {
	Name    string `json:"name" validate:"required,safename,max=100"`
	Email   string `json:"email" validate:"required,emailaddr"`
	Phone   string `json:"phone" validate:"omitempty,phone"`
	Website string `json:"website" validate:"omitempty,httpurl"`
}

type entry struct {
	Title string `json:"title" validate:"required"`
}

type document struct {
	Entries []entry `json:"experience" validate:"dive"`
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct(contactForm{Name: "Ada Lovelace", Email: "ada@example.com", Phone: "+91 9704715088", Website: "https://ada.dev/about"})
	assert.NoError(t, err)
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Struct(contactForm{Name: "<script>", Email: "nope", Phone: "12", Website: "ftp://files.example.com"})
	require.Error(t, err)

	appErr := apperror.From(err)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "email")
	assert.Contains(t, appErr.Fields, "phone")
	assert.Contains(t, appErr.Fields, "website")
}

func TestStructNestedPath(t *testing.T) {
	err := New().Struct(document{Entries: []entry{{Title: "ok"}, {}}})
	require.Error(t, err)

	assert.Equal(t, map[string]string{"experience[1].title": "This field is required."}, apperror.From(err).Fields)
}

func TestRules(t *testing.T) {
	assert.True(t, IsEmail("someone@mail.co"))
	assert.False(t, IsEmail("someone@mail"))

	assert.True(t, IsPhone("(555) 123-4567"))
	assert.False(t, IsPhone("12345"))
	assert.False(t, IsPhone("+1 555 123 4567 8901"))

	assert.True(t, IsHTTPURL("http://github.com/user"))
	assert.False(t, IsHTTPURL("javascript:alert(1)"))

	assert.True(t, IsSafeName("Jo"))
	assert.False(t, IsSafeName("J"))
	assert.False(t, IsSafeName("Tom & Jerry"))

	assert.Equal(t, "ada@example.com", NormalizeEmail(" Ada@Example.COM "))
}
