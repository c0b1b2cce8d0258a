package personalinfo

import (
	"testing"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestDefaultsAreValid(t *testing.T) {
	d := Defaults()
	assert.NoError(t, d.Validate())
}

func TestValidateRejectsBadShapes(t *testing.T) {
	p := Defaults()
	p.Email = "not-an-email"
	p.Github = "ftp://github.com/x"
	p.Phone = "123"

	fields := apperror.From(p.Validate()).Fields
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "github")
	assert.Contains(t, fields, "phone")
}
