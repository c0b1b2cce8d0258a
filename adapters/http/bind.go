package http

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

// bindJSON decodes the body into dst and runs its validate tags. On failure the error
// is recorded on c and false is returned.
func bindJSON(c *gin.Context, v *validation.Validator, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return false
	}
	if err := v.Struct(dst); err != nil {
		c.Error(err)
		return false
	}
	return true
}

func idParam(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewNotFound(resource, c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

// boolQuery reads an optional boolean filter. Absent means no filter.
func boolQuery(c *gin.Context, name string) (*bool, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		c.Error(apperror.NewFieldError(name, "Must be true or false."))
		return nil, false
	}
	return &b, true
}
