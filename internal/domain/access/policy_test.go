package access

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestMay(t *testing.T) {
	admin := &Principal{UserID: uuid.New(), Username: "owner", IsAdmin: true}
	member := &Principal{UserID: uuid.New(), Username: "guest"}

	content := []Resource{ResourcePersonalInfo, ResourceSkill, ResourceExperience, ResourceProject, ResourceCertification, ResourceSettings}
	for _, res := range content {
		assert.True(t, May(OpRead, res, nil), "%s read is public", res)
		for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
			assert.False(t, May(op, res, nil), "%s %s anonymous", res, op)
			assert.False(t, May(op, res, member), "%s %s non-admin", res, op)
			assert.True(t, May(op, res, admin), "%s %s admin", res, op)
		}
	}

	assert.True(t, May(OpCreate, ResourceContactMessage, nil))
	for _, op := range []Operation{OpRead, OpUpdate, OpDelete} {
		assert.False(t, May(op, ResourceContactMessage, nil))
		assert.False(t, May(op, ResourceContactMessage, member))
		assert.True(t, May(op, ResourceContactMessage, admin))
	}

	assert.True(t, May(OpRead, ResourcePortfolio, nil))
	assert.False(t, May(OpCreate, ResourcePortfolio, admin))

	assert.False(t, May(OpRead, ResourceTransfer, member))
	assert.True(t, May(OpCreate, ResourceTransfer, admin))

	assert.False(t, May(OpRead, ResourceSession, nil))
	assert.True(t, May(OpRead, ResourceSession, member))
}

func TestUnknownResourceIsDenied(t *testing.T) {
	admin := &Principal{IsAdmin: true}
	assert.False(t, May(OpRead, Resource("unknown"), admin))
	assert.Equal(t, Denied, RequirementFor(Operation("patch"), ResourceSkill))
}

func TestOperationFromMethod(t *testing.T) {
	assert.Equal(t, OpRead, OperationFromMethod(http.MethodGet))
	assert.Equal(t, OpRead, OperationFromMethod(http.MethodHead))
	assert.Equal(t, OpCreate, OperationFromMethod(http.MethodPost))
	assert.Equal(t, OpUpdate, OperationFromMethod(http.MethodPut))
	assert.Equal(t, OpUpdate, OperationFromMethod(http.MethodPatch))
	assert.Equal(t, OpDelete, OperationFromMethod(http.MethodDelete))
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(OpRead, ResourceSkill, nil))
	assert.ErrorIs(t, Check(OpCreate, ResourceSkill, nil), apperror.ErrUnauthorized)
	assert.ErrorIs(t, Check(OpCreate, ResourceSkill, &Principal{Username: "guest"}), apperror.ErrPermission)
	assert.NoError(t, Check(OpCreate, ResourceSkill, &Principal{IsAdmin: true}))
	assert.ErrorIs(t, Check(OpUpdate, ResourcePortfolio, nil), apperror.ErrPermission)
}
