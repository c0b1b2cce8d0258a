package certification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

func TestCertificationLifecycle(t *testing.T) {
	ctx := context.Background()
	uc := NewCertificationUseCase(memstore.New().Certifications(), logger.NewNop())
	issued := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	c, err := uc.CreateCertification(ctx, CreateCertificationInput{
		Title:         "CKA",
		Issuer:        "CNCF",
		IssueDate:     &issued,
		CredentialURL: "https://cncf.io/verify/123",
	})
	require.NoError(t, err)

	updated, err := uc.UpdateCertification(ctx, UpdateCertificationInput{ID: c.ID, ClearDate: true})
	require.NoError(t, err)
	assert.Nil(t, updated.IssueDate)
	assert.Equal(t, "CNCF", updated.Issuer)

	bad := "ftp://cncf.io"
	_, err = uc.UpdateCertification(ctx, UpdateCertificationInput{ID: c.ID, CredentialURL: &bad})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	list, err := uc.ListCertifications(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.DeleteCertification(ctx, c.ID))
	assert.ErrorIs(t, uc.DeleteCertification(ctx, c.ID), apperror.ErrNotFound)
}
