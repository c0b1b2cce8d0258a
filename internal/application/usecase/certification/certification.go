package certification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
)

type CertificationUseCase struct {
	repo   certification.Repository
	logger logger.Logger
}

func NewCertificationUseCase(r certification.Repository, log logger.Logger) *CertificationUseCase {
	return &CertificationUseCase{repo: r, logger: log}
}

func mapError(err error, id string) error {
	if errors.Is(err, certification.ErrNotFound) {
		return apperror.NewNotFound("Certification", id)
	}
	return err
}

type CreateCertificationInput struct {
	Title         string
	Issuer        string
	IssueDate     *time.Time
	CredentialID  string
	CredentialURL string
	Order         int
}

func (uc *CertificationUseCase) CreateCertification(ctx context.Context, in CreateCertificationInput) (*certification.Certification, error) {
	c := &certification.Certification{
		ID:            uuid.New(),
		Title:         sanitize.PlainText(in.Title),
		Issuer:        sanitize.PlainText(in.Issuer),
		IssueDate:     in.IssueDate,
		CredentialID:  sanitize.PlainText(in.CredentialID),
		CredentialURL: in.CredentialURL,
		Order:         in.Order,
		CreatedAt:     time.Now().UTC(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

type UpdateCertificationInput struct {
	ID            uuid.UUID
	Title         *string
	Issuer        *string
	IssueDate     *time.Time
	ClearDate     bool
	CredentialID  *string
	CredentialURL *string
	Order         *int
}

func (uc *CertificationUseCase) UpdateCertification(ctx context.Context, in UpdateCertificationInput) (*certification.Certification, error) {
	c, err := uc.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, mapError(err, in.ID.String())
	}
	if in.Title != nil {
		c.Title = sanitize.PlainText(*in.Title)
	}
	if in.Issuer != nil {
		c.Issuer = sanitize.PlainText(*in.Issuer)
	}
	switch {
	case in.ClearDate:
		c.IssueDate = nil
	case in.IssueDate != nil:
		c.IssueDate = in.IssueDate
	}
	if in.CredentialID != nil {
		c.CredentialID = sanitize.PlainText(*in.CredentialID)
	}
	if in.CredentialURL != nil {
		c.CredentialURL = *in.CredentialURL
	}
	if in.Order != nil {
		c.Order = *in.Order
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, mapError(err, c.ID.String())
	}
	return c, nil
}

func (uc *CertificationUseCase) DeleteCertification(ctx context.Context, id uuid.UUID) error {
	return mapError(uc.repo.Delete(ctx, id), id.String())
}

func (uc *CertificationUseCase) GetCertification(ctx context.Context, id uuid.UUID) (*certification.Certification, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err, id.String())
	}
	return c, nil
}

func (uc *CertificationUseCase) ListCertifications(ctx context.Context) ([]*certification.Certification, error) {
	return uc.repo.List(ctx)
}
