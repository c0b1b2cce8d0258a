package personalinfo

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/pkg/logger"
	"github.com/khoahotran/portfolio-api/pkg/sanitize"
	"github.com/khoahotran/portfolio-api/pkg/validation"
)

type PersonalInfoUseCase struct {
	repo   personalinfo.Repository
	logger logger.Logger
}

func NewPersonalInfoUseCase(r personalinfo.Repository, log logger.Logger) *PersonalInfoUseCase {
	return &PersonalInfoUseCase{repo: r, logger: log}
}

// Get returns the singleton, creating it from defaults on first access.
func (uc *PersonalInfoUseCase) Get(ctx context.Context) (*personalinfo.PersonalInfo, error) {
	defaults := personalinfo.Defaults()
	return uc.repo.GetOrCreate(ctx, &defaults)
}

type UpdateInput struct {
	Name     *string
	Title    *string
	Email    *string
	Phone    *string
	Github   *string
	Linkedin *string
	Bio      *string
}

func (uc *PersonalInfoUseCase) Update(ctx context.Context, in UpdateInput) (*personalinfo.PersonalInfo, error) {
	info, err := uc.Get(ctx)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		info.Name = *in.Name
	}
	if in.Title != nil {
		info.Title = sanitize.PlainText(*in.Title)
	}
	if in.Email != nil {
		info.Email = validation.NormalizeEmail(*in.Email)
	}
	if in.Phone != nil {
		info.Phone = *in.Phone
	}
	if in.Github != nil {
		info.Github = *in.Github
	}
	if in.Linkedin != nil {
		info.Linkedin = *in.Linkedin
	}
	if in.Bio != nil {
		info.Bio = sanitize.RichText(*in.Bio)
	}
	info.UpdatedAt = time.Now().UTC()

	if err := info.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Upsert(ctx, info); err != nil {
		return nil, err
	}
	uc.logger.Info("Personal info updated", zap.String("name", info.Name))
	return info, nil
}
