package portfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
)

const backupFolder = "portfolio/backups"

type BackupOutput struct {
	URL        string    `json:"url"`
	PublicID   string    `json:"public_id"`
	LastBackup time.Time `json:"last_backup"`
}

// Backup uploads the export document and records the time on the settings singleton.
func (uc *PortfolioUseCase) Backup(ctx context.Context) (*BackupOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewUnavailable("backup storage is not configured")
	}
	uc.logger.Info("Starting portfolio backup...")

	doc, err := uc.Export(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, apperror.NewInternal("encode backup", err)
	}

	now := uc.clock.Now()
	publicID := fmt.Sprintf("%s/portfolio-%s.json", backupFolder, now.Format("2006-01-02_15-04-05"))
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(payload), backupFolder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload backup", err)
		return nil, apperror.NewInternal("upload backup", err)
	}

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		defaults := settings.Defaults()
		s, err := uc.repos.Settings.GetOrCreate(ctx, &defaults)
		if err != nil {
			return err
		}
		s.LastBackup = &now
		s.UpdatedAt = now
		return uc.repos.Settings.Update(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Portfolio backup uploaded", zap.String("url", url), zap.String("public_id", publicID))
	return &BackupOutput{URL: url, PublicID: publicID, LastBackup: now}, nil
}
