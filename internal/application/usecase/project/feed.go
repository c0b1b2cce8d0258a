package project

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type FeedUseCase struct {
	projectRepo project.Repository
	infoRepo    personalinfo.Repository
	siteURL     string
	logger      logger.Logger
}

func NewFeedUseCase(pRepo project.Repository, iRepo personalinfo.Repository, siteURL string, log logger.Logger) *FeedUseCase {
	if siteURL == "" {
		siteURL = "http://localhost:3000"
	}
	return &FeedUseCase{projectRepo: pRepo, infoRepo: iRepo, siteURL: siteURL, logger: log}
}

// Execute builds an RSS feed of all projects in display order.
func (uc *FeedUseCase) Execute(ctx context.Context) (*feeds.Feed, error) {
	info, err := uc.infoRepo.GetOrCreate(ctx, defaultsPtr())
	if err != nil {
		return nil, err
	}
	projects, err := uc.projectRepo.List(ctx, project.Filter{})
	if err != nil {
		uc.logger.Error("Failed to list projects for feed", err)
		return nil, err
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - Projects", info.Name),
		Link:        &feeds.Link{Href: uc.siteURL},
		Description: info.Title,
		Author:      &feeds.Author{Name: info.Name, Email: info.Email},
		Created:     time.Now().UTC(),
	}
	for _, p := range projects {
		link := p.LiveURL
		if link == "" {
			link = p.GithubURL
		}
		if link == "" {
			link = fmt.Sprintf("%s/#projects", uc.siteURL)
		}
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          p.ID.String(),
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Description: p.Description,
			Created:     p.CreatedAt,
			Updated:     p.UpdatedAt,
		})
	}
	uc.logger.Debug("Project feed generated", zap.Int("item_count", len(feed.Items)))
	return feed, nil
}

func defaultsPtr() *personalinfo.PersonalInfo {
	d := personalinfo.Defaults()
	return &d
}
