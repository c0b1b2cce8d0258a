package project

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

type stubUploader struct{ folder string }

func (u *stubUploader) Upload(_ context.Context, file io.Reader, folder, publicID string) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	u.folder = folder
	return "https://res.example.com/" + publicID, nil
}

func (u *stubUploader) Delete(context.Context, string) error { return nil }

func TestProjectCRUDAndFeaturedFilter(t *testing.T) {
	ctx := context.Background()
	uc := NewProjectUseCase(memstore.New().Projects(), nil, logger.NewNop())

	plain, err := uc.CreateProject(ctx, CreateProjectInput{
		Title:       "Notes",
		Description: "<p>Markdown notes</p><script>x()</script>",
		TechStack:   []string{"Go", " <b>React</b> ", ""},
		Order:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, "<p>Markdown notes</p>", plain.Description)
	assert.Equal(t, []string{"Go", "React"}, plain.TechStack)

	featured, err := uc.CreateProject(ctx, CreateProjectInput{Title: "Folio", Description: "Site", IsFeatured: true, Order: 0})
	require.NoError(t, err)

	all, err := uc.ListProjects(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, featured.ID, all[0].ID, "lower order first")

	yes := true
	onlyFeatured, err := uc.ListProjects(ctx, &yes)
	require.NoError(t, err)
	require.Len(t, onlyFeatured, 1)
	assert.Equal(t, "Folio", onlyFeatured[0].Title)

	live := "https://notes.example.com"
	updated, err := uc.UpdateProject(ctx, UpdateProjectInput{ID: plain.ID, LiveURL: &live})
	require.NoError(t, err)
	assert.Equal(t, live, updated.LiveURL)
	assert.Equal(t, "Notes", updated.Title)

	bad := "notaurl"
	_, err = uc.UpdateProject(ctx, UpdateProjectInput{ID: plain.ID, GithubURL: &bad})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	require.NoError(t, uc.DeleteProject(ctx, plain.ID))
	_, err = uc.GetProject(ctx, plain.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()
	repo := memstore.New().Projects()

	noStorage := NewProjectUseCase(repo, nil, logger.NewNop())
	p, err := noStorage.CreateProject(ctx, CreateProjectInput{Title: "Folio", Description: "Site"})
	require.NoError(t, err)
	_, err = noStorage.UploadImage(ctx, p.ID, strings.NewReader("png"))
	assert.ErrorIs(t, err, apperror.ErrUnavailable)

	up := &stubUploader{}
	uc := NewProjectUseCase(repo, up, logger.NewNop())
	withImage, err := uc.UploadImage(ctx, p.ID, strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.example.com/portfolio/projects/"+p.ID.String(), withImage.ImageURL)
	assert.Equal(t, imageFolder, up.folder)
}

func TestFeed(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := NewProjectUseCase(store.Projects(), nil, logger.NewNop())
	_, err := uc.CreateProject(ctx, CreateProjectInput{Title: "Folio", Description: "Site", LiveURL: "https://folio.example.com"})
	require.NoError(t, err)

	feed, err := NewFeedUseCase(store.Projects(), store.PersonalInfo(), "", logger.NewNop()).Execute(ctx)
	require.NoError(t, err)
	require.Len(t, feed.Items, 1)
	assert.Equal(t, "https://folio.example.com", feed.Items[0].Link.Href)

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.Contains(t, rss, "<title>Folio</title>")
}
