package portfolio

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/adapters/cache"
	"github.com/khoahotran/portfolio-api/adapters/memstore"
	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const importDoc = `{
  "personalInfo": {
    "name": "Ada Lovelace", "title": "Engineer", "email": "Ada@Example.com",
    "phone": "+44 2071234567", "github": "https://github.com/ada",
    "linkedin": "https://linkedin.com/in/ada", "bio": "<p>Analytical engines.</p>"
  },
  "skills": {"programmingLanguages": ["Go", "Python"], "tools": ["Git"]},
  "experience": [
    {"title": "Engineer", "company": "Acme", "duration": "2024", "description": "Platform", "order": 9},
    {"title": "Intern", "company": "Initech", "duration": "2023", "description": "Reports"}
  ],
  "projects": [
    {"title": "Folio", "description": "Portfolio", "techStack": ["Go", "Postgres"], "is_featured": true},
    {"title": "CLI", "description": "Tooling", "tech_stack": ["Go"], "github_url": "https://github.com/ada/cli"}
  ],
  "certifications": ["CKA", "AWS SAA", "GCP ACE"]
}`

func repositoriesOf(s *memstore.Store) Repositories {
	return Repositories{
		PersonalInfo:   s.PersonalInfo(),
		Skills:         s.Skills(),
		Experience:     s.Experiences(),
		Projects:       s.Projects(),
		Certifications: s.Certifications(),
		Settings:       s.Settings(),
	}
}

func newUseCase(s *memstore.Store, opts Options) *PortfolioUseCase {
	return NewPortfolioUseCase(repositoriesOf(s), s, opts, logger.NewNop())
}

func TestExportEmptyStore(t *testing.T) {
	doc, err := newUseCase(memstore.New(), Options{}).Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, personalinfo.Defaults().Name, doc.PersonalInfo.Name)
	require.Len(t, doc.Skills, len(skill.Categories))
	for _, c := range skill.Categories {
		assert.Equal(t, []string{}, doc.Skills[c])
	}
	assert.Empty(t, doc.Experience)
	assert.Empty(t, doc.Projects)
	assert.Empty(t, doc.Certifications)
}

func TestImportExportRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(store, Options{})

	// Existing rows are replaced, not merged.
	require.NoError(t, store.Skills().Save(ctx, &skill.Skill{ID: uuid.New(), Name: "Cobol", Category: skill.CategoryProgrammingLanguages, Proficiency: 10}))

	out, err := uc.Import(ctx, []byte(importDoc), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, ImportOutput{Skills: 3, Experience: 2, Projects: 2, Certifications: 3}, *out)

	doc, err := uc.Export(ctx)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", doc.PersonalInfo.Email)
	assert.Equal(t, []string{"Go", "Python"}, doc.Skills[skill.CategoryProgrammingLanguages])
	assert.Equal(t, []string{"Git"}, doc.Skills[skill.CategoryTools])
	assert.Equal(t, []string{}, doc.Skills[skill.CategoryFrameworks])

	require.Len(t, doc.Experience, 2)
	assert.Equal(t, "Acme", doc.Experience[0].Company)
	assert.Equal(t, 0, doc.Experience[0].Order, "position overrides the input order field")
	assert.Equal(t, "Initech", doc.Experience[1].Company)
	assert.Equal(t, 1, doc.Experience[1].Order)

	require.Len(t, doc.Projects, 2)
	assert.Equal(t, "Folio", doc.Projects[0].Title)
	assert.Equal(t, []string{"Go", "Postgres"}, doc.Projects[0].TechStack)
	assert.True(t, doc.Projects[0].IsFeatured)
	assert.Equal(t, "", doc.Projects[0].GithubURL)
	assert.Equal(t, "https://github.com/ada/cli", doc.Projects[1].GithubURL)

	assert.Equal(t, []string{"CKA", "AWS SAA", "GCP ACE"}, doc.Certifications)

	skills, err := store.Skills().List(ctx, skill.Filter{})
	require.NoError(t, err)
	for _, s := range skills {
		assert.Equal(t, skill.DefaultProficiency, s.Proficiency)
	}
}

func TestImportMissingEmailLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(store, Options{})
	_, err := uc.Import(ctx, []byte(importDoc), uuid.New())
	require.NoError(t, err)

	raw := `{"personalInfo": {"name": "Someone Else", "title": "x", "phone": "1234567890", "github": "", "linkedin": "", "bio": ""},
	  "skills": {}, "experience": [], "projects": [], "certifications": []}`
	_, err = uc.Import(ctx, []byte(raw), uuid.New())
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, apperror.From(err).Fields, "personalInfo.email")

	info, err := store.PersonalInfo().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", info.Name)
	assert.Equal(t, "ada@example.com", info.Email)
}

func TestImportRejectsInvalidRecordsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(store, Options{})

	raw := `{"personalInfo": {"name": "Ada Lovelace", "title": "Engineer", "email": "ada@example.com", "phone": "+44 2071234567", "github": "", "linkedin": "", "bio": ""},
	  "skills": {"tools": ["Git", "Git"]}, "experience": [],
	  "projects": [{"title": "X", "description": "Y", "live_url": "javascript:alert(1)"}], "certifications": []}`
	_, err := uc.Import(ctx, []byte(raw), uuid.New())
	require.ErrorIs(t, err, apperror.ErrInvalidInput)
	fields := apperror.From(err).Fields
	assert.Contains(t, fields, "skills.tools[1].name")
	assert.Contains(t, fields, "projects[0].live_url")

	_, err = store.PersonalInfo().Get(ctx)
	assert.ErrorIs(t, err, personalinfo.ErrNotFound)
}

type failingCertifications struct {
	certification.Repository
	failAfter int
	saved     int
}

func (f *failingCertifications) Save(ctx context.Context, c *certification.Certification) error {
	if f.saved == f.failAfter {
		return errors.New("disk full")
	}
	f.saved++
	return f.Repository.Save(ctx, c)
}

func TestImportRollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	_, err := newUseCase(store, Options{}).Import(ctx, []byte(importDoc), uuid.New())
	require.NoError(t, err)
	before, err := newUseCase(store, Options{}).Export(ctx)
	require.NoError(t, err)

	repos := repositoriesOf(store)
	repos.Certifications = &failingCertifications{Repository: store.Certifications(), failAfter: 1}
	uc := NewPortfolioUseCase(repos, store, Options{}, logger.NewNop())

	raw := `{"personalInfo": {"name": "Bob Builder", "title": "Builder", "email": "bob@example.com", "phone": "+44 2071234567", "github": "", "linkedin": "", "bio": ""},
	  "skills": {"tools": ["Hammer"]}, "experience": [], "projects": [], "certifications": ["One", "Two"]}`
	_, err = uc.Import(ctx, []byte(raw), uuid.New())
	require.ErrorIs(t, err, apperror.ErrImportFailed)
	assert.Equal(t, 500, apperror.ToHTTPStatus(err))

	after, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

type fakeUploader struct {
	publicIDs []string
	payload   []byte
}

func (u *fakeUploader) Upload(_ context.Context, file io.Reader, _ string, publicID string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.payload = b
	u.publicIDs = append(u.publicIDs, publicID)
	return "https://cdn.example.com/" + publicID, nil
}

func (u *fakeUploader) Delete(context.Context, string) error { return nil }

func TestBackup(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	now := time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC)
	up := &fakeUploader{}
	uc := newUseCase(store, Options{Uploader: up, Clock: service.ClockFunc(func() time.Time { return now })})

	out, err := uc.Backup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "portfolio/backups/portfolio-2025-05-04_10-30-00.json", out.PublicID)
	assert.Contains(t, string(up.payload), `"personalInfo"`)

	s, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, s.LastBackup)
	assert.True(t, s.LastBackup.Equal(now))

	_, err = newUseCase(store, Options{}).Backup(ctx)
	assert.ErrorIs(t, err, apperror.ErrUnavailable)
}

func TestSnapshotIsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := newUseCase(store, Options{Cache: cache.NewMemoryCache(time.Minute, time.Minute)})

	first, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, first.Skills[skill.CategoryTools])

	require.NoError(t, store.Skills().Save(ctx, &skill.Skill{ID: uuid.New(), Name: "Git", Category: skill.CategoryTools, Proficiency: 80}))

	cached, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, cached.Skills[skill.CategoryTools])

	uc.InvalidateSnapshot(ctx)
	fresh, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Git"}, fresh.Skills[skill.CategoryTools])
}

func TestImportExportKeepsPunctuation(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(memstore.New(), Options{})

	raw := `{
  "personalInfo": {"name": "Ada Lovelace", "title": "R&D Engineer", "email": "ada@example.com"},
  "skills": {"frameworks": ["Node.js & Express"]},
  "projects": [{"title": "Shop", "description": "Cart & checkout", "techStack": ["React & Redux"]}],
  "certifications": ["Google's Data Analytics"]
}`
	_, err := uc.Import(ctx, []byte(raw), uuid.New())
	require.NoError(t, err)

	doc, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Node.js & Express"}, doc.Skills[skill.CategoryFrameworks])
	assert.Equal(t, []string{"Google's Data Analytics"}, doc.Certifications)
	require.Len(t, doc.Projects, 1)
	assert.Equal(t, []string{"React & Redux"}, doc.Projects[0].TechStack)
	assert.Equal(t, "R&D Engineer", doc.PersonalInfo.Title)

	again, err := uc.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

// writeHookCache runs hook once, just before the first SetJSON reaches the wrapped cache.
type writeHookCache struct {
	service.Cache
	hook func()
}

func (c *writeHookCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.hook != nil {
		h := c.hook
		c.hook = nil
		h()
	}
	return c.Cache.SetJSON(ctx, key, value, ttl)
}

func TestSnapshotNotCachedAcrossConcurrentImport(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	c := &writeHookCache{Cache: cache.NewMemoryCache(time.Minute, time.Minute)}
	uc := newUseCase(store, Options{Cache: c})

	c.hook = func() {
		_, err := uc.Import(ctx, []byte(importDoc), uuid.New())
		require.NoError(t, err)
	}

	stale, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, stale.Certifications)

	fresh, err := uc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CKA", "AWS SAA", "GCP ACE"}, fresh.Certifications)
}
