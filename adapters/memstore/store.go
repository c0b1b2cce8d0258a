// Package memstore is a transactional in-memory implementation of every repository.
// It backs the "memory" store driver and the use case and handler tests.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/khoahotran/portfolio-api/internal/domain/certification"
	"github.com/khoahotran/portfolio-api/internal/domain/contact"
	"github.com/khoahotran/portfolio-api/internal/domain/experience"
	"github.com/khoahotran/portfolio-api/internal/domain/personalinfo"
	"github.com/khoahotran/portfolio-api/internal/domain/project"
	"github.com/khoahotran/portfolio-api/internal/domain/settings"
	"github.com/khoahotran/portfolio-api/internal/domain/skill"
	"github.com/khoahotran/portfolio-api/internal/domain/user"
)

var ErrReadOnlyTx = errors.New("memstore: write inside a read-only transaction")

type state struct {
	personalInfo   *personalinfo.PersonalInfo
	settings       *settings.Settings
	skills         []skill.Skill
	experiences    []experience.Experience
	projects       []project.Project
	certifications []certification.Certification
	messages       []contact.Message
	users          []user.User
}

func (s state) clone() state {
	out := state{
		skills:         append([]skill.Skill(nil), s.skills...),
		experiences:    append([]experience.Experience(nil), s.experiences...),
		projects:       make([]project.Project, len(s.projects)),
		certifications: make([]certification.Certification, len(s.certifications)),
		messages:       append([]contact.Message(nil), s.messages...),
		users:          append([]user.User(nil), s.users...),
	}
	if s.personalInfo != nil {
		p := *s.personalInfo
		out.personalInfo = &p
	}
	if s.settings != nil {
		out.settings = copySettings(s.settings)
	}
	for i := range s.projects {
		out.projects[i] = copyProject(s.projects[i])
	}
	for i := range s.certifications {
		out.certifications[i] = copyCertification(s.certifications[i])
	}
	return out
}

type txMode int

const (
	modeRead txMode = iota + 1
	modeWrite
)

type txKey struct{}

type Store struct {
	mu    sync.RWMutex
	state state
	now   func() time.Time
}

func New() *Store {
	return &Store{now: func() time.Time { return time.Now().UTC() }}
}

// SetClock replaces the clock used for defaults created by the store.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func txModeFrom(ctx context.Context) (txMode, bool) {
	mode, ok := ctx.Value(txKey{}).(txMode)
	return mode, ok
}

// WithinTx holds the write lock for the whole of fn and restores the prior state
// when fn fails or panics.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if mode, ok := txModeFrom(ctx); ok {
		if mode == modeRead {
			return ErrReadOnlyTx
		}
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	defer func() {
		if r := recover(); r != nil {
			s.state = snapshot
			panic(r)
		}
		if err != nil {
			s.state = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, modeWrite))
}

func (s *Store) WithinReadTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txModeFrom(ctx); ok {
		return fn(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, modeRead))
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if _, ok := txModeFrom(ctx); ok {
		return fn(&s.state)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if mode, ok := txModeFrom(ctx); ok {
		if mode == modeRead {
			return ErrReadOnlyTx
		}
		return fn(&s.state)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

func (s *Store) PersonalInfo() personalinfo.Repository { return personalInfoRepo{s} }
func (s *Store) Settings() settings.Repository { return settingsRepo{s} }
func (s *Store) Skills() skill.Repository { return skillRepo{s} }
func (s *Store) Experiences() experience.Repository { return experienceRepo{s} }
func (s *Store) Projects() project.Repository { return projectRepo{s} }
func (s *Store) Certifications() certification.Repository { return certificationRepo{s} }
func (s *Store) ContactMessages() contact.Repository { return contactRepo{s} }
func (s *Store) Users() user.Repository { return userRepo{s} }

func copySettings(in *settings.Settings) *settings.Settings {
	out := *in
	if in.LastBackup != nil {
		t := *in.LastBackup
		out.LastBackup = &t
	}
	return &out
}

func copyProject(in project.Project) project.Project {
	in.TechStack = append([]string{}, in.TechStack...)
	return in
}

func copyCertification(in certification.Certification) certification.Certification {
	if in.IssueDate != nil {
		t := *in.IssueDate
		in.IssueDate = &t
	}
	return in
}

// byOrderNewestFirst is the shared display order of ordered collections.
func byOrderNewestFirst(orderA, orderB int, createdA, createdB time.Time) bool {
	if orderA != orderB {
		return orderA < orderB
	}
	return createdA.After(createdB)
}
