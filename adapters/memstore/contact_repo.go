package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/khoahotran/portfolio-api/internal/domain/contact"
)

type contactRepo struct{ s *Store }

func (r contactRepo) Save(ctx context.Context, in *contact.Message) error {
	return r.s.write(ctx, func(st *state) error {
		st.messages = append(st.messages, *in)
		return nil
	})
}

func (r contactRepo) FindByID(ctx context.Context, id uuid.UUID) (*contact.Message, error) {
	var out *contact.Message
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.messages {
			if existing.ID == id {
				m := existing
				out = &m
				return nil
			}
		}
		return contact.ErrNotFound
	})
	return out, err
}

func (r contactRepo) List(ctx context.Context, filter contact.Filter) ([]*contact.Message, error) {
	var out []*contact.Message
	err := r.s.read(ctx, func(st *state) error {
		out = make([]*contact.Message, 0, len(st.messages))
		for _, existing := range st.messages {
			if filter.IsRead != nil && existing.IsRead != *filter.IsRead {
				continue
			}
			m := existing
			out = append(out, &m)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, err
}

func (r contactRepo) SetRead(ctx context.Context, id uuid.UUID, isRead bool) (*contact.Message, error) {
	var out *contact.Message
	err := r.s.write(ctx, func(st *state) error {
		for i := range st.messages {
			if st.messages[i].ID == id {
				st.messages[i].IsRead = isRead
				m := st.messages[i]
				out = &m
				return nil
			}
		}
		return contact.ErrNotFound
	})
	return out, err
}

func (r contactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		for i := range st.messages {
			if st.messages[i].ID == id {
				st.messages = append(st.messages[:i], st.messages[i+1:]...)
				return nil
			}
		}
		return contact.ErrNotFound
	})
}

func (r contactRepo) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	count := 0
	err := r.s.read(ctx, func(st *state) error {
		for _, existing := range st.messages {
			if !existing.CreatedAt.Before(since) {
				count++
			}
		}
		return nil
	})
	return count, err
}
