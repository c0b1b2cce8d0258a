package contact

import (
	"strings"
	"testing"

	"github.com/khoahotran/portfolio-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsMarkupInName(t *testing.T) {
	m := &Message{Name: "<script>alert(1)</script>", Email: "a@b.co", Subject: "Hi", Body: "Hello"}

	err := m.Validate()
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Contains(t, apperror.From(err).Fields, "name")
}

func TestValidateAcceptsMessage(t *testing.T) {
	m := &Message{Name: "Grace Hopper", Email: "grace@navy.mil", Subject: "Hello", Body: "Nice work"}
	assert.NoError(t, m.Validate())
}

func TestValidateCountsSubjectInRunes(t *testing.T) {
	m := &Message{Name: "Grace Hopper", Email: "grace@navy.mil", Subject: strings.Repeat("é", 150), Body: "Nice work"}
	assert.Greater(t, len(m.Subject), 200)
	assert.NoError(t, m.Validate())
}
