package base

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifiers(t *testing.T) {
	exclusion := fmt.Errorf("create booking: %w", &pgconn.PgError{Code: pgerrcode.ExclusionViolation})
	foreignKey := fmt.Errorf("create ticket: %w", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation})
	notFound := fmt.Errorf("get instructor: %w", pgx.ErrNoRows)
	other := errors.New("connection reset")

	assert.True(t, IsExclusionViolation(exclusion))
	assert.False(t, IsExclusionViolation(foreignKey))
	assert.False(t, IsExclusionViolation(other))

	assert.True(t, IsForeignKeyViolation(foreignKey))
	assert.False(t, IsForeignKeyViolation(exclusion))

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(other))
}
