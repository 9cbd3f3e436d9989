package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassifyErrors(t *testing.T) {
	exclusion := &pq.Error{Code: "23P01", Constraint: "schedule_entries_teacher_no_overlap"}
	wrapped := fmt.Errorf("insert: %w", exclusion)

	assert.True(t, IsExclusionViolation(wrapped))
	assert.Equal(t, "schedule_entries_teacher_no_overlap", Constraint(wrapped))
	assert.False(t, IsUniqueViolation(wrapped))

	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))

	plain := errors.New("boom")
	assert.False(t, IsExclusionViolation(plain))
	assert.Equal(t, "", Constraint(plain))
}

func TestRetrySerializable(t *testing.T) {
	ctx := context.Background()
	serialization := &pq.Error{Code: "40001"}

	t.Run("succeeds after retry", func(t *testing.T) {
		calls := 0
		err := retrySerializable(ctx, 3, func() error {
			calls++
			if calls < 2 {
				return serialization
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := retrySerializable(ctx, 3, func() error {
			calls++
			return serialization
		})
		assert.True(t, IsSerializationFailure(err))
		assert.Equal(t, 3, calls)
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		calls := 0
		boom := errors.New("boom")
		err := retrySerializable(ctx, 3, func() error {
			calls++
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		calls := 0
		err := retrySerializable(cctx, 3, func() error {
			calls++
			return serialization
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestDatabaseServesModules(t *testing.T) {
	assert.Implements(t, (*IDatabase)(nil), new(Database))
}
