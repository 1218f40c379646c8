package tasks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/entities"
)

type fakeSweeper struct {
	called  bool
	removed int
}

func (f *fakeSweeper) SweepOrphans(exists func(entities.Kind, int64) bool) (int, error) {
	f.called = true
	return f.removed, nil
}

type fakeChecker struct {
	ok bool
}

func (f *fakeChecker) HasEntity(kind entities.Kind, id int64) bool { return true }
func (f *fakeChecker) Ok() bool                                    { return f.ok }

func TestCleanupOrphanThingsProcessor(t *testing.T) {
	sweeper := &fakeSweeper{removed: 3}
	processor := CleanupOrphanThingsProcessor(sweeper, &fakeChecker{ok: true})

	err := processor(context.Background(), CleanupOrphanThingsTask{})
	require.NoError(t, err)
	assert.True(t, sweeper.called)
}

func TestCleanupOrphanThingsProcessor_SkipsUnusableLibrary(t *testing.T) {
	sweeper := &fakeSweeper{}
	processor := CleanupOrphanThingsProcessor(sweeper, &fakeChecker{ok: false})

	err := processor(context.Background(), CleanupOrphanThingsTask{})
	require.NoError(t, err)
	assert.False(t, sweeper.called)
}

func TestCleanupOrphanThingsProcessor_NotConfigured(t *testing.T) {
	processor := CleanupOrphanThingsProcessor(nil, nil)

	err := processor(context.Background(), CleanupOrphanThingsTask{})
	assert.Error(t, err)
}
