package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindByName(t *testing.T) {
	k, ok := KindByName("minigame")
	assert.True(t, ok)
	assert.Equal(t, KindMiniGame, k)

	_, ok = KindByName("lesson")
	assert.False(t, ok)
}

func TestAggregateKind_Level(t *testing.T) {
	tests := []struct {
		entity EntityType
		level  int
		ok     bool
	}{
		{entity: EntityTest, level: 0, ok: true},
		{entity: EntityTestQuestion, level: 1, ok: true},
		{entity: EntityTestOption, level: 2, ok: true},
		{entity: EntityMiniGameOption, ok: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			level, ok := KindTest.Level(tt.entity)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")

	var commitErr error = &StoreCommitError{Op: "insert", Collection: "test_questions", Err: cause}
	assert.ErrorIs(t, commitErr, cause)
	assert.Contains(t, commitErr.Error(), "insert commit to test_questions")

	var syncErr error = &SyncError{RootID: "T1", Err: ErrNotFound}
	assert.ErrorIs(t, syncErr, ErrNotFound)

	var target *SyncError
	assert.ErrorAs(t, syncErr, &target)
	assert.Equal(t, "T1", target.RootID)

	warn := &PartialSyncWarning{Entity: EntityTestOption, ParentID: "q1", Err: cause}
	assert.ErrorIs(t, warn, cause)
	assert.Contains(t, warn.Error(), "test_options of q1")

	v := &ValidationError{Field: "order", Requested: 99, Applied: 3}
	assert.Equal(t, "order 99 out of range, clamped to 3", v.Error())
}
