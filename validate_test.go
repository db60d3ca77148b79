package skiplist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTwoLevelList builds 10 (height 2), 20 (height 1), 30 (height 2).
func newTwoLevelList(t *testing.T) *SkipList[int, int] {
	t.Helper()
	src := &mockRandSource{nums: []uint64{0b1, 0, 0b1}}
	sl := New[int, int](WithSource[int, int](src))
	sl.Insert(10, 10)
	sl.Insert(20, 20)
	sl.Insert(30, 30)
	require.Equal(t, 2, sl.Level())
	require.NoError(t, sl.Validate())
	return sl
}

func TestValidate_Empty(t *testing.T) {
	assert.NoError(t, New[int, int]().Validate())
}

func TestValidate_DetectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(sl *SkipList[int, int])
		want    error
	}{
		{
			name:    "span",
			corrupt: func(sl *SkipList[int, int]) { sl.header.span[1]++ },
			want:    ErrSpan,
		},
		{
			name:    "length",
			corrupt: func(sl *SkipList[int, int]) { sl.length = 2 },
			want:    ErrLength,
		},
		{
			name: "order",
			corrupt: func(sl *SkipList[int, int]) {
				sl.header.forward[0].forward[0].key = 5
			},
			want: ErrUnsorted,
		},
		{
			name: "backward",
			corrupt: func(sl *SkipList[int, int]) {
				third := sl.header.forward[0].forward[0].forward[0]
				third.backward = sl.header.forward[0]
			},
			want: ErrBackward,
		},
		{
			name: "upper level skips a tall node",
			corrupt: func(sl *SkipList[int, int]) {
				first := sl.header.forward[1]
				sl.header.forward[1] = first.forward[1]
				sl.header.span[1] = 3
			},
			want: ErrLevelInclusion,
		},
		{
			name: "node above the top level",
			corrupt: func(sl *SkipList[int, int]) {
				sl.level = 0
			},
			want: ErrLevelOverflow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sl := newTwoLevelList(t)
			tt.corrupt(sl)
			assert.ErrorIs(t, sl.Validate(), tt.want)
		})
	}
}
