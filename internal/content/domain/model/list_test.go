package model

import (
	"testing"

	"sharvari-site/internal/shared/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Move(t *testing.T) {
	tests := []struct {
		name string
		i    int
		dir  Direction
		want []string
	}{
		{"first up is a no-op", 0, Up, []string{"a", "b", "c"}},
		{"last down is a no-op", 2, Down, []string{"a", "b", "c"}},
		{"middle up", 1, Up, []string{"b", "a", "c"}},
		{"middle down", 1, Down, []string{"a", "c", "b"}},
		{"first down", 0, Down, []string{"b", "a", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewList("a", "b", "c")
			require.NoError(t, l.Move(tt.i, tt.dir))
			assert.Equal(t, tt.want, l.Items())
		})
	}
}

func TestList_OutOfRange(t *testing.T) {
	l := NewList(1, 2)
	for _, err := range []error{l.Move(2, Up), l.Delete(-1), l.Replace(5, 0)} {
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.ErrorIs(t, err, errors.ErrIndexOutOfRange)
	}
	assert.Equal(t, []int{1, 2}, l.Items())
}

func TestList_AddDeleteReplace(t *testing.T) {
	l := NewList[string]()
	l.Add("a", "b")
	l.Add("c")
	require.NoError(t, l.Delete(1))
	require.NoError(t, l.Replace(1, "z"))
	assert.Equal(t, []string{"a", "z"}, l.Items())
	assert.Equal(t, 2, l.Len())
}

func TestList_ItemsIsACopy(t *testing.T) {
	l := NewList("a", "b")
	items := l.Items()
	items[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, l.Items())

	require.NoError(t, l.Delete(0))
	assert.Equal(t, []string{"changed", "b"}, items)
}

func TestList_JSON(t *testing.T) {
	var empty List[Stat]
	b, err := empty.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	var l List[Stat]
	require.NoError(t, l.UnmarshalJSON([]byte(`[{"value":"5","label":"Years"}]`)))
	assert.Equal(t, []Stat{{Value: "5", Label: "Years"}}, l.Items())
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("down")
	require.NoError(t, err)
	assert.Equal(t, Down, d)

	_, err = ParseDirection("left")
	assert.True(t, errors.IsValidation(err))
}
