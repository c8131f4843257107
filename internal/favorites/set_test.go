package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSet_Toggle(t *testing.T) {
	s := NewSet()

	assert.True(t, s.Toggle(3))
	assert.True(t, s.Has(3))
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.Toggle(3))
	assert.False(t, s.Has(3))
	assert.Equal(t, 0, s.Len())
}

func TestSet_KeepsInsertionOrder(t *testing.T) {
	s := NewSet(5, 1, 5, 9)
	assert.Equal(t, []int64{5, 1, 9}, s.IDs())

	s.Toggle(1)
	s.Toggle(2)
	s.Toggle(1)
	assert.Equal(t, []int64{5, 9, 2, 1}, s.IDs())
}

func TestSet_IDsIsACopy(t *testing.T) {
	s := NewSet(1, 2)
	ids := s.IDs()
	ids[0] = 42
	assert.Equal(t, []int64{1, 2}, s.IDs())
}

func TestSet_Nil(t *testing.T) {
	var s *Set
	assert.False(t, s.Has(1))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []int64{}, s.IDs())
	assert.True(t, s.Equal(NewSet()))
}

func TestSet_CloneIsIndependent(t *testing.T) {
	s := NewSet(1, 2)
	c := s.Clone()
	c.Toggle(3)
	assert.False(t, s.Has(3))
	assert.True(t, c.Has(3))
}

func TestSet_Equal(t *testing.T) {
	assert.True(t, NewSet(1, 2).Equal(NewSet(2, 1)))
	assert.False(t, NewSet(1, 2).Equal(NewSet(1)))
	assert.False(t, NewSet(1, 2).Equal(NewSet(1, 3)))
}

func TestSet_TogglePairIsIdentity_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.SliceOf(rapid.Int64Range(-5, 20)).Draw(t, "initial")
		id := rapid.Int64Range(-5, 20).Draw(t, "id")

		s := NewSet(initial...)
		before := s.Clone()

		s.Toggle(id)
		s.Toggle(id)

		if !s.Equal(before) {
			t.Fatalf("toggle pair changed set: %v -> %v", before.IDs(), s.IDs())
		}
	})
}
