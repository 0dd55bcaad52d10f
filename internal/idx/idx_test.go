package idx

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_UniqueAndValid(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := New()
		require.True(t, Valid(id))
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestNew_SortsByCreationOrder(t *testing.T) {
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}
	require.True(t, sort.StringsAreSorted(ids), "ids must be monotonic")
}

func TestValid_RejectsGarbage(t *testing.T) {
	require.False(t, Valid(""))
	require.False(t, Valid("not-a-ulid"))
}
