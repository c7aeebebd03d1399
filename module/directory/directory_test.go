package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySeedAndList(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	docs, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)

	require.NoError(t, s.Seed(ctx, []Doctor{
		{ID: "d1", Name: "Dr. Rao", Specialization: "Pediatric Dermatology"},
	}))

	docs, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Dr. Rao", docs[0].Name)
}
