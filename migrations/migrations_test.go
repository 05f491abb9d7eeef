package migrations

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsAreOrdered(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)

	for _, version := range []uint{first, next} {
		up, _, err := src.ReadUp(version)
		require.NoError(t, err)
		up.Close()

		down, _, err := src.ReadDown(version)
		require.NoError(t, err)
		down.Close()
	}
}

func TestEventsMigrationGuardsInventory(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	r, _, err := src.ReadUp(2)
	require.NoError(t, err)
	defer r.Close()

	body, err := io.ReadAll(r)
	require.NoError(t, err)

	ddl := string(body)
	assert.Contains(t, ddl, "available_tickets >= 0 AND available_tickets <= total_capacity")
	assert.Contains(t, ddl, "version")
}
