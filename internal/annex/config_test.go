package annex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmaren/bookannex/internal/entities"
)

func TestLoadConfig_Defaults(t *testing.T) {
	store := setupTestStore(t)

	cfg, err := store.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, entities.KnownConfigDefaults, cfg)
}

func TestSaveConfig_DirtyTracking(t *testing.T) {
	store := setupTestStore(t)

	written, err := store.SaveConfig(map[string]string{
		entities.ConfigNamePageSize:       "50",
		entities.ConfigNameDisplayAppName: "My Shelf",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	// Unchanged values are not rewritten.
	written, err = store.SaveConfig(map[string]string{
		entities.ConfigNamePageSize:       "50",
		entities.ConfigNameDisplayAppName: "My Shelf",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	// Only the differing entry is written.
	written, err = store.SaveConfig(map[string]string{
		entities.ConfigNamePageSize:       "25",
		entities.ConfigNameDisplayAppName: "My Shelf",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	cfg, err := store.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "25", cfg[entities.ConfigNamePageSize])
	assert.Equal(t, "My Shelf", cfg[entities.ConfigNameDisplayAppName])
}

func TestSaveConfig_UnknownNamesAcceptedButNotLoaded(t *testing.T) {
	store := setupTestStore(t)

	// Forward compatibility: unknown names are stored without complaint.
	written, err := store.SaveConfig(map[string]string{"future_feature": "on"})
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	// But LoadConfig only exposes the recognized set.
	cfg, err := store.LoadConfig()
	require.NoError(t, err)
	_, ok := cfg["future_feature"]
	assert.False(t, ok)
}

func TestConfigValue(t *testing.T) {
	store := setupTestStore(t)

	// Falls back to the default before anything is stored.
	val, err := store.ConfigValue(entities.ConfigNamePageSize)
	require.NoError(t, err)
	assert.Equal(t, entities.KnownConfigDefaults[entities.ConfigNamePageSize], val)

	_, err = store.SaveConfig(map[string]string{entities.ConfigNamePageSize: "99"})
	require.NoError(t, err)

	val, err = store.ConfigValue(entities.ConfigNamePageSize)
	require.NoError(t, err)
	assert.Equal(t, "99", val)

	// Unknown names yield the empty string, not an error.
	val, err = store.ConfigValue("no_such_name")
	require.NoError(t, err)
	assert.Empty(t, val)
}
