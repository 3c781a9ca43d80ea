package bots

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAssignsID(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	id, err := r.Register(Bot{Label: "Momentum"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	bot, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Momentum", bot.Label)
}

func TestRegistry_RegisterRejectsEmptyLabel(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	_, err := r.Register(Bot{})
	assert.Error(t, err)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_ListPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	for _, label := range []string{"Zulu", "Alpha", "Mike"} {
		_, err := r.Register(Bot{Label: label})
		require.NoError(t, err)
	}

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "Zulu", list[0].Label)
	assert.Equal(t, "Alpha", list[1].Label)
	assert.Equal(t, "Mike", list[2].Label)
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	_, err := r.Register(Bot{ID: "a", Label: "First"})
	require.NoError(t, err)
	_, err = r.Register(Bot{ID: "b", Label: "Second"})
	require.NoError(t, err)

	// Re-registering "a" renames it but keeps its slot (and therefore
	// its color index)
	_, err = r.Register(Bot{ID: "a", Label: "Renamed"})
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Renamed", list[0].Label)
	assert.Equal(t, "Second", list[1].Label)
}

func TestRegistry_UpdateValues(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	id, err := r.Register(Bot{Label: "Momentum"})
	require.NoError(t, err)

	require.NoError(t, r.UpdateValues(id, 12.5, 4.0))

	bot, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 12.5, bot.LiveValue)
	assert.Equal(t, 4.0, bot.RealizedValue)

	assert.Error(t, r.UpdateValues("missing", 1, 1))
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	_, err := r.Get("nope")
	assert.Error(t, err)
}

func TestRegistry_ListReturnsCopies(t *testing.T) {
	r := NewRegistry(nil, zerolog.Nop())

	id, err := r.Register(Bot{Label: "Momentum"})
	require.NoError(t, err)

	list := r.List()
	list[0].Label = "Mutated"

	bot, err := r.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Momentum", bot.Label, "callers must not reach registry internals")
}
