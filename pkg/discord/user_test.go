package discord_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/discordkit/pkg/discord"
)

func TestUser_AvatarURL(t *testing.T) {
	t.Parallel()

	t.Run("default avatar from discriminator", func(t *testing.T) {
		t.Parallel()

		u := &discord.User{ID: 1, Username: "nelly", Discriminator: "7"}
		require.Equal(t, "https://cdn.discordapp.com/embed/avatars/2.png", u.AvatarURL())
	})

	t.Run("default avatar wraps modulo five", func(t *testing.T) {
		t.Parallel()

		u := &discord.User{ID: 1, Username: "nelly", Discriminator: "1337"}
		require.Equal(t, "https://cdn.discordapp.com/embed/avatars/2.png", u.AvatarURL())
	})

	t.Run("static avatar", func(t *testing.T) {
		t.Parallel()

		u := &discord.User{ID: 80351110224678912, Discriminator: "1337", AvatarHash: "abc123"}
		require.Equal(t, "https://cdn.discordapp.com/avatars/80351110224678912/abc123.png", u.AvatarURL())
		require.False(t, u.AvatarAnimated())
	})

	t.Run("animated avatar", func(t *testing.T) {
		t.Parallel()

		u := &discord.User{ID: 80351110224678912, Discriminator: "1337", AvatarHash: "a_abc"}
		require.Equal(t, "https://cdn.discordapp.com/avatars/80351110224678912/a_abc.gif", u.AvatarURL())
		require.True(t, u.AvatarAnimated())
	})
}

func TestUser_Guilds(t *testing.T) {
	t.Parallel()

	t.Run("absent until attached", func(t *testing.T) {
		t.Parallel()

		u := &discord.User{ID: 1}
		guilds, ok := u.Guilds()
		require.False(t, ok)
		require.Nil(t, guilds)
	})

	t.Run("sorted by guild ID", func(t *testing.T) {
		t.Parallel()

		u := (&discord.User{ID: 1}).WithGuilds(map[uint64]discord.Guild{
			30: {ID: 30, Name: "c"},
			10: {ID: 10, Name: "a"},
			20: {ID: 20, Name: "b"},
		})

		guilds, ok := u.Guilds()
		require.True(t, ok)
		require.Len(t, guilds, 3)
		require.Equal(t, uint64(10), guilds[0].ID)
		require.Equal(t, uint64(20), guilds[1].ID)
		require.Equal(t, uint64(30), guilds[2].ID)
	})

	t.Run("WithGuilds leaves the original untouched", func(t *testing.T) {
		t.Parallel()

		orig := &discord.User{ID: 1, Username: "nelly"}
		updated := orig.WithGuilds(map[uint64]discord.Guild{1: {ID: 1}})

		_, ok := orig.Guilds()
		require.False(t, ok)

		guilds, ok := updated.Guilds()
		require.True(t, ok)
		require.Len(t, guilds, 1)
		require.Equal(t, orig.Username, updated.Username)
	})

	t.Run("returned slice is a fresh copy", func(t *testing.T) {
		t.Parallel()

		u := (&discord.User{ID: 1}).WithGuilds(map[uint64]discord.Guild{
			1: {ID: 1, Name: "a"},
			2: {ID: 2, Name: "b"},
		})

		first, _ := u.Guilds()
		first[0] = discord.Guild{ID: 99, Name: "mutated"}

		second, _ := u.Guilds()
		require.Equal(t, uint64(1), second[0].ID)
	})
}

func TestGuild_IconURL(t *testing.T) {
	t.Parallel()

	t.Run("no icon", func(t *testing.T) {
		t.Parallel()

		g := discord.Guild{ID: 1, Name: "krew"}
		require.Empty(t, g.IconURL())
	})

	t.Run("static icon", func(t *testing.T) {
		t.Parallel()

		g := discord.Guild{ID: 80351110224678912, IconHash: "8342729096ea3675442027381ff50dfe"}
		require.Equal(t,
			"https://cdn.discordapp.com/icons/80351110224678912/8342729096ea3675442027381ff50dfe.png",
			g.IconURL(),
		)
	})

	t.Run("animated icon", func(t *testing.T) {
		t.Parallel()

		g := discord.Guild{ID: 42, IconHash: "a_icon"}
		require.Equal(t, "https://cdn.discordapp.com/icons/42/a_icon.gif", g.IconURL())
		require.True(t, g.IconAnimated())
	})
}
