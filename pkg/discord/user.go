package discord

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	cdnBaseURL = "https://cdn.discordapp.com"

	// animatedHashPrefix marks an avatar or icon hash as an animated asset.
	animatedHashPrefix = "a_"

	staticImageFormat   = "png"
	animatedImageFormat = "gif"

	defaultAvatarVariants = 5
)

// User is the authenticated Discord account. It is immutable except for the
// guild memberships, which are attached once per refresh cycle via WithGuilds.
type User struct {
	ID            uint64
	Username      string
	Discriminator string
	AvatarHash    string // empty when the account has no custom avatar

	guilds map[uint64]Guild
}

type userPayload struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`
}

func newUser(p userPayload) (*User, error) {
	id, err := strconv.ParseUint(p.ID, 10, 64)
	if err != nil {
		return nil, errors.Join(ErrDecodeFailed, fmt.Errorf("parse user id %q: %w", p.ID, err))
	}

	u := &User{
		ID:            id,
		Username:      p.Username,
		Discriminator: p.Discriminator,
	}
	if p.Avatar != nil {
		u.AvatarHash = *p.Avatar
	}
	return u, nil
}

// AvatarAnimated reports whether the user's avatar is an animated asset.
func (u *User) AvatarAnimated() bool {
	return strings.HasPrefix(u.AvatarHash, animatedHashPrefix)
}

// AvatarURL derives the CDN URL for the user's avatar. Accounts without a
// custom avatar resolve to one of the default avatars, selected by the
// discriminator modulo 5.
func (u *User) AvatarURL() string {
	if u.AvatarHash == "" {
		n, _ := strconv.Atoi(u.Discriminator)
		return fmt.Sprintf("%s/embed/avatars/%d.%s", cdnBaseURL, n%defaultAvatarVariants, staticImageFormat)
	}

	format := staticImageFormat
	if u.AvatarAnimated() {
		format = animatedImageFormat
	}
	return fmt.Sprintf("%s/avatars/%d/%s.%s", cdnBaseURL, u.ID, u.AvatarHash, format)
}

// Guilds returns the user's guild memberships sorted by guild ID.
// The boolean is false until a guild fetch has populated the user.
// The returned slice is freshly built on every call; callers may keep it
// without aliasing the cached user.
func (u *User) Guilds() ([]Guild, bool) {
	if len(u.guilds) == 0 {
		return nil, false
	}

	list := make([]Guild, 0, len(u.guilds))
	for _, g := range u.guilds {
		list = append(list, g)
	}
	slices.SortFunc(list, func(a, b Guild) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return list, true
}

// WithGuilds returns a copy of the user with the given memberships attached.
// The original user is left untouched so concurrent readers of a cached
// entry never observe a partially updated value.
func (u *User) WithGuilds(guilds map[uint64]Guild) *User {
	clone := *u
	clone.guilds = guilds
	return &clone
}
