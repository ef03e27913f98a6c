package discord

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Guild is a guild membership of the authenticated user. Guilds are
// immutable value objects; the permission bitmask is preserved opaquely.
type Guild struct {
	ID          uint64
	Name        string
	IconHash    string // empty when the guild has no icon
	Owner       bool
	Permissions uint64
	Features    []string
}

type guildPayload struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Icon        *string     `json:"icon"`
	Owner       bool        `json:"owner"`
	Permissions json.Number `json:"permissions"`
	Features    []string    `json:"features"`
}

func newGuild(p guildPayload) (Guild, error) {
	id, err := strconv.ParseUint(p.ID, 10, 64)
	if err != nil {
		return Guild{}, errors.Join(ErrDecodeFailed, fmt.Errorf("parse guild id %q: %w", p.ID, err))
	}

	var perms uint64
	if p.Permissions != "" {
		perms, err = strconv.ParseUint(p.Permissions.String(), 10, 64)
		if err != nil {
			return Guild{}, errors.Join(ErrDecodeFailed, fmt.Errorf("parse guild permissions %q: %w", p.Permissions, err))
		}
	}

	g := Guild{
		ID:          id,
		Name:        p.Name,
		Owner:       p.Owner,
		Permissions: perms,
		Features:    p.Features,
	}
	if p.Icon != nil {
		g.IconHash = *p.Icon
	}
	return g, nil
}

// IconAnimated reports whether the guild's icon is an animated asset.
func (g Guild) IconAnimated() bool {
	return strings.HasPrefix(g.IconHash, animatedHashPrefix)
}

// IconURL derives the CDN URL for the guild's icon, or an empty string
// when the guild has none.
func (g Guild) IconURL() string {
	if g.IconHash == "" {
		return ""
	}

	format := staticImageFormat
	if g.IconAnimated() {
		format = animatedImageFormat
	}
	return fmt.Sprintf("%s/icons/%d/%s.%s", cdnBaseURL, g.ID, g.IconHash, format)
}
