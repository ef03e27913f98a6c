package oauth

// Config holds Discord OAuth2 configuration.
type Config struct {
	ClientID     string   `env:"DISCORD_CLIENT_ID,required"`
	ClientSecret string   `env:"DISCORD_CLIENT_SECRET,required"`
	RedirectURL  string   `env:"DISCORD_REDIRECT_URL,required"`
	Scopes       []string `env:"DISCORD_SCOPES" envSeparator:","`
	Prompt       string   `env:"DISCORD_PROMPT" envDefault:"consent"`
}

// DefaultScopes returns the default authorization scopes: enough to read
// the current account and its guild memberships.
func DefaultScopes() []string {
	return []string{"identify", "guilds"}
}
