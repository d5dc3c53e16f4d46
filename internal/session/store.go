// Package session persists the local client session: the API token, the
// navigation intent captured when an unauthenticated action is interrupted,
// and the one-shot guided-tour flag.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".terracarta"
	configFileName = "session"
	configFileType = "yaml"

	// DefaultAPIBaseURL is used when neither the session file nor the
	// environment overrides it.
	DefaultAPIBaseURL = "https://api.terracarta.io"
)

// NavigationIntent is the destination a user was heading to when an auth
// detour interrupted them. Login replays it instead of dropping the user at
// the workspace list.
type NavigationIntent struct {
	WorkspaceID string `mapstructure:"workspace_id" yaml:"workspace_id"`
	Path        string `mapstructure:"path" yaml:"path"`
}

// State is the persisted session file.
type State struct {
	APIBaseURL  string            `mapstructure:"api_base_url" yaml:"api_base_url"`
	Token       string            `mapstructure:"token" yaml:"token"`
	Intent      *NavigationIntent `mapstructure:"intent" yaml:"intent,omitempty"`
	TourPending bool              `mapstructure:"tour_pending" yaml:"tour_pending"`
}

// Store loads and saves session state under $HOME/.terracarta. Environment
// variables (TERRACARTA_API_URL, TERRACARTA_TOKEN) override the file.
type Store struct {
	dir   string
	state State
}

// NewStore opens the session store in dir; an empty dir resolves to
// $HOME/.terracarta.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, configDirName)
	}

	s := &Store{dir: dir}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(s.dir)

	v.SetDefault("api_base_url", DefaultAPIBaseURL)

	v.SetEnvPrefix("TERRACARTA")
	v.AutomaticEnv()
	if err := v.BindEnv("api_base_url", "TERRACARTA_API_URL"); err != nil {
		log.Warn().Err(err).Msg("failed to bind TERRACARTA_API_URL")
	}
	if err := v.BindEnv("token", "TERRACARTA_TOKEN"); err != nil {
		log.Warn().Err(err).Msg("failed to bind TERRACARTA_TOKEN")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading session file: %w", err)
		}
		log.Debug().Msg("session file not found, using environment and defaults")
	}

	if err := v.Unmarshal(&s.state); err != nil {
		return fmt.Errorf("unable to decode session file: %w", err)
	}

	return nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configFileType)
	v.Set("api_base_url", s.state.APIBaseURL)
	v.Set("token", s.state.Token)
	v.Set("tour_pending", s.state.TourPending)
	if s.state.Intent != nil {
		v.Set("intent.workspace_id", s.state.Intent.WorkspaceID)
		v.Set("intent.path", s.state.Intent.Path)
	}

	path := filepath.Join(s.dir, configFileName+"."+configFileType)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// APIBaseURL returns the configured API endpoint.
func (s *Store) APIBaseURL() string {
	if s.state.APIBaseURL == "" {
		return DefaultAPIBaseURL
	}
	return s.state.APIBaseURL
}

// Token returns the stored bearer token.
func (s *Store) Token() string {
	return s.state.Token
}

// SetToken stores a bearer token.
func (s *Store) SetToken(token string) error {
	s.state.Token = token
	return s.save()
}

// ClearToken removes the stored token.
func (s *Store) ClearToken() error {
	s.state.Token = ""
	return s.save()
}

// HasValidToken reports whether a token exists and, when it is a JWT with an
// expiry claim, whether it is still live. Opaque tokens pass; the server
// remains the authority and will reject them if stale.
func (s *Store) HasValidToken() bool {
	token := s.state.Token
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return claims.ExpiresAt.After(time.Now())
}

// SetIntent persists the destination to resume after login.
func (s *Store) SetIntent(intent NavigationIntent) error {
	s.state.Intent = &intent
	return s.save()
}

// TakeIntent returns and clears the pending navigation intent.
func (s *Store) TakeIntent() (NavigationIntent, bool) {
	if s.state.Intent == nil {
		return NavigationIntent{}, false
	}
	intent := *s.state.Intent
	s.state.Intent = nil
	if err := s.save(); err != nil {
		log.Warn().Err(err).Msg("failed to clear navigation intent")
	}
	return intent, true
}

// TourPending reports whether the one-shot guided tour should run after the
// next successful folder load.
func (s *Store) TourPending() bool {
	return s.state.TourPending
}

// SetTourPending arms the guided tour (set by the onboarding flow).
func (s *Store) SetTourPending(pending bool) error {
	s.state.TourPending = pending
	return s.save()
}

// ClearTourPending disarms the guided tour after it has run.
func (s *Store) ClearTourPending() {
	s.state.TourPending = false
	if err := s.save(); err != nil {
		log.Warn().Err(err).Msg("failed to clear tour flag")
	}
}
