package player

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/ewatari/crossqueue/internal/domain/track"
	"github.com/ewatari/crossqueue/internal/infra/config"
)

// Surfaces carries the native control surfaces handed over by the
// embed-initialization layer. Any of them may be nil when the embed has
// not come up; the corresponding adapter then no-ops.
type Surfaces struct {
	YouTube    YouTubeSurface
	Spotify    SpotifySurface
	SoundCloud SoundCloudSurface
}

type youtubeSettings struct {
	ContainerID string `mapstructure:"container_id" default:"youtube-player-container"`
}

type spotifySettings struct {
	ContainerID string `mapstructure:"container_id" default:"spotify-player-container"`
}

type soundcloudSettings struct {
	ContainerID  string `mapstructure:"container_id" default:"soundcloud-player-container"`
	TrackURLBase string `mapstructure:"track_url_base" default:"https://soundcloud.com/tracks/"`
}

// NewRegistryFromConfig builds adapters for each configured platform
// and registers them. Platforms without a config entry get an adapter
// with default settings, so an unconfigured player still resolves to a
// safe no-op rather than an empty slot.
func NewRegistryFromConfig(cfgs []config.PlayerConfig, surfaces Surfaces, host ContainerHost) (*Registry, error) {
	settings := make(map[track.Platform]map[string]any, len(cfgs))
	for _, pcfg := range cfgs {
		platform, ok := track.ParsePlatform(pcfg.Platform)
		if !ok {
			return nil, errors.Newf("unsupported player platform: %s", pcfg.Platform)
		}
		settings[platform] = pcfg.Settings
	}

	registry := NewRegistry()

	for _, platform := range track.Platforms {
		adapter, err := newAdapter(platform, settings[platform], surfaces, host)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to create %s adapter", platform)
		}
		registry.Register(platform, adapter)
		zlog.Debug().Msgf("player: registered %s adapter", platform)
	}

	return registry, nil
}

func newAdapter(platform track.Platform, raw map[string]any, surfaces Surfaces, host ContainerHost) (Player, error) {
	switch platform {
	case track.PlatformYouTube:
		var s youtubeSettings
		if err := decodeSettings(raw, &s); err != nil {
			return nil, err
		}
		return NewYouTube(surfaces.YouTube, host, s.ContainerID), nil

	case track.PlatformSpotify:
		var s spotifySettings
		if err := decodeSettings(raw, &s); err != nil {
			return nil, err
		}
		return NewSpotify(surfaces.Spotify, host, s.ContainerID), nil

	case track.PlatformSoundCloud:
		var s soundcloudSettings
		if err := decodeSettings(raw, &s); err != nil {
			return nil, err
		}
		return NewSoundCloud(surfaces.SoundCloud, host, s.ContainerID, s.TrackURLBase), nil

	default:
		return nil, errors.Newf("unsupported platform: %s", platform)
	}
}

func decodeSettings(raw map[string]any, out any) error {
	if raw != nil {
		if err := mapstructure.Decode(raw, out); err != nil {
			return errors.Wrap(err, "failed to decode settings")
		}
	}
	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	return nil
}
