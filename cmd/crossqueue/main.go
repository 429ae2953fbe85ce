// Package main provides the crossqueue command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/ewatari/crossqueue/internal/app/cache"
	"github.com/ewatari/crossqueue/internal/app/coordinator"
	"github.com/ewatari/crossqueue/internal/app/library"
	"github.com/ewatari/crossqueue/internal/app/player"
	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/infra/api"
	"github.com/ewatari/crossqueue/internal/infra/config"
	"github.com/ewatari/crossqueue/internal/infra/logger"
	"github.com/ewatari/crossqueue/internal/infra/platformurl"
	"github.com/ewatari/crossqueue/internal/infra/store"
)

var (
	app        = kingpin.New("crossqueue", "cross-platform playback queue tool")
	configPath = app.Flag("config", "Path to config file").Default("config/crossqueue.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()

	resolveCmd = app.Command("resolve", "Rehydrate the cached queue and print it").Default()

	fetchCmd = app.Command("fetch", "Fetch a playlist by share URL and set it as the queue")
	fetchURL = fetchCmd.Arg("url", "Playlist share URL").Required().String()

	saveCmd = app.Command("save", "Save a playlist to the library")
	saveURL = saveCmd.Arg("url", "Playlist share URL").Required().String()

	saveMixCmd   = app.Command("save-mix", "Save a mix of playlists to the library")
	saveMixTitle = saveMixCmd.Arg("title", "Mix title").Required().String()
	saveMixURLs  = saveMixCmd.Arg("urls", "Playlist share URLs").Required().Strings()

	libraryCmd = app.Command("library", "List saved playlists and mixes")

	clearCmd = app.Command("clear-cache", "Clear the cached queue identity")
)

func main() {
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := "info"
	if *verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Output: "stderr", Level: level}); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}
	if cfg.Log.Level != "" && !*verbose {
		_ = logger.Init(logger.Config{Output: "stderr", Level: cfg.Log.Level})
	}

	if err := run(command, cfg); err != nil {
		zlog.Error().Msgf("%v", err)
		os.Exit(1)
	}
}

func run(command string, cfg *config.Config) error {
	var st store.Store
	if cfg.Cache.Path != "" {
		fileStore, err := store.NewFileStore(cfg.Cache.Path)
		if err != nil {
			return err
		}
		st = fileStore
	} else {
		zlog.Debug().Msg("no cache path configured, state will not persist")
		st = store.NewMemoryStore()
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: time.Duration(cfg.API.TimeoutSec) * time.Second,
	})
	if err != nil {
		return err
	}

	lib := library.New(st)
	cacheMgr := cache.New(st, client, lib)

	// Headless: no embeds are up, adapters resolve to safe no-ops.
	registry, err := player.NewRegistryFromConfig(cfg.Players, player.Surfaces{}, nil)
	if err != nil {
		return err
	}

	coord := coordinator.New(registry, cacheMgr, coordinator.Config{
		AutoplayOnSet: cfg.Playback.AutoplayOnSet,
	})

	ctx := context.Background()

	switch command {
	case resolveCmd.FullCommand():
		return runResolve(ctx, coord)
	case fetchCmd.FullCommand():
		return runFetch(ctx, client, coord, *fetchURL)
	case saveCmd.FullCommand():
		return runSave(lib, *saveURL)
	case saveMixCmd.FullCommand():
		return runSaveMix(lib, *saveMixTitle, *saveMixURLs)
	case libraryCmd.FullCommand():
		return runLibrary(lib)
	case clearCmd.FullCommand():
		return cacheMgr.Clear()
	}
	return nil
}

func runResolve(ctx context.Context, coord *coordinator.Coordinator) error {
	if !coord.Rehydrate(ctx) {
		fmt.Println("nothing cached (or the cached queue could not be restored)")
		return nil
	}

	id, platform := coord.QueueSource()
	fmt.Printf("queue: %s (%s)\n", id, platform)
	printTracks(coord)
	return nil
}

func runFetch(ctx context.Context, client *api.Client, coord *coordinator.Coordinator, rawURL string) error {
	parsed, ok := platformurl.Parse(rawURL)
	if !ok {
		return fmt.Errorf("unrecognized playlist URL: %s", rawURL)
	}

	p, err := client.GetPlaylist(ctx, parsed.Platform, parsed.ID)
	if err != nil {
		return err
	}

	coord.SetQueue(p.Tracks, p.ID, string(p.Platform), 0)

	fmt.Printf("queue: %s — %s (%d tracks)\n", p.Title, p.Owner, p.Length)
	printTracks(coord)
	return nil
}

func runSave(lib *library.Library, rawURL string) error {
	parsed, ok := platformurl.Parse(rawURL)
	if !ok {
		return fmt.Errorf("unrecognized playlist URL: %s", rawURL)
	}

	if err := lib.SavePlaylist(playlist.Ref{ID: parsed.ID, Platform: string(parsed.Platform)}); err != nil {
		return err
	}
	fmt.Printf("saved %s/%s\n", parsed.Platform, parsed.ID)
	return nil
}

func runSaveMix(lib *library.Library, title string, rawURLs []string) error {
	refs := make([]playlist.Ref, 0, len(rawURLs))
	for _, rawURL := range rawURLs {
		parsed, ok := platformurl.Parse(rawURL)
		if !ok {
			return fmt.Errorf("unrecognized playlist URL: %s", rawURL)
		}
		refs = append(refs, playlist.Ref{ID: parsed.ID, Platform: string(parsed.Platform)})
	}

	if err := lib.SaveMix(playlist.Mix{Title: title, Playlists: refs}); err != nil {
		return err
	}
	fmt.Printf("saved mix %q with %d playlists\n", title, len(refs))
	return nil
}

func runLibrary(lib *library.Library) error {
	playlists := lib.SavedPlaylists()
	mixes := lib.SavedMixes()

	if len(playlists) == 0 && len(mixes) == 0 {
		fmt.Println("library is empty")
		return nil
	}

	for _, ref := range playlists {
		fmt.Printf("playlist  %s/%s\n", ref.Platform, ref.ID)
	}
	for _, mix := range mixes {
		fmt.Printf("mix       %q (%d playlists)\n", mix.Title, len(mix.Playlists))
	}
	return nil
}

func printTracks(coord *coordinator.Coordinator) {
	position := coord.Position()
	for i, tr := range coord.Tracks() {
		marker := "  "
		if i == position {
			marker = "> "
		}
		fmt.Printf("%s%3d  %-10s  %s — %s\n", marker, i, tr.Platform, tr.Title, tr.Owner)
	}
}
