package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/faizan/catalog/config"
	"github.com/faizan/catalog/dto"
	"github.com/faizan/catalog/handlers"
	"github.com/faizan/catalog/logger"
	"github.com/faizan/catalog/service"
	"github.com/faizan/catalog/source"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	app := &cli.App{
		Name:  "catalog",
		Usage: "music catalog REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
				EnvVars: []string{"CATALOG_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{Name: "serve", Usage: "run the HTTP server", Action: serve},
			{Name: "migrate", Usage: "create or update the database schema", Action: migrate},
			{Name: "import", Usage: "import an album from Spotify", ArgsUsage: "<spotify-album-id>", Action: importAlbum},
		},
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("catalog failed")
	}
}

// setup loads the configuration, initializes logging and opens the database.
func setup(c *cli.Context) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}); err != nil {
		return nil, nil, err
	}

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newService(cfg *config.Config, db *gorm.DB) *service.CatalogService {
	var opts []service.Option
	if cfg.Spotify.Enabled() {
		opts = append(opts, service.WithAlbumSource(source.NewSpotify(cfg.Spotify.ClientID, cfg.Spotify.ClientSecret)))
	}
	return service.NewCatalogService(db, opts...)
}

func serve(c *cli.Context) error {
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := config.Migrate(db); err != nil {
			return err
		}
	}

	gin.SetMode(cfg.Server.Mode)
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handlers.SetupRouter(newService(cfg, db)),
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("starting catalog server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down catalog server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func migrate(c *cli.Context) error {
	_, db, err := setup(c)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}
	log.Info().Msg("schema up to date")
	return nil
}

func importAlbum(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: catalog import <spotify-album-id>", 2)
	}
	cfg, db, err := setup(c)
	if err != nil {
		return err
	}
	if !cfg.Spotify.Enabled() {
		return errors.New("spotify.client_id and spotify.client_secret must be set")
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	result, err := newService(cfg, db).ImportAlbum(c.Context, c.Args().First())
	if err != nil {
		return err
	}

	// Hyperlinks point at the configured server address.
	host := cfg.Server.Addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	out, err := json.MarshalIndent(dto.NewImportResponse(dto.LinkerFor("http://"+host), result), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
