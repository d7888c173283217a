package main

import (
	"fmt"
	"io"
	"os"

	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/cbzpages"
	"github.com/shishobooks/comicinfo/pkg/comic"
	"github.com/shishobooks/comicinfo/pkg/config"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/version"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}
	log = logger.NewWithLevel(cfg.LogLevel)

	app := newApp(cfg, log, os.Stdout)
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Error("command failed", logger.Data{"code": errcodes.Code(err)})
		os.Exit(errcodes.ExitCode(err))
	}
}

// runner carries what every command needs.
type runner struct {
	cfg   *config.Config
	log   logger.Logger
	cache *cbzpages.Cache
}

func (r *runner) comicOptions() []comic.Option {
	return []comic.Option{
		comic.WithLogger(r.log),
		comic.WithMaxEntrySize(r.cfg.MaxEntrySize),
	}
}

func newApp(cfg *config.Config, log logger.Logger, out io.Writer) *cli.App {
	r := &runner{
		cfg:   cfg,
		log:   log,
		cache: cbzpages.NewCache(cfg.CacheDir, archiveOptions(cfg, log)),
	}

	return &cli.App{
		Name:        "comicinfo",
		Usage:       "read, write and convert ComicInfo comic archives",
		Description: "Reads CBZ, CBR and PDF comics and writes CBZ archives with a ComicInfo.xml",
		Version:     version.Version,
		Writer:      out,
		// --set values routinely contain commas.
		DisableSliceFlagSeparator: true,
		Commands: []*cli.Command{
			infoCommand(r),
			packCommand(r),
			convertCommand(r),
			extractCommand(r),
			pageCommand(r),
		},
	}
}

func archiveOptions(cfg *config.Config, log logger.Logger) archive.Options {
	return archive.Options{MaxEntrySize: cfg.MaxEntrySize, Logger: &log}
}

func requireArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return errcodes.ValidationError("args", fmt.Sprintf("expected %d argument(s), got %d: %s %s", n, c.NArg(), c.Command.Name, c.Command.ArgsUsage))
	}
	return nil
}
