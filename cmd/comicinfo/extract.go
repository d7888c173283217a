package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"

	"github.com/shishobooks/comicinfo/pkg/archive"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/fileutils"
)

func extractCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "write a comic's page images to a directory",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "directory to write pages to (defaults to the file name in output_dir)"},
			keepNamesFlag(),
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			path := c.Args().First()
			cm, err := r.open(path, false)
			if err != nil {
				return err
			}

			dir := c.String("output")
			if dir == "" {
				base := filepath.Base(path)
				dir = filepath.Join(r.cfg.OutputDir, strings.TrimSuffix(base, filepath.Ext(base)))
			}

			taken := map[string]bool{archive.MetadataName: true}
			for i, p := range cm.Pages() {
				name := fileutils.PageFilename(i, p.Suffix())
				if c.Bool("keep-names") && p.Name() != "" {
					name = filepath.Base(p.Name())
				}
				name = fileutils.UniqueName(name, taken)
				if err := p.Save(filepath.Join(dir, name)); err != nil {
					return err
				}
			}

			r.log.Info("extracted pages", logger.Data{"path": path, "dir": dir, "pages": cm.PageCount()})
			_, err = fmt.Fprintln(c.App.Writer, dir)
			return err
		},
	}
}

func pageCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "page",
		Usage:     "extract one page into the cache and print its path",
		ArgsUsage: "<file> <index>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Usage: "drop the comic's cached pages first"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 2); err != nil {
				return err
			}
			path := c.Args().Get(0)
			index, err := strconv.Atoi(c.Args().Get(1))
			if err != nil {
				return errcodes.ValidationError("index", fmt.Sprintf("%q is not a page index", c.Args().Get(1)))
			}

			if c.Bool("refresh") {
				if err := r.cache.Invalidate(path); err != nil {
					return err
				}
			}
			cached, mimeType, err := r.cache.GetPage(path, index)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "%s\t%s\n", cached, mimeType)
			return err
		},
	}
}
