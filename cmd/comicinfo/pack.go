package main

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/robinjoseph08/golib/logger"
	"github.com/urfave/cli/v2"

	"github.com/shishobooks/comicinfo/pkg/comic"
	"github.com/shishobooks/comicinfo/pkg/errcodes"
	"github.com/shishobooks/comicinfo/pkg/fileutils"
	"github.com/shishobooks/comicinfo/pkg/sidecar"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "where to write the result (defaults to an organized name in output_dir)",
	}
}

func keepNamesFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "keep-names",
		Usage: "store pages under their own names instead of page-001, page-002, ...",
	}
}

func packCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "pack",
		Usage:     "build a CBZ from page images",
		ArgsUsage: "<image>...",
		Flags: []cli.Flag{
			outputFlag(),
			keepNamesFlag(),
			&cli.StringSliceFlag{Name: "set", Usage: "set a ComicInfo field, as Name=Value (repeatable)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errcodes.ValidationError("args", "at least one image is required")
			}

			pages := make([]*comic.Page, 0, c.NArg())
			for _, path := range c.Args().Slice() {
				p, err := comic.LoadPage(path, comic.PageAttrs{})
				if err != nil {
					return err
				}
				pages = append(pages, p)
			}

			values, err := parseSets(c.StringSlice("set"))
			if err != nil {
				return err
			}
			cm, err := comic.FromValues(pages, values, r.comicOptions()...)
			if err != nil {
				return err
			}

			return r.save(c, cm)
		},
	}
}

// parseSets turns Name=Value pairs into decoder input.
func parseSets(sets []string) (url.Values, error) {
	values := url.Values{}
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errcodes.ValidationError("set", fmt.Sprintf("%q is not Name=Value", s))
		}
		values.Add(name, value)
	}
	return values, nil
}

// save writes cm as a CBZ to --output, or to an organized name in the output
// directory, plus a sidecar when configured.
func (r *runner) save(c *cli.Context, cm *comic.Comic) error {
	path := c.String("output")
	if path == "" {
		meta := cm.Metadata()
		name := fileutils.ComicFilename(fileutils.ComicFilenameOptions{
			Writer: meta.Writer,
			Series: meta.Series,
			Title:  meta.Title,
			Number: meta.Number,
			Volume: meta.Volume,
		})
		path = fileutils.UniqueFilepath(filepath.Join(r.cfg.OutputDir, name))
	}

	rename := r.cfg.RenamePages && !c.Bool("keep-names")
	if err := cm.Save(path, comic.WithRename(rename)); err != nil {
		return err
	}
	if r.cfg.WriteSidecar {
		if err := sidecar.WriteFromComic(path, cm); err != nil {
			return err
		}
	}

	r.log.Info("wrote comic", logger.Data{"path": path, "pages": cm.PageCount()})
	_, err := fmt.Fprintln(c.App.Writer, path)
	return err
}
