package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/segmentio/encoding/json"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/shishobooks/comicinfo/pkg/comic"
	"github.com/shishobooks/comicinfo/pkg/sidecar"
)

func infoCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print a comic's metadata",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "xml", Usage: "print the ComicInfo.xml document"},
			&cli.BoolFlag{Name: "json", Usage: "print the metadata as JSON"},
			&cli.BoolFlag{Name: "sidecar", Usage: "apply the comic's .comicinfo.json sidecar, if any"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			path := c.Args().First()

			cm, err := r.open(path, c.Bool("sidecar"))
			if err != nil {
				return err
			}
			info := cm.Info()
			out := c.App.Writer

			switch {
			case c.Bool("xml"):
				doc, err := info.XML()
				if err != nil {
					return err
				}
				_, err = out.Write(append(doc, '\n'))
				return errors.WithStack(err)
			case c.Bool("json"):
				data, err := json.Marshal(info)
				if err != nil {
					return errors.WithStack(err)
				}
				_, err = fmt.Fprintln(out, string(data))
				return errors.WithStack(err)
			}

			sum, err := checksum(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "File: %s\n", filepath.Base(path))
			fmt.Fprintf(out, "Checksum: %s\n", sum)
			fmt.Fprintf(out, "Pages: %d\n", cm.PageCount())
			for _, el := range info.Elements {
				fmt.Fprintf(out, "%s: %s\n", el.Name, el.Value)
			}
			for _, cr := range cm.Metadata().Creators() {
				fmt.Fprintf(out, "Creator: %s (%s)\n", cr.Name, cr.Role)
			}
			for i, p := range cm.Pages() {
				fmt.Fprintf(out, "Page %d: %s %dx%d %s\n", i, p.Attrs().Type.Resolve(i), p.ImageWidth(), p.ImageHeight(), p.MimeType())
			}
			return nil
		},
	}
}

// open reads the comic at path, optionally overlaying the metadata in its
// sidecar.
func (r *runner) open(path string, withSidecar bool) (*comic.Comic, error) {
	cm, err := comic.Open(path, r.comicOptions()...)
	if err != nil {
		return nil, err
	}
	if !withSidecar {
		return cm, nil
	}

	s, err := sidecar.Read(path)
	if err != nil || s == nil {
		return cm, err
	}
	meta, err := s.Metadata()
	if err != nil {
		return nil, err
	}
	// Recomputed from the pages on export.
	meta.FileSize = -1
	if err := cm.SetMetadata(meta); err != nil {
		return nil, err
	}
	r.log.Debug("applied sidecar", logger.Data{"path": sidecar.Path(path)})
	return cm, nil
}

func checksum(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
