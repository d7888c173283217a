package main

import (
	"github.com/urfave/cli/v2"
)

func convertCommand(r *runner) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "rewrite a CBZ, CBR or PDF as a CBZ with ComicInfo.xml",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			outputFlag(),
			keepNamesFlag(),
			&cli.BoolFlag{Name: "no-sidecar", Usage: "ignore the comic's .comicinfo.json sidecar"},
		},
		Action: func(c *cli.Context) error {
			if err := requireArgs(c, 1); err != nil {
				return err
			}
			cm, err := r.open(c.Args().First(), !c.Bool("no-sidecar"))
			if err != nil {
				return err
			}
			return r.save(c, cm)
		},
	}
}
