package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/comic"
)

func main() {
	log := logger.New()

	var opts struct {
		CoverOutput string `short:"o" long:"cover-output" description:"A path to output the cover image"`
		XML         bool   `short:"x" long:"xml" description:"Print the ComicInfo.xml document"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	if len(args) != 1 {
		fmt.Println("go run ./cmd/scripts/debug/parse-comic <path/to/file.cbz>")
		os.Exit(1)
	}

	c, err := comic.Open(args[0], comic.WithLogger(log))
	if err != nil {
		log.Err(err).Fatal("comic parse error")
	}

	info := c.Info()
	if opts.XML {
		doc, err := info.XML()
		if err != nil {
			log.Err(err).Fatal("xml error")
		}
		fmt.Println(string(doc))
	} else {
		for _, el := range info.Elements {
			fmt.Printf("%s: %q\n", el.Name, el.Value)
		}
		fmt.Printf("PageCount: %d\n", c.PageCount())
		for i, p := range c.Pages() {
			fmt.Printf("Page %d: %s %s %dx%d %d bytes\n", i, p.Name(), p.Attrs().Type.Resolve(i), p.ImageWidth(), p.ImageHeight(), p.ImageSize())
		}
	}

	if opts.CoverOutput != "" && c.PageCount() > 0 {
		if err := c.Pages()[0].Save(opts.CoverOutput); err != nil {
			log.Err(err).Fatal("file write error")
		}
	}
}
