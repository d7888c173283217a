package archive

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"

	"github.com/shishobooks/comicinfo/pkg/errcodes"
)

func init() {
	// Keep pdfcpu from creating a config directory under the user's home.
	api.DisableConfigDir()
}

type pdfImage struct {
	page int
	obj  int
	name string
	data []byte
}

// PDFReader exposes the embedded images of a PDF as entries, ordered by page
// and, within a page, by the order the content stream draws them. It's
// read-only: PDFs are a source, never a target.
type PDFReader struct {
	images []pdfImage
	byName map[string]int
}

// OpenPDF extracts every image embedded in the PDF at path. Entry names look
// like "page-<page>-<object>.<ext>".
func OpenPDF(path string, opts Options) (*PDFReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errcodes.NotAnArchive(path, err)
	}
	defer f.Close()

	log := opts.logger()
	maxSize := opts.maxEntrySize()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.Cmd = model.EXTRACTIMAGES

	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, errcodes.NotAnArchive(path, err)
	}

	var images []pdfImage
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		found, err := pdfcpu.ExtractPageImages(ctx, pageNr, false)
		if err != nil {
			return nil, errcodes.DecodeError(path, err)
		}
		if len(found) == 0 {
			continue
		}

		order, err := pageDrawOrder(ctx, pageNr)
		if err != nil {
			log.Warn("can't read pdf page content, using object order", logger.Data{"page": pageNr, "error": err.Error()})
		}

		pageImages := make([]model.Image, 0, len(found))
		for _, img := range found {
			if img.Thumb {
				continue
			}
			pageImages = append(pageImages, img)
		}
		sortByDrawOrder(pageImages, order)

		for _, img := range pageImages {
			data, err := io.ReadAll(io.LimitReader(img, maxSize+1))
			if err != nil {
				return nil, errcodes.DecodeError(path, err)
			}
			if int64(len(data)) > maxSize {
				log.Warn("skipping oversized pdf image", logger.Data{"page": img.PageNr, "object": img.ObjNr})
				continue
			}
			images = append(images, pdfImage{
				page: pageNr,
				obj:  img.ObjNr,
				name: fmt.Sprintf("page-%d-%d.%s", pageNr, img.ObjNr, img.FileType),
				data: data,
			})
		}
	}

	r := &PDFReader{images: images, byName: make(map[string]int, len(images))}
	for i, img := range images {
		r.byName[img.name] = i
	}
	return r, nil
}

// sortByDrawOrder puts the images of one page in the order their resource
// names are first drawn. Images the page content never draws directly (for
// example ones inside form XObjects) follow, by object number.
func sortByDrawOrder(images []model.Image, order map[string]int) {
	rank := func(img model.Image) int {
		if i, ok := order[img.Name]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(images, func(i, j int) bool {
		ri, rj := rank(images[i]), rank(images[j])
		if ri != rj {
			return ri < rj
		}
		return images[i].ObjNr < images[j].ObjNr
	})
}

func pageDrawOrder(ctx *model.Context, pageNr int) (map[string]int, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return xobjectDrawOrder(content), nil
}

func (r *PDFReader) Entries() []string {
	names := make([]string, len(r.images))
	for i, img := range r.images {
		names[i] = img.name
	}
	return names
}

func (r *PDFReader) ReadEntry(name string) ([]byte, error) {
	i, ok := r.byName[name]
	if !ok {
		return nil, errcodes.MissingRequiredEntry(name)
	}
	return r.images[i].data, nil
}

func (r *PDFReader) Close() error {
	r.images = nil
	return nil
}
