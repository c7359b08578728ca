package pdfsource

import (
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

type imageSource struct {
	file *os.File
	ctx  *model.Context
}

func openImageSource(path string) (*imageSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		f.Close()
		return nil, err
	}
	return &imageSource{file: f, ctx: ctx}, nil
}

func (s *imageSource) pageCount() int {
	return s.ctx.PageCount
}

func (s *imageSource) close() error {
	return s.file.Close()
}

// hasImages reports whether any page references an image XObject. The
// per-page lookup needs optimization data, and it misses images some
// producers bury in form XObjects, so a scan of the cross-reference
// table backs it up.
func (s *imageSource) hasImages() bool {
	if s.ctx.Optimize != nil {
		for pageNr := 1; pageNr <= s.ctx.PageCount; pageNr++ {
			if len(pdfcpu.ImageObjNrs(s.ctx, pageNr)) > 0 {
				return true
			}
		}
	}
	for _, entry := range s.ctx.Table {
		if entry == nil || entry.Free || entry.Compressed {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		if subtype, found := sd.Find("Subtype"); found {
			if name, isName := subtype.(types.Name); isName && name == "Image" {
				return true
			}
		}
	}
	return false
}

func (s *imageSource) pageImages(pageNr int) ([]PageImage, error) {
	extracted, err := pdfcpu.ExtractPageImages(s.ctx, pageNr, false)
	if err != nil {
		return nil, err
	}

	objNrs := make([]int, 0, len(extracted))
	for objNr := range extracted {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	images := make([]PageImage, 0, len(extracted))
	for _, objNr := range objNrs {
		img := extracted[objNr]
		data, err := io.ReadAll(img)
		if err != nil {
			continue
		}
		if len(data) == 0 {
			continue
		}
		images = append(images, PageImage{Data: data, Type: img.FileType})
	}
	return images, nil
}
