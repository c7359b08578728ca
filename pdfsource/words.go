package pdfsource

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/transcripta/model"
)

// defaultPageHeight is the US Letter height in points, used when a
// page carries no resolvable MediaBox.
const defaultPageHeight = 792.0

// runGapTolerance is the maximum horizontal gap, in points, between
// two text items that still belong to the same run.
const runGapTolerance = 1.5

type textLayer struct {
	file   *os.File
	reader *pdf.Reader
}

func openTextLayer(path string) (*textLayer, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	return &textLayer{file: f, reader: r}, nil
}

func (t *textLayer) pageCount() int {
	return t.reader.NumPage()
}

func (t *textLayer) close() error {
	return t.file.Close()
}

func (t *textLayer) extractWords(pageNr int) (words []model.Word, err error) {
	// The content-stream interpreter panics on some malformed pages.
	// Treat such a page as empty rather than abandoning the document.
	defer func() {
		if r := recover(); r != nil {
			words, err = nil, nil
		}
	}()

	if pageNr < 1 || pageNr > t.reader.NumPage() {
		return nil, fmt.Errorf("pdfsource: page %d out of range", pageNr)
	}
	page := t.reader.Page(pageNr)
	if page.V.IsNull() {
		return nil, nil
	}

	height := pageHeight(page)
	items := page.Content().Text

	for _, run := range mergeRuns(items) {
		for _, w := range run.split() {
			w.Page = pageNr
			w.Y0 = height - w.Y0
			w.Y1 = height - w.Y1
			w.Y0, w.Y1 = math.Min(w.Y0, w.Y1), math.Max(w.Y0, w.Y1)
			words = append(words, w)
		}
	}

	sort.SliceStable(words, func(i, j int) bool {
		if words[i].Y0 != words[j].Y0 {
			return words[i].Y0 < words[j].Y0
		}
		return words[i].X0 < words[j].X0
	})
	return words, nil
}

func (t *textLayer) extractText(pageNr int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", nil
		}
	}()

	if pageNr < 1 || pageNr > t.reader.NumPage() {
		return "", fmt.Errorf("pdfsource: page %d out of range", pageNr)
	}
	page := t.reader.Page(pageNr)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// pageHeight resolves the page's MediaBox height, walking up the page
// tree for inherited boxes. The walk is bounded so a cyclic Parent
// chain cannot hang extraction.
func pageHeight(page pdf.Page) float64 {
	box := page.V.Key("MediaBox")
	if box.IsNull() {
		parent := page.V.Key("Parent")
		for i := 0; i < 8 && !parent.IsNull(); i++ {
			if b := parent.Key("MediaBox"); !b.IsNull() {
				box = b
				break
			}
			parent = parent.Key("Parent")
		}
	}
	if box.IsNull() || box.Len() < 4 {
		return defaultPageHeight
	}
	h := box.Index(3).Float64() - box.Index(1).Float64()
	if h <= 0 {
		return defaultPageHeight
	}
	return h
}

// textRun is a horizontal sequence of text items on one baseline,
// still in the PDF's bottom-up coordinates.
type textRun struct {
	text     string
	x0, x1   float64
	baseline float64
	fontSize float64
}

// mergeRuns joins adjacent show-string items into runs. Items stay in
// one run while they sit on the same baseline and the horizontal gap
// between them is within runGapTolerance.
func mergeRuns(items []pdf.Text) []textRun {
	var runs []textRun
	var cur *textRun

	flush := func() {
		if cur != nil && strings.TrimSpace(cur.text) != "" {
			runs = append(runs, *cur)
		}
		cur = nil
	}

	for _, it := range items {
		if it.S == "" {
			continue
		}
		sameLine := cur != nil && math.Abs(it.Y-cur.baseline) <= 0.5*math.Max(cur.fontSize, 1)
		adjacent := cur != nil && it.X-cur.x1 <= runGapTolerance && it.X >= cur.x0
		if !sameLine || !adjacent {
			flush()
			cur = &textRun{
				text:     it.S,
				x0:       it.X,
				x1:       it.X + it.W,
				baseline: it.Y,
				fontSize: it.FontSize,
			}
			continue
		}
		cur.text += it.S
		if x1 := it.X + it.W; x1 > cur.x1 {
			cur.x1 = x1
		}
		if it.FontSize > cur.fontSize {
			cur.fontSize = it.FontSize
		}
	}
	flush()
	return runs
}

// split breaks a run on interior whitespace into words, allocating
// horizontal extent to each word in proportion to its rune count.
// Y0/Y1 are still bottom-up here; the caller flips them.
func (r textRun) split() []model.Word {
	fields := strings.Fields(r.text)
	if len(fields) == 0 {
		return nil
	}

	top := r.baseline + r.fontSize
	if len(fields) == 1 {
		return []model.Word{{
			Text: fields[0],
			X0:   r.x0,
			X1:   r.x1,
			Y0:   top,
			Y1:   r.baseline,
		}}
	}

	total := 0
	for _, f := range fields {
		total += len([]rune(f)) + 1
	}
	total--

	words := make([]model.Word, 0, len(fields))
	width := r.x1 - r.x0
	cursor := 0
	for _, f := range fields {
		n := len([]rune(f))
		x0 := r.x0 + width*float64(cursor)/float64(total)
		x1 := r.x0 + width*float64(cursor+n)/float64(total)
		words = append(words, model.Word{
			Text: f,
			X0:   x0,
			X1:   x1,
			Y0:   top,
			Y1:   r.baseline,
		})
		cursor += n + 1
	}
	return words
}
