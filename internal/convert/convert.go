// Package convert turns the PDF files in the input directory into markdown
// documents under the markdown directory, extracting embedded images next to
// them. Extraction quality follows the PDF structure; scanned documents
// without a text layer come out empty.
package convert

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"docsum/internal/config"
)

// Converter renders PDFs to markdown using pdfcpu for page and image
// extraction.
type Converter struct {
	inputDir    string
	markdownDir string
	imagesDir   string
	conf        *model.Configuration
	log         *logrus.Logger
}

func NewConverter(cfg *config.AppConfig, log *logrus.Logger) *Converter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Converter{
		inputDir:    cfg.Paths.Input,
		markdownDir: cfg.Paths.Markdown,
		imagesDir:   cfg.Paths.Images,
		conf:        conf,
		log:         log,
	}
}

// ConvertAll converts every PDF in the input directory and returns the
// paths of the markdown files it wrote.
func (c *Converter) ConvertAll(ctx context.Context) ([]string, error) {
	pdfs, err := filepath.Glob(filepath.Join(c.inputDir, "*.pdf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(pdfs)
	if len(pdfs) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", c.inputDir)
	}
	c.log.WithField("count", len(pdfs)).Info("found PDF files to process")

	if err := os.MkdirAll(c.markdownDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(c.imagesDir, 0o755); err != nil {
		return nil, err
	}

	var outputs []string
	for _, pdf := range pdfs {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		out, err := c.ConvertFile(pdf)
		if err != nil {
			return outputs, fmt.Errorf("convert %s: %w", filepath.Base(pdf), err)
		}
		c.log.WithFields(logrus.Fields{
			"pdf":      filepath.Base(pdf),
			"markdown": filepath.Base(out),
		}).Info("converted")
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// ConvertFile converts a single PDF and returns the markdown path it wrote.
func (c *Converter) ConvertFile(pdfPath string) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	outPath := filepath.Join(c.markdownDir, stem+".md")

	pageCount, err := api.PageCountFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("page count: %w", err)
	}

	images, err := c.extractImages(pdfPath, stem)
	if err != nil {
		c.log.WithError(err).Warn("image extraction failed, continuing without images")
		images = nil
	}

	var md strings.Builder
	md.WriteString("# " + titleFromStem(stem) + "\n\n")

	for page := 1; page <= pageCount; page++ {
		c.log.WithFields(logrus.Fields{"page": page, "total": pageCount}).Debug("processing page")
		raw, err := c.extractPageText(pdfPath, stem, page)
		if err != nil {
			c.log.WithError(err).WithField("page", page).Error("page extraction failed")
			continue
		}
		text := formatPageText(raw)
		text = preserveFormulas(text)
		md.WriteString(text)

		if refs := imageRefsForPage(images, page); len(refs) > 0 {
			md.WriteString("\n## Images\n\n")
			for _, ref := range refs {
				md.WriteString(ref + "\n\n")
			}
		}
		if table, ok := climateTable(text); ok {
			md.WriteString("\n## Data\n\n" + table + "\n\n")
		}
	}

	if err := os.WriteFile(outPath, []byte(md.String()), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}
	return outPath, nil
}

// extractPageText extracts one page's content stream into a temp dir and
// decodes the text show operations out of it.
func (c *Converter) extractPageText(pdfPath, stem string, page int) (string, error) {
	tempDir, err := os.MkdirTemp("", "docsum_content_*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tempDir)

	sel := []string{strconv.Itoa(page)}
	if err := api.ExtractContentFile(pdfPath, tempDir, sel, c.conf); err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	contentFile := filepath.Join(tempDir, fmt.Sprintf("%s_Content_page_%d.txt", stem, page))
	data, err := os.ReadFile(contentFile)
	if err != nil {
		return "", fmt.Errorf("read content file: %w", err)
	}
	return decodeContentStream(string(data)), nil
}

// extractImages pulls all embedded images into the images directory and
// returns their paths.
func (c *Converter) extractImages(pdfPath, stem string) ([]string, error) {
	if err := api.ExtractImagesFile(pdfPath, c.imagesDir, nil, c.conf); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(c.imagesDir)
	if err != nil {
		return nil, err
	}
	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, stem) {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
			images = append(images, filepath.Join(c.imagesDir, name))
		}
	}
	sort.Strings(images)
	return images, nil
}

// imageRefsForPage returns markdown references to the images extracted from
// the given page. pdfcpu names them <stem>_<page>_<obj>.<ext>.
func imageRefsForPage(images []string, page int) []string {
	marker := fmt.Sprintf("_%d_", page)
	var refs []string
	for i, path := range images {
		if !strings.Contains(filepath.Base(path), marker) {
			continue
		}
		refs = append(refs, fmt.Sprintf("![Image %d](images/%s)", i, filepath.Base(path)))
	}
	return refs
}

// titleFromStem converts a file stem like "quantum_computing" into a
// document title.
func titleFromStem(stem string) string {
	words := strings.Split(strings.ReplaceAll(stem, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
