package core

import (
	"bytes"
	"context"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/RuvinSL/alt-audit/pkg/scanerr"
	"golang.org/x/net/html"
)

// binarySniffLen is how much of the content is checked for NUL bytes
const binarySniffLen = 1024

var backgroundImagePattern = regexp.MustCompile(`(?i)background-image\s*:\s*url\s*\(\s*["']?([^"')\s]+)["']?\s*\)`)

// ImageAnalyzer extracts image candidates from HTML. Malformed markup is
// parsed best-effort; only non-text input fails.
type ImageAnalyzer struct {
	logger interfaces.Logger
}

// NewImageAnalyzer creates a new image analyzer
func NewImageAnalyzer(logger interfaces.Logger) *ImageAnalyzer {
	return &ImageAnalyzer{
		logger: logger,
	}
}

// Analyze parses content and reports every <img> and CSS background image
func (a *ImageAnalyzer) Analyze(ctx context.Context, content []byte, base models.ValidatedURL) (report *models.ImageReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Image analysis panicked", "url", base.String(), "panic", r)
			report = nil
			err = scanerr.ImageAnalysis("failed to analyze page content")
		}
	}()

	if looksBinary(content) {
		return nil, scanerr.ImageAnalysis("content is not HTML text")
	}

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return nil, scanerr.Wrap(scanerr.KindImageAnalysis, err, "failed to parse HTML")
	}

	images := make([]models.ImageCandidate, 0)
	a.traverse(doc, base.URL(), &images)

	report = summarize(images)

	a.logger.Debug("Image analysis completed",
		"url", base.String(),
		"total_images", report.TotalImages,
		"images_with_alt", report.ImagesWithAlt,
	)

	return report, nil
}

// traverse walks the tree in document order
func (a *ImageAnalyzer) traverse(node *html.Node, baseURL *url.URL, images *[]models.ImageCandidate) {
	if node.Type == html.ElementNode {
		switch node.Data {
		case "img":
			if img, ok := a.extractImage(node, baseURL); ok {
				*images = append(*images, img)
			}
		case "style":
			*images = append(*images, a.extractCSSImages(textContent(node), baseURL, nil, nil)...)
		}

		if style, ok := getAttr(node, "style"); ok {
			width, height := dimensions(node)
			*images = append(*images, a.extractCSSImages(style, baseURL, width, height)...)
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		a.traverse(child, baseURL, images)
	}
}

// extractImage builds a candidate from an <img>. Images without a src are
// skipped. An alt attribute that is present but blank marks the image
// decorative; a missing alt attribute is what counts as missing.
func (a *ImageAnalyzer) extractImage(node *html.Node, baseURL *url.URL) (models.ImageCandidate, bool) {
	src, _ := getAttr(node, "src")
	src = strings.TrimSpace(src)
	if src == "" {
		return models.ImageCandidate{}, false
	}

	width, height := dimensions(node)
	img := models.ImageCandidate{
		URL:    resolveURL(baseURL, src),
		Width:  width,
		Height: height,
		Source: models.ImageSourceTag,
	}

	if alt, ok := getAttr(node, "alt"); ok {
		trimmed := strings.TrimSpace(alt)
		img.AltText = &trimmed
		img.HasAltText = true
		img.IsDecorative = trimmed == ""
		img.AltLength = utf8.RuneCountInString(trimmed)
	}

	return img, true
}

// extractCSSImages finds background-image declarations. CSS images carry no
// accessible text, so they are decorative and never have alt text.
func (a *ImageAnalyzer) extractCSSImages(css string, baseURL *url.URL, width, height *int) []models.ImageCandidate {
	matches := backgroundImagePattern.FindAllStringSubmatch(css, -1)
	if len(matches) == 0 {
		return nil
	}

	images := make([]models.ImageCandidate, 0, len(matches))
	for _, match := range matches {
		images = append(images, models.ImageCandidate{
			URL:          resolveURL(baseURL, match[1]),
			IsDecorative: true,
			Width:        width,
			Height:       height,
			Source:       models.ImageSourceCSS,
		})
	}
	return images
}

func summarize(images []models.ImageCandidate) *models.ImageReport {
	report := &models.ImageReport{
		Images:      images,
		TotalImages: len(images),
	}

	for _, img := range images {
		if img.HasAltText {
			report.ImagesWithAlt++
		}
		if img.IsDecorative {
			report.DecorativeImages++
		}
	}

	report.ImagesMissingAlt = report.TotalImages - report.ImagesWithAlt
	report.CoveragePercentage = coveragePercentage(report.ImagesWithAlt, report.TotalImages)

	return report
}

// coveragePercentage is withAlt/total as a percentage rounded to two
// decimals, and exactly 0 when there are no images.
func coveragePercentage(withAlt, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(withAlt)/float64(total)*100*100) / 100
}

// resolveURL resolves ref against base. Unparseable references are kept
// verbatim.
func resolveURL(base *url.URL, ref string) string {
	parsed, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}

func getAttr(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

func dimensions(node *html.Node) (width, height *int) {
	return parseDimension(node, "width"), parseDimension(node, "height")
}

// parseDimension returns nil for anything that is not a plain integer
func parseDimension(node *html.Node, key string) *int {
	val, ok := getAttr(node, key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return nil
	}
	return &n
}

// textContent concatenates the text children of node
func textContent(node *html.Node) string {
	var text strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			text.WriteString(child.Data)
		}
	}
	return text.String()
}

func looksBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}

// Ensure ImageAnalyzer implements interfaces.ImageAnalyzer
var _ interfaces.ImageAnalyzer = (*ImageAnalyzer)(nil)
