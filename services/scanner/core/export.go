package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/models"
)

var csvHeader = []string{
	"Image URL",
	"Alt Text",
	"Has Alt Text",
	"Alt Text Length",
	"Is Decorative",
	"Width",
	"Height",
	"Created At",
}

// WriteImagesCSV writes one row per image. Missing alt text and unknown
// dimensions are written as empty cells.
func WriteImagesCSV(w io.Writer, images []models.ImageCandidate, createdAt time.Time) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	created := createdAt.UTC().Format(time.RFC3339)
	for _, img := range images {
		row := []string{
			img.URL,
			stringOrEmpty(img.AltText),
			strconv.FormatBool(img.HasAltText),
			strconv.Itoa(img.AltLength),
			strconv.FormatBool(img.IsDecorative),
			intOrEmpty(img.Width),
			intOrEmpty(img.Height),
			created,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FilterImages keeps images whose alt presence matches hasAlt; nil keeps all
func FilterImages(images []models.ImageCandidate, hasAlt *bool) []models.ImageCandidate {
	if hasAlt == nil {
		return images
	}

	filtered := make([]models.ImageCandidate, 0, len(images))
	for _, img := range images {
		if img.HasAltText == *hasAlt {
			filtered = append(filtered, img)
		}
	}
	return filtered
}

// PageImages returns at most limit images starting at offset
func PageImages(images []models.ImageCandidate, offset, limit int) []models.ImageCandidate {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(images) || limit <= 0 {
		return []models.ImageCandidate{}
	}
	end := offset + limit
	if end > len(images) {
		end = len(images)
	}
	return images[offset:end]
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intOrEmpty(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
