package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RuvinSL/alt-audit/pkg/interfaces"
	"github.com/RuvinSL/alt-audit/pkg/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ErrNotFound is returned when no scan record has the requested id
var ErrNotFound = errors.New("scan record not found")

const imageBatchSize = 100

type scanResult struct {
	ID                 string `gorm:"primaryKey;size:36"`
	UserID             string `gorm:"size:128;index"`
	URL                string `gorm:"size:2048;not null"`
	Status             string `gorm:"size:16;index"`
	TotalImages        int
	ImagesWithAlt      int
	ImagesMissingAlt   int
	DecorativeImages   int
	CoveragePercentage float64
	DurationMS         int64
	ErrorCategory      string `gorm:"size:32"`
	ErrorMessage       string `gorm:"type:text"`
	ScannedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Images             []imageDetail `gorm:"foreignKey:ScanResultID"`
}

func (scanResult) TableName() string { return "scan_results" }

type imageDetail struct {
	ID            uint   `gorm:"primaryKey"`
	ScanResultID  string `gorm:"size:36;index;not null"`
	Position      int
	URL           string `gorm:"type:text"`
	AltText       *string
	HasAltText    bool
	AltTextLength int
	IsDecorative  bool
	Width         *int
	Height        *int
	Source        string `gorm:"size:8"`
	CreatedAt     time.Time
}

func (imageDetail) TableName() string { return "image_details" }

// Store persists scan records with gorm
type Store struct {
	db     *gorm.DB
	logger interfaces.Logger
}

// Open connects to a sqlite database and migrates the schema
func Open(dsn string, logger interfaces.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)

	return New(db, logger)
}

// New wraps an existing gorm handle and migrates the schema
func New(db *gorm.DB, logger interfaces.Logger) (*Store, error) {
	if err := db.AutoMigrate(&scanResult{}, &imageDetail{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// CreateScanRecord stores a pending record and returns its id
func (s *Store) CreateScanRecord(ctx context.Context, url, userID string) (string, error) {
	row := &scanResult{
		ID:     uuid.NewString(),
		UserID: userID,
		URL:    url,
		Status: string(models.ScanStatusPending),
	}

	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", fmt.Errorf("failed to create scan record: %w", err)
	}

	s.logger.Debug("Scan record created", "scan_id", row.ID, "user_id", userID)
	return row.ID, nil
}

// UpdateScanRecord writes outcome onto the record and replaces its images
func (s *Store) UpdateScanRecord(ctx context.Context, id string, outcome models.ScanOutcome) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var scannedAt *time.Time
		if !outcome.ScannedAt.IsZero() {
			t := outcome.ScannedAt.UTC()
			scannedAt = &t
		}

		// a map so zero counts and empty messages are written too
		result := tx.Model(&scanResult{}).Where("id = ?", id).Updates(map[string]any{
			"url":                 outcome.URL,
			"status":              string(outcome.Status),
			"total_images":        outcome.TotalImages,
			"images_with_alt":     outcome.ImagesWithAlt,
			"images_missing_alt":  outcome.ImagesMissingAlt,
			"decorative_images":   outcome.DecorativeImages,
			"coverage_percentage": outcome.CoveragePercentage,
			"duration_ms":         outcome.DurationMS,
			"error_category":      outcome.ErrorCategory,
			"error_message":       outcome.ErrorMessage,
			"scanned_at":          scannedAt,
		})
		if result.Error != nil {
			return fmt.Errorf("failed to update scan record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("scan_result_id = ?", id).Delete(&imageDetail{}).Error; err != nil {
			return fmt.Errorf("failed to clear image details: %w", err)
		}

		if len(outcome.Images) == 0 {
			return nil
		}

		rows := make([]imageDetail, 0, len(outcome.Images))
		for i, img := range outcome.Images {
			rows = append(rows, imageDetail{
				ScanResultID:  id,
				Position:      i,
				URL:           img.URL,
				AltText:       img.AltText,
				HasAltText:    img.HasAltText,
				AltTextLength: img.AltLength,
				IsDecorative:  img.IsDecorative,
				Width:         img.Width,
				Height:        img.Height,
				Source:        string(img.Source),
			})
		}

		if err := tx.CreateInBatches(&rows, imageBatchSize).Error; err != nil {
			return fmt.Errorf("failed to store image details: %w", err)
		}
		return nil
	})
}

// GetScanRecord loads a record with its images in document order
func (s *Store) GetScanRecord(ctx context.Context, id string) (*models.ScanRecord, error) {
	var row scanResult
	err := s.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scan record: %w", err)
	}

	record := toRecord(row)
	return &record, nil
}

// ListScanRecords returns a user's records newest first, without images
func (s *Store) ListScanRecords(ctx context.Context, userID string, offset, limit int) ([]models.ScanRecord, error) {
	var rows []scanResult
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list scan records: %w", err)
	}

	records := make([]models.ScanRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

// DeleteScanRecord removes a record and its images
func (s *Store) DeleteScanRecord(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("scan_result_id = ?", id).Delete(&imageDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete image details: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&scanResult{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete scan record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CheckHealth pings the database
func (s *Store) CheckHealth(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the database handle
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func toRecord(row scanResult) models.ScanRecord {
	outcome := models.ScanOutcome{
		URL:                row.URL,
		TotalImages:        row.TotalImages,
		ImagesWithAlt:      row.ImagesWithAlt,
		ImagesMissingAlt:   row.ImagesMissingAlt,
		DecorativeImages:   row.DecorativeImages,
		CoveragePercentage: row.CoveragePercentage,
		Images:             make([]models.ImageCandidate, 0, len(row.Images)),
		DurationMS:         row.DurationMS,
		Status:             models.ScanStatus(row.Status),
		ErrorCategory:      row.ErrorCategory,
		ErrorMessage:       row.ErrorMessage,
	}
	if row.ScannedAt != nil {
		outcome.ScannedAt = *row.ScannedAt
	}

	for _, img := range row.Images {
		outcome.Images = append(outcome.Images, models.ImageCandidate{
			URL:          img.URL,
			AltText:      img.AltText,
			HasAltText:   img.HasAltText,
			IsDecorative: img.IsDecorative,
			AltLength:    img.AltTextLength,
			Width:        img.Width,
			Height:       img.Height,
			Source:       models.ImageSource(img.Source),
		})
	}

	return models.ScanRecord{
		ID:        row.ID,
		UserID:    row.UserID,
		Outcome:   outcome,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

// Ensure Store implements interfaces.ScanStore
var _ interfaces.ScanStore = (*Store)(nil)
