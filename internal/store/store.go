// internal/store/store.go
// Package store persists language model records and custom field
// definitions in a SQLite document table and keeps their training images in
// a Bucket.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/bleuboard/internal/logging"
	"github.com/mwiater/bleuboard/internal/records"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when no document has the requested id.
	ErrNotFound = errors.New("not found")
	// ErrMissingID is returned when an operation is called with an empty id.
	ErrMissingID = errors.New(`missing required parameter: "id"`)
	// ErrInvalidField is returned for unusable custom field definitions.
	ErrInvalidField = errors.New("invalid custom field")
	// ErrInvalidPayload is returned for record bodies that fail validation.
	ErrInvalidPayload = records.ErrInvalidPayload
)

// Options configures Open.
type Options struct {
	Path         string
	Bucket       *Bucket
	CaptionSlots int
	Debug        bool
}

// ImageUpload is a training image supplied with a create or update.
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// Store is the record and custom field repository.
type Store struct {
	db           *gorm.DB
	bucket       *Bucket
	captionSlots int
	now          func() time.Time
}

// Open connects to the SQLite file at opts.Path and migrates missing tables.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, errors.New("database path is empty")
	}
	if opts.Bucket == nil {
		return nil, errors.New("image bucket is not configured")
	}
	if dir := filepath.Dir(opts.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("unable to create database directory %s: %w", dir, err)
		}
	}

	level := logger.Silent
	if opts.Debug {
		level = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(opts.Path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", opts.Path, err)
	}
	if err := ensureTables(db.WithContext(ctx)); err != nil {
		return nil, err
	}

	slots := opts.CaptionSlots
	if slots <= 0 {
		slots = len(records.SampleImages())
	}
	return &Store{
		db:           db,
		bucket:       opts.Bucket,
		captionSlots: slots,
		now:          func() time.Time { return time.Now().UTC() },
	}, nil
}

func ensureTables(db *gorm.DB) error {
	for _, m := range []any{&modelRow{}, &fieldRow{}} {
		if db.Migrator().HasTable(m) {
			continue
		}
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("auto migrate missing table failed: %w", err)
		}
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ImageURL resolves a training image reference for display.
func (s *Store) ImageURL(ref string) string {
	return s.bucket.PreviewURL(ref)
}

// ListRecords returns every record in creation order.
func (s *Store) ListRecords(ctx context.Context) ([]records.ModelRecord, error) {
	var rows []modelRow
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&rows).Error; err != nil {
		logging.LogOperation("list", "language_models", err)
		return nil, fmt.Errorf("error fetching language models: %w", err)
	}
	out := make([]records.ModelRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

// GetRecord fetches one record by id.
func (s *Store) GetRecord(ctx context.Context, id string) (records.ModelRecord, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return records.ModelRecord{}, err
	}
	return row.toRecord(), nil
}

func (s *Store) getRow(ctx context.Context, id string) (modelRow, error) {
	if strings.TrimSpace(id) == "" {
		return modelRow{}, ErrMissingID
	}
	var row modelRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return modelRow{}, fmt.Errorf("model with ID %s: %w", id, ErrNotFound)
	}
	if err != nil {
		logging.LogOperation("get", id, err)
		return modelRow{}, fmt.Errorf("error fetching language model %s: %w", id, err)
	}
	return row, nil
}

// CreateRecord validates p, uploads image when given and stores a new record.
func (s *Store) CreateRecord(ctx context.Context, p records.Payload, image *ImageUpload) (records.ModelRecord, error) {
	if err := s.checkPayload(ctx, p); err != nil {
		return records.ModelRecord{}, err
	}

	var imageRef string
	switch {
	case image != nil:
		ref, err := s.bucket.Put(ctx, image.Filename, image.Body)
		if err != nil {
			return records.ModelRecord{}, err
		}
		imageRef = ref
	case p.TrainingImage != "":
		ref, err := s.claimImage(ctx, p.TrainingImage, "")
		if err != nil {
			return records.ModelRecord{}, err
		}
		imageRef = ref
	}

	now := s.now()
	row := modelRow{ID: uuid.NewString(), CreatedAt: now}
	row.apply(p, s.captionSlots)
	row.TrainingImage = imageRef
	row.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		logging.LogOperation("create", row.ID, err)
		if image != nil {
			_ = s.bucket.Delete(ctx, imageRef)
		}
		return records.ModelRecord{}, fmt.Errorf("error creating language model: %w", err)
	}
	logging.LogPayload("create", row.ID, p)
	return row.toRecord(), nil
}

// UpdateRecord replaces every mutable field of record id with p. The stored
// image is kept unless a new one is uploaded or p names a different one.
func (s *Store) UpdateRecord(ctx context.Context, id string, p records.Payload, image *ImageUpload) (records.ModelRecord, error) {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return records.ModelRecord{}, err
	}
	if err := s.checkPayload(ctx, p); err != nil {
		return records.ModelRecord{}, err
	}

	previous := row.TrainingImage
	next := previous
	switch {
	case image != nil:
		ref, err := s.bucket.Put(ctx, image.Filename, image.Body)
		if err != nil {
			return records.ModelRecord{}, err
		}
		next = ref
	case p.TrainingImage != "":
		ref, err := s.claimImage(ctx, p.TrainingImage, id)
		if err != nil {
			return records.ModelRecord{}, err
		}
		next = ref
	}

	row.apply(p, s.captionSlots)
	row.TrainingImage = next
	row.UpdatedAt = s.now()

	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		logging.LogOperation("update", id, err)
		if image != nil {
			_ = s.bucket.Delete(ctx, next)
		}
		return records.ModelRecord{}, fmt.Errorf("error updating language model %s: %w", id, err)
	}
	logging.LogPayload("update", id, p)

	if previous != "" && previous != next {
		if err := s.bucket.Delete(ctx, previous); err != nil {
			logging.LogEvent("[STORE] unable to remove replaced image %s: %v", previous, err)
		}
	}
	return row.toRecord(), nil
}

// DeleteRecord removes record id and then its training image, if any.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	row, err := s.getRow(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&modelRow{}, "id = ?", id).Error; err != nil {
		logging.LogOperation("delete", id, err)
		return fmt.Errorf("error deleting language model %s: %w", id, err)
	}
	logging.LogOperation("delete", id, nil)

	if row.TrainingImage != "" {
		if err := s.bucket.Delete(ctx, row.TrainingImage); err != nil {
			return fmt.Errorf("language model %s deleted but its image was not: %w", id, err)
		}
	}
	return nil
}

// claimImage resolves a payload image reference. It must name a stored image
// that no record other than ownerID points at, since deleting a record
// removes its image.
func (s *Store) claimImage(ctx context.Context, ref, ownerID string) (string, error) {
	ref = refFromURL(ref)
	if err := s.bucket.Stat(ctx, ref); err != nil {
		return "", fmt.Errorf("%w: trainingImage %q: %v", records.ErrInvalidPayload, ref, err)
	}
	q := s.db.WithContext(ctx).Model(&modelRow{}).Where("training_image = ?", ref)
	if ownerID != "" {
		q = q.Where("id <> ?", ownerID)
	}
	var owners int64
	if err := q.Count(&owners).Error; err != nil {
		return "", fmt.Errorf("error checking image %s: %w", ref, err)
	}
	if owners > 0 {
		return "", fmt.Errorf("%w: trainingImage %s belongs to another language model", records.ErrInvalidPayload, ref)
	}
	return ref, nil
}

func (s *Store) checkPayload(ctx context.Context, p records.Payload) error {
	if err := p.Check(); err != nil {
		return err
	}
	if len(p.CustomFields) == 0 {
		return nil
	}
	defs, err := s.ListCustomFields(ctx)
	if err != nil {
		return err
	}
	return records.CheckCustomFields(p.CustomFields, defs)
}

// ListCustomFields returns every custom field definition in creation order.
func (s *Store) ListCustomFields(ctx context.Context) ([]records.CustomFieldDefinition, error) {
	var rows []fieldRow
	if err := s.db.WithContext(ctx).Order("created_at ASC").Order("rowid ASC").Find(&rows).Error; err != nil {
		logging.LogOperation("list", "custom_fields", err)
		return nil, fmt.Errorf("error fetching custom fields: %w", err)
	}
	out := make([]records.CustomFieldDefinition, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDefinition())
	}
	return out, nil
}

// CreateCustomField adds a definition. The name is trimmed and must be
// non-empty and unused.
func (s *Store) CreateCustomField(ctx context.Context, name, placeholder string) (records.CustomFieldDefinition, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return records.CustomFieldDefinition{}, fmt.Errorf("%w: name is required", ErrInvalidField)
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&fieldRow{}).Where("name = ?", name).Count(&existing).Error; err != nil {
		return records.CustomFieldDefinition{}, fmt.Errorf("error checking custom field %s: %w", name, err)
	}
	if existing > 0 {
		return records.CustomFieldDefinition{}, fmt.Errorf("%w: %q already exists", ErrInvalidField, name)
	}

	row := fieldRow{ID: uuid.NewString(), Name: name, Placeholder: placeholder, CreatedAt: s.now()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		logging.LogOperation("create-field", row.ID, err)
		return records.CustomFieldDefinition{}, fmt.Errorf("error creating custom field: %w", err)
	}
	logging.LogOperation("create-field", row.ID, nil)
	return row.toDefinition(), nil
}

// DeleteCustomField removes a definition. Values already stored on records
// are left in place and simply stop being displayed.
func (s *Store) DeleteCustomField(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	result := s.db.WithContext(ctx).Delete(&fieldRow{}, "id = ?", id)
	if result.Error != nil {
		logging.LogOperation("delete-field", id, result.Error)
		return fmt.Errorf("error deleting custom field %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("custom field %s: %w", id, ErrNotFound)
	}
	logging.LogOperation("delete-field", id, nil)
	return nil
}
