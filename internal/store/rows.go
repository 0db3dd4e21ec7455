// internal/store/rows.go
package store

import (
	"time"

	"github.com/mwiater/bleuboard/internal/records"
)

// modelRow is the persisted form of records.ModelRecord. Captions and custom
// fields are kept as JSON documents inside the row.
type modelRow struct {
	ID            string            `gorm:"primaryKey;column:id;size:36"`
	Language      string            `gorm:"column:language;not null"`
	ModelVersion  string            `gorm:"column:model_version;size:8;index"`
	BleuScore     float64           `gorm:"column:bleu_score"`
	Captions      []string          `gorm:"column:captions;serializer:json"`
	Remarks       string            `gorm:"column:remarks"`
	TrainingImage string            `gorm:"column:training_image"`
	CustomFields  map[string]string `gorm:"column:custom_fields;serializer:json"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (modelRow) TableName() string {
	return "language_models"
}

// apply copies the mutable fields of p onto the row.
func (r *modelRow) apply(p records.Payload, captionSlots int) {
	r.Language = p.Language
	r.ModelVersion = string(p.ModelVersion)
	r.BleuScore = p.BleuScore
	r.Captions = records.NormalizeCaptions(p.Captions, max(len(p.Captions), captionSlots))
	r.Remarks = p.Remarks
	r.CustomFields = make(map[string]string, len(p.CustomFields))
	for k, v := range p.CustomFields {
		r.CustomFields[k] = v
	}
}

func (r modelRow) toRecord() records.ModelRecord {
	fields := r.CustomFields
	if fields == nil {
		fields = map[string]string{}
	}
	return records.ModelRecord{
		ID:            r.ID,
		Language:      r.Language,
		ModelVersion:  records.Version(r.ModelVersion),
		BleuScore:     r.BleuScore,
		Captions:      r.Captions,
		Remarks:       r.Remarks,
		TrainingImage: r.TrainingImage,
		CustomFields:  fields,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type fieldRow struct {
	ID          string    `gorm:"primaryKey;column:id;size:36"`
	Name        string    `gorm:"column:name;not null"`
	Placeholder string    `gorm:"column:placeholder"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime:false"`
}

func (fieldRow) TableName() string {
	return "custom_fields"
}

func (r fieldRow) toDefinition() records.CustomFieldDefinition {
	return records.CustomFieldDefinition{
		ID:          r.ID,
		Name:        r.Name,
		Placeholder: r.Placeholder,
		CreatedAt:   r.CreatedAt,
	}
}
