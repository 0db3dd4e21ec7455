// internal/records/records.go
// Package records defines the language-model record types shared by the store,
// the analytics core and every presentation surface.
package records

import (
	"fmt"
	"strings"
	"time"
)

// Version identifies the model generation a record was trained with.
type Version string

const (
	// V1 is the first model generation.
	V1 Version = "V1"
	// V2 is the second model generation.
	V2 Version = "V2"
)

// Versions returns every known version in display order.
func Versions() []Version {
	return []Version{V1, V2}
}

// Valid reports whether v is one of the known versions.
func (v Version) Valid() bool {
	for _, known := range Versions() {
		if v == known {
			return true
		}
	}
	return false
}

// String returns the version tag.
func (v Version) String() string { return string(v) }

// ParseVersion parses a version tag case-insensitively.
func ParseVersion(s string) (Version, error) {
	candidate := Version(strings.ToUpper(strings.TrimSpace(s)))
	if !candidate.Valid() {
		return "", fmt.Errorf("unknown model version %q (expected one of %s)", s, versionList())
	}
	return candidate, nil
}

func versionList() string {
	names := make([]string, 0, len(Versions()))
	for _, v := range Versions() {
		names = append(names, v.String())
	}
	return strings.Join(names, ", ")
}

// ModelRecord is a stored language model entry.
type ModelRecord struct {
	ID            string            `json:"id"`
	Language      string            `json:"language"`
	ModelVersion  Version           `json:"modelVersion"`
	BleuScore     float64           `json:"bleuScore"`
	Captions      []string          `json:"captions"`
	Remarks       string            `json:"remarks,omitempty"`
	TrainingImage string            `json:"trainingImage,omitempty"`
	CustomFields  map[string]string `json:"customFields"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// CaptionAt returns the caption at index i, or "" when none was provided.
func (r ModelRecord) CaptionAt(i int) string {
	if i < 0 || i >= len(r.Captions) {
		return ""
	}
	return r.Captions[i]
}

// CustomFieldDefinition declares a user-defined field that records may carry.
type CustomFieldDefinition struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Placeholder string    `json:"placeholder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Payload is the full-replace body used to create or update a record.
type Payload struct {
	ModelVersion  Version           `json:"modelVersion"`
	Language      string            `json:"language"`
	BleuScore     float64           `json:"bleuScore"`
	Captions      []string          `json:"captions"`
	Remarks       string            `json:"remarks,omitempty"`
	TrainingImage string            `json:"trainingImage,omitempty"`
	CustomFields  map[string]string `json:"customFields,omitempty"`
}

// NormalizeCaptions pads or truncates captions to exactly n slots.
func NormalizeCaptions(captions []string, n int) []string {
	if n < 0 {
		n = 0
	}
	out := make([]string, n)
	copy(out, captions)
	return out
}
