package store

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mwiater/bleuboard/internal/records"
)

func newTestStore(t *testing.T) (*Store, *Bucket) {
	t.Helper()
	dir := t.TempDir()
	bucket, err := NewBucket(filepath.Join(dir, "images"), "")
	if err != nil {
		t.Fatalf("NewBucket error: %v", err)
	}
	s, err := Open(context.Background(), Options{Path: filepath.Join(dir, "data", "test.db"), Bucket: bucket})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return s, bucket
}

func englishPayload() records.Payload {
	return records.Payload{
		ModelVersion: records.V1,
		Language:     "English",
		BleuScore:    7.5,
		Captions:     []string{"a dog runs", "a city"},
		Remarks:      "baseline",
	}
}

func TestCreateAndGetRecord(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRecord(ctx, englishPayload(), nil)
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if len(created.Captions) != 7 || created.Captions[0] != "a dog runs" || created.Captions[6] != "" {
		t.Fatalf("expected captions padded to 7, got %#v", created.Captions)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("expected equal timestamps on create: %v vs %v", created.CreatedAt, created.UpdatedAt)
	}

	got, err := s.GetRecord(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRecord error: %v", err)
	}
	if got.Language != "English" || got.ModelVersion != records.V1 || got.BleuScore != 7.5 || got.Remarks != "baseline" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.CustomFields == nil {
		t.Fatal("expected non-nil custom fields map")
	}
}

func TestGetRecordErrors(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.GetRecord(ctx, ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if _, err := s.GetRecord(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecordsCreationOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, lang := range []string{"English", "French", "German"} {
		p := englishPayload()
		p.Language = lang
		if _, err := s.CreateRecord(ctx, p, nil); err != nil {
			t.Fatalf("CreateRecord %s error: %v", lang, err)
		}
	}
	list, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords error: %v", err)
	}
	if len(list) != 3 || list[0].Language != "English" || list[2].Language != "German" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestCreateRecordRejectsInvalidPayload(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := englishPayload()
	p.ModelVersion = "V3"
	if _, err := s.CreateRecord(ctx, p, nil); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}

	p = englishPayload()
	p.CustomFields = map[string]string{"Epochs": "3"}
	if _, err := s.CreateRecord(ctx, p, nil); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected undefined custom field rejection, got %v", err)
	}
}

func TestCustomFieldsRoundTripOnRecord(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateCustomField(ctx, "Epochs", "number of epochs"); err != nil {
		t.Fatalf("CreateCustomField error: %v", err)
	}
	p := englishPayload()
	p.CustomFields = map[string]string{"Epochs": "12"}
	created, err := s.CreateRecord(ctx, p, nil)
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}
	got, err := s.GetRecord(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetRecord error: %v", err)
	}
	if got.CustomFields["Epochs"] != "12" {
		t.Fatalf("expected custom field persisted, got %+v", got.CustomFields)
	}
}

func TestCreateRecordWithImage(t *testing.T) {
	s, bucket := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRecord(ctx, englishPayload(), &ImageUpload{Filename: "curve.PNG", Body: strings.NewReader("png-bytes")})
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}
	if !strings.HasSuffix(created.TrainingImage, ".png") {
		t.Fatalf("expected stored ref with extension, got %q", created.TrainingImage)
	}
	path, err := bucket.Path(created.TrainingImage)
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "png-bytes" {
		t.Fatalf("expected image content on disk, got %q (%v)", data, err)
	}
	if url := s.ImageURL(created.TrainingImage); !strings.HasPrefix(url, "file://") {
		t.Fatalf("expected file URL, got %q", url)
	}
	if url := s.ImageURL(""); url != "" {
		t.Fatalf("expected empty URL for empty ref, got %q", url)
	}
}

func TestUpdateRecordFullReplace(t *testing.T) {
	s, bucket := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRecord(ctx, englishPayload(), &ImageUpload{Filename: "a.png", Body: strings.NewReader("one")})
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}

	update := records.Payload{ModelVersion: records.V2, Language: "English (UK)", BleuScore: 8.1}
	updated, err := s.UpdateRecord(ctx, created.ID, update, nil)
	if err != nil {
		t.Fatalf("UpdateRecord error: %v", err)
	}
	if updated.ModelVersion != records.V2 || updated.BleuScore != 8.1 || updated.Remarks != "" {
		t.Fatalf("expected full replace, got %+v", updated)
	}
	if updated.Captions[0] != "" {
		t.Fatalf("expected captions replaced, got %#v", updated.Captions)
	}
	if updated.TrainingImage != created.TrainingImage {
		t.Fatalf("expected image kept, got %q", updated.TrainingImage)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) || !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", updated.CreatedAt, updated.UpdatedAt)
	}

	replaced, err := s.UpdateRecord(ctx, created.ID, update, &ImageUpload{Filename: "b.png", Body: strings.NewReader("two")})
	if err != nil {
		t.Fatalf("UpdateRecord with image error: %v", err)
	}
	if replaced.TrainingImage == created.TrainingImage {
		t.Fatal("expected a new image reference")
	}
	oldPath, _ := bucket.Path(created.TrainingImage)
	if _, err := os.Stat(oldPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected replaced image removed, stat err=%v", err)
	}

	if _, err := s.UpdateRecord(ctx, "missing", update, nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPayloadImageRefMustBeUnclaimed(t *testing.T) {
	s, bucket := newTestStore(t)
	ctx := context.Background()

	first, err := s.CreateRecord(ctx, englishPayload(), &ImageUpload{Filename: "a.png", Body: strings.NewReader("one")})
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}

	shared := englishPayload()
	shared.TrainingImage = first.TrainingImage
	if _, err := s.CreateRecord(ctx, shared, nil); !errors.Is(err, records.ErrInvalidPayload) {
		t.Fatalf("expected shared image ref to be rejected, got %v", err)
	}

	missing := englishPayload()
	missing.TrainingImage = "does-not-exist.png"
	if _, err := s.CreateRecord(ctx, missing, nil); !errors.Is(err, records.ErrInvalidPayload) {
		t.Fatalf("expected unknown image ref to be rejected, got %v", err)
	}

	// Echoing a record's own image back on update keeps it.
	same := englishPayload()
	same.TrainingImage = s.ImageURL(first.TrainingImage)
	updated, err := s.UpdateRecord(ctx, first.ID, same, nil)
	if err != nil {
		t.Fatalf("UpdateRecord with own image error: %v", err)
	}
	if updated.TrainingImage != first.TrainingImage {
		t.Fatalf("expected image kept, got %q", updated.TrainingImage)
	}

	second, err := s.CreateRecord(ctx, englishPayload(), nil)
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}
	if _, err := s.UpdateRecord(ctx, second.ID, shared, nil); !errors.Is(err, records.ErrInvalidPayload) {
		t.Fatalf("expected update to another record's image to be rejected, got %v", err)
	}

	if err := s.DeleteRecord(ctx, second.ID); err != nil {
		t.Fatalf("DeleteRecord error: %v", err)
	}
	path, _ := bucket.Path(first.TrainingImage)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected first record's image untouched: %v", err)
	}
}

func TestCreateRecordRejectsNonFiniteScore(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := englishPayload()
	p.BleuScore = math.NaN()
	if _, err := s.CreateRecord(ctx, p, nil); !errors.Is(err, records.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	all, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("ListRecords error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected nothing stored, got %+v", all)
	}
}

func TestDeleteRecordRemovesImage(t *testing.T) {
	s, bucket := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateRecord(ctx, englishPayload(), &ImageUpload{Filename: "a.jpg", Body: strings.NewReader("img")})
	if err != nil {
		t.Fatalf("CreateRecord error: %v", err)
	}
	if err := s.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("DeleteRecord error: %v", err)
	}
	if _, err := s.GetRecord(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
	path, _ := bucket.Path(created.TrainingImage)
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected image removed, stat err=%v", err)
	}
	if err := s.DeleteRecord(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCustomFieldLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateCustomField(ctx, "   ", ""); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected blank name rejected, got %v", err)
	}
	first, err := s.CreateCustomField(ctx, "  Training Duration ", "hours")
	if err != nil {
		t.Fatalf("CreateCustomField error: %v", err)
	}
	if first.Name != "Training Duration" {
		t.Fatalf("expected trimmed name, got %q", first.Name)
	}
	if _, err := s.CreateCustomField(ctx, "Training Duration", ""); !errors.Is(err, ErrInvalidField) {
		t.Fatalf("expected duplicate rejected, got %v", err)
	}
	if _, err := s.CreateCustomField(ctx, "Dataset", ""); err != nil {
		t.Fatalf("CreateCustomField error: %v", err)
	}

	defs, err := s.ListCustomFields(ctx)
	if err != nil {
		t.Fatalf("ListCustomFields error: %v", err)
	}
	if len(defs) != 2 || defs[0].Name != "Training Duration" || defs[0].Placeholder != "hours" || defs[1].Name != "Dataset" {
		t.Fatalf("unexpected definitions: %+v", defs)
	}

	if err := s.DeleteCustomField(ctx, first.ID); err != nil {
		t.Fatalf("DeleteCustomField error: %v", err)
	}
	if err := s.DeleteCustomField(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := s.DeleteCustomField(ctx, ""); !errors.Is(err, ErrMissingID) {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
}
