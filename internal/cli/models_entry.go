package bleuboard

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/mwiater/bleuboard/internal/analytics"
	"github.com/mwiater/bleuboard/internal/records"
	"github.com/mwiater/bleuboard/internal/store"
	"github.com/mwiater/bleuboard/internal/tui"
	"github.com/mwiater/bleuboard/internal/util"
	"github.com/spf13/cobra"
)

func runModelsList(cmd *cobra.Command, opts modelsListOptions) error {
	filter, err := analytics.ParseVersionFilter(opts.version)
	if err != nil {
		return err
	}

	return withStore(cmd.Context(), func(s *store.Store) error {
		all, err := s.ListRecords(cmd.Context())
		if err != nil {
			return err
		}
		matches := analytics.SearchFilter(analytics.Filter(all, filter), opts.search)

		out := cmd.OutOrStdout()
		if JSONModeEnabled() {
			return writeJSON(out, matches)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, "No language models found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLANGUAGE\tVERSION\tBLEU\tTIER\tUPDATED")
		for _, r := range matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
				r.ID,
				util.TruncateRunes(r.Language, 32),
				r.ModelVersion,
				r.BleuScore,
				analytics.ScoreTier(r.BleuScore),
				r.UpdatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d of %d language models\n", len(matches), len(all))
		return nil
	})
}

// recordDetail is the JSON shape of 'models show'.
type recordDetail struct {
	records.ModelRecord
	Tier         analytics.Tier           `json:"tier"`
	ImageURL     string                   `json:"imageURL,omitempty"`
	CaptionPairs []captionDetail          `json:"captionPairs"`
	FieldRows    []records.CustomFieldRow `json:"customFieldRows"`
}

type captionDetail struct {
	ImageID string `json:"imageId"`
	Caption string `json:"caption"`
	Missing bool   `json:"missing"`
}

func runModelsShow(cmd *cobra.Command, id string, raw bool) error {
	return withStore(cmd.Context(), func(s *store.Store) error {
		rec, err := s.GetRecord(cmd.Context(), id)
		if err != nil {
			return err
		}
		defs, err := s.ListCustomFields(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if raw {
			return util.Dump(out, rec)
		}

		detail := recordDetail{
			ModelRecord: rec,
			Tier:        analytics.ScoreTier(rec.BleuScore),
			ImageURL:    s.ImageURL(rec.TrainingImage),
			FieldRows:   records.CustomFieldRows(rec, defs),
		}
		for _, pair := range records.CaptionPairs(rec) {
			detail.CaptionPairs = append(detail.CaptionPairs, captionDetail{ImageID: pair.Image.ID, Caption: pair.Caption, Missing: pair.Missing})
		}
		if JSONModeEnabled() {
			return writeJSON(out, detail)
		}
		printRecordDetail(out, detail)
		return nil
	})
}

func printRecordDetail(out io.Writer, d recordDetail) {
	fmt.Fprintf(out, "%s %s %s\n", d.Language, tui.VersionBadge(d.ModelVersion), tui.TierBadge(d.BleuScore))
	fmt.Fprintf(out, "  ID:       %s\n", d.ID)
	fmt.Fprintf(out, "  Tier:     %s\n", d.Tier)
	fmt.Fprintf(out, "  Created:  %s\n", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "  Updated:  %s\n", d.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	if d.ImageURL != "" {
		fmt.Fprintf(out, "  Image:    %s\n", d.ImageURL)
	}
	if strings.TrimSpace(d.Remarks) != "" {
		fmt.Fprintln(out, "  Remarks:")
		for _, line := range strings.Split(util.WrapToWidth(d.Remarks, 72), "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}

	fmt.Fprintln(out, "\nCaptions:")
	for _, pair := range d.CaptionPairs {
		fmt.Fprintf(out, "  [%s] %s\n", pair.ImageID, pair.Caption)
	}

	if len(d.FieldRows) > 0 {
		fmt.Fprintln(out, "\nCustom fields:")
		for _, row := range d.FieldRows {
			value := row.Value
			if value == "" {
				value = "-"
			}
			fmt.Fprintf(out, "  %s: %s\n", row.Name, value)
		}
	}
}

func runModelsCreate(cmd *cobra.Command, opts modelsWriteOptions) error {
	payload, err := readPayload(cmd, opts.file)
	if err != nil {
		return err
	}
	upload, closeImage, err := openImage(opts.image)
	if err != nil {
		return err
	}
	defer closeImage()

	return withStore(cmd.Context(), func(s *store.Store) error {
		rec, err := s.CreateRecord(cmd.Context(), payload, upload)
		if err != nil {
			return err
		}
		return reportWrite(cmd, "Created", rec)
	})
}

func runModelsUpdate(cmd *cobra.Command, id string, opts modelsWriteOptions) error {
	payload, err := readPayload(cmd, opts.file)
	if err != nil {
		return err
	}
	upload, closeImage, err := openImage(opts.image)
	if err != nil {
		return err
	}
	defer closeImage()

	return withStore(cmd.Context(), func(s *store.Store) error {
		rec, err := s.UpdateRecord(cmd.Context(), id, payload, upload)
		if err != nil {
			return err
		}
		return reportWrite(cmd, "Updated", rec)
	})
}

func runModelsDelete(cmd *cobra.Command, id string) error {
	return withStore(cmd.Context(), func(s *store.Store) error {
		if err := s.DeleteRecord(cmd.Context(), id); err != nil {
			return err
		}
		if JSONModeEnabled() {
			return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": id})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted language model %s\n", id)
		return nil
	})
}

func reportWrite(cmd *cobra.Command, verb string, rec records.ModelRecord) error {
	if JSONModeEnabled() {
		return writeJSON(cmd.OutOrStdout(), rec)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s language model %s (%s %s, BLEU %.2f)\n", verb, rec.ID, rec.Language, rec.ModelVersion, rec.BleuScore)
	return nil
}

// readPayload reads and validates a record payload from path, or stdin for "-".
func readPayload(cmd *cobra.Command, path string) (records.Payload, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return records.Payload{}, fmt.Errorf("read payload: %w", err)
	}
	return records.DecodePayload(raw)
}

// openImage opens the image at path for upload. A blank path means no upload.
func openImage(path string) (*store.ImageUpload, func(), error) {
	if strings.TrimSpace(path) == "" {
		return nil, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open image: %w", err)
	}
	return &store.ImageUpload{Filename: filepath.Base(path), Body: f}, func() { _ = f.Close() }, nil
}
