// internal/records/images.go
package records

import "strings"

// noCaption is rendered for caption slots left empty.
const noCaption = "No caption provided"

// SampleImage is one of the fixed reference images captions are written against.
type SampleImage struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

var sampleImages = []SampleImage{
	{ID: "img1", URL: "/images/17273391_55cfc7d3d4.jpg", Description: "custom field image"},
	{ID: "img2", URL: "/images/1032460886_4a598ed535.jpg", Description: "A city skyline with tall buildings"},
	{ID: "img3", URL: "/images/DSCF3732.jpg", Description: "A mountain landscape with snow"},
	{ID: "img4", URL: "/images/DSCF3772.jpg", Description: "A group of people in a meeting room"},
	{ID: "img5", URL: "/images/DSCF3999.jpg", Description: "A close-up of a flower in bloom"},
	{ID: "img6", URL: "/images/DSCF4140.jpg", Description: "A close-up of a flower in bloom"},
	{ID: "img7", URL: "/images/WIN_20250221_10_11_35_Pro.jpg", Description: "A close-up of a flower in bloom"},
}

// SampleImages returns a copy of the sample image table.
func SampleImages() []SampleImage {
	out := make([]SampleImage, len(sampleImages))
	copy(out, sampleImages)
	return out
}

// CaptionPair couples a sample image with the record's caption for it.
type CaptionPair struct {
	Image   SampleImage
	Caption string
	Missing bool
}

// CaptionPairs aligns a record's captions with the sample image table by index.
func CaptionPairs(r ModelRecord) []CaptionPair {
	pairs := make([]CaptionPair, 0, len(sampleImages))
	for i, img := range sampleImages {
		caption := r.CaptionAt(i)
		pair := CaptionPair{Image: img, Caption: caption}
		if strings.TrimSpace(caption) == "" {
			pair.Caption = noCaption
			pair.Missing = true
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
