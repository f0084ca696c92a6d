package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sareestage-backend/internal/models"
)

func testSpec() *models.SareeSpecification {
	return &models.SareeSpecification{
		Body: models.SareePart{
			Image: &models.ImageData{MimeType: "image/png", Data: "body-b64"},
			Text:  "red silk",
		},
		Pallu: models.SareePart{
			Image: &models.ImageData{MimeType: "image/jpeg", Data: "pallu-b64"},
			Text:  "gold zari",
		},
		Blouse: models.BlouseSpec{Type: models.BlouseRunning},
	}
}

func modelImage() *models.ImageData {
	return &models.ImageData{MimeType: "image/jpeg", Data: "model-b64"}
}

func textOf(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func TestBuildTryOnOrdering(t *testing.T) {
	parts := BuildTryOn(modelImage(), testSpec(), "")

	// preamble, start marker, person label, person image, reference label,
	// pallu label, pallu image, body label, body image, blouse, end marker
	require.Len(t, parts, 11)

	require.Contains(t, parts[0].Text, "**Objective:**")
	require.Contains(t, parts[1].Text, "--- Start of Inputs ---")
	require.Contains(t, parts[2].Text, "Photo of the Person")
	require.Equal(t, "model-b64", parts[3].Inline.Data)
	require.Contains(t, parts[4].Text, "Saree Reference Images")
	require.Contains(t, parts[5].Text, "Pallu")
	require.Equal(t, "pallu-b64", parts[6].Inline.Data)
	require.Contains(t, parts[7].Text, "Body")
	require.Equal(t, "body-b64", parts[8].Inline.Data)
	require.Contains(t, parts[9].Text, "Blouse Instructions")
	require.Contains(t, parts[10].Text, "--- End of Inputs ---")
}

func TestBuildTryOnIsDeterministic(t *testing.T) {
	first := BuildTryOn(modelImage(), testSpec(), "tweak text")
	second := BuildTryOn(modelImage(), testSpec(), "tweak text")
	require.Equal(t, first, second)
}

func TestBuildTryOnOmitsAbsentReferences(t *testing.T) {
	spec := testSpec()
	spec.Pallu.Image = nil

	parts := BuildTryOn(modelImage(), spec, "")
	text := textOf(parts)

	require.NotContains(t, text, "Reference Image for Saree Pallu:")
	require.Contains(t, text, "Reference Image for Saree Body:")
}

func TestBuildTryOnTweakPlacement(t *testing.T) {
	parts := BuildTryOn(modelImage(), testSpec(), "Longer pallu please.")

	// The tweak block sits directly before the end marker.
	require.Contains(t, parts[len(parts)-2].Text, "**Additional Tweaks:** Longer pallu please.")
	require.Contains(t, parts[len(parts)-1].Text, "--- End of Inputs ---")

	// Without a tweak there is no tweak block at all.
	without := BuildTryOn(modelImage(), testSpec(), "")
	require.NotContains(t, textOf(without), "Additional Tweaks")
}

func TestBlouseInstruction(t *testing.T) {
	tests := []struct {
		name   string
		blouse models.BlouseSpec
		want   string
	}{
		{
			name:   "running blouse",
			blouse: models.BlouseSpec{Type: models.BlouseRunning},
			want:   "Running blouse, matching the saree body.",
		},
		{
			name:   "custom blouse",
			blouse: models.BlouseSpec{Type: models.BlouseCustom, Description: "green sleeveless"},
			want:   "Custom blouse: green sleeveless.",
		},
		{
			name:   "custom without description falls back",
			blouse: models.BlouseSpec{Type: models.BlouseCustom},
			want:   "Running blouse, matching the saree body.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := testSpec()
			spec.Blouse = tt.blouse
			text := textOf(BuildTryOn(modelImage(), spec, ""))
			require.Contains(t, text, tt.want)
		})
	}
}

func TestBuildEdit(t *testing.T) {
	image := &models.ImageData{MimeType: "image/png", Data: "img-b64"}
	parts := BuildEdit(image, "make it brighter")

	require.Len(t, parts, 2)
	require.Equal(t, "img-b64", parts[0].Inline.Data)
	require.Equal(t, "make it brighter", parts[1].Text)
}
