// internal/prompt/builder.go
package prompt

import (
	"fmt"

	"sareestage-backend/internal/models"
)

// Part is one block of the multi-part payload sent to the generation model:
// either instruction text or an inline image.
type Part struct {
	Text   string
	Inline *models.ImageData
}

// sareePromptTemplate is the fixed instructional preamble for the try-on
// task. Block ordering after it is significant: it must stay identical
// between initial and retry calls so the model receives a stable format.
const sareePromptTemplate = `**Objective:** Create a photorealistic virtual try-on image of a person wearing a saree, based on provided images.

**Core Task:**
Superimpose the provided saree (using its body, pallu, and border details) onto the person in the model image. The final output MUST be a photorealistic image of the person wearing the saree, maintaining their original pose, body shape, and skin tone. The background of the original model's photo should be preserved.

**Instructions & Constraints:**

1.  **Person:**
    *   **Identity Preservation:** Do NOT change the person's face, hair, body shape, or skin tone. The result must look exactly like the person in the input photo.
    *   **Pose:** Maintain the original pose. Do not alter the position of their arms, legs, or head.
    *   **Draping:** The saree must be draped naturally and realistically over the person's body, following their contours and pose. Pay close attention to how the fabric would fall, fold, and create shadows.

2.  **Saree Components:**
    *   **Saree Body:** Use the texture, color, and pattern from the "Saree Body" reference image for the main part of the saree.
    *   **Pallu:** Use the texture, color, and pattern from the "Saree Pallu" reference image for the decorative end piece of the saree that drapes over the shoulder.
    *   **Border:** Accurately replicate the saree's border from the reference images and apply it along all edges of the saree and pallu.

3.  **Blouse:**
    *   Follow the blouse instructions precisely.
    *   If a "running blouse" is specified, the blouse should match the color and material of the saree body.
    *   If a "custom blouse" is described, create a blouse that matches that description.

4.  **Realism is Key:**
    *   **Lighting & Shadows:** The lighting on the draped saree MUST match the lighting in the original photo of the person. Create realistic shadows where the saree folds and where it falls on the body.
    *   **Texture:** Preserve the texture of the saree fabric (e.g., silk, cotton, chiffon).
    *   **No "Cut and Paste":** The final image should look like a real photograph, not a digital collage. The saree should appear to be physically on the person.

5.  **Output Format:**
    *   The final output must be ONLY the generated image. Do not include any text, labels, or explanations.`

const runningBlousePhrase = "Running blouse, matching the saree body."

// BuildTryOn assembles the multi-part try-on payload: preamble, labeled
// model-image block, the saree reference blocks that are present, the blouse
// instruction and finally any tweak text.
func BuildTryOn(modelImage *models.ImageData, spec *models.SareeSpecification, tweakPrompt string) []Part {
	parts := []Part{
		{Text: sareePromptTemplate},
		{Text: "\n\n--- Start of Inputs ---"},
		{Text: "\n**Input 1: Photo of the Person**"},
		{Inline: modelImage},
		{Text: "\n**Input 2: Saree Reference Images**"},
	}

	if spec.Pallu.Image != nil {
		parts = append(parts,
			Part{Text: "Reference Image for Saree Pallu:"},
			Part{Inline: spec.Pallu.Image},
		)
	}
	if spec.Body.Image != nil {
		parts = append(parts,
			Part{Text: "Reference Image for Saree Body:"},
			Part{Inline: spec.Body.Image},
		)
	}

	parts = append(parts, Part{Text: "\n\n**Input 3: Blouse Instructions**\n" + blouseInstruction(spec.Blouse)})

	if tweakPrompt != "" {
		parts = append(parts, Part{Text: fmt.Sprintf("\n\n**Additional Tweaks:** %s", tweakPrompt)})
	}

	parts = append(parts, Part{Text: "\n--- End of Inputs ---"})
	return parts
}

// BuildEdit assembles the payload for a free-form image edit.
func BuildEdit(image *models.ImageData, editPrompt string) []Part {
	return []Part{
		{Inline: image},
		{Text: editPrompt},
	}
}

// blouseInstruction derives the blouse text. An empty custom description
// falls back to the running-blouse phrase.
func blouseInstruction(blouse models.BlouseSpec) string {
	if blouse.Type == models.BlouseCustom && blouse.Description != "" {
		return fmt.Sprintf("Custom blouse: %s.", blouse.Description)
	}
	return runningBlousePhrase
}
