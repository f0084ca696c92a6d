// internal/workflow/tweaks.go
package workflow

import "strings"

// TweakOption is one selectable adjustment offered on the result screen.
// Its prompt fragment is appended to the retry request.
type TweakOption struct {
	ID     string
	Label  string
	Prompt string
}

var tweakCatalog = []TweakOption{
	{ID: "border", Label: "Stronger border prominence", Prompt: "Emphasize border thickness by 10-15% while preserving realism."},
	{ID: "pallu", Label: "Longer pallu", Prompt: "Increase pallu length and flow subtly."},
	{ID: "sheen", Label: "Increase silk sheen", Prompt: "Enhance silk sheen slightly; avoid glare."},
}

// TweakOptions returns the selectable tweaks in display order.
func TweakOptions() []TweakOption {
	out := make([]TweakOption, len(tweakCatalog))
	copy(out, tweakCatalog)
	return out
}

// BuildTweakPrompt joins the prompt fragments of the selected tweaks with
// spaces, preserving catalog order. Unknown IDs are ignored.
func BuildTweakPrompt(selectedIDs []string) string {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var prompts []string
	for _, tweak := range tweakCatalog {
		if selected[tweak.ID] {
			prompts = append(prompts, tweak.Prompt)
		}
	}
	return strings.Join(prompts, " ")
}
