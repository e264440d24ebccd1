package dnd

import (
	"sort"
	"strings"

	"github.com/dukex/planeditor/pkg/models"
)

// OtherCategory groups command types whose metadata names no category.
const OtherCategory = "Other"

// Item is one draggable palette card.
type Item struct {
	Label       string            `json:"label"`
	Description string            `json:"description"`
	Icon        string            `json:"icon,omitempty"`
	Transfer    map[string]string `json:"transfer"`
}

// Palette lists the draggable step types and the command types grouped by category.
type Palette struct {
	StepTypes  []Item            `json:"stepTypes"`
	Categories map[string][]Item `json:"categories"`
}

var stepDescriptions = map[models.StepType]string{
	models.StepTypeAction:     "Executes a command",
	models.StepTypeDecision:   "Routes via conditions",
	models.StepTypeWait:       "Pauses until event/timeout",
	models.StepTypeSubprocess: "Invokes another plan",
	models.StepTypeJoin:       "Waits for parallel tokens",
	models.StepTypeTerminal:   "End state",
}

var stepOrder = []models.StepType{
	models.StepTypeAction,
	models.StepTypeDecision,
	models.StepTypeWait,
	models.StepTypeSubprocess,
	models.StepTypeJoin,
	models.StepTypeTerminal,
}

// BuildPalette filters the step types and the catalog by a case-insensitive query over labels
// and descriptions. Only active, palette-visible command types are listed; they drop as action
// steps. Empty categories are left out.
func BuildPalette(catalog []*models.CommandType, query string) Palette {
	query = strings.ToLower(query)

	palette := Palette{
		StepTypes:  make([]Item, 0, len(stepOrder)),
		Categories: map[string][]Item{},
	}

	for _, stepType := range stepOrder {
		label := models.StepVariants[stepType].Label
		description := stepDescriptions[stepType]

		if !matches(query, label, description) {
			continue
		}

		palette.StepTypes = append(palette.StepTypes, Item{
			Label:       label,
			Description: description,
			Transfer:    Encode(stepType, ""),
		})
	}

	for _, commandType := range catalog {
		if commandType == nil || !commandType.UIMetadata.PaletteVisible || commandType.Status != models.CommandTypeStatusActive {
			continue
		}

		if !matches(query, commandType.Name, commandType.Description) {
			continue
		}

		category := commandType.UIMetadata.Category
		if category == "" {
			category = OtherCategory
		}

		palette.Categories[category] = append(palette.Categories[category], Item{
			Label:       commandType.Name,
			Description: commandType.Description,
			Icon:        commandType.UIMetadata.Icon,
			Transfer:    Encode(models.StepTypeAction, commandType.ID),
		})
	}

	for category := range palette.Categories {
		items := palette.Categories[category]
		sort.SliceStable(items, func(i, j int) bool { return items[i].Label < items[j].Label })
	}

	return palette
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}
