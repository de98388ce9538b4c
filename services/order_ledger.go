package services

import "github.com/yeremiapane/tab-pos/models"

// appendLines moves lines onto the end of a tab. Line ids travel with their lines.
func (e *Engine) appendLines(t *models.Tab, lines []models.CartLine) {
	t.Items = append(t.Items, models.CloneLines(lines)...)
	t.Recompute()
	e.touch(t)
}

// pickLines resolves line ids against a tab in tab order. Duplicates collapse and an
// unknown id fails the whole pick.
func pickLines(t *models.Tab, lineIDs []string) ([]models.CartLine, map[string]bool, error) {
	want := make(map[string]bool, len(lineIDs))
	for _, id := range lineIDs {
		want[id] = true
	}
	picked := make([]models.CartLine, 0, len(want))
	for _, l := range t.Items {
		if want[l.ID] {
			picked = append(picked, l)
		}
	}
	if len(picked) != len(want) {
		for id := range want {
			if !hasLine(t.Items, id) {
				return nil, nil, validationf("line %q is not on %s", id, t.Label)
			}
		}
	}
	return models.CloneLines(picked), want, nil
}

// dropLines removes the given ids from the tab and recomputes the total.
func (e *Engine) dropLines(t *models.Tab, ids map[string]bool) {
	keep := make([]models.CartLine, 0, len(t.Items))
	for _, l := range t.Items {
		if !ids[l.ID] {
			keep = append(keep, l)
		}
	}
	t.Items = keep
	t.Recompute()
	e.touch(t)
}

func hasLine(lines []models.CartLine, id string) bool {
	for _, l := range lines {
		if l.ID == id {
			return true
		}
	}
	return false
}
