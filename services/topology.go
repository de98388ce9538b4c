package services

import (
	"github.com/yeremiapane/tab-pos/models"
)

// TopologyResult holds the post-state of both tabs of a move.
type TopologyResult struct {
	Source models.Tab `json:"source"`
	Target models.Tab `json:"target"`
}

func (e *Engine) sourceLocked(id string) (*models.Tab, error) {
	t, err := e.tabLocked(id)
	if err != nil {
		return nil, err
	}
	if t.Status != models.TabOccupied {
		return nil, preconditionf("%s is %s, only an occupied tab can be moved", t.Label, t.Status)
	}
	return t, nil
}

// Transfer moves the whole occupation to a free tab. The target keeps its own identity.
func (e *Engine) Transfer(sourceID, targetID string) (TopologyResult, error) {
	return e.move(sourceID, targetID, func(src, dst *models.Tab) error {
		if dst.ID == src.ID || dst.Status != models.TabFree {
			return errInvalidTarget
		}
		moved := src.Clone()
		moved.ID, moved.Number, moved.Label = dst.ID, dst.Number, dst.Label
		*dst = moved
		e.touch(dst)
		src.Release()
		e.touch(src)
		return nil
	})
}

// Merge appends the source lines after the target lines and frees the source.
// The target keeps its own party size and location.
func (e *Engine) Merge(sourceID, targetID string) (TopologyResult, error) {
	return e.move(sourceID, targetID, func(src, dst *models.Tab) error {
		if dst.ID == src.ID || dst.Status != models.TabOccupied {
			return errInvalidTarget
		}
		e.appendLines(dst, src.Items)
		src.Release()
		e.touch(src)
		return nil
	})
}

// TransferItems moves the named lines, in source order, onto a free or occupied tab.
// The source stays occupied even when every line leaves it.
func (e *Engine) TransferItems(sourceID, targetID string, lineIDs []string) (TopologyResult, error) {
	if len(lineIDs) == 0 {
		return TopologyResult{}, errNoItems
	}
	return e.move(sourceID, targetID, func(src, dst *models.Tab) error {
		if dst.ID == src.ID || dst.Status == models.TabReserved {
			return errInvalidTarget
		}
		lines, ids, err := pickLines(src, lineIDs)
		if err != nil {
			return err
		}
		if dst.Status == models.TabFree {
			dst.Status = models.TabOccupied
			if dst.OpenedAt == nil {
				now := e.now()
				dst.OpenedAt = &now
			}
		}
		e.dropLines(src, ids)
		e.appendLines(dst, lines)
		return nil
	})
}

// move runs fn with both tabs under the lock. fn must check everything before writing.
func (e *Engine) move(sourceID, targetID string, fn func(src, dst *models.Tab) error) (TopologyResult, error) {
	e.mu.Lock()
	src, err := e.sourceLocked(sourceID)
	if err != nil {
		e.mu.Unlock()
		return TopologyResult{}, err
	}
	dst, err := e.tabLocked(targetID)
	if err != nil {
		e.mu.Unlock()
		return TopologyResult{}, err
	}
	if err := fn(src, dst); err != nil {
		e.mu.Unlock()
		return TopologyResult{}, err
	}

	res := TopologyResult{Source: src.Clone(), Target: dst.Clone()}
	fx := e.capture(true, false)
	e.mu.Unlock()
	e.dispatch(fx)
	return res, nil
}
