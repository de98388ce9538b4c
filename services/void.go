package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/utils"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("manager authorization failed")

// AuthorizeManager checks a PIN against the configured bcrypt hash.
func (e *Engine) AuthorizeManager(pin string) error {
	if len(e.pinHash) == 0 {
		return preconditionf("no manager PIN is configured")
	}
	if pin == "" || bcrypt.CompareHashAndPassword(e.pinHash, []byte(pin)) != nil {
		return ErrUnauthorized
	}
	return nil
}

// VoidLine removes a committed line without settling it.
func (e *Engine) VoidLine(tabID, lineID, pin string) (models.Tab, error) {
	if err := e.AuthorizeManager(pin); err != nil {
		return models.Tab{}, err
	}
	return e.VoidAuthorized(tabID, lineID)
}

// VoidAuthorized is VoidLine for callers that already verified the manager, such as a
// request carrying a manager token. The tab stays occupied even when it empties.
func (e *Engine) VoidAuthorized(tabID, lineID string) (models.Tab, error) {
	e.mu.Lock()
	t, err := e.tabLocked(tabID)
	if err != nil {
		e.mu.Unlock()
		return models.Tab{}, err
	}
	if t.Status != models.TabOccupied {
		e.mu.Unlock()
		return models.Tab{}, preconditionf("%s is %s, only an occupied tab has lines to void", t.Label, t.Status)
	}
	if !hasLine(t.Items, lineID) {
		e.mu.Unlock()
		return models.Tab{}, notFound("line", lineID)
	}
	e.dropLines(t, map[string]bool{lineID: true})

	out := t.Clone()
	fx := e.capture(true, false)
	e.mu.Unlock()
	e.dispatch(fx)
	utils.InfoLogger.WithFields(logrus.Fields{"tab": out.Label, "line": lineID}).Info("line voided")
	return out, nil
}
