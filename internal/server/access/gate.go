// Package access is the single place that decides who may read whose
// history. Every history-reading operation goes through it.
package access

import "github.com/dmitrijs2005/spellcheckd/internal/server/models"

// CanView reports whether requester may see records owned by target:
// administrators see everyone, everybody else only themselves.
func CanView(requester models.Identity, target string) bool {
	return requester.IsAdministrator() || requester.UserName == target
}

// EffectiveTarget resolves whose records a request is about. Administrators
// may name any user and default to themselves; a target named by anyone
// else is ignored.
func EffectiveTarget(requester models.Identity, requested string) string {
	if requested == "" || !requester.IsAdministrator() {
		return requester.UserName
	}
	return requested
}
