package auth

// CanModify is the single ownership predicate: an acting identity may mutate
// a resource if it owns it or holds admin privilege. Every handler that
// guards a mutation goes through this function rather than re-deriving the
// rule.
func CanModify(actorID, ownerID string, isAdmin bool) bool {
	if isAdmin {
		return true
	}
	return actorID != "" && actorID == ownerID
}
