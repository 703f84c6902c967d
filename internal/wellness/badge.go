package wellness

import "strings"

// AwardID derives the achievement row id from the email local part and the
// badge code. The same (user, badge) pair always maps to the same id, which
// is what makes awarding idempotent: a second insert collides on the primary
// key instead of creating a duplicate row.
func AwardID(email, badgeID string) string {
	local, _, _ := strings.Cut(email, "@")
	return "LOGRO_" + local + "_" + badgeID
}
