package usecase

import (
	"github.com/diillson/envcheck-reports/internal/domain/entity"
)

// NewExpirationRule builds the rule that expires everything under prefix after days.
func NewExpirationRule(id, prefix string, days int) entity.LifecycleRule {
	return entity.LifecycleRule{
		ID:             id,
		Prefix:         prefix,
		ExpirationDays: days,
		Enabled:        true,
	}
}

// ReconcileExpirationRule makes sure rules hold one expiration rule for prefix
// with the given days. Only the first rule matching prefix is looked at. The
// returned slice is a copy; input rules are never modified.
func ReconcileExpirationRule(rules []entity.LifecycleRule, prefix string, days int, newID string) ([]entity.LifecycleRule, entity.LifecycleAction) {
	out := make([]entity.LifecycleRule, len(rules), len(rules)+1)
	copy(out, rules)

	for i := range out {
		if out[i].Prefix != prefix {
			continue
		}
		if out[i].ExpirationDays == days {
			return out, entity.LifecycleUnchanged
		}
		out[i].ExpirationDays = days
		return out, entity.LifecycleUpdated
	}

	return append(out, NewExpirationRule(newID, prefix, days)), entity.LifecycleCreated
}
