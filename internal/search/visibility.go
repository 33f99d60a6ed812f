package search

import "context"

// EmailVisible is the visibility policy: a registered target's email is
// disclosed to a requester iff the target has the requester's phone number in
// their own address book. The check is one-directional; whether the requester
// saved the target does not matter.
func EmailVisible(targetSavedRequesterPhone bool) bool {
	return targetSavedRequesterPhone
}

// visibilityCache evaluates the policy against the contact store, memoizing
// per target so a request that surfaces the same identity twice only pays for
// one lookup. Nothing is cached across requests.
type visibilityCache struct {
	contacts       ContactDirectory
	requesterPhone string
	seen           map[string]bool
}

func newVisibilityCache(contacts ContactDirectory, requesterPhone string) *visibilityCache {
	return &visibilityCache{
		contacts:       contacts,
		requesterPhone: requesterPhone,
		seen:           make(map[string]bool),
	}
}

func (v *visibilityCache) emailVisible(ctx context.Context, targetID string) (bool, error) {
	if visible, ok := v.seen[targetID]; ok {
		return visible, nil
	}
	saved, err := v.contacts.Exists(ctx, targetID, v.requesterPhone)
	if err != nil {
		return false, err
	}
	visible := EmailVisible(saved)
	v.seen[targetID] = visible
	return visible, nil
}
