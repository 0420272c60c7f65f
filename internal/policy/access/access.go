// Package access holds the fixed user id sets loaded from configuration.
package access

import "github.com/samber/lo"

// Set is an immutable set of Telegram user ids.
type Set struct {
	ids map[int64]struct{}
}

func NewSet(ids []int64) Set {
	return Set{ids: lo.Keyify(ids)}
}

func (s Set) Has(userID int64) bool {
	_, ok := s.ids[userID]
	return ok
}

func (s Set) Len() int {
	return len(s.ids)
}
