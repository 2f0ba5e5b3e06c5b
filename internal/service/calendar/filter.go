package calendar

import (
	"github.com/lshdainty/porest-hr-front-sub002/internal/domain/calendar"
)

// FilterEvents keeps events whose user and type are both selected.
func FilterEvents(events []calendar.Event, filter calendar.Filter) []calendar.Event {
	out := make([]calendar.Event, 0, len(events))
	for _, ev := range events {
		if filter.Users.Contains(ev.User.ID) && filter.Types.Contains(ev.Type.ID) {
			out = append(out, ev)
		}
	}
	return out
}

// CollapseSelection turns an explicit set that covers the whole universe
// into the "all" sentinel.
func CollapseSelection(sel calendar.Selection, universe []string) calendar.Selection {
	if sel.All || len(universe) == 0 {
		return sel
	}
	chosen := make(map[string]struct{}, len(sel.IDs))
	for _, id := range sel.IDs {
		chosen[id] = struct{}{}
	}
	for _, id := range universe {
		if _, ok := chosen[id]; !ok {
			return sel
		}
	}
	return calendar.SelectAll()
}

// ToggleSelection flips one id. Toggling an id out of "all" leaves every
// other id of the universe selected.
func ToggleSelection(sel calendar.Selection, id string, universe []string) calendar.Selection {
	ids := make([]string, 0, len(universe))
	if sel.All {
		for _, u := range universe {
			if u != id {
				ids = append(ids, u)
			}
		}
		return CollapseSelection(calendar.SelectIDs(ids...), universe)
	}

	found := false
	for _, v := range sel.IDs {
		if v == id {
			found = true
			continue
		}
		ids = append(ids, v)
	}
	if !found {
		ids = append(ids, id)
	}
	return CollapseSelection(calendar.SelectIDs(ids...), universe)
}

// ToggleAll switches between "all" and nothing selected.
func ToggleAll(sel calendar.Selection) calendar.Selection {
	if sel.All {
		return calendar.SelectIDs()
	}
	return calendar.SelectAll()
}

func UserIDs(users []calendar.User) []string {
	ids := make([]string, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

func TypeIDs(types []calendar.EventType) []string {
	ids := make([]string, 0, len(types))
	for _, t := range types {
		ids = append(ids, t.ID)
	}
	return ids
}
