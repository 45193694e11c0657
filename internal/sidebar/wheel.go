package sidebar

import "github.com/portfolio/internal/db"

// Emphasis is the visual weight of a column item relative to the selection.
type Emphasis string

const (
	EmphasisNormal Emphasis = "normal"
	EmphasisCenter Emphasis = "center"
	EmphasisNear   Emphasis = "near"
	EmphasisFar    Emphasis = "far"
)

// Item is one rendered entry of a sidebar column.
type Item struct {
	ID       string
	Title    string
	Subtitle string
	Type     db.ContentType
	Date     string

	// Offset is the signed circular step from the selected item; Distance is
	// its absolute value.
	Offset   int
	Distance int
	Emphasis Emphasis
	Active   bool
}

// Center reorders items around the selected id like a cylinder seen edge-on:
// the selected item comes first, followed by its neighbours at circular
// distance 1, 2, ... alternating after and before it. When selectedID is not
// in the list the original order is kept and every item is EmphasisNormal.
// The input slice is not modified.
func Center(items []Item, selectedID string) []Item {
	n := len(items)
	out := make([]Item, 0, n)

	selected := -1
	if selectedID != "" {
		for i, item := range items {
			if item.ID == selectedID {
				selected = i
				break
			}
		}
	}
	if selected < 0 {
		for i, item := range items {
			item.Offset = i
			item.Distance = 0
			item.Emphasis = EmphasisNormal
			item.Active = false
			out = append(out, item)
		}
		return out
	}

	seen := make([]bool, n)
	place := func(index, offset int) {
		if seen[index] {
			return
		}
		seen[index] = true
		item := items[index]
		item.Offset = offset
		item.Distance = abs(offset)
		item.Emphasis = emphasisFor(item.Distance)
		item.Active = offset == 0
		out = append(out, item)
	}

	place(selected, 0)
	for k := 1; len(out) < n; k++ {
		place((selected+k)%n, k)
		place(((selected-k)%n+n)%n, -k)
	}
	return out
}

func emphasisFor(distance int) Emphasis {
	switch distance {
	case 0:
		return EmphasisCenter
	case 1:
		return EmphasisNear
	default:
		return EmphasisFar
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
