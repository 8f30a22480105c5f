// Package selection renders catalog entries as display labels and recovers
// the structured card identity from a label the user picked. The selection
// UI is string-based, so the label is the only handle that comes back; the
// parse here is the exact inverse of FormatLabel.
package selection

import (
	"fmt"
	"strings"

	"github.com/isdelr/card-binder-be/internal/common"
	"github.com/isdelr/card-binder-be/internal/models"
)

// FormatLabel renders a catalog entry as a single display line:
// `name - set (#number) - rarity`.
func FormatLabel(e models.CatalogEntry) string {
	return fmt.Sprintf("%s - %s (#%s) - %s", e.Name, e.Set, e.Number, e.Rarity)
}

// ParseLabel recovers the card identity from a rendered label. It fails
// with common.ErrMalformedSelection if the label does not contain at least
// three ` - ` separated segments, or if the set segment lacks a well-formed
// `(#…)` card-number suffix.
func ParseLabel(label string) (models.CardIdentity, error) {
	parts := strings.Split(label, " - ")
	if len(parts) < 3 {
		return models.CardIdentity{}, fmt.Errorf("%w: %q", common.ErrMalformedSelection, label)
	}

	set, number, ok := splitSetSegment(strings.TrimSpace(parts[1]))
	if !ok {
		return models.CardIdentity{}, fmt.Errorf("%w: bad set segment in %q", common.ErrMalformedSelection, label)
	}

	return models.CardIdentity{
		Name:   strings.TrimSpace(parts[0]),
		Set:    set,
		Number: number,
		Rarity: strings.TrimSpace(parts[2]),
	}, nil
}

// splitSetSegment splits `set (#number)` into its set name and card number.
func splitSetSegment(seg string) (set, number string, ok bool) {
	if !strings.HasSuffix(seg, ")") {
		return "", "", false
	}
	idx := strings.LastIndex(seg, " (#")
	if idx < 0 {
		return "", "", false
	}

	set = seg[:idx]
	number = seg[idx+len(" (#") : len(seg)-1]
	if set == "" || number == "" {
		return "", "", false
	}
	return set, number, true
}
