package highlight

import terrors "github.com/matzehuels/touchstone/pkg/errors"

// RevertPolicy decides what the view shows after the pointer leaves a node
// while another node is selected.
type RevertPolicy string

const (
	// RevertToSelection restores the selected node's highlight and panel.
	RevertToSelection RevertPolicy = "selection"
	// RevertToCleared clears dimming and the panel; the selected marker stays.
	RevertToCleared RevertPolicy = "cleared"
)

// ParsePolicy validates a policy name. Empty selects [RevertToSelection].
func ParsePolicy(s string) (RevertPolicy, error) {
	switch RevertPolicy(s) {
	case "", RevertToSelection:
		return RevertToSelection, nil
	case RevertToCleared:
		return RevertToCleared, nil
	}
	return "", terrors.New(terrors.ErrCodeInvalidConfig, "unknown revert policy %q (want selection or cleared)", s)
}
