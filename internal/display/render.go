package display

import (
	"strings"

	"github.com/nicksukie/livesub/internal/core"
)

// Render builds the overlay update calls for the current display stack and
// status set: the visible entries joined into a single body (bottom entry
// muted when it is still partial), plus the live status messages.
func Render(stack *Stack, status *StatusSet, overlay core.Overlay) {
	visible := stack.Visible()
	overlay.UpdateText(joinVisible(visible), len(visible) > 0, stack.BottomPartial())
	overlay.SetStatusMessages(status.Active())
}

func joinVisible(items []core.DisplayItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = item.Text
	}
	return strings.Join(parts, "\n")
}
