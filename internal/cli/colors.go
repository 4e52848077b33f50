package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gigdash/internal/model"
	"github.com/theirongolddev/gigdash/internal/pipeline"
)

// Display colors per closed enumeration. Each map covers every value of its
// enumeration.
var (
	ProjectStatusColors = map[model.ProjectStatus]lipgloss.Color{
		model.ProjectActive:    ColorBlue,
		model.ProjectCompleted: ColorGreen,
		model.ProjectPending:   ColorYellow,
		model.ProjectOverdue:   ColorRed,
	}

	ClientStatusColors = map[model.ClientStatus]lipgloss.Color{
		model.ClientActive:   ColorGreen,
		model.ClientInactive: ColorTextMuted,
	}

	InvoiceStatusColors = map[model.InvoiceStatus]lipgloss.Color{
		model.InvoicePaid:    ColorGreen,
		model.InvoicePending: ColorYellow,
		model.InvoiceOverdue: ColorRed,
		model.InvoiceDraft:   ColorTextMuted,
	}

	TaskStatusColors = map[model.TaskStatus]lipgloss.Color{
		model.TaskTodo:       ColorTextMuted,
		model.TaskInProgress: ColorBlue,
		model.TaskCompleted:  ColorGreen,
	}

	PriorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityHigh:   ColorRed,
		model.PriorityMedium: ColorYellow,
		model.PriorityLow:    ColorGreen,
	}

	NotificationColors = map[model.NotificationType]lipgloss.Color{
		model.NotificationInfo:    ColorBlue,
		model.NotificationSuccess: ColorGreen,
		model.NotificationWarning: ColorYellow,
		model.NotificationError:   ColorRed,
	}

	ActivityColors = map[model.ActivityType]lipgloss.Color{
		model.ActivityProject: ColorBlue,
		model.ActivityPayment: ColorGreen,
		model.ActivityClient:  ColorPurple,
		model.ActivityTask:    ColorOrange,
	}

	tierColors = map[pipeline.Tier]lipgloss.Color{
		pipeline.TierHigh:    ColorGreen,
		pipeline.TierOnTrack: ColorBlue,
		pipeline.TierBehind:  ColorYellow,
		pipeline.TierAtRisk:  ColorRed,
	}
)

// TierColor returns the bar color for a progress tier.
func TierColor(t pipeline.Tier) lipgloss.Color {
	if c, ok := tierColors[t]; ok {
		return c
	}
	return ColorTextMuted
}

// Badge renders v in the color the map assigns it, or muted when absent.
func Badge[K ~string](colors map[K]lipgloss.Color, v K) string {
	c, ok := colors[v]
	if !ok {
		c = ColorTextMuted
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(v))
}
