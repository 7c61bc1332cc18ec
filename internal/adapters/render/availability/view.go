package availability

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/doctowatch/internal/domain"
)

func renderView(alert domain.SlotAlert, s styles) string {
	lines := []string{
		s.title.Render("Slots found!"),
		s.header.Render(headerLine(alert)),
	}

	days := daysWithSlots(alert.Result)
	if len(days) == 0 {
		lines = append(lines, s.empty.Render("No open slots."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	body := make([]string, 0, len(days)+1)
	for _, day := range days {
		body = append(body, dayLine(day, s))
	}
	if alert.Result.Message != "" {
		body = append(body, s.detail.Render(alert.Result.Message))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(alert domain.SlotAlert) string {
	header := fmt.Sprintf("doctor: %s", alert.DoctorID)
	if name := alert.Patient.FullName(); name != "" {
		header += fmt.Sprintf(" | patient: %s", name)
	}
	return header
}

func daysWithSlots(result domain.AvailabilityResult) []domain.AvailabilityDay {
	days := make([]domain.AvailabilityDay, 0, len(result.Days))
	for _, day := range result.Days {
		if len(day.Slots) > 0 {
			days = append(days, day)
		}
	}
	return days
}

func dayLine(day domain.AvailabilityDay, s styles) string {
	noun := "slots"
	if len(day.Slots) == 1 {
		noun = "slot"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.date.Render(day.Date),
		" ",
		s.count.Render(fmt.Sprintf("%d %s open", len(day.Slots), noun)),
	)
}
