package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bnema/doctowatch/internal/domain"
	"github.com/bnema/doctowatch/internal/ports"
)

// Console rings the terminal bell and prints a short alert line. It is the
// thing that keeps nagging once a slot opens up.
type Console struct {
	out   io.Writer
	log   zerolog.Logger
	style lipgloss.Style
}

var _ ports.Notifier = (*Console)(nil)

func NewConsole(log zerolog.Logger) *Console {
	return &Console{
		out:   os.Stdout,
		log:   log,
		style: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}

func (c *Console) Notify(ctx context.Context, alert domain.SlotAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line := fmt.Sprintf("%d open slot(s) for %s, book now!", alert.Result.SlotCount(), alert.DoctorID)
	if _, err := fmt.Fprintf(c.out, "\a%s\n", c.style.Render(line)); err != nil {
		return fmt.Errorf("write alert: %w", err)
	}

	c.log.Debug().Str("doctor", alert.DoctorID).Int("slots", alert.Result.SlotCount()).Msg("alert emitted")
	return nil
}
