package notify

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/doctowatch/internal/domain"
)

func TestNotifyRingsBellAndPrintsAlert(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	console := NewConsole(zerolog.Nop())
	console.out = &out

	err := console.Notify(context.Background(), domain.SlotAlert{
		DoctorID: "dr-test",
		Result: domain.AvailabilityResult{
			HasSlots: true,
			Days: []domain.AvailabilityDay{
				{Date: "2024-01-09", Slots: []json.RawMessage{json.RawMessage(`"09:00"`)}},
			},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "\a")
	assert.Contains(t, out.String(), "1 open slot(s) for dr-test")
}

func TestNotifyHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	console := NewConsole(zerolog.Nop())
	console.out = &out

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := console.Notify(ctx, domain.SlotAlert{DoctorID: "dr-test"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
