package booking

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bnema/doctowatch/internal/domain"
)

const (
	// resultLimit matches the booking widget's own page size.
	resultLimit     = 3
	insuranceSector = "public"
	dateLayout      = "2006-01-02"
)

// Poll walks the server's next_slot chain starting from the query date.
// Each response may point at the next date worth asking about; the chain
// ends exactly when a response omits next_slot. Only the final response
// decides whether a slot exists.
func (c *Client) Poll(ctx context.Context, q domain.AvailabilityQuery) (domain.AvailabilityResult, error) {
	date := q.StartDate.Format(dateLayout)
	agendaIDs := joinIDs(q.AgendaIDs)

	var payload availabilitiesResponse
	queries := 0
	for {
		payload = availabilitiesResponse{}

		query := url.Values{}
		query.Set("start_date", date)
		query.Set("visit_motive_ids", strconv.Itoa(q.MotiveID))
		query.Set("agenda_ids", agendaIDs)
		query.Set("insurance_sector", insuranceSector)
		query.Set("practice_ids", strconv.Itoa(q.PracticeID))
		query.Set("destroy_temporary", "true")
		query.Set("limit", strconv.Itoa(resultLimit))

		res, err := c.http.GetJSON(ctx, "/availabilities.json", query, &payload)
		if err != nil {
			return domain.AvailabilityResult{}, fmt.Errorf("query availabilities: %w", err)
		}
		if res.IsError() {
			return domain.AvailabilityResult{}, fmt.Errorf("query availabilities: status %d", res.StatusCode())
		}

		queries++
		c.log.Debug().
			Str("start_date", date).
			Int("days", len(payload.Availabilities)).
			Msg("availability window")

		if payload.NextSlot == nil {
			break
		}
		date = *payload.NextSlot
	}

	result := domain.AvailabilityResult{
		Message:       payload.Message,
		Queries:       queries,
		LastStartDate: date,
	}
	for _, day := range payload.Availabilities {
		result.Days = append(result.Days, domain.AvailabilityDay{Date: day.Date, Slots: day.Slots})
		if len(day.Slots) > 0 {
			result.HasSlots = true
		}
	}

	if result.Message != "" {
		c.log.Info().Msg(result.Message)
	}

	return result, nil
}

func joinIDs(ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, "-")
}
