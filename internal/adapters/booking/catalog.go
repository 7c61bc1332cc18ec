package booking

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bnema/doctowatch/internal/domain"
)

// ResolveDoctor fetches the doctor's booking page as structured data.
func (c *Client) ResolveDoctor(ctx context.Context, doctorID string) (domain.DoctorProfile, error) {
	var payload bookingResponse
	res, err := c.http.GetJSON(ctx, "/booking/"+url.PathEscape(doctorID)+".json", nil, &payload)
	if err != nil {
		return domain.DoctorProfile{}, fmt.Errorf("fetch booking page: %w", err)
	}
	if res.IsError() {
		return domain.DoctorProfile{}, fmt.Errorf("fetch booking page: status %d", res.StatusCode())
	}

	profile := payload.toDomain()
	c.log.Debug().
		Int("profile_id", profile.ProfileID).
		Int("motives", len(profile.Motives)).
		Int("agendas", len(profile.Agendas)).
		Msg("resolved doctor booking page")
	return profile, nil
}

// Patients lists the people registered on the logged-in account.
func (c *Client) Patients(ctx context.Context) ([]domain.Patient, error) {
	var payload []patientSchema
	res, err := c.http.GetJSON(ctx, "/account/master_patients.json", nil, &payload)
	if err != nil {
		return nil, fmt.Errorf("fetch patients: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch patients: status %d", res.StatusCode())
	}

	patients := make([]domain.Patient, 0, len(payload))
	for _, patient := range payload {
		patients = append(patients, patient.toDomain())
	}
	return patients, nil
}
