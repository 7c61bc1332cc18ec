package booking

import (
	"encoding/json"

	"github.com/bnema/doctowatch/internal/domain"
)

type loginRequest struct {
	Kind             string `json:"kind"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	Remember         bool   `json:"remember"`
	RememberUsername bool   `json:"remember_username"`
}

type loginResponse struct {
	Redirection string `json:"redirection"`
}

type sendAuthCodeRequest struct {
	TwoFactorAuthMethod string `json:"two_factor_auth_method"`
}

type challengeRequest struct {
	AuthCode            string `json:"auth_code"`
	TwoFactorAuthMethod string `json:"two_factor_auth_method"`
}

type bookingResponse struct {
	Data struct {
		Profile struct {
			ID int `json:"id"`
		} `json:"profile"`
		Places []struct {
			PracticeIDs []int `json:"practice_ids"`
		} `json:"places"`
		VisitMotives []struct {
			ID   int    `json:"id"`
			Name string `json:"name"`
		} `json:"visit_motives"`
		Agendas []struct {
			ID              int   `json:"id"`
			VisitMotiveIDs  []int `json:"visit_motive_ids"`
			BookingDisabled bool  `json:"booking_disabled"`
			PracticeID      int   `json:"practice_id"`
		} `json:"agendas"`
	} `json:"data"`
}

func (r bookingResponse) toDomain() domain.DoctorProfile {
	profile := domain.DoctorProfile{ProfileID: r.Data.Profile.ID}

	for _, place := range r.Data.Places {
		for _, id := range place.PracticeIDs {
			profile.Practices = append(profile.Practices, domain.Practice{ID: id})
		}
	}

	// server order is meaningful for interactive choice, keep it
	for _, motive := range r.Data.VisitMotives {
		profile.Motives = append(profile.Motives, domain.Motive{ID: motive.ID, Name: motive.Name})
	}

	for _, agenda := range r.Data.Agendas {
		profile.Agendas = append(profile.Agendas, domain.Agenda{
			ID:              agenda.ID,
			MotiveIDs:       agenda.VisitMotiveIDs,
			PracticeID:      agenda.PracticeID,
			BookingDisabled: agenda.BookingDisabled,
		})
	}

	return profile
}

type patientSchema struct {
	ID        json.Number `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
}

func (p patientSchema) toDomain() domain.Patient {
	return domain.Patient{
		ID:        p.ID.String(),
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

type availabilitiesResponse struct {
	Availabilities []struct {
		Date  string            `json:"date"`
		Slots []json.RawMessage `json:"slots"`
	} `json:"availabilities"`
	// NextSlot is the server's pointer to the next date worth querying;
	// nil means the chain ends here.
	NextSlot *string `json:"next_slot"`
	Message  string  `json:"message"`
}
