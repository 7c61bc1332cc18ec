package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Patient is one of the people registered on the account. Exactly one
// patient is bound to a polling run.
type Patient struct {
	ID        string
	FirstName string
	LastName  string
}

func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Motive is a named reason for a consultation.
type Motive struct {
	ID   int
	Name string
}

type Practice struct {
	ID int
}

// Agenda is a bookable calendar tied to a practice, serving one or more
// motives. A disabled agenda never qualifies for polling.
type Agenda struct {
	ID              int
	MotiveIDs       []int
	PracticeID      int
	BookingDisabled bool
}

func (a Agenda) ServesMotive(motiveID int) bool {
	for _, id := range a.MotiveIDs {
		if id == motiveID {
			return true
		}
	}
	return false
}

// DoctorProfile is the booking catalog of a single doctor: the practices
// they work at, the motives they offer (in server order) and their agendas.
type DoctorProfile struct {
	ProfileID int
	Practices []Practice
	Motives   []Motive
	Agendas   []Agenda
}

// MainPracticeID returns the doctor's first practice, or 0 when the booking
// page lists none.
func (p DoctorProfile) MainPracticeID() int {
	if len(p.Practices) == 0 {
		return 0
	}
	return p.Practices[0].ID
}

// EligibleAgendas returns the ids of the agendas serving motiveID, skipping
// disabled agendas and, when practiceID is non-zero, agendas of other
// practices. An empty result is valid.
func EligibleAgendas(profile DoctorProfile, motiveID, practiceID int) []int {
	ids := make([]int, 0, len(profile.Agendas))
	for _, agenda := range profile.Agendas {
		if agenda.BookingDisabled {
			continue
		}
		if !agenda.ServesMotive(motiveID) {
			continue
		}
		if practiceID != 0 && agenda.PracticeID != practiceID {
			continue
		}
		ids = append(ids, agenda.ID)
	}
	return ids
}

// AvailabilityQuery is one poll of the availabilities endpoint, before the
// server-driven next_slot chain is walked.
type AvailabilityQuery struct {
	MotiveID   int
	PracticeID int
	AgendaIDs  []int
	StartDate  time.Time
}

// AvailabilityDay groups the slots offered for one date. Slots are opaque
// beyond their existence.
type AvailabilityDay struct {
	Date  string
	Slots []json.RawMessage
}

// AvailabilityResult is the outcome of walking a next_slot chain. HasSlots
// reflects only the final response of the chain; Queries and LastStartDate
// describe the walk for logging.
type AvailabilityResult struct {
	HasSlots      bool
	Days          []AvailabilityDay
	Message       string
	Queries       int
	LastStartDate string
}

func (r AvailabilityResult) SlotCount() int {
	total := 0
	for _, day := range r.Days {
		total += len(day.Slots)
	}
	return total
}

// SlotAlert is what the notifier is handed once a slot exists.
type SlotAlert struct {
	DoctorID string
	Patient  Patient
	Result   AvailabilityResult
}
