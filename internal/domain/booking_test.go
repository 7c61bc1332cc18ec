package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibleAgendasSkipsDisabledAgendas(t *testing.T) {
	profile := DoctorProfile{
		Agendas: []Agenda{
			{ID: 1, MotiveIDs: []int{7}, PracticeID: 42},
			{ID: 2, MotiveIDs: []int{7}, PracticeID: 42, BookingDisabled: true},
			{ID: 3, MotiveIDs: []int{7}, PracticeID: 42},
		},
	}

	assert.Equal(t, []int{1, 3}, EligibleAgendas(profile, 7, 42))
}

func TestEligibleAgendasDisabledExcludedEvenWithoutPracticeFilter(t *testing.T) {
	profile := DoctorProfile{
		Agendas: []Agenda{
			{ID: 1, MotiveIDs: []int{7}, PracticeID: 42, BookingDisabled: true},
		},
	}

	assert.Empty(t, EligibleAgendas(profile, 7, 0))
}

func TestEligibleAgendasFiltersByMotiveAndPractice(t *testing.T) {
	profile := DoctorProfile{
		Agendas: []Agenda{
			{ID: 1, MotiveIDs: []int{7, 8}, PracticeID: 42},
			{ID: 2, MotiveIDs: []int{8}, PracticeID: 42},
			{ID: 3, MotiveIDs: []int{7}, PracticeID: 43},
		},
	}

	assert.Equal(t, []int{1}, EligibleAgendas(profile, 7, 42))
	assert.Equal(t, []int{1, 3}, EligibleAgendas(profile, 7, 0))
}

func TestEligibleAgendasEmptySetIsValid(t *testing.T) {
	profile := DoctorProfile{
		Agendas: []Agenda{{ID: 1, MotiveIDs: []int{9}, PracticeID: 42}},
	}

	assert.Empty(t, EligibleAgendas(profile, 7, 42))
}

func TestMainPracticeID(t *testing.T) {
	assert.Equal(t, 0, DoctorProfile{}.MainPracticeID())
	assert.Equal(t, 42, DoctorProfile{Practices: []Practice{{ID: 42}, {ID: 43}}}.MainPracticeID())
}

func TestSessionStateRoundTripsThroughJSON(t *testing.T) {
	state := SessionState{
		Cookies: map[string]string{"_doctolib_session": "abc", "ssid": "def"},
		LastURL: "https://www.doctolib.fr/sessions/new",
	}

	encoded, err := json.Marshal(state)
	require.NoError(t, err)

	var decoded SessionState
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, state, decoded)
}

func TestAvailabilityResultSlotCount(t *testing.T) {
	result := AvailabilityResult{
		Days: []AvailabilityDay{
			{Date: "2024-01-08"},
			{Date: "2024-01-09", Slots: []json.RawMessage{json.RawMessage(`"09:00"`), json.RawMessage(`"09:30"`)}},
		},
	}

	assert.Equal(t, 2, result.SlotCount())
}
