package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/doctowatch/internal/domain"
)

func TestSelectMotiveExplicitIDWins(t *testing.T) {
	t.Parallel()

	doctor := domain.DoctorProfile{Motives: []domain.Motive{
		{ID: 301, Name: "First consultation"},
		{ID: 302, Name: "Follow-up"},
	}}

	prompter := &fakePrompter{}
	motive, err := SelectMotive(prompter, doctor, 302)
	require.NoError(t, err)
	assert.Equal(t, "Follow-up", motive.Name)
	assert.Zero(t, prompter.chooseCalls, "explicit id must not prompt")
}

func TestSelectMotiveUnknownExplicitID(t *testing.T) {
	t.Parallel()

	doctor := domain.DoctorProfile{Motives: []domain.Motive{{ID: 301, Name: "First consultation"}}}

	_, err := SelectMotive(&fakePrompter{}, doctor, 999)
	require.ErrorIs(t, err, domain.ErrUnknownMotive)
}

func TestSelectMotiveNoMotives(t *testing.T) {
	t.Parallel()

	_, err := SelectMotive(&fakePrompter{}, domain.DoctorProfile{}, 0)
	require.ErrorIs(t, err, domain.ErrNoMotives)
}

func TestSelectMotiveSingleMotiveSkipsPrompt(t *testing.T) {
	t.Parallel()

	doctor := domain.DoctorProfile{Motives: []domain.Motive{{ID: 301, Name: "First consultation"}}}

	prompter := &fakePrompter{}
	motive, err := SelectMotive(prompter, doctor, 0)
	require.NoError(t, err)
	assert.Equal(t, 301, motive.ID)
	assert.Zero(t, prompter.chooseCalls)
}

func TestSelectMotivePromptsWithServerOrder(t *testing.T) {
	t.Parallel()

	doctor := domain.DoctorProfile{Motives: []domain.Motive{
		{ID: 301, Name: "First consultation"},
		{ID: 302, Name: "Follow-up"},
	}}

	prompter := &fakePrompter{chosen: 1}
	motive, err := SelectMotive(prompter, doctor, 0)
	require.NoError(t, err)
	assert.Equal(t, 302, motive.ID)
	assert.Equal(t, "What is your consultation motive?", prompter.lastLabel)
	assert.Equal(t, []string{
		"First consultation (ID: 301)",
		"Follow-up (ID: 302)",
	}, prompter.lastOptions)
}

func TestSelectPatientNoPatients(t *testing.T) {
	t.Parallel()

	_, err := SelectPatient(&fakePrompter{}, nil)
	require.ErrorIs(t, err, domain.ErrNoPatients)
}

func TestSelectPatientSinglePatientSkipsPrompt(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{}
	patient, err := SelectPatient(prompter, []domain.Patient{
		{ID: "7", FirstName: "Ada", LastName: "Lovelace"},
	})
	require.NoError(t, err)
	assert.Equal(t, "7", patient.ID)
	assert.Zero(t, prompter.chooseCalls)
}

func TestSelectPatientPromptsByFullName(t *testing.T) {
	t.Parallel()

	prompter := &fakePrompter{chosen: 1}
	patient, err := SelectPatient(prompter, []domain.Patient{
		{ID: "7", FirstName: "Ada", LastName: "Lovelace"},
		{ID: "8", FirstName: "Alan", LastName: "Turing"},
	})
	require.NoError(t, err)
	assert.Equal(t, "8", patient.ID)
	assert.Equal(t, "For which patient do you want to book a slot?", prompter.lastLabel)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, prompter.lastOptions)
}
