package application

import (
	"fmt"

	"github.com/bnema/doctowatch/internal/domain"
	"github.com/bnema/doctowatch/internal/ports"
)

// SelectMotive picks the consultation motive to watch. An explicit id wins
// but must exist on the doctor's page; otherwise a single motive is taken as
// is and anything more gets put to the user.
func SelectMotive(prompter ports.Prompter, doctor domain.DoctorProfile, explicitID int) (domain.Motive, error) {
	if explicitID != 0 {
		for _, motive := range doctor.Motives {
			if motive.ID == explicitID {
				return motive, nil
			}
		}
		return domain.Motive{}, fmt.Errorf("%w: id %d", domain.ErrUnknownMotive, explicitID)
	}

	switch len(doctor.Motives) {
	case 0:
		return domain.Motive{}, domain.ErrNoMotives
	case 1:
		return doctor.Motives[0], nil
	}

	options := make([]string, 0, len(doctor.Motives))
	for _, motive := range doctor.Motives {
		options = append(options, fmt.Sprintf("%s (ID: %d)", motive.Name, motive.ID))
	}

	index, err := prompter.ChooseIndex("What is your consultation motive?", options)
	if err != nil {
		return domain.Motive{}, fmt.Errorf("choose motive: %w", err)
	}

	return doctor.Motives[index], nil
}

// SelectPatient picks who the slot is for. A single-patient account never
// prompts.
func SelectPatient(prompter ports.Prompter, patients []domain.Patient) (domain.Patient, error) {
	switch len(patients) {
	case 0:
		return domain.Patient{}, domain.ErrNoPatients
	case 1:
		return patients[0], nil
	}

	options := make([]string, 0, len(patients))
	for _, patient := range patients {
		options = append(options, patient.FullName())
	}

	index, err := prompter.ChooseIndex("For which patient do you want to book a slot?", options)
	if err != nil {
		return domain.Patient{}, fmt.Errorf("choose patient: %w", err)
	}

	return patients[index], nil
}
