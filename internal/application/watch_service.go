package application

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/doctowatch/internal/domain"
	"github.com/bnema/doctowatch/internal/ports"
)

// pollInterval is the pause between availability checks. Five seconds is
// frequent enough to win a freshly opened slot without hammering the server.
const pollInterval = 5 * time.Second

// ProgressFunc receives a human-readable note after every poll round.
type ProgressFunc func(message string)

type WatchService struct {
	auth     ports.Authenticator
	catalog  ports.Catalog
	poller   ports.AvailabilityPoller
	notifier ports.Notifier
	prompter ports.Prompter
	clock    ports.Clock
	log      zerolog.Logger
}

func NewWatchService(
	auth ports.Authenticator,
	catalog ports.Catalog,
	poller ports.AvailabilityPoller,
	notifier ports.Notifier,
	prompter ports.Prompter,
	clock ports.Clock,
	log zerolog.Logger,
) *WatchService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &WatchService{
		auth:     auth,
		catalog:  catalog,
		poller:   poller,
		notifier: notifier,
		prompter: prompter,
		clock:    clock,
		log:      log,
	}
}

// WatchParams is everything the user supplied on the command line.
type WatchParams struct {
	DoctorID    string
	Credentials domain.Credentials
	// MotiveID zero means pick interactively (or automatically when the
	// doctor offers a single motive).
	MotiveID int
	// StartDate zero means start looking today.
	StartDate time.Time
}

// RunPlan is a fully resolved watch: who, what and from when.
type RunPlan struct {
	DoctorID string
	Doctor   domain.DoctorProfile
	Patient  domain.Patient
	Motive   domain.Motive
	Query    domain.AvailabilityQuery
}

// Prepare logs in and resolves the doctor, motive and patient into a plan
// the poll loop can run without further prompting.
func (s *WatchService) Prepare(ctx context.Context, params WatchParams) (RunPlan, error) {
	if err := s.auth.Login(ctx, params.Credentials); err != nil {
		return RunPlan{}, fmt.Errorf("log in: %w", err)
	}

	doctor, err := s.catalog.ResolveDoctor(ctx, params.DoctorID)
	if err != nil {
		return RunPlan{}, fmt.Errorf("resolve doctor %q: %w", params.DoctorID, err)
	}

	motive, err := SelectMotive(s.prompter, doctor, params.MotiveID)
	if err != nil {
		return RunPlan{}, err
	}
	s.log.Info().Int("motive_id", motive.ID).Str("motive", motive.Name).Msg("watching motive")

	practiceID := doctor.MainPracticeID()
	agendaIDs := domain.EligibleAgendas(doctor, motive.ID, practiceID)
	if len(agendaIDs) == 0 {
		return RunPlan{}, fmt.Errorf("no bookable agenda serves motive %d", motive.ID)
	}

	patients, err := s.catalog.Patients(ctx)
	if err != nil {
		return RunPlan{}, fmt.Errorf("list patients: %w", err)
	}
	patient, err := SelectPatient(s.prompter, patients)
	if err != nil {
		return RunPlan{}, err
	}
	s.log.Info().Str("patient", patient.FullName()).Msg("booking for patient")

	startDate := params.StartDate
	if startDate.IsZero() {
		startDate = s.clock.Now()
	}

	return RunPlan{
		DoctorID: params.DoctorID,
		Doctor:   doctor,
		Patient:  patient,
		Motive:   motive,
		Query: domain.AvailabilityQuery{
			MotiveID:   motive.ID,
			PracticeID: practiceID,
			AgendaIDs:  agendaIDs,
			StartDate:  startDate,
		},
	}, nil
}

// WaitForSlot polls until a window with open slots shows up. A poll error
// ends the run; stale sessions and blocks need a human anyway.
func (s *WatchService) WaitForSlot(ctx context.Context, plan RunPlan, progress ProgressFunc) (domain.SlotAlert, error) {
	for {
		result, err := s.poller.Poll(ctx, plan.Query)
		if err != nil {
			return domain.SlotAlert{}, err
		}

		if result.HasSlots {
			s.log.Info().
				Int("slots", result.SlotCount()).
				Str("doctor", plan.DoctorID).
				Msg("open slots found")
			return domain.SlotAlert{DoctorID: plan.DoctorID, Patient: plan.Patient, Result: result}, nil
		}

		if progress != nil {
			progress(fmt.Sprintf("no slots up to %s, still watching", result.LastStartDate))
		}

		if err := s.clock.Sleep(ctx, pollInterval); err != nil {
			return domain.SlotAlert{}, err
		}
	}
}

// NotifyUntilStopped re-emits the alert on the poll cadence so an unattended
// terminal keeps beeping. It returns when ctx is canceled.
func (s *WatchService) NotifyUntilStopped(ctx context.Context, alert domain.SlotAlert) error {
	for {
		if err := s.notifier.Notify(ctx, alert); err != nil {
			return err
		}
		if err := s.clock.Sleep(ctx, pollInterval); err != nil {
			return err
		}
	}
}
