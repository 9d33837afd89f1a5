package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/adapters/observability"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/wizard"
)

// RegistrationService submits finished wizards and journals the outcome.
type RegistrationService struct {
	api     domain.HotelAPI
	journal domain.SubmissionJournal
}

// NewRegistrationService wires submission. journal may be nil.
func NewRegistrationService(api domain.HotelAPI, j domain.SubmissionJournal) *RegistrationService {
	return &RegistrationService{api: api, journal: j}
}

// Submit runs the wizard's create-then-assign sequence. An *wizard.AssignmentError
// still carries the created hotel in the result; nothing compensates for it.
func (s *RegistrationService) Submit(ctx context.Context, w *wizard.Wizard) (wizard.Result, error) {
	draft := w.Draft()
	res, err := w.Submit(ctx, s.api)
	observability.ObserveWizard("submit", wizard.StepImagesAndAmenities.String(), err == nil)

	var (
		verrs wizard.ValidationErrors
		aerr  *wizard.AssignmentError
		serr  *wizard.SubmitError
	)
	switch {
	case err == nil:
		status := domain.SubmissionCreated
		if len(res.AmenitiesAssigned) > 0 {
			status = domain.SubmissionAssigned
		}
		s.record(ctx, draft, &res.Hotel.ID, status, nil)
	case errors.As(err, &aerr):
		log.Warn().Err(err).Str("hotel_id", aerr.HotelID).Strs("amenities", aerr.AmenityIDs).
			Msg("hotel created but amenities were not assigned")
		s.record(ctx, draft, &aerr.HotelID, domain.SubmissionAssignFailed, err)
	case errors.As(err, &serr):
		log.Error().Err(err).Str("name", draft.Name).Msg("hotel registration failed")
		s.record(ctx, draft, nil, domain.SubmissionCreateFailed, err)
	case errors.As(err, &verrs):
		// field errors never reach the network or the journal
	}
	return res, err
}

func (s *RegistrationService) record(ctx context.Context, d wizard.Draft, hotelID *string, st domain.SubmissionStatus, cause error) {
	observability.ObserveSubmission(string(st))
	if s.journal == nil {
		return
	}
	sub := domain.Submission{HotelID: hotelID, HotelName: d.Name, AmenityIDs: d.Amenities, Status: st}
	if cause != nil {
		msg := cause.Error()
		sub.Error = &msg
	}
	if err := s.journal.Record(ctx, sub); err != nil {
		log.Error().Err(err).Str("status", string(st)).Msg("journal write failed")
	}
}

// Unassigned lists hotels created without their requested amenities.
func (s *RegistrationService) Unassigned(ctx context.Context, limit int) ([]domain.Submission, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.ListUnassigned(ctx, limit)
}

// RegisterDraft drives a prepared draft through every step and submits it.
func (s *RegistrationService) RegisterDraft(ctx context.Context, refs domain.ReferenceLists, d DraftFile) (wizard.Result, error) {
	w := wizard.New(refs)
	if err := d.Apply(w); err != nil {
		return wizard.Result{}, err
	}
	for w.Step() != wizard.StepImagesAndAmenities {
		step := w.Step().String()
		ok := w.Next()
		observability.ObserveWizard("next", step, ok)
		if !ok {
			return wizard.Result{}, w.Errors()
		}
	}
	return s.Submit(ctx, w)
}
