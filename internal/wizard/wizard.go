package wizard

import (
	"errors"
	"fmt"
	"slices"

	"hotel_admin/internal/domain"
)

type Step int

const (
	StepBasicInfo Step = iota + 1
	StepContactInfo
	StepImagesAndAmenities
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic-info"
	case StepContactInfo:
		return "contact-info"
	case StepImagesAndAmenities:
		return "images-and-amenities"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

const MaxImages = 3

var (
	ErrTooManyImages  = errors.New("wizard: maximum 3 images allowed")
	ErrUnknownAmenity = errors.New("wizard: unknown amenity")
	ErrImageIndex     = errors.New("wizard: image index out of range")
)

// Wizard is the three-step hotel registration flow. It is not safe for
// concurrent use; callers that share one must serialize access.
type Wizard struct {
	refs      domain.ReferenceLists
	draft     Draft
	step      Step
	errs      ValidationErrors
	submitted bool
}

func New(refs domain.ReferenceLists) *Wizard {
	return &Wizard{refs: refs, step: StepBasicInfo, errs: ValidationErrors{}}
}

func (w *Wizard) Step() Step                         { return w.step }
func (w *Wizard) Draft() Draft                       { return w.draft.clone() }
func (w *Wizard) Errors() ValidationErrors           { return w.errs.clone() }
func (w *Wizard) References() domain.ReferenceLists { return w.refs }
func (w *Wizard) Submitted() bool                    { return w.submitted }

// Set updates one text field and clears any error shown for it.
func (w *Wizard) Set(f Field, value string) error {
	p, err := w.draft.text(f)
	if err != nil {
		return err
	}
	*p = value
	delete(w.errs, string(f))
	return nil
}

// Next validates the current step only and advances on success.
func (w *Wizard) Next() bool {
	errs := validateStep(w.step, w.draft)
	w.errs = errs
	if len(errs) > 0 {
		return false
	}
	w.step = min(w.step+1, StepImagesAndAmenities)
	return true
}

// Previous steps back without touching errors.
func (w *Wizard) Previous() {
	w.step = max(w.step-1, StepBasicInfo)
}

// AddImages appends a selection batch. A batch that would push the count
// past MaxImages is discarded whole.
func (w *Wizard) AddImages(batch []domain.Attachment) error {
	if len(w.draft.Images)+len(batch) > MaxImages {
		w.errs[string(FieldImages)] = "Maximum 3 images allowed"
		return ErrTooManyImages
	}
	w.draft.Images = append(w.draft.Images, batch...)
	delete(w.errs, string(FieldImages))
	return nil
}

func (w *Wizard) RemoveImage(i int) error {
	if i < 0 || i >= len(w.draft.Images) {
		return fmt.Errorf("%w: %d", ErrImageIndex, i)
	}
	w.draft.Images = slices.Delete(w.draft.Images, i, i+1)
	delete(w.errs, string(FieldImages))
	return nil
}

// ToggleAmenity adds id when absent and removes it when present.
func (w *Wizard) ToggleAmenity(id string) error {
	if !w.refs.HasAmenity(id) {
		return fmt.Errorf("%w: %s", ErrUnknownAmenity, id)
	}
	if i := slices.Index(w.draft.Amenities, id); i >= 0 {
		w.draft.Amenities = slices.Delete(w.draft.Amenities, i, i+1)
		return nil
	}
	w.draft.Amenities = append(w.draft.Amenities, id)
	return nil
}

func (w *Wizard) Selected(id string) bool { return slices.Contains(w.draft.Amenities, id) }
