package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_admin/internal/adapters/observability"
	"hotel_admin/internal/app"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/wizard"
)

const maxUploadBytes = 32 << 20

type Handlers struct {
	API     domain.HotelAPI
	Refs    *app.ReferenceService
	Reg     *app.RegistrationService
	Wizards *WizardStore
	Edits   *app.HotelEdits
}

type problem struct {
	Type    string            `json:"type"`
	Title   string            `json:"title"`
	Status  int               `json:"status"`
	Detail  string            `json:"detail,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	HotelID string            `json:"hotelId,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/reference", h.reference)

	s.mux.Route("/v1/wizards", func(r chi.Router) {
		r.Post("/", h.createWizard)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.withWizard(h.getWizard))
			r.Delete("/", h.deleteWizard)
			r.Patch("/fields", h.withWizard(h.setFields))
			r.Post("/images", h.withWizard(h.addImages))
			r.Delete("/images/{idx}", h.withWizard(h.removeImage))
			r.Post("/amenities/{amenityId}/toggle", h.withWizard(h.toggleAmenity))
			r.Post("/next", h.withWizard(h.next))
			r.Post("/previous", h.withWizard(h.previous))
			r.Post("/submit", h.withWizard(h.submit))
		})
	})

	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Put("/v1/hotels/{id}", h.updateHotel)
	s.mux.Get("/v1/hotels/{id}/images", h.hotelImages)
	s.mux.Get("/v1/dashboard", h.dashboard)
	s.mux.Get("/v1/amenities", h.listAmenities)
	s.mux.Post("/v1/amenities", h.addAmenity)
	s.mux.Put("/v1/amenities/{id}", h.editAmenity)
	s.mux.Delete("/v1/amenities/{id}", h.deleteAmenity)
	s.mux.Get("/v1/submissions/unassigned", h.unassigned)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain and wizard failures onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	var (
		verrs wizard.ValidationErrors
		serr  *wizard.SubmitError
		aerr  *wizard.AssignmentError
	)
	switch {
	case errors.As(err, &verrs):
		writeProblemBody(w, problem{Type: "about:blank", Title: "Validation failed", Status: http.StatusUnprocessableEntity, Errors: verrs})
	case errors.As(err, &aerr):
		writeProblemBody(w, problem{
			Type: "about:blank", Title: "Amenity assignment failed", Status: http.StatusBadGateway,
			Detail: "hotel created but amenities were not assigned", HotelID: aerr.HotelID,
		})
	case errors.As(err, &serr):
		writeProblem(w, http.StatusBadGateway, "Registration failed", serr.Message())
	case errors.Is(err, domain.ErrReferenceData):
		writeProblem(w, http.StatusBadGateway, "Reference data unavailable", app.ReferenceDataMessage)
	case errors.Is(err, domain.ErrUnauthorized):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, domain.ErrForbidden):
		writeProblem(w, http.StatusForbidden, "Forbidden", "")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, wizard.ErrImageIndex):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, wizard.ErrNotOnFinalStep), errors.Is(err, wizard.ErrAlreadySubmitted):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, wizard.ErrUnknownAmenity):
		writeProblem(w, http.StatusUnprocessableEntity, "Unknown amenity", err.Error())
	default:
		log.Error().Err(err).Msg("upstream call failed")
		writeProblem(w, http.StatusBadGateway, "Upstream error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cached body")
	}
}

func (h *Handlers) reference(w http.ResponseWriter, r *http.Request) {
	refs, err := h.Refs.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, refs)
}

// ---- wizards ----

type imageView struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
}

type wizardView struct {
	ID        string            `json:"id"`
	Step      int               `json:"step"`
	StepName  string            `json:"stepName"`
	Draft     wizard.Draft      `json:"draft"`
	Images    []imageView       `json:"images"`
	Errors    map[string]string `json:"errors"`
	Submitted bool              `json:"submitted"`
}

func viewOf(id string, wz *wizard.Wizard) wizardView {
	d := wz.Draft()
	v := wizardView{
		ID: id, Step: int(wz.Step()), StepName: wz.Step().String(),
		Draft: d, Images: []imageView{}, Errors: wz.Errors(), Submitted: wz.Submitted(),
	}
	for _, a := range d.Images {
		v.Images = append(v.Images, imageView{Filename: a.Filename, ContentType: a.ContentType, Size: len(a.Content)})
	}
	return v
}

type wizardHandler func(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard)

// withWizard resolves {id} and holds the wizard's lock for the whole request.
func (h *Handlers) withWizard(next wizardHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		ss, ok := h.Wizards.get(id)
		if !ok {
			writeProblem(w, http.StatusNotFound, "Not Found", "wizard not found")
			return
		}
		ss.Lock()
		defer ss.Unlock()
		next(w, r, id, ss.w)
	}
}

func (h *Handlers) createWizard(w http.ResponseWriter, r *http.Request) {
	refs, err := h.Refs.Load(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	id, ss := h.Wizards.create(refs)
	w.Header().Set("Location", "/v1/wizards/"+id)
	writeJSON(w, http.StatusCreated, viewOf(id, ss.w))
}

func (h *Handlers) getWizard(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

func (h *Handlers) deleteWizard(w http.ResponseWriter, r *http.Request) {
	if !h.Wizards.delete(chi.URLParam(r, "id")) {
		writeProblem(w, http.StatusNotFound, "Not Found", "wizard not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) setFields(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	var in map[string]string
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "expected a JSON object of field values")
		return
	}
	for k, v := range in {
		if err := wz.Set(wizard.Field(k), v); err != nil {
			writeProblem(w, http.StatusBadRequest, "Unknown field", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

func (h *Handlers) addImages(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}
	var batch []domain.Attachment
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid upload", err.Error())
			return
		}
		b, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid upload", err.Error())
			return
		}
		batch = append(batch, domain.Attachment{Filename: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Content: b})
	}
	if len(batch) == 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid upload", `no "images" parts`)
		return
	}
	if err := wz.AddImages(batch); err != nil {
		writeError(w, wz.Errors())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

func (h *Handlers) removeImage(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid index", "idx must be a number")
		return
	}
	if err := wz.RemoveImage(idx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

func (h *Handlers) toggleAmenity(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	if err := wz.ToggleAmenity(chi.URLParam(r, "amenityId")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

func (h *Handlers) next(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	step := wz.Step().String()
	ok := wz.Next()
	observability.ObserveWizard("next", step, ok)
	if !ok {
		writeError(w, wz.Errors())
		return
	}
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

func (h *Handlers) previous(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	step := wz.Step().String()
	wz.Previous()
	observability.ObserveWizard("previous", step, true)
	writeJSON(w, http.StatusOK, viewOf(id, wz))
}

type submitResponse struct {
	Hotel             domain.Hotel `json:"hotel"`
	AmenitiesAssigned []string     `json:"amenitiesAssigned"`
}

func (h *Handlers) submit(w http.ResponseWriter, r *http.Request, id string, wz *wizard.Wizard) {
	res, err := h.Reg.Submit(r.Context(), wz)
	var aerr *wizard.AssignmentError
	if errors.As(err, &aerr) {
		h.Wizards.delete(id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	h.Wizards.delete(id)
	if res.AmenitiesAssigned == nil {
		res.AmenitiesAssigned = []string{}
	}
	writeJSON(w, http.StatusCreated, submitResponse{Hotel: res.Hotel, AmenitiesAssigned: res.AmenitiesAssigned})
}

// ---- management ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.API.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, app.FilterHotels(h.Edits.Overlay(hotels), q.Get("q"), q.Get("district")))
}

// updateHotel records an edit for a listed hotel. The upstream API has no
// update endpoint, so edits live in this process and overlay the listings.
func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	if h.Edits == nil {
		writeProblem(w, http.StatusNotImplemented, "Hotel editing disabled", "")
		return
	}
	var e app.HotelEdit
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	hotels, err := h.API.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	updated, err := h.Edits.Update(hotels, chi.URLParam(r, "id"), e)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *Handlers) hotelImages(w http.ResponseWriter, r *http.Request) {
	urls, err := h.API.HotelImages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, urls)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.API.ListHotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	amenities, err := h.API.ListAmenities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeCached(w, r, app.ComputeDashboard(h.Edits.Overlay(hotels), amenities))
}

func (h *Handlers) listAmenities(w http.ResponseWriter, r *http.Request) {
	order := app.SortOrder(r.URL.Query().Get("sort"))
	switch order {
	case "":
		order = app.SortAsc
	case app.SortAsc, app.SortDesc:
	default:
		writeProblem(w, http.StatusBadRequest, "Invalid sort", "sort must be asc or desc")
		return
	}
	amenities, err := h.API.ListAmenities(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, app.SortAmenities(amenities, order))
}

type amenityBody struct {
	Name string `json:"name"`
}

func decodeAmenity(w http.ResponseWriter, r *http.Request) (string, bool) {
	var in amenityBody
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeError(w, app.FormErrors{"name": "Amenity name is required"})
		return "", false
	}
	return in.Name, true
}

func (h *Handlers) addAmenity(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeAmenity(w, r)
	if !ok {
		return
	}
	if err := h.API.AddAmenity(r.Context(), name); err != nil {
		writeError(w, err)
		return
	}
	h.Refs.Invalidate(r.Context())
	w.WriteHeader(http.StatusCreated)
}

func (h *Handlers) editAmenity(w http.ResponseWriter, r *http.Request) {
	name, ok := decodeAmenity(w, r)
	if !ok {
		return
	}
	if err := h.API.EditAmenity(r.Context(), chi.URLParam(r, "id"), name); err != nil {
		writeError(w, err)
		return
	}
	h.Refs.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) deleteAmenity(w http.ResponseWriter, r *http.Request) {
	if err := h.API.DeleteAmenity(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	h.Refs.Invalidate(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) unassigned(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	subs, err := h.Reg.Unassigned(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if subs == nil {
		subs = []domain.Submission{}
	}
	writeJSON(w, http.StatusOK, subs)
}
