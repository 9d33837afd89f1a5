package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_admin/internal/auth"
	"hotel_admin/internal/domain"
	"hotel_admin/internal/wizard"
)

// View is the screen the console is showing.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewDashboard
	ViewHotelRegistration
	ViewHotelManagement
	ViewAmenities
)

var viewNames = map[View]string{
	ViewLogin:             "login",
	ViewRegister:          "register",
	ViewDashboard:         "dashboard",
	ViewHotelRegistration: "hotel-registration",
	ViewHotelManagement:   "hotel-management",
	ViewAmenities:         "amenities",
}

func (v View) String() string {
	if s, ok := viewNames[v]; ok {
		return s
	}
	return fmt.Sprintf("view(%d)", int(v))
}

func ParseView(s string) (View, error) {
	for v, name := range viewNames {
		if name == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unknown view %q", s)
}

func (v View) public() bool { return v == ViewLogin || v == ViewRegister }

var (
	ErrNotAuthenticated = errors.New("console: not authenticated")
	ErrNoActiveWizard   = errors.New("console: no hotel registration in progress")
)

// Console is one operator's application state. It owns the session, the
// authoritative hotel and amenity collections, the current view and the
// active wizard. Not safe for concurrent use.
type Console struct {
	api   domain.HotelAPI
	refs  *ReferenceService
	reg   *RegistrationService
	clock func() time.Time

	session   *auth.Session
	view      View
	hotels    []domain.Hotel
	amenities []domain.Amenity
	wizard    *wizard.Wizard
}

func NewConsole(api domain.HotelAPI, refs *ReferenceService, reg *RegistrationService) *Console {
	return &Console{api: api, refs: refs, reg: reg, clock: time.Now, view: ViewLogin}
}

func (c *Console) View() View                  { return c.view }
func (c *Console) Session() *auth.Session      { return c.session }
func (c *Console) Hotels() []domain.Hotel      { return c.hotels }
func (c *Console) Amenities() []domain.Amenity { return c.amenities }
func (c *Console) Wizard() *wizard.Wizard      { return c.wizard }
func (c *Console) Authenticated() bool         { return c.session != nil && !c.session.Expired(c.clock()) }

// Login validates the form, exchanges credentials for a token and opens the dashboard.
func (c *Console) Login(ctx context.Context, identifier, password string) error {
	if errs := ValidateLogin(identifier, password); len(errs) > 0 {
		return errs
	}
	cr := domain.Credentials{Password: password}
	if IsEmail(identifier) {
		cr.Email = identifier
	} else {
		cr.Phone = identifier
	}
	res, err := c.api.Login(ctx, cr)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return c.Resume(res.Token, res.Email, res.Role)
}

// Resume starts a session from an existing token.
func (c *Console) Resume(token, email, role string) error {
	s, err := auth.NewSession(token, email, role)
	if err != nil {
		return err
	}
	c.session = s
	c.view = ViewDashboard
	log.Info().Str("admin", s.Email).Str("role", s.Role).Msg("session started")
	return nil
}

// RegisterAdmin creates an operator account. The operator logs in afterwards.
func (c *Console) RegisterAdmin(ctx context.Context, f AdminForm) (string, error) {
	if errs := ValidateAdminForm(f); len(errs) > 0 {
		return "", errs
	}
	signup := domain.AdminSignup{Name: f.Name, Phone: f.Phone, Password: f.Password}
	if IsEmail(f.Identifier) {
		signup.Email = f.Identifier
	} else {
		signup.Phone = f.Identifier
	}
	msg, err := c.api.RegisterAdmin(ctx, signup)
	if err != nil {
		return "", fmt.Errorf("register admin: %w", err)
	}
	if msg == "" {
		msg = "Admin Registration Successful"
	}
	c.view = ViewLogin
	return msg, nil
}

func (c *Console) Logout() {
	c.session = nil
	c.wizard = nil
	c.hotels, c.amenities = nil, nil
	c.view = ViewLogin
}

// Navigate switches screens. Leaving the registration screen discards the draft.
func (c *Console) Navigate(v View) error {
	if _, ok := viewNames[v]; !ok {
		return fmt.Errorf("unknown view %d", int(v))
	}
	if !v.public() && !c.Authenticated() {
		return ErrNotAuthenticated
	}
	if v != ViewHotelRegistration {
		c.wizard = nil
	}
	c.view = v
	return nil
}

func (c *Console) ctx(ctx context.Context) (context.Context, error) {
	if !c.Authenticated() {
		return ctx, ErrNotAuthenticated
	}
	return c.session.Context(ctx), nil
}

// Refresh reloads the hotel and amenity collections.
func (c *Console) Refresh(ctx context.Context) error {
	ctx, err := c.ctx(ctx)
	if err != nil {
		return err
	}
	hotels, err := c.api.ListHotels(ctx)
	if err != nil {
		return fmt.Errorf("load hotels: %w", err)
	}
	amenities, err := c.api.ListAmenities(ctx)
	if err != nil {
		return fmt.Errorf("load amenities: %w", err)
	}
	c.hotels, c.amenities = hotels, amenities
	return nil
}

// StartRegistration loads reference data and opens a fresh wizard.
func (c *Console) StartRegistration(ctx context.Context) (*wizard.Wizard, error) {
	ctx, err := c.ctx(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := c.refs.Load(ctx)
	if err != nil {
		return nil, err
	}
	c.wizard = wizard.New(refs)
	c.view = ViewHotelRegistration
	return c.wizard, nil
}

// SubmitRegistration submits the active wizard. On success the hotel joins
// the collection, the draft is discarded and the dashboard is shown.
func (c *Console) SubmitRegistration(ctx context.Context) (wizard.Result, error) {
	ctx, err := c.ctx(ctx)
	if err != nil {
		return wizard.Result{}, err
	}
	if c.wizard == nil {
		return wizard.Result{}, ErrNoActiveWizard
	}
	res, err := c.reg.Submit(ctx, c.wizard)
	if err != nil {
		return res, err
	}
	h := res.Hotel
	if h.CreatedAt.IsZero() {
		h.CreatedAt = c.clock()
	}
	c.hotels = append(c.hotels, h)
	c.wizard = nil
	c.view = ViewDashboard
	return res, nil
}

func (c *Console) Dashboard() DashboardStats { return ComputeDashboard(c.hotels, c.amenities) }

func (c *Console) SearchHotels(term, district string) []domain.Hotel {
	return FilterHotels(c.hotels, term, district)
}

func (c *Console) SortedAmenities(order SortOrder) []domain.Amenity {
	return SortAmenities(c.amenities, order)
}

// UpdateHotel validates the edit and merges it into the listed hotel in place.
func (c *Console) UpdateHotel(id string, e HotelEdit) (domain.Hotel, error) {
	if !c.Authenticated() {
		return domain.Hotel{}, ErrNotAuthenticated
	}
	if errs := ValidateHotelEdit(e); len(errs) > 0 {
		return domain.Hotel{}, errs
	}
	i := slices.IndexFunc(c.hotels, func(h domain.Hotel) bool { return h.ID == id })
	if i < 0 {
		return domain.Hotel{}, fmt.Errorf("hotel %s: %w", id, domain.ErrNotFound)
	}
	c.hotels[i] = e.Apply(c.hotels[i])
	log.Info().Str("hotel_id", id).Msg("hotel updated")
	return c.hotels[i], nil
}

func (c *Console) HotelImages(ctx context.Context, hotelID string) ([]string, error) {
	ctx, err := c.ctx(ctx)
	if err != nil {
		return nil, err
	}
	return c.api.HotelImages(ctx, hotelID)
}

func (c *Console) AddAmenity(ctx context.Context, name string) error {
	if name == "" {
		return FormErrors{"name": "Amenity name is required"}
	}
	return c.changeAmenities(ctx, func(ctx context.Context) error { return c.api.AddAmenity(ctx, name) })
}

func (c *Console) EditAmenity(ctx context.Context, id, name string) error {
	if name == "" {
		return FormErrors{"name": "Amenity name is required"}
	}
	return c.changeAmenities(ctx, func(ctx context.Context) error { return c.api.EditAmenity(ctx, id, name) })
}

func (c *Console) DeleteAmenity(ctx context.Context, id string) error {
	return c.changeAmenities(ctx, func(ctx context.Context) error { return c.api.DeleteAmenity(ctx, id) })
}

// changeAmenities applies a write, then reloads the list and drops cached reference data.
func (c *Console) changeAmenities(ctx context.Context, write func(context.Context) error) error {
	ctx, err := c.ctx(ctx)
	if err != nil {
		return err
	}
	if err := write(ctx); err != nil {
		return err
	}
	c.refs.Invalidate(ctx)
	amenities, err := c.api.ListAmenities(ctx)
	if err != nil {
		return fmt.Errorf("reload amenities: %w", err)
	}
	c.amenities = amenities
	return nil
}
