package app_test

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hotel_admin/internal/auth"
	"hotel_admin/internal/domain"
)

// ---- fakes ----

type fakeAPI struct {
	mu sync.Mutex

	refs       domain.ReferenceLists
	refErr     error
	refCalls   int
	hotels     []domain.Hotel
	created    []domain.Registration
	assigned   map[string][]string
	createErr  error
	assignErr  error
	nextID     int
	amenityOps []string
	loginRes   domain.LoginResult
	loginCreds []domain.Credentials
	signups    []domain.AdminSignup
	tokens     []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{refs: testRefs(), assigned: map[string][]string{}, nextID: 100}
}

func (f *fakeAPI) seen(ctx context.Context) {
	f.tokens = append(f.tokens, auth.TokenFrom(ctx))
}

func (f *fakeAPI) ListDistricts(ctx context.Context) ([]domain.ReferenceItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refCalls++
	return f.refs.Districts, f.refErr
}

func (f *fakeAPI) ListHotelTypes(ctx context.Context) ([]domain.ReferenceItem, error) {
	return f.refs.HotelTypes, nil
}

func (f *fakeAPI) ListLandscapes(ctx context.Context) ([]domain.ReferenceItem, error) {
	return f.refs.Landscapes, nil
}

func (f *fakeAPI) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Amenity(nil), f.refs.Amenities...), nil
}

func (f *fakeAPI) RegisterHotel(ctx context.Context, r domain.Registration) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen(ctx)
	f.created = append(f.created, r)
	if f.createErr != nil {
		return domain.Hotel{}, f.createErr
	}
	f.nextID++
	return domain.Hotel{ID: strconv.Itoa(f.nextID), Name: r.Hotel.HotelName, District: r.Hotel.District}, nil
}

func (f *fakeAPI) AssignAmenities(ctx context.Context, hotelID string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assigned[hotelID] = ids
	return nil
}

func (f *fakeAPI) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen(ctx)
	return f.hotels, nil
}

func (f *fakeAPI) HotelImages(ctx context.Context, id string) ([]string, error) {
	return []string{"https://img/" + id + ".jpg"}, nil
}

func (f *fakeAPI) AddAmenity(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amenityOps = append(f.amenityOps, "add:"+name)
	f.refs.Amenities = append(f.refs.Amenities, domain.Amenity{ID: strconv.Itoa(len(f.refs.Amenities) + 1), Name: name})
	return nil
}

func (f *fakeAPI) EditAmenity(ctx context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amenityOps = append(f.amenityOps, "edit:"+id+":"+name)
	return nil
}

func (f *fakeAPI) DeleteAmenity(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amenityOps = append(f.amenityOps, "delete:"+id)
	return nil
}

func (f *fakeAPI) Login(ctx context.Context, c domain.Credentials) (domain.LoginResult, error) {
	f.loginCreds = append(f.loginCreds, c)
	return f.loginRes, nil
}

func (f *fakeAPI) RegisterAdmin(ctx context.Context, a domain.AdminSignup) (string, error) {
	f.signups = append(f.signups, a)
	return "", nil
}

// fakeCache stores JSON so any destination type round-trips.
type fakeCache struct {
	store map[string][]byte
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels++
	delete(c.store, key)
	return nil
}

type fakeJournal struct {
	mu      sync.Mutex
	records []domain.Submission
}

func (j *fakeJournal) Record(ctx context.Context, s domain.Submission) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, s)
	return nil
}

func (j *fakeJournal) ListUnassigned(ctx context.Context, limit int) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, s := range j.records {
		if s.Status == domain.SubmissionAssignFailed {
			out = append(out, s)
		}
	}
	return out, nil
}

// ---- helpers ----

func testRefs() domain.ReferenceLists {
	return domain.ReferenceLists{
		Districts:  []domain.ReferenceItem{{Key: "GOA", Name: "Goa"}, {Key: "PUNE", Name: "Pune"}},
		HotelTypes: []domain.ReferenceItem{{Key: "2", Name: "Resort"}},
		Landscapes: []domain.ReferenceItem{{Key: "5", Name: "Beach"}},
		Amenities: []domain.Amenity{
			{ID: "1", Name: "WiFi", Icon: domain.AmenityIcon},
			{ID: "3", Name: "Pool", Icon: domain.AmenityIcon},
		},
	}
}

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}
