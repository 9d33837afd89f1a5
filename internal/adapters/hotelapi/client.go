package hotelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_admin/internal/adapters/observability"
	"hotel_admin/internal/auth"
	"hotel_admin/internal/domain"
)

const (
	pathDistricts      = "/districts"
	pathHotelTypes     = "/get-all-hotel-types"
	pathLandscapes     = "/landscape/get-all-landscapes"
	pathAmenities      = "/amenities/retrieve-all-amenities"
	pathRegisterHotel  = "/register-hotel"
	pathAssignAmenity  = "/amenities/assign-to-hotel"
	pathHotels         = "/fetch-all-hotels"
	pathHotelImages    = "/get-hotel-images"
	pathHotelImageURLs = "/get-hotel-image-urls"
	pathAddAmenity     = "/amenities/add"
	pathEditAmenity    = "/amenities/edit-amenities"
	pathDeleteAmenity  = "/amenities/delete-amenities"
	pathLogin          = "/admin/admin-login"
	pathRegisterAdmin  = "/admin/admin-register"
)

type Client struct {
	base  string
	hc    *http.Client
	token string
	rl    *rate.Limiter
}

// New builds a client for the hotel REST API. token is the fallback bearer
// credential; a token carried by the request context wins.
func New(base, token string, rps int, timeout time.Duration) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("API base URL: %w", err)
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(base, "/"),
		hc:    &http.Client{Timeout: timeout},
		token: token,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Reference data ----

func (c *Client) ListDistricts(ctx context.Context) ([]domain.ReferenceItem, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, pathDistricts, nil, &raw); err != nil {
		return nil, err
	}
	return mapReference(raw, districtAliases), nil
}

func (c *Client) ListHotelTypes(ctx context.Context) ([]domain.ReferenceItem, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, pathHotelTypes, nil, &raw); err != nil {
		return nil, err
	}
	return mapReference(raw, hotelTypeAliases), nil
}

func (c *Client) ListLandscapes(ctx context.Context) ([]domain.ReferenceItem, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, pathLandscapes, nil, &raw); err != nil {
		return nil, err
	}
	return mapReference(raw, landscapeAliases), nil
}

func (c *Client) ListAmenities(ctx context.Context) ([]domain.Amenity, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, pathAmenities, nil, &raw); err != nil {
		return nil, err
	}
	return mapAmenities(raw), nil
}

// ---- Registration ----

// RegisterHotel sends one multipart request: hotelData (JSON part),
// imageFiles (one part per attachment) and imageUrls (JSON array string).
func (c *Client) RegisterHotel(ctx context.Context, r domain.Registration) (domain.Hotel, error) {
	body, ctype, err := encodeRegistration(r)
	if err != nil {
		return domain.Hotel{}, err
	}
	var raw map[string]any
	if err := c.do(ctx, http.MethodPost, pathRegisterHotel, nil, bytes.NewReader(body), ctype, &raw); err != nil {
		return domain.Hotel{}, err
	}
	return mapHotel(raw), nil
}

func encodeRegistration(r domain.Registration) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hotelJSON, err := json.Marshal(r.Hotel)
	if err != nil {
		return nil, "", err
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="hotelData"; filename="blob"`)
	h.Set("Content-Type", "application/json")
	pw, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := pw.Write(hotelJSON); err != nil {
		return nil, "", err
	}

	for _, img := range r.Images {
		ct := img.ContentType
		if ct == "" {
			ct = http.DetectContentType(img.Content)
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFiles"; filename=%q`, img.Filename))
		h.Set("Content-Type", ct)
		pw, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := pw.Write(img.Content); err != nil {
			return nil, "", err
		}
	}

	urls := r.ImageURLs
	if urls == nil {
		urls = []string{}
	}
	urlsJSON, err := json.Marshal(urls)
	if err != nil {
		return nil, "", err
	}
	if err := mw.WriteField("imageUrls", string(urlsJSON)); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

func (c *Client) AssignAmenities(ctx context.Context, hotelID string, amenityIDs []string) error {
	payload := struct {
		HotelID      string   `json:"hotelId"`
		AmenitiesIDs []string `json:"amenitiesIds"`
	}{HotelID: hotelID, AmenitiesIDs: amenityIDs}
	return c.sendJSON(ctx, http.MethodPost, pathAssignAmenity, nil, payload, nil)
}

// ---- Management ----

func (c *Client) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, pathHotels, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Hotel, 0, len(raw))
	for _, h := range raw {
		out = append(out, mapHotel(h))
	}
	return out, nil
}

// HotelImages returns uploaded images as data URLs followed by external URLs.
func (c *Client) HotelImages(ctx context.Context, hotelID string) ([]string, error) {
	q := url.Values{"hotelId": {hotelID}}
	var uploaded, external []map[string]any
	if err := c.getJSON(ctx, pathHotelImages, q, &uploaded); err != nil {
		return nil, err
	}
	if err := c.getJSON(ctx, pathHotelImageURLs, q, &external); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(uploaded)+len(external))
	for _, img := range uploaded {
		if b64 := lookupStr(img, "base64Image"); b64 != "" {
			out = append(out, "data:image/jpeg;base64,"+b64)
		}
	}
	for _, img := range external {
		if u := lookupStr(img, "urls"); u != "" {
			out = append(out, u)
		}
	}
	return out, nil
}

func (c *Client) AddAmenity(ctx context.Context, name string) error {
	payload := struct {
		Name string `json:"amenitiesName"`
	}{Name: name}
	return c.sendJSON(ctx, http.MethodPost, pathAddAmenity, nil, payload, nil)
}

func (c *Client) EditAmenity(ctx context.Context, id, name string) error {
	q := url.Values{"amenitiesId": {id}, "newName": {name}}
	return c.do(ctx, http.MethodPut, pathEditAmenity, q, nil, "", nil)
}

func (c *Client) DeleteAmenity(ctx context.Context, id string) error {
	q := url.Values{"amenitiesId": {id}}
	return c.do(ctx, http.MethodDelete, pathDeleteAmenity, q, nil, "", nil)
}

// ---- Admin accounts ----

func (c *Client) Login(ctx context.Context, cr domain.Credentials) (domain.LoginResult, error) {
	var out domain.LoginResult
	return out, c.sendJSON(ctx, http.MethodPost, pathLogin, nil, cr, &out)
}

// RegisterAdmin returns the server's confirmation text.
func (c *Client) RegisterAdmin(ctx context.Context, a domain.AdminSignup) (string, error) {
	var msg textBody
	if err := c.sendJSON(ctx, http.MethodPost, pathRegisterAdmin, nil, a, &msg); err != nil {
		return "", err
	}
	return string(msg), nil
}

// ---- Internals ----

// APIError is a non-2xx response. Message holds the server's error payload.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("hotel api: status %d", e.Status)
	}
	return fmt.Sprintf("hotel api: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error         { return e.Err }
func (e *APIError) ServerMessage() string { return e.Message }

// textBody accepts plain-text responses where JSON is not guaranteed.
type textBody string

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, q url.Values, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return c.do(ctx, method, path, q, bytes.NewReader(b), "application/json", out)
}

// do performs one request with client-side rate limiting. There are no
// retries: every failure is returned to the caller as-is.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, body io.Reader, ctype string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	u := c.base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	if tok := c.bearer(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "hotel-admin/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("hotel_api", path, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("hotel_api", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return decodeBody(b, out)
	}

	// read a small error body for the operator
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{Status: resp.StatusCode, Message: errorMessage(b)}
	switch resp.StatusCode {
	case http.StatusNotFound:
		apiErr.Err = domain.ErrNotFound
	case http.StatusUnauthorized:
		apiErr.Err = domain.ErrUnauthorized
	case http.StatusForbidden:
		apiErr.Err = domain.ErrForbidden
	}
	return apiErr
}

func (c *Client) bearer(ctx context.Context) string {
	if tok := auth.TokenFrom(ctx); tok != "" {
		return tok
	}
	return c.token
}

func decodeBody(b []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if t, ok := out.(*textBody); ok {
		var s string
		if json.Unmarshal(b, &s) == nil {
			*t = textBody(s)
			return nil
		}
		*t = textBody(strings.TrimSpace(string(b)))
		return nil
	}
	// numbers stay json.Number so large ids keep every digit
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage prefers a message/error field of a JSON body, else the raw text.
func errorMessage(b []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err == nil {
		for _, k := range []string{"message", "error", "detail"} {
			if s := lookupStr(obj, k); s != "" {
				return s
			}
		}
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(b))
}

var _ domain.HotelAPI = (*Client)(nil)
