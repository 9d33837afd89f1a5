//go:build integration || !unit

package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"hotel_admin/internal/adapters/hotelapi"
	server "hotel_admin/internal/adapters/http_server"
	redisad "hotel_admin/internal/adapters/redis"
	"hotel_admin/internal/app"
)

// ---------- upstream hotel API stand-in ----------
type upstream struct {
	mu            sync.Mutex
	districtCalls atomic.Int32
	hotelData     map[string]any
	imageFiles    []string
	imageURLs     []string
	assignBody    map[string]any
	auth          []string
}

func (u *upstream) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/hotel/districts", func(w http.ResponseWriter, r *http.Request) {
		u.districtCalls.Add(1)
		u.mu.Lock()
		u.auth = append(u.auth, r.Header.Get("Authorization"))
		u.mu.Unlock()
		_, _ = io.WriteString(w, `[{"key":"GOA","name":"Goa"}]`)
	})
	mux.HandleFunc("/hotel/get-all-hotel-types", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"hotelTypeId":2,"hotelTypeName":"Resort"}]`)
	})
	mux.HandleFunc("/hotel/landscape/get-all-landscapes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"landscapeId":5,"landscapeTypeName":"Beach"}]`)
	})
	mux.HandleFunc("/hotel/amenities/retrieve-all-amenities", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"amenitiesId":1,"amenitiesName":"WiFi"},{"amenitiesId":3,"amenitiesName":"Pool"}]`)
	})
	mux.HandleFunc("/hotel/register-hotel", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		u.mu.Lock()
		defer u.mu.Unlock()
		f, _, err := r.FormFile("hotelData")
		if err != nil {
			http.Error(w, "hotelData missing", http.StatusBadRequest)
			return
		}
		_ = json.NewDecoder(f).Decode(&u.hotelData)
		_ = f.Close()
		for _, fh := range r.MultipartForm.File["imageFiles"] {
			u.imageFiles = append(u.imageFiles, fh.Filename)
		}
		_ = json.Unmarshal([]byte(r.FormValue("imageUrls")), &u.imageURLs)
		_, _ = io.WriteString(w, `{"hotelId":501,"hotelName":"Ocean View"}`)
	})
	mux.HandleFunc("/hotel/amenities/assign-to-hotel", func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		defer u.mu.Unlock()
		_ = json.NewDecoder(r.Body).Decode(&u.assignBody)
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ---------- helpers ----------
func call(t *testing.T, method, url, ctype string, body io.Reader, wantStatus int) map[string]any {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatal(err)
	}
	if ctype != "" {
		req.Header.Set("Content-Type", ctype)
	}
	req.Header.Set("Authorization", "Bearer operator-token")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != wantStatus {
		t.Fatalf("%s %s: status %d want %d: %s", method, url, res.StatusCode, wantStatus, b)
	}
	var out map[string]any
	_ = json.Unmarshal(b, &out)
	return out
}

// ---------- the test ----------
func TestHTTP_EndToEnd_RegisterHotel(t *testing.T) {
	up := &upstream{}
	upstreamSrv := httptest.NewServer(up.handler())
	defer upstreamSrv.Close()

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	client, err := hotelapi.New(upstreamSrv.URL+"/hotel", "", 100, 5*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		API:     client,
		Refs:    app.NewReferenceService(client, cache, time.Minute),
		Reg:     app.NewRegistrationService(client, nil),
		Wizards: server.NewWizardStore(),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	wz := call(t, http.MethodPost, ts.URL+"/v1/wizards", "", nil, http.StatusCreated)
	base := ts.URL + "/v1/wizards/" + wz["id"].(string)

	fields := `{"hotelName":"Ocean View","hotelDescription":"Sea facing","hotelRating":"4.5",
		"hotelBasicPricePerNight":"1500","hotelAddress":"1 Beach Rd","district":"GOA",
		"hotelType":"2","landscape":"5","hotelEmail":"desk@ocean.in","hotelPhoneNumber":"9876543210",
		"hotelImageUrls":"https://cdn/a.jpg, https://cdn/b.jpg"}`
	call(t, http.MethodPatch, base+"/fields", "application/json", strings.NewReader(fields), http.StatusOK)
	call(t, http.MethodPost, base+"/next", "", nil, http.StatusOK)
	call(t, http.MethodPost, base+"/next", "", nil, http.StatusOK)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("images", "lobby.jpg")
	_, _ = fw.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
	_ = mw.Close()
	call(t, http.MethodPost, base+"/images", mw.FormDataContentType(), &buf, http.StatusOK)
	call(t, http.MethodPost, base+"/amenities/3/toggle", "", nil, http.StatusOK)
	call(t, http.MethodPost, base+"/amenities/1/toggle", "", nil, http.StatusOK)

	out := call(t, http.MethodPost, base+"/submit", "", nil, http.StatusCreated)
	if h, _ := out["hotel"].(map[string]any); h["id"] != "501" {
		t.Fatalf("submit response: %+v", out)
	}

	up.mu.Lock()
	defer up.mu.Unlock()
	if up.hotelData["hotelName"] != "Ocean View" || up.hotelData["hotelRating"] != 4.5 ||
		up.hotelData["hotelTypeId"] != float64(2) || up.hotelData["hotelBasicPricePerNight"] != "1500" {
		t.Fatalf("hotelData: %+v", up.hotelData)
	}
	if len(up.imageFiles) != 1 || up.imageFiles[0] != "lobby.jpg" {
		t.Fatalf("imageFiles: %v", up.imageFiles)
	}
	if len(up.imageURLs) != 2 || up.imageURLs[1] != "https://cdn/b.jpg" {
		t.Fatalf("imageUrls: %v", up.imageURLs)
	}
	ids, _ := up.assignBody["amenitiesIds"].([]any)
	if up.assignBody["hotelId"] != "501" || len(ids) != 2 || ids[0] != "3" || ids[1] != "1" {
		t.Fatalf("assign body: %+v", up.assignBody)
	}
	if up.auth[0] != "Bearer operator-token" {
		t.Fatalf("operator token not forwarded: %v", up.auth)
	}
}

func TestHTTP_EndToEnd_ReferenceCachedInRedis(t *testing.T) {
	up := &upstream{}
	upstreamSrv := httptest.NewServer(up.handler())
	defer upstreamSrv.Close()

	mr := miniredis.RunT(t)
	cache := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = cache.Close() })

	client, err := hotelapi.New(upstreamSrv.URL+"/hotel", "", 100, 5*time.Second)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		API:     client,
		Refs:    app.NewReferenceService(client, cache, time.Minute),
		Reg:     app.NewRegistrationService(client, nil),
		Wizards: server.NewWizardStore(),
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	call(t, http.MethodPost, ts.URL+"/v1/wizards", "", nil, http.StatusCreated)
	call(t, http.MethodPost, ts.URL+"/v1/wizards", "", nil, http.StatusCreated)
	if n := up.districtCalls.Load(); n != 1 {
		t.Fatalf("want one upstream load, got %d", n)
	}
	if !mr.Exists("reference:v1") {
		t.Fatal("reference lists not cached")
	}

	mr.FastForward(2 * time.Minute)
	call(t, http.MethodPost, ts.URL+"/v1/wizards", "", nil, http.StatusCreated)
	if n := up.districtCalls.Load(); n != 2 {
		t.Fatalf("expired cache should reload, got %d", n)
	}
}
