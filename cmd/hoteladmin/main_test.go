package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/hotel/districts", func(w http.ResponseWriter, r *http.Request) {
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
	mux.HandleFunc("/hotel/fetch-all-hotels", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"hotelId":7,"hotelName":"Ocean View","district":"Goa","hotelRating":4,"hotelBasicPricePerNight":1000}]`)
	})
	mux.HandleFunc("/hotel/register-hotel", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hotelId":55,"hotelName":"Ocean View"}`)
	})
	mux.HandleFunc("/hotel/amenities/assign-to-hotel", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func setEnv(t *testing.T, token bool) {
	t.Helper()
	t.Setenv("MYSQL_DSN", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("HOTEL_API_TOKEN", "")
	if token {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "ops@hotel.in",
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("k"))
		if err != nil {
			t.Fatal(err)
		}
		t.Setenv("HOTEL_API_TOKEN", tok)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAmenitiesListSorted(t *testing.T) {
	setEnv(t, true)
	ts := upstream(t)

	out, err := run(t, "amenities", "list", "--sort", "desc", "--api", ts.URL+"/hotel")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if i, j := strings.Index(out, "WiFi"), strings.Index(out, "Pool"); i < 0 || j < 0 || i > j {
		t.Fatalf("want WiFi before Pool:\n%s", out)
	}

	if _, err := run(t, "amenities", "list", "--sort", "sideways", "--api", ts.URL+"/hotel"); err == nil {
		t.Fatal("expected bad sort error")
	}
}

func TestHotelsRegisterFromDraft(t *testing.T) {
	setEnv(t, true)
	ts := upstream(t)

	dir := t.TempDir()
	draft := filepath.Join(dir, "ocean.yaml")
	body := "name: Ocean View\ndescription: Sea\nprice: \"1000\"\naddress: Beach Rd\ndistrict: GOA\n" +
		"hotelType: \"2\"\nlandscape: \"5\"\nemail: desk@ocean.in\nphone: \"9876543210\"\namenities: [\"3\"]\n"
	if err := os.WriteFile(draft, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "hotels", "register", "-f", draft, "--api", ts.URL+"/hotel")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(out, "registered Ocean View (id 55)") {
		t.Fatalf("output: %s", out)
	}
}

func TestDashboardNeedsToken(t *testing.T) {
	setEnv(t, false)
	ts := upstream(t)

	_, err := run(t, "dashboard", "--api", ts.URL+"/hotel", "--token", "")
	if err == nil || !strings.Contains(err.Error(), "not logged in") {
		t.Fatalf("want not logged in, got %v", err)
	}
}

func TestDashboardTotals(t *testing.T) {
	setEnv(t, true)
	ts := upstream(t)

	out, err := run(t, "dashboard", "--api", ts.URL+"/hotel")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !strings.Contains(out, "Hotels:          1") || !strings.Contains(out, "Goa") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestHotelsEditMergesFlags(t *testing.T) {
	setEnv(t, true)
	ts := upstream(t)
	api := ts.URL + "/hotel"

	out, err := run(t, "hotels", "edit", "7", "--api", api,
		"--name", "Ocean View Grand", "--description", "Renovated", "--address", "1 Beach Rd",
		"--type", "2", "--landscape", "5", "--email", "desk@ocean.in", "--phone", "9876543210",
		"--toggle-amenity", "3")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := "updated Ocean View Grand (id 7): Goa, 1000, desk@ocean.in, rating 4.0, amenities [3]"
	if !strings.Contains(out, want) {
		t.Fatalf("output %q, want %q", out, want)
	}

	_, err = run(t, "hotels", "edit", "7", "--api", api, "--phone", "12345")
	if err == nil || !strings.Contains(err.Error(), "Phone number must be 10 digits") {
		t.Fatalf("want phone validation error, got %v", err)
	}
}
