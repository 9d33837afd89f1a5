package app_test

import (
	"os"
	"path/filepath"
	"testing"

	"hotel_admin/internal/app"
	"hotel_admin/internal/wizard"
)

const sampleDraft = `
name: Ocean View
description: Sea facing rooms
rating: "4.5"
price: "1500"
address: 1 Beach Road
district: GOA
hotelType: "2"
landscape: "5"
email: desk@oceanview.in
phone: "9876543210"
imageUrls:
  - https://a/1.jpg
amenities: ["1"]
images: [front.png]
`

func TestLoadDraftFile_ReadsImagesRelativeToDraft(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "front.png"), []byte("png-bytes"), 0o600); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "hotel.yaml")
	if err := os.WriteFile(path, []byte(sampleDraft), 0o600); err != nil {
		t.Fatal(err)
	}

	d, err := app.LoadDraftFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Name != "Ocean View" || d.Phone != "9876543210" || len(d.Amenities) != 1 {
		t.Fatalf("draft: %+v", d)
	}
	if len(d.Attachments) != 1 {
		t.Fatalf("attachments: %+v", d.Attachments)
	}
	a := d.Attachments[0]
	if a.Filename != "front.png" || a.ContentType != "image/png" || string(a.Content) != "png-bytes" {
		t.Fatalf("attachment: %+v", a)
	}
}

func TestLoadDraftFile_MissingImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hotel.yaml")
	if err := os.WriteFile(path, []byte(sampleDraft), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := app.LoadDraftFile(path); err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestParseDraft_Malformed(t *testing.T) {
	if _, err := app.ParseDraft([]byte("name: [unclosed")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDraftApply_FillsWizard(t *testing.T) {
	d, err := app.ParseDraft([]byte(sampleDraft))
	if err != nil {
		t.Fatal(err)
	}
	w := wizard.New(testRefs())
	if err := d.Apply(w); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got := w.Draft()
	if got.Name != "Ocean View" || got.ImageURLs != "https://a/1.jpg" || !w.Selected("1") {
		t.Fatalf("wizard draft: %+v", got)
	}
	if !w.Next() || !w.Next() {
		t.Fatalf("draft should pass both steps: %v", w.Errors())
	}
}

func TestDraftApply_UnknownAmenity(t *testing.T) {
	d := validDraft()
	d.Amenities = []string{"99"}
	if err := d.Apply(wizard.New(testRefs())); err == nil {
		t.Fatal("expected unknown amenity error")
	}
}
