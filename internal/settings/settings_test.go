package settings

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestResolve_AbsentDocument(t *testing.T) {
	t.Parallel()

	got := Resolve(nil)
	if !bytes.Equal(got, DefaultJSON()) {
		t.Fatalf("Resolve(nil) did not return the default document")
	}
}

func TestResolve_EmptyObject(t *testing.T) {
	t.Parallel()

	got := Resolve([]byte("{}"))
	if !bytes.Equal(got, DefaultJSON()) {
		t.Fatalf("Resolve({}) did not return the default document")
	}
}

func TestResolve_Malformed(t *testing.T) {
	t.Parallel()

	got := Resolve([]byte("{not json"))
	if !bytes.Equal(got, DefaultJSON()) {
		t.Fatalf("Resolve of malformed input did not return the default document")
	}
}

func TestResolve_MissingDefaultClock(t *testing.T) {
	t.Parallel()

	stored := []byte(`{"RefreshRate":30,"Schedule":[]}`)
	got := Resolve(stored)
	if !bytes.Equal(got, DefaultJSON()) {
		t.Fatalf("document without DefaultClock was not replaced by the default")
	}
}

func TestResolve_CompleteReturnedVerbatim(t *testing.T) {
	t.Parallel()

	// Partial document, but DefaultClock is present: returned as stored,
	// no backfill of the missing fields.
	stored := []byte(`{"DefaultClock":"wordclock","extra":"kept"}`)
	got := Resolve(stored)
	if !bytes.Equal(got, stored) {
		t.Fatalf("complete document was altered: got %s want %s", got, stored)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	once := Resolve(nil)
	twice := Resolve(once)
	if !bytes.Equal(once, twice) {
		t.Fatalf("resolving a resolved document changed it")
	}
}

func TestDefault_Values(t *testing.T) {
	t.Parallel()

	def := Default()
	if def.DefaultClock != "digital" {
		t.Fatalf("DefaultClock: got %q want %q", def.DefaultClock, "digital")
	}
	if def.RefreshRate != 60 {
		t.Fatalf("RefreshRate: got %d want 60", def.RefreshRate)
	}
	if len(def.Schedule) != 1 {
		t.Fatalf("Schedule length: got %d want 1", len(def.Schedule))
	}
	entry := def.Schedule[0]
	if entry.ClockType != "wordclock" || entry.FromTime != "07:00" || entry.ToTime != "23:00" {
		t.Fatalf("unexpected default schedule entry: %+v", entry)
	}
	if def.ClockClock24DefaultSettings.SizeFactor != 10 {
		t.Fatalf("ClockClock24 size factor: got %d want 10", def.ClockClock24DefaultSettings.SizeFactor)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	t.Parallel()

	a := Default()
	a.DefaultClock = "flip"
	a.Schedule[0].ClockType = "mutated"

	b := Default()
	if b.DefaultClock != "digital" {
		t.Fatalf("mutating one default leaked into the next: %q", b.DefaultClock)
	}
	if b.Schedule[0].ClockType != "wordclock" {
		t.Fatalf("mutating one default schedule leaked into the next: %q", b.Schedule[0].ClockType)
	}
}

func TestDefaultJSON_RoundTrips(t *testing.T) {
	t.Parallel()

	var doc Document
	if err := json.Unmarshal(DefaultJSON(), &doc); err != nil {
		t.Fatalf("DefaultJSON does not unmarshal: %v", err)
	}
	if doc.DefaultClock != "digital" {
		t.Fatalf("DefaultClock after round trip: got %q want %q", doc.DefaultClock, "digital")
	}
}
