package roster

import (
	"testing"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

func TestAnnotatePilots(t *testing.T) {
	pool := []models.PilotCandidate{
		{ID: "100", Name: "Licensed", VehicleTypes: []string{"Boeing 737"}},
		{ID: "101", Name: "Wrong Type", VehicleTypes: []string{"Airbus A320"}},
		{ID: "102", Name: "On Board", VehicleTypes: []string{"Boeing 737"}},
	}
	current := []models.Pilot{{ID: "102", Name: "On Board"}}

	opts := AnnotatePilots(pool, "Boeing 737", current)
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].LicenseWarning || opts[0].OnBoard {
		t.Fatalf("licensed off-board candidate wrongly flagged: %+v", opts[0])
	}
	if !opts[1].LicenseWarning {
		t.Fatalf("mismatched license must warn")
	}
	if !opts[2].OnBoard {
		t.Fatalf("current crew member must be flagged on board")
	}
}

func TestAnnotateAttendantsSoftWarningKeepsCandidate(t *testing.T) {
	pool := []models.AttendantCandidate{
		{ID: "200", Name: "Mismatch", Type: "CHIEF", VehicleTypes: []string{"Airbus A320"}},
	}
	opts := AnnotateAttendants(pool, "Boeing 737", nil)
	if len(opts) != 1 {
		t.Fatalf("warned candidates must stay in the pool")
	}
	if !opts[0].LicenseWarning {
		t.Fatalf("expected license warning")
	}
}
