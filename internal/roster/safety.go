package roster

import (
	"strings"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

const (
	RoleTypePilot = "pilot"
	RoleTypeCabin = "cabin"

	rankJunior = "JUNIOR"
	rankChief  = "CHIEF"
)

// SafetyError is a local rejection of a crew-replacement request. It is
// resolved entirely before any remote call is attempted.
type SafetyError struct {
	Reason string
}

func (e *SafetyError) Error() string {
	return "safety violation: " + e.Reason
}

// Replacement describes the incoming person of a proposed crew swap. Seniority
// carries a pilot candidate's rank, Category a cabin candidate's attendant
// type; only the field matching the role is consulted.
type Replacement struct {
	ID        string
	Name      string
	Seniority string
	Category  string
	Licenses  []string
}

// ValidateReplacement checks a proposed swap against the cockpit and cabin
// safety invariants. roleType is "pilot" or "cabin", slot the ordinal being
// replaced. A nil return means the swap may proceed to the remote update.
func ValidateReplacement(roleType string, slot int, incoming Replacement, pilots []models.Pilot, cabin []models.CabinCrewMember) error {
	switch roleType {
	case RoleTypePilot:
		other := 1 - slot
		if other < 0 || other >= len(pilots) {
			return nil
		}
		if strings.EqualFold(incoming.Seniority, rankJunior) && strings.EqualFold(pilots[other].Role, rankJunior) {
			return &SafetyError{Reason: "cockpit cannot hold two junior pilots"}
		}
	case RoleTypeCabin:
		if slot < 0 || slot >= len(cabin) {
			return nil
		}
		leaving := cabin[slot]
		if !strings.EqualFold(leaving.Role, rankChief) {
			return nil
		}
		if strings.EqualFold(incoming.Category, rankChief) {
			return nil
		}
		chiefs := 0
		for _, m := range cabin {
			if strings.EqualFold(m.Role, rankChief) {
				chiefs++
			}
		}
		if chiefs <= 1 {
			return &SafetyError{Reason: "at least one CHIEF cabin crew member required"}
		}
	}
	return nil
}

// LicenseMatch reports whether a candidate's vehicle-type licenses cover the
// flight's aircraft. A mismatch is a soft signal only: candidates failing it
// stay selectable and the result is surfaced as a warning next to them.
func LicenseMatch(licenses []string, vehicleType string) bool {
	if len(licenses) == 0 || strings.TrimSpace(vehicleType) == "" {
		return true
	}
	for _, lic := range licenses {
		if strings.Contains(lic, vehicleType) || strings.Contains(vehicleType, lic) {
			return true
		}
	}
	return false
}
