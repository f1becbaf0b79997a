package roster

import "github.com/goktugdsert/Flight-Project/internal/models"

// PilotOption is a pilot candidate annotated for the crew-switch picker.
// LicenseWarning is soft: the candidate stays selectable.
type PilotOption struct {
	models.PilotCandidate
	LicenseWarning bool `json:"license_warning"`
	OnBoard        bool `json:"on_board"`
}

// AttendantOption is a cabin-crew candidate annotated for the picker.
type AttendantOption struct {
	models.AttendantCandidate
	LicenseWarning bool `json:"license_warning"`
	OnBoard        bool `json:"on_board"`
}

// AnnotatePilots marks each candidate with its soft license warning against
// the flight's aircraft and whether it already holds a cockpit slot.
func AnnotatePilots(pool []models.PilotCandidate, vehicleType string, current []models.Pilot) []PilotOption {
	out := make([]PilotOption, 0, len(pool))
	for _, c := range pool {
		opt := PilotOption{
			PilotCandidate: c,
			LicenseWarning: !LicenseMatch(c.VehicleTypes, vehicleType),
		}
		for _, p := range current {
			if models.SameID(p.ID, c.ID) {
				opt.OnBoard = true
				break
			}
		}
		out = append(out, opt)
	}
	return out
}

// AnnotateAttendants is the cabin-crew counterpart of AnnotatePilots.
func AnnotateAttendants(pool []models.AttendantCandidate, vehicleType string, current []models.CabinCrewMember) []AttendantOption {
	out := make([]AttendantOption, 0, len(pool))
	for _, c := range pool {
		opt := AttendantOption{
			AttendantCandidate: c,
			LicenseWarning:     !LicenseMatch(c.VehicleTypes, vehicleType),
		}
		for _, m := range current {
			if models.SameID(m.ID, c.ID) {
				opt.OnBoard = true
				break
			}
		}
		out = append(out, opt)
	}
	return out
}
