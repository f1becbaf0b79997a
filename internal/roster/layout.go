package roster

import (
	"strings"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

// Seat columns per row class. Business rows seat 2+2 with the aisle between
// C and D; economy rows seat 3+3.
var (
	BusinessColumns = []string{"A", "C", "D", "F"}
	EconomyColumns  = []string{"A", "B", "C", "D", "E", "F"}
)

// PlanLayout derives the seat and crew-station topology for a vehicle-type
// label. Classification is a case-insensitive substring match: "777" selects
// the wide-body profile, "737" the narrow-body one, and anything else falls
// back to the narrow-body rows with the smallest crew complement. Flight data
// quality is not guaranteed, so unknown labels degrade instead of failing.
func PlanLayout(vehicleType string) models.AircraftConfig {
	label := strings.ToLower(vehicleType)

	if strings.Contains(label, "777") {
		return buildConfig("Boeing 777", 6, 35, 10)
	}
	if strings.Contains(label, "737") {
		return buildConfig("Boeing 737", 4, 29, 7)
	}
	name := "Airbus A320"
	if strings.TrimSpace(vehicleType) != "" {
		name = vehicleType
	}
	return buildConfig(name, 4, 29, 6)
}

func buildConfig(name string, businessRows, economyRows, crewSlots int) models.AircraftConfig {
	cfg := models.AircraftConfig{
		Name:           name,
		BusinessRows:   make([]int, businessRows),
		EconomyRows:    make([]int, economyRows),
		TotalCrewSlots: crewSlots,
	}
	for i := range cfg.BusinessRows {
		cfg.BusinessRows[i] = i + 1
	}
	for i := range cfg.EconomyRows {
		cfg.EconomyRows[i] = businessRows + 1 + i
	}
	// front stations take the larger half
	cfg.FrontCrewSlots = (crewSlots + 1) / 2
	cfg.RearCrewSlots = crewSlots - cfg.FrontCrewSlots
	return cfg
}
