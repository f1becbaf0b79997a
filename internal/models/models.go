package models

// Pilot occupies one of the two cockpit slots. Slot 0 is the Captain seat,
// slot 1 the First Officer seat.
type Pilot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // seniority rank: SENIOR, JUNIOR, TRAINEE
}

type CabinCrewMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"` // CHIEF, REGULAR, CHEF
	Type string `json:"type"` // attendant category as reported by the crew directory
}

type Passenger struct {
	ID          string   `json:"id"`
	FlightID    string   `json:"flight_id"`
	Name        string   `json:"name"`
	Age         int      `json:"age"`
	Gender      string   `json:"gender"`
	Nationality string   `json:"nationality"`
	SeatType    string   `json:"seat_type"` // Business or Economy
	Seat        *string  `json:"seat"`      // nil means pending assignment (or infant)
	ParentID    string   `json:"parent_id,omitempty"`
	Affiliated  []string `json:"affiliated_ids,omitempty"`
}

// IsInfant reports whether the passenger travels on a guardian's lap.
// Infants never hold an independent seat code.
func (p Passenger) IsInfant() bool {
	return p.Age <= 2
}

type Location struct {
	Code    string `json:"code"`
	City    string `json:"city"`
	Airport string `json:"airport"`
}

type SharedFlight struct {
	IsShared     bool   `json:"is_shared"`
	Airline      string `json:"airline"`
	FlightNumber string `json:"flight_number"`
}

type FlightInfo struct {
	Number      string       `json:"number"`
	VehicleType string       `json:"vehicle_type"`
	Capacity    int          `json:"capacity"`
	Menu        string       `json:"menu"`
	Source      Location     `json:"source"`
	Destination Location     `json:"destination"`
	Datetime    string       `json:"datetime"`
	Duration    string       `json:"duration"`
	DistanceKm  float64      `json:"distance_km"`
	Shared      SharedFlight `json:"shared_flight"`
}

// Flight is a catalog row from the flight directory, before a roster exists.
type Flight struct {
	Number         string `json:"number"`
	Source         string `json:"source"`
	Destination    string `json:"destination"`
	Datetime       string `json:"datetime"`
	VehicleType    string `json:"vehicle_type"`
	PassengerCount int    `json:"passenger_count"`
}

// AircraftConfig is the seat/crew-station topology for one aircraft type.
// It is derived purely from the vehicle-type label and never stored.
type AircraftConfig struct {
	Name           string `json:"name"`
	BusinessRows   []int  `json:"business_rows"`
	EconomyRows    []int  `json:"economy_rows"`
	TotalCrewSlots int    `json:"total_crew_slots"`
	FrontCrewSlots int    `json:"front_crew_slots"`
	RearCrewSlots  int    `json:"rear_crew_slots"`
}

// PilotCandidate is a row from the available-crew pool for cockpit slots.
type PilotCandidate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Seniority    string   `json:"seniority"`
	VehicleTypes []string `json:"vehicle_types"`
	AllowedRange float64  `json:"allowed_range"`
	Age          int      `json:"age"`
	Nationality  string   `json:"nationality"`
}

// AttendantCandidate is a row from the available-crew pool for cabin stations.
type AttendantCandidate struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"` // CHIEF, REGULAR, CHEF
	VehicleTypes []string `json:"vehicle_types"`
	Recipes      []string `json:"known_recipes,omitempty"`
}

type SavedRoster struct {
	ID           string `json:"id"`
	FlightNumber string `json:"flight_number"`
	DateSaved    string `json:"date_saved"`
	StorageKind  string `json:"storage_kind"`
}

type DashboardStats struct {
	TotalActiveCrew   int `json:"total_active_crew"`
	SavedRostersCount int `json:"saved_rosters_count"`
}
