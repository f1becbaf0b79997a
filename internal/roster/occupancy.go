package roster

import (
	"fmt"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

type SeatRow struct {
	Row   int      `json:"row"`
	Class string   `json:"class"` // business or economy
	Codes []string `json:"codes"`
}

// SeatMap binds people onto an aircraft topology. Occupants holds passengers
// keyed by exact seat code; seats absent from the map are empty. Cockpit and
// crew-station slots are positional: a nil entry is an unfilled slot.
type SeatMap struct {
	Aircraft      models.AircraftConfig       `json:"aircraft"`
	Rows          []SeatRow                   `json:"rows"`
	Occupants     map[string]models.Passenger `json:"occupants"`
	Cockpit       [2]*models.Pilot            `json:"cockpit"`
	FrontStations []*models.CabinCrewMember   `json:"front_stations"`
	RearStations  []*models.CabinCrewMember   `json:"rear_stations"`
}

// MapOccupancy projects the canonical roster lists onto the given layout.
// Passengers match by seat code, pilots by cockpit slot index, cabin crew by
// station ordinal (front stations first). Records beyond the available slots
// and seat codes with no matching passenger simply render empty; infants are
// represented through their guardian link, never as seat occupants.
func MapOccupancy(layout models.AircraftConfig, passengers []models.Passenger, pilots []models.Pilot, cabin []models.CabinCrewMember) SeatMap {
	sm := SeatMap{
		Aircraft:  layout,
		Occupants: map[string]models.Passenger{},
	}

	bySeat := make(map[string]models.Passenger, len(passengers))
	for _, p := range passengers {
		if p.IsInfant() || p.Seat == nil || *p.Seat == "" {
			continue
		}
		if _, taken := bySeat[*p.Seat]; !taken {
			bySeat[*p.Seat] = p
		}
	}

	addRows := func(rows []int, class string, cols []string) {
		for _, row := range rows {
			sr := SeatRow{Row: row, Class: class}
			for _, col := range cols {
				code := fmt.Sprintf("%d%s", row, col)
				sr.Codes = append(sr.Codes, code)
				if p, ok := bySeat[code]; ok {
					sm.Occupants[code] = p
				}
			}
			sm.Rows = append(sm.Rows, sr)
		}
	}
	addRows(layout.BusinessRows, "business", BusinessColumns)
	addRows(layout.EconomyRows, "economy", EconomyColumns)

	for i := 0; i < len(sm.Cockpit) && i < len(pilots); i++ {
		pilot := pilots[i]
		sm.Cockpit[i] = &pilot
	}

	sm.FrontStations = make([]*models.CabinCrewMember, layout.FrontCrewSlots)
	sm.RearStations = make([]*models.CabinCrewMember, layout.RearCrewSlots)
	for i := 0; i < layout.TotalCrewSlots && i < len(cabin); i++ {
		member := cabin[i]
		if i < layout.FrontCrewSlots {
			sm.FrontStations[i] = &member
		} else {
			sm.RearStations[i-layout.FrontCrewSlots] = &member
		}
	}
	return sm
}
