package roster

import (
	"fmt"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

const (
	RelationGuardian  = "guardian"
	RelationCompanion = "companion"
)

type ConnectionLine struct {
	Relation string `json:"relation"`
	Label    string `json:"label"`
}

type Connections struct {
	HasConnection bool             `json:"has_connection"`
	Lines         []ConnectionLine `json:"lines"`
}

// ResolveConnections resolves a passenger's guardian and travel-companion
// links against the full passenger list for display. Missing linked records
// produce an "Unknown ID" fallback line instead of an error; the function is
// pure and never mutates its inputs.
func ResolveConnections(p models.Passenger, all []models.Passenger) Connections {
	conn := Connections{}

	if p.ParentID != "" {
		conn.HasConnection = true
		conn.Lines = append(conn.Lines, ConnectionLine{
			Relation: RelationGuardian,
			Label:    lookupLabel(p.ParentID, all),
		})
	}
	for _, id := range p.Affiliated {
		conn.HasConnection = true
		conn.Lines = append(conn.Lines, ConnectionLine{
			Relation: RelationCompanion,
			Label:    lookupLabel(id, all),
		})
	}
	return conn
}

func lookupLabel(rawID string, all []models.Passenger) string {
	id := models.NormalizeID(rawID)
	for _, other := range all {
		if models.NormalizeID(other.ID) == id {
			seat := "No Seat"
			if other.Seat != nil && *other.Seat != "" {
				seat = *other.Seat
			}
			return fmt.Sprintf("%s (%s)", other.Name, seat)
		}
	}
	return fmt.Sprintf("Unknown ID: %s", rawID)
}
