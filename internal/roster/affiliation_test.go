package roster

import (
	"testing"

	"github.com/goktugdsert/Flight-Project/internal/models"
)

func TestResolveConnectionsGuardian(t *testing.T) {
	parentSeat := "7B"
	all := []models.Passenger{
		{ID: "1", Name: "Parent", Age: 30, Seat: &parentSeat},
		{ID: "2", Name: "Infant", Age: 1, ParentID: "1"},
	}
	conn := ResolveConnections(all[1], all)
	if !conn.HasConnection {
		t.Fatalf("expected a guardian connection")
	}
	if len(conn.Lines) != 1 || conn.Lines[0].Relation != RelationGuardian {
		t.Fatalf("unexpected lines: %+v", conn.Lines)
	}
	if conn.Lines[0].Label != "Parent (7B)" {
		t.Fatalf("unexpected label: %s", conn.Lines[0].Label)
	}
}

func TestResolveConnectionsCompanionsWithAndWithoutSeats(t *testing.T) {
	s := "12A"
	all := []models.Passenger{
		{ID: "1", Name: "Lead", Age: 40, Affiliated: []string{"2", "3"}},
		{ID: "2", Name: "Seated Friend", Age: 41, Seat: &s},
		{ID: "3", Name: "Standby Friend", Age: 42},
	}
	conn := ResolveConnections(all[0], all)
	if len(conn.Lines) != 2 {
		t.Fatalf("expected 2 companion lines, got %d", len(conn.Lines))
	}
	if conn.Lines[0].Label != "Seated Friend (12A)" {
		t.Fatalf("unexpected label: %s", conn.Lines[0].Label)
	}
	if conn.Lines[1].Label != "Standby Friend (No Seat)" {
		t.Fatalf("unexpected label: %s", conn.Lines[1].Label)
	}
	for _, l := range conn.Lines {
		if l.Relation != RelationCompanion {
			t.Fatalf("expected companion relation, got %s", l.Relation)
		}
	}
}

func TestResolveConnectionsUnknownLink(t *testing.T) {
	all := []models.Passenger{
		{ID: "1", Name: "Lead", Age: 40, Affiliated: []string{"999"}},
	}
	conn := ResolveConnections(all[0], all)
	if len(conn.Lines) != 1 || conn.Lines[0].Label != "Unknown ID: 999" {
		t.Fatalf("dangling link must render a fallback line: %+v", conn.Lines)
	}
}

func TestResolveConnectionsNone(t *testing.T) {
	all := []models.Passenger{{ID: "1", Name: "Solo", Age: 40}}
	conn := ResolveConnections(all[0], all)
	if conn.HasConnection || len(conn.Lines) != 0 {
		t.Fatalf("expected no connections: %+v", conn)
	}
}

func TestResolveConnectionsNumericStringIDMix(t *testing.T) {
	all := []models.Passenger{
		{ID: "1", Name: "Lead", Age: 40, Affiliated: []string{models.NormalizeID(2)}},
		{ID: "2", Name: "Friend", Age: 41},
	}
	conn := ResolveConnections(all[0], all)
	if len(conn.Lines) != 1 || conn.Lines[0].Label != "Friend (No Seat)" {
		t.Fatalf("numeric-form link must resolve: %+v", conn.Lines)
	}
}
