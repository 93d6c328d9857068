// Package dataset holds the built-in squad table the service starts from.
package dataset

import "github.com/okian/squadform/internal/domain/model"

func player(first, last string, pos model.Position, q1, q2, q3, q4 float64) model.RawPlayerInput {
	return model.RawPlayerInput{
		FirstName: first,
		LastName:  last,
		Position:  string(pos),
		Quarters:  []float64{q1, q2, q3, q4},
	}
}

func staff(first, last string, q1, q2, q3, q4 float64) model.RawPlayerInput {
	return model.RawPlayerInput{
		FirstName: first,
		LastName:  last,
		Position:  string(model.Coach),
		IsStaff:   true,
		Quarters:  []float64{q1, q2, q3, q4},
	}
}

// Squad returns a fresh copy of the 2026 U10 squad table, in roster order.
// Staff follow the players.
func Squad() []model.RawPlayerInput {
	return []model.RawPlayerInput{
		player("Ajdin", "CVIKO", model.Midfield, 100, 115, 86, 119),
		player("Armin", "PATE", model.Midfield, 100, 108, 101, 110),
		player("Ben", "HASANI", model.Midfield, 100, 121, 85, 116),
		player("Boris", "EICHHOBER", model.Midfield, 100, 109, 94, 113),
		player("Denial", "JUSIC", model.Midfield, 100, 109, 94, 113),
		player("Hannah", "ZACHENEGGER", model.Midfield, 100, 117, 85, 121),
		player("Jonas", "BECKEL", model.Midfield, 100, 117, 86, 114),
		player("Lionel", "TEHOVNIK", model.Midfield, 100, 111, 100, 107),
		player("Maximilian", "ZACHENEGGER", model.Midfield, 100, 107, 102, 108),
		player("Mihajlo", "KARUPOVIC", model.Midfield, 100, 95, 98, 115),
		player("Pavel", "EICHHOBER", model.Midfield, 100, 109, 94, 113),
		player("Robin", "MAIER", model.Goalkeeper, 100, 109, 97, 108),
		staff("Marko", "TRAINER", 100, 100, 100, 100),
	}
}
