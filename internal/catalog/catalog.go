package catalog

import (
	"context"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/models"
)

// Source supplies the athlete pool a room auctions off when the admin does
// not bring a queue of their own.
type Source interface {
	Lots(ctx context.Context) ([]models.Lot, error)
}

// Static is the built-in pool: a party-sized slate of marquee players with
// reference base prices. Skill ratings are 0-100.
type Static struct{}

// Lots returns a fresh copy each call; rooms mutate lot status in place.
func (Static) Lots(_ context.Context) ([]models.Lot, error) {
	out := make([]models.Lot, len(defaultPool))
	copy(out, defaultPool)
	return out, nil
}

func lot(name string, role models.Role, overseas bool, base int, batting, bowling, luck int) models.Lot {
	return models.Lot{
		Name:      name,
		Role:      role,
		Overseas:  overseas,
		BasePrice: base,
		Step:      base / 10,
		Skill:     models.Skill{Batting: batting, Bowling: bowling, Luck: luck},
		Status:    models.LotPending,
	}
}

var defaultPool = []models.Lot{
	lot("Virat Kohli", models.RoleBatter, false, 200, 94, 20, 72),
	lot("Rohit Sharma", models.RoleBatter, false, 200, 90, 22, 65),
	lot("Travis Head", models.RoleBatter, true, 180, 88, 30, 70),
	lot("Suryakumar Yadav", models.RoleBatter, false, 180, 89, 18, 68),
	lot("Shubman Gill", models.RoleBatter, false, 160, 86, 15, 62),
	lot("David Warner", models.RoleBatter, true, 150, 84, 12, 58),
	lot("Yashasvi Jaiswal", models.RoleBatter, false, 150, 85, 14, 66),
	lot("Ruturaj Gaikwad", models.RoleBatter, false, 140, 83, 16, 61),
	lot("Shreyas Iyer", models.RoleBatter, false, 140, 81, 20, 60),
	lot("Kane Williamson", models.RoleBatter, true, 130, 82, 24, 57),
	lot("MS Dhoni", models.RoleKeeper, false, 160, 78, 5, 90),
	lot("Rishabh Pant", models.RoleKeeper, false, 170, 85, 5, 71),
	lot("Jos Buttler", models.RoleKeeper, true, 180, 88, 5, 69),
	lot("Sanju Samson", models.RoleKeeper, false, 150, 82, 5, 63),
	lot("Quinton de Kock", models.RoleKeeper, true, 140, 81, 5, 60),
	lot("Heinrich Klaasen", models.RoleKeeper, true, 150, 84, 5, 64),
	lot("Ishan Kishan", models.RoleKeeper, false, 130, 79, 5, 59),
	lot("Hardik Pandya", models.RoleAllRounder, false, 180, 78, 74, 67),
	lot("Ravindra Jadeja", models.RoleAllRounder, false, 180, 72, 82, 70),
	lot("Andre Russell", models.RoleAllRounder, true, 170, 80, 70, 73),
	lot("Glenn Maxwell", models.RoleAllRounder, true, 160, 79, 65, 55),
	lot("Ben Stokes", models.RoleAllRounder, true, 170, 77, 72, 62),
	lot("Axar Patel", models.RoleAllRounder, false, 140, 65, 78, 61),
	lot("Sam Curran", models.RoleAllRounder, true, 150, 68, 75, 58),
	lot("Marcus Stoinis", models.RoleAllRounder, true, 130, 72, 64, 57),
	lot("Washington Sundar", models.RoleAllRounder, false, 110, 58, 72, 54),
	lot("Sunil Narine", models.RoleAllRounder, true, 150, 70, 84, 68),
	lot("Jasprit Bumrah", models.RoleBowler, false, 200, 15, 96, 74),
	lot("Rashid Khan", models.RoleBowler, true, 190, 35, 92, 71),
	lot("Mohammed Shami", models.RoleBowler, false, 160, 12, 88, 62),
	lot("Mitchell Starc", models.RoleBowler, true, 170, 18, 87, 60),
	lot("Yuzvendra Chahal", models.RoleBowler, false, 140, 8, 84, 63),
	lot("Trent Boult", models.RoleBowler, true, 150, 14, 85, 59),
	lot("Kuldeep Yadav", models.RoleBowler, false, 140, 10, 83, 61),
	lot("Pat Cummins", models.RoleBowler, true, 160, 40, 86, 64),
	lot("Bhuvneshwar Kumar", models.RoleBowler, false, 120, 20, 80, 56),
	lot("Kagiso Rabada", models.RoleBowler, true, 150, 16, 85, 58),
	lot("Arshdeep Singh", models.RoleBowler, false, 120, 10, 79, 57),
	lot("T Natarajan", models.RoleBowler, false, 110, 6, 77, 55),
	lot("Anrich Nortje", models.RoleBowler, true, 130, 12, 82, 54),
}
