package services

import (
	"math/rand"

	"github.com/MuIScX/Insider-o/internal/models"
)

// assignRoles shuffles the players and tags the first as master, the second
// as insider and everyone else as a commoner. The returned order is the
// shuffled order. Callers must pass at least two players.
func assignRoles(players []*models.Player) []*models.RolePlayer {
	shuffled := make([]*models.Player, len(players))
	copy(shuffled, players)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	rolePlayers := make([]*models.RolePlayer, 0, len(shuffled))
	for i, player := range shuffled {
		role := models.RoleCommon
		switch i {
		case 0:
			role = models.RoleMaster
		case 1:
			role = models.RoleInsider
		}
		rolePlayers = append(rolePlayers, &models.RolePlayer{
			Player: *player,
			Role:   role,
		})
	}
	return rolePlayers
}
