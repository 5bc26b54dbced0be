package gamestate

// Player represents the identity of a player in the game.
// Player1 acts first.
type Player uint8

const (
	Player1 Player = iota
	Player2
)

const NumPlayers = 2

var playerStr = [...]string{
	"Player1",
	"Player2",
}

func (p Player) String() string {
	return playerStr[p]
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	return 1 - p
}
