package prisonbreak

// GameError is a custom error type for prison-break errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig            GameError = "config cannot be nil"
	ErrNilGameRepo          GameError = "game repository cannot be nil"
	ErrNilQuarantine        GameError = "quarantine service cannot be nil"
	ErrNilPlatform          GameError = "platform cannot be nil"
	ErrNilMessaging         GameError = "messaging service cannot be nil"
	ErrNilDiceRoller        GameError = "dice roller cannot be nil"
	ErrNilClock             GameError = "clock cannot be nil"
	ErrNilUUIDGenerator     GameError = "UUID generator cannot be nil"
	ErrMissingGuild         GameError = "guild ID is required"
	ErrPlayerNotQuarantined GameError = "player is not quarantined"
	ErrPlayerAlreadyInGame  GameError = "player is already in an active game"
	ErrNoEligiblePlayers    GameError = "no quarantined members are free to play"
	ErrNoActiveGame         GameError = "no active prison break"
	ErrUnknownItem          GameError = "unknown item"
	ErrThrowerQuarantined   GameError = "quarantined members cannot throw things"
	ErrTargetNotQuarantined GameError = "target is not quarantined"
	ErrNoTargets            GameError = "nobody is on the jail cam to throw at"
)
