package spectator

// SpectatorError is a custom error type for spectator errors
type SpectatorError string

// Error implements the error interface
func (e SpectatorError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     SpectatorError = "config cannot be nil"
	ErrNilGameRepo   SpectatorError = "game repository cannot be nil"
	ErrNilQuarantine SpectatorError = "quarantine service cannot be nil"
	ErrNilPlatform   SpectatorError = "platform cannot be nil"
	ErrNilClock      SpectatorError = "clock cannot be nil"
)
