package quarantine

// QuarantineError is a custom error type for quarantine errors
type QuarantineError string

// Error implements the error interface
func (e QuarantineError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig          QuarantineError = "config cannot be nil"
	ErrNilRepository      QuarantineError = "quarantine repository cannot be nil"
	ErrNilLedger          QuarantineError = "sentence ledger repository cannot be nil"
	ErrNilIsolation       QuarantineError = "isolation service cannot be nil"
	ErrNilPlatform        QuarantineError = "platform cannot be nil"
	ErrNilMessaging       QuarantineError = "messaging service cannot be nil"
	ErrNilClock           QuarantineError = "clock cannot be nil"
	ErrNilUUIDGenerator   QuarantineError = "UUID generator cannot be nil"
	ErrMissingTarget      QuarantineError = "guild ID and target ID are required"
	ErrElevatedTarget     QuarantineError = "target holds moderation permissions"
	ErrAlreadyQuarantined QuarantineError = "member is already quarantined"
	ErrNotQuarantined     QuarantineError = "member is not quarantined"
	ErrInvalidPercent     QuarantineError = "percent must be positive"
	ErrInvalidDirection   QuarantineError = "direction must be reduce or extend"
	ErrTooManyChallenges  QuarantineError = "member already has the maximum number of open challenges"
	ErrInvalidChallenge   QuarantineError = "challenge needs a prompt, an answer and a positive reward"
	ErrChannelNotFound    QuarantineError = "channel not found"
	ErrChannelSetup       QuarantineError = "could not prepare quarantine channel"
)
