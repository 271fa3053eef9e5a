package mirror

// MirrorError is a custom error type for mirror errors
type MirrorError string

// Error implements the error interface
func (e MirrorError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig     MirrorError = "config cannot be nil"
	ErrNilQuarantine MirrorError = "quarantine service cannot be nil"
	ErrNilPlatform   MirrorError = "platform cannot be nil"
)
