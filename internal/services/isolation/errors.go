package isolation

// IsolationError is a custom error type for isolation errors
type IsolationError string

// Error implements the error interface
func (e IsolationError) Error() string {
	return string(e)
}

const (
	ErrNilConfig              IsolationError = "config cannot be nil"
	ErrNilPlatform            IsolationError = "platform cannot be nil"
	ErrChannelDirectoryFailed IsolationError = "could not list guild channels"
	ErrMissingMember          IsolationError = "member ID is required"
)
