package models

// ResponseState tags the outcome of a service operation.
type ResponseState string

const (
	// StateSuccess marks a completed operation; the payload is only
	// meaningful in this state.
	StateSuccess ResponseState = "Success"
	// StateError marks a business-rule rejection with a plain message.
	StateError ResponseState = "Error"
	// StateException marks an unexpected failure (storage, connectivity);
	// the message is the underlying failure text, nothing more.
	StateException ResponseState = "Exception"
)

// Response is the uniform envelope returned by every service operation.
// Exactly one state is set per response; callers switch on State.
type Response[T any] struct {
	State   ResponseState `json:"state"`
	Message string        `json:"message,omitempty"`
	Data    *T            `json:"data,omitempty"`
}

// NewSuccess builds a success envelope. A nil payload is valid and means
// "found nothing" rather than a failure.
func NewSuccess[T any](data *T) Response[T] {
	return Response[T]{State: StateSuccess, Data: data}
}

// NewError builds a business-rule rejection envelope.
func NewError[T any](message string) Response[T] {
	return Response[T]{State: StateError, Message: message}
}

// NewException builds an unexpected-failure envelope carrying the failure's
// message text.
func NewException[T any](err error) Response[T] {
	return Response[T]{State: StateException, Message: err.Error()}
}
