package response

const (
	// MessageSuccess is the message for successful responses.
	MessageSuccess = "Success"

	// MessageTooManyRequests is returned when a client exceeds its rate budget.
	MessageTooManyRequests = "Too many requests"

	// DefaultErrorMessage is returned when the real error must not leak to the client.
	DefaultErrorMessage = "Something went wrong"

	// InternalServerErrorCode is the error code for unexpected failures.
	InternalServerErrorCode = 500
)
