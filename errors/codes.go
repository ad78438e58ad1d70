package errors

// Root errors. Extensions should wrap one of these and register their own
// code only for failures that a client must be able to tell apart.
var (
	// ErrUnauthorized means a required signature is missing.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = Register(3, "not found")

	// ErrInvalidMsg means a message cannot be decoded or routed.
	ErrInvalidMsg = Register(4, "invalid message")

	// ErrInvalidModel means an entity failed validation and cannot be
	// persisted.
	ErrInvalidModel = Register(5, "invalid model")

	// ErrDuplicate means a unique key is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that is reachable only because of a
	// programming mistake.
	ErrHuman = Register(7, "coding error")

	ErrEmpty = Register(9, "value is empty")

	ErrInvalidState = Register(10, "invalid state")

	ErrInvalidType = Register(11, "invalid type")

	// ErrInsufficientAmount means an account cannot cover a transfer.
	ErrInsufficientAmount = Register(12, "insufficient amount")

	ErrInvalidAmount = Register(13, "invalid amount")

	ErrInvalidInput = Register(14, "invalid input")

	// ErrOverflow means the result of a computation does not fit its type.
	ErrOverflow = Register(16, "an operation cannot be completed due to value overflow")

	// ErrDatabase means the store cannot be read or written.
	ErrDatabase = Register(17, "database")

	// ErrPanic is used only for recovered panics. Its message is never
	// returned to a client outside of debug mode.
	ErrPanic = Register(111222, "panic")
)
