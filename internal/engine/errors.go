package engine

// ErrorKind classifies rejections. IllegalAction and InvalidPayload are
// recoverable and leave state untouched; StallTimeout is internal to the
// scheduler; InvariantViolation marks the session corrupted.
type ErrorKind string

const (
	IllegalAction      ErrorKind = "illegal_action"
	InvalidPayload     ErrorKind = "invalid_payload"
	StallTimeout       ErrorKind = "stall_timeout"
	InvariantViolation ErrorKind = "invariant_violation"
)

type Reject struct {
	Kind ErrorKind
	Msg  string
}

func (e *Reject) Error() string {
	return string(e.Kind) + ": " + e.Msg
}

// KindOf extracts the ErrorKind of an engine error, defaulting to
// IllegalAction for plain errors.
func KindOf(err error) ErrorKind {
	if r, ok := err.(*Reject); ok {
		return r.Kind
	}
	return IllegalAction
}

func illegal(msg string) error {
	return &Reject{Kind: IllegalAction, Msg: msg}
}

func invalid(msg string) error {
	return &Reject{Kind: InvalidPayload, Msg: msg}
}
