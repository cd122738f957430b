package otpflow

type State int

const (
	EnteringPhone State = iota
	Submitting
	AwaitingCode
	Verifying
	Authenticated
)

func (s State) String() string {
	switch s {
	case EnteringPhone:
		return "EnteringPhone"
	case Submitting:
		return "Submitting"
	case AwaitingCode:
		return "AwaitingCode"
	case Verifying:
		return "Verifying"
	case Authenticated:
		return "Authenticated"
	default:
		return "Unknown"
	}
}
