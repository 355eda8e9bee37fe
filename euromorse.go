package euromorse

// Mode is the operator-facing state of the module
type Mode int

const (
	ModePaused Mode = iota
	ModeRunning
	ModeAdjustPitch
	ModeSelectText
)

func (m Mode) String() string {
	switch m {
	case ModePaused:
		return "PAUSED"
	case ModeRunning:
		return "RUNNING"
	case ModeAdjustPitch:
		return "CHANGE_CV"
	case ModeSelectText:
		return "CHANGE_TEXT"
	default:
		return "UNKNOWN"
	}
}

// Sub reports whether the mode is nested under Running and returns to it when done
func (m Mode) Sub() bool {
	return m == ModeAdjustPitch || m == ModeSelectText
}

// Button is one of the two front-panel push buttons
type Button int

const (
	ButtonPrimary Button = iota + 1
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "B1"
	case ButtonSecondary:
		return "B2"
	default:
		return "B?"
	}
}

// Press is the classified duration of a single button press
type Press int

const (
	PressClick Press = iota
	PressShort
	PressLong
)

func (p Press) String() string {
	switch p {
	case PressClick:
		return "click"
	case PressShort:
		return "short"
	case PressLong:
		return "long"
	default:
		return "unknown"
	}
}

// Output is one of the six CV output jacks
type Output int

const (
	OutputGate Output = iota
	OutputEndOfCharacter
	OutputEndOfWord
	OutputPitch
	OutputEndOfMessage
	OutputRunning

	NumOutputs = int(OutputRunning) + 1
)

func (o Output) String() string {
	switch o {
	case OutputGate:
		return "GATE"
	case OutputEndOfCharacter:
		return "EOC"
	case OutputEndOfWord:
		return "EOW"
	case OutputPitch:
		return "PITCH"
	case OutputEndOfMessage:
		return "EOM"
	case OutputRunning:
		return "RUN"
	default:
		return "?"
	}
}
