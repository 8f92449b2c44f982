package panel

// Level classifies a notice for display.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notice is a blocking notification for the operator. The zero Notice
// means nothing to show (e.g. a declined confirmation).
type Notice struct {
	Level   Level
	Message string
}

// IsZero reports whether there is nothing to show.
func (n Notice) IsZero() bool {
	return n.Message == ""
}

// IsError reports whether the notice describes a failure.
func (n Notice) IsError() bool {
	return n.Level == LevelError
}

func success(msg string) Notice { return Notice{Level: LevelSuccess, Message: msg} }
func info(msg string) Notice    { return Notice{Level: LevelInfo, Message: msg} }
func failure(msg string) Notice { return Notice{Level: LevelError, Message: msg} }

// ConfirmFunc asks the operator a yes/no question.
type ConfirmFunc func(prompt string) bool

// AlwaysConfirm answers yes without asking. Used for --yes flags.
func AlwaysConfirm(string) bool { return true }
