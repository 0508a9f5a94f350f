package enum

// StageType classifies a pipeline stage. Won and lost stages are terminal;
// open stages are active pipeline columns.
type StageType string

const (
	StageTypeOpen StageType = "open"
	StageTypeWon  StageType = "won"
	StageTypeLost StageType = "lost"
)

// IsTerminal reports whether leads in this stage have left the active pipeline
func (t StageType) IsTerminal() bool {
	return t == StageTypeWon || t == StageTypeLost
}

// IsValid reports whether the stage type is known
func (t StageType) IsValid() bool {
	switch t {
	case StageTypeOpen, StageTypeWon, StageTypeLost:
		return true
	}
	return false
}

func (t StageType) String() string {
	return string(t)
}
