package domain

// Stage marks the progress of a clipboard round trip
type Stage int

const (
	StageReadingClipboard Stage = iota
	StageLocatingEditor
	StageLaunchingTerminal
	StageWaitingForEdit
	StageWritingClipboard
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageReadingClipboard:
		return "reading-clipboard"
	case StageLocatingEditor:
		return "locating-editor"
	case StageLaunchingTerminal:
		return "launching-terminal"
	case StageWaitingForEdit:
		return "waiting-for-edit"
	case StageWritingClipboard:
		return "writing-clipboard"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Description is a short human-readable label for progress displays
func (s Stage) Description() string {
	switch s {
	case StageReadingClipboard:
		return "Reading clipboard"
	case StageLocatingEditor:
		return "Locating editor"
	case StageLaunchingTerminal:
		return "Opening terminal"
	case StageWaitingForEdit:
		return "Waiting for you to save and quit the editor"
	case StageWritingClipboard:
		return "Copying edited text to clipboard"
	case StageDone:
		return "Done"
	default:
		return ""
	}
}
