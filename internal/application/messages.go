package application

import "errors"

// User-facing notification texts
const (
	MsgUpdated         = "Updated clipboard with edited content"
	MsgEmptyClipboard  = "No text in clipboard"
	MsgCancelled       = "Edit cancelled"
	MsgGenericFailure  = "Failed to edit clipboard content"
	MsgDefaultHintText = "Editor not found"
)

// UserMessage maps a workflow error to the text shown in the notification.
// Editor-not-found errors carry their install hint through unchanged.
func UserMessage(err error) string {
	if err == nil {
		return MsgUpdated
	}

	var notFound *EditorNotFoundError
	switch {
	case errors.As(err, &notFound):
		if notFound.Hint != "" {
			return notFound.Hint
		}
		return MsgDefaultHintText
	case errors.Is(err, ErrEditorNotFound):
		return MsgDefaultHintText
	case errors.Is(err, ErrEmptyClipboard):
		return MsgEmptyClipboard
	case errors.Is(err, ErrWaitCancelled):
		return MsgCancelled
	default:
		return MsgGenericFailure
	}
}
