package vacancy

import "github.com/mark3labs/vacancy/internal/generation"

// GenerationDoneMsg carries the result of one generate or retry call. Seq
// identifies the call; results from superseded calls are dropped.
type GenerationDoneMsg struct {
	Seq    int
	Result generation.Result
}

// TranscriptMsg is a recognised phrase for the answer at Index.
type TranscriptMsg struct {
	Index int
	Text  string
}

// SpeechEndedMsg is sent when a recognition session ends on its own.
type SpeechEndedMsg struct {
	Err error
}

// CopyResetMsg clears the copied flag if Seq is still the latest copy.
type CopyResetMsg struct {
	Seq int
}

// EditorDoneMsg is sent when the external editor returns.
type EditorDoneMsg struct {
	Content string
	Err     error
}

// ExportDoneMsg reports the outcome of writing the posting to disk.
type ExportDoneMsg struct {
	Path string
	Err  error
}
