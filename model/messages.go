package model

import "iris/ollama"

// AnswerMsg carries a completed provider answer back into the update loop.
type AnswerMsg struct {
	Answer string
}

// AnswerErrorMsg carries a failed provider call. The UI turns it into an
// answer turn rather than crashing or dropping the question.
type AnswerErrorMsg struct {
	Err error
}

// RevealTickMsg drives the character-by-character answer reveal.
type RevealTickMsg struct{}

type MarkdownRenderedMsg struct {
	TurnIndex int
	Rendered  string
}

type ModelsListMsg struct {
	Models       []ollama.ModelInfo
	Err          error
	ShowSelector bool
}

// TranscriptMsg is a finalized dictation result from the browser bridge.
type TranscriptMsg struct {
	Text string
}

// CaptureMsg is a camera frame posted by the browser bridge. The bridge
// writes the frame to the cache temp dir before the request ends; only
// the path crosses goroutines.
type CaptureMsg struct {
	Path string
}

// ProviderPingMsg reports the startup reachability check of the active
// provider.
type ProviderPingMsg struct {
	Provider string
	Err      error
}

type BridgeStartedMsg struct {
	Addr string
}

type BridgeErrorMsg struct {
	Err error
}

type AttachmentLoadedMsg struct {
	Attachment *ImageAttachment
}

type AttachmentErrorMsg struct {
	Err error
}

type FlashTickMsg struct{}
