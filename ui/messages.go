package ui

import (
	"iris/model"
)

// Turn alias so view code reads naturally
type Turn = model.Turn

// Message type aliases - these are defined in the model package
type answerMsg = model.AnswerMsg
type answerErrorMsg = model.AnswerErrorMsg
type revealTickMsg = model.RevealTickMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type modelsListMsg = model.ModelsListMsg
type transcriptMsg = model.TranscriptMsg
type captureMsg = model.CaptureMsg
type providerPingMsg = model.ProviderPingMsg
type bridgeStartedMsg = model.BridgeStartedMsg
type bridgeErrorMsg = model.BridgeErrorMsg
type attachmentLoadedMsg = model.AttachmentLoadedMsg
type attachmentErrorMsg = model.AttachmentErrorMsg
type flashTickMsg = model.FlashTickMsg
