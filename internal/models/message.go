package models

// Severity of a diagnostic message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// MessageKind identifies a diagnostic message independently of its wording.
// Text is produced by the i18n layer at the presentation boundary.
type MessageKind string

const (
	MessageInvalidVideoID   MessageKind = "invalid_video_id"
	MessageUndefinedHost    MessageKind = "undefined_host"
	MessageUndefinedToken   MessageKind = "undefined_token"
	MessageUnreachable      MessageKind = "unreachable"
	MessageAuthentication   MessageKind = "authentication"
	MessageIncorrectVideoID MessageKind = "incorrect_video_id"
	MessageUnknownError     MessageKind = "unknown_error"
	MessageProcessing       MessageKind = "processing"
	MessageProcessingFailed MessageKind = "processing_failed"
)

// Message is a severity-tagged diagnostic. Args feed the localized format
// string of Kind (e.g. the progress percentage).
type Message struct {
	Severity Severity      `json:"level"`
	Kind     MessageKind   `json:"kind"`
	Args     []interface{} `json:"-"`
}

// NewMessage builds a Message.
func NewMessage(severity Severity, kind MessageKind, args ...interface{}) Message {
	return Message{Severity: severity, Kind: kind, Args: args}
}

// LocalizedMessage is a Message rendered in the viewer's language.
type LocalizedMessage struct {
	Level   Severity    `json:"level"`
	Kind    MessageKind `json:"kind"`
	Content string      `json:"content"`
}
