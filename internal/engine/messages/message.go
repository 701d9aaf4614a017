package messages

// TimeLayout is the wire and storage timestamp format. Fixed-width and
// zero-padded, so lexicographic order on stored values is chronological.
const TimeLayout = "2006-01-02T15:04:05Z"

// Message is the persisted record. Text is a pointer because an absent
// body is distinct from an empty one.
type Message struct {
	MessageID string
	From      string
	To        string
	TS        string
	Text      *string
	CreatedAt string
}
