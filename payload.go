package waterscape

// Payload is the plaintext before encryption: the secret content, the
// sender's wall-clock Unix timestamp, and optional metadata (the group
// name, when sent through a GroupSession).
type Payload struct {
	Content   string
	Timestamp uint64
	Metadata  *string
}
