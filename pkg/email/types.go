package email

// Message is one outgoing mail. At least one body is required; when both are
// set the HTML body is sent as the alternative part.
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}
