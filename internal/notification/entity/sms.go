package entity

// SMSMessage is an outbound text message.
type SMSMessage struct {
	To   string
	Body string
}
