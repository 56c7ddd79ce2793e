// Package queue defines message payloads exchanged over the message
// broker and the background consumer processing them.
package queue

// Verification channels.
const (
	ChannelSMS         = "sms"          // phone number verification via the SMS vendor
	ChannelSchoolEmail = "school_email" // school enrollment verification via the univ-cert vendor
)

// VerificationRequestedEvent is published when a user asks for a
// phone or school-email verification. The consumer hands it to the
// external vendor; the request path never blocks on vendor latency.
type VerificationRequestedEvent struct {
	UserID      uint64 `json:"user_id"`
	Channel     string `json:"channel"` // ChannelSMS or ChannelSchoolEmail
	Destination string `json:"destination"`
	RequestedAt string `json:"requested_at"`
}
