package topic

import "strings"

// Prefix of a topic name on the wire:
// https://firebase.google.com/docs/cloud-messaging/manage-topics
const Prefix = "/topics/"

type Request struct {
	To                 string   `json:"to"`
	RegistrationTokens []string `json:"registration_tokens"`
}

func NewRequest(topicName string, tokens []string) *Request {
	return &Request{
		To:                 Normalize(topicName),
		RegistrationTokens: tokens,
	}
}

// WithoutSecrets returns a copy of the request for diagnostics.
// Registration tokens are replaced by a mask
func (r *Request) WithoutSecrets() *Request {

	masked := make([]string, len(r.RegistrationTokens))
	for i := range masked {
		masked[i] = "*"
	}

	return &Request{
		To:                 r.To,
		RegistrationTokens: masked,
	}
}

// Normalize prepends the reserved topic prefix.
// An already prefixed name is kept unchanged
func Normalize(topicName string) string {

	if len(topicName) >= len(Prefix) &&
		strings.EqualFold(topicName[:len(Prefix)], Prefix) {
		return topicName
	}

	return Prefix + topicName
}
