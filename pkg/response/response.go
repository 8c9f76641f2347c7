// Package response defines the JSON envelopes of the control API.
package response

// Payload is a JSON object sent to the control panel frontend.
type Payload map[string]interface{}

// Success builds a success envelope, merging any extra fields.
func Success(extra Payload) Payload {
	p := Payload{"success": true}
	for k, v := range extra {
		p[k] = v
	}
	return p
}

// Error builds a failure envelope carrying a user-facing message.
func Error(msg string) Payload {
	return Payload{"success": false, "error": msg}
}
