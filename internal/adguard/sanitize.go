package adguard

import (
	"encoding/base64"
	"strings"
)

// Redacted replaces credential substrings in sanitized messages.
const Redacted = "***"

// Sanitize returns msg with every occurrence of the password, the username,
// and the Basic-Auth token for "username:password" replaced by Redacted.
//
// The password is replaced before the username so that a password containing
// the username is fully scrubbed in one pass. Empty fields are skipped: an
// empty replacement target would match everywhere and corrupt the message.
// Sanitizing an already-sanitized message is a no-op.
func Sanitize(msg, username, password string) string {
	if password != "" {
		msg = strings.ReplaceAll(msg, password, Redacted)
	}
	if username != "" {
		msg = strings.ReplaceAll(msg, username, Redacted)
	}
	if username != "" && password != "" {
		token := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		msg = strings.ReplaceAll(msg, token, Redacted)
	}
	return msg
}
