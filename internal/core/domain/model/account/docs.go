// Package account models the demo identities that may check out and track
// orders, and the Session value handed out at login. Sessions are passed
// explicitly into every command that needs to know who is calling.
package account
