// Package cooldown limits every visitor session to one successful form
// submission per cooldown period (60 seconds by default).
//
// The timestamp of the last success lives in the visitor's session, so the
// limit follows the session cookie and is shared by all forms. Record is only
// called once a submission was stored and both emails went out; rejected or
// failed attempts never extend the cooldown.
package cooldown
