package submission

// CheckHoneypot fails when the honeypot field carries any value, including
// a non-empty list or object.
func CheckHoneypot(value any) error {
	if present(value) {
		return SpamDetected()
	}
	return nil
}
