package content

// IsRTL checks if a string contains right-to-left text
// This is a simplified check that only covers the Arabic and Hebrew ranges
func IsRTL(text string) bool {
	for _, r := range text {
		if (r >= 0x0590 && r <= 0x06FF) || (r >= 0xFB50 && r <= 0xFDFF) || (r >= 0xFE70 && r <= 0xFEFF) {
			return true
		}
	}
	return false
}
