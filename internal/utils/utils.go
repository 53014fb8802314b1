package utils

// MaskAPIKey masks a credential for display, keeping the last four
// characters.
func MaskAPIKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****" + key
	}
	return "****" + key[len(key)-4:]
}
