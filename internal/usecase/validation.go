package usecase

// ValidateCouponCode checks the code format before hitting storage: 3 to 32
// characters, uppercase letters, digits, dash or underscore.
func ValidateCouponCode(code string) bool {
	if len(code) < 3 || len(code) > 32 {
		return false
	}
	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
