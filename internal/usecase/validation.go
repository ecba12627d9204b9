package usecase

import "unicode"

// ValidateMigrationName checks the "<3 digits>_<snake_case>" naming scheme,
// e.g. "001_withdrawal_indexes".
func ValidateMigrationName(name string) bool {
	if len(name) < 5 {
		return false
	}
	for i := 0; i < 3; i++ {
		if !unicode.IsDigit(rune(name[i])) {
			return false
		}
	}
	if name[3] != '_' {
		return false
	}

	prev := '_'
	for _, r := range name[4:] {
		switch {
		case unicode.IsLower(r) && r < unicode.MaxASCII, unicode.IsDigit(r):
		case r == '_' && prev != '_':
		default:
			return false
		}
		prev = r
	}
	return prev != '_'
}
