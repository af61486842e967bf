package kaspa

import "regexp"

// Mainnet and testnet bech32-style prefixes, followed by at least ten
// lowercase base32-ish characters. Deliberately permissive: the wallet is
// the final authority, this only catches obvious typos before funds move.
var addressPattern = regexp.MustCompile(`^(kaspa|kaspatest):[a-z0-9]{10,}$`)

// IsValidAddress reports whether addr looks like a Kaspa address on either
// network. Used by stream creation and by anything validating user input
// before calling it.
func IsValidAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}
