package kaspa

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Some wallet providers return the transfer id wrapped in a JSON envelope
// instead of a bare string, and the field name varies between releases.
var txIDFields = []string{"id", "txId", "txid", "transaction_id"}

var hexHashPattern = regexp.MustCompile(`[a-fA-F0-9]{64}`)

// NormalizeTxID extracts a bare transfer identifier from whatever the wallet
// returned. It tries the known envelope field names, then falls back to
// scanning for a 64-character hex hash. If nothing can be extracted the raw
// value is returned as-is rather than failing the transfer.
func NormalizeTxID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") {
		return trimmed
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(trimmed), &envelope); err == nil {
		for _, field := range txIDFields {
			if id, ok := envelope[field].(string); ok && id != "" {
				return id
			}
		}
	}

	if match := hexHashPattern.FindString(trimmed); match != "" {
		return match
	}

	return trimmed
}
