package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

// FormatResult renders the wallet file contents.
func FormatResult(result *generator.Result, generated time.Time) string {
	return fmt.Sprintf(`Bitcoin SegWit (P2WPKH) Vanity Address
======================================

Address:     %s
Private Key: %s
WIF:         %s

Statistics:
  Time:     %s
  Attempts: %s

Generated: %s

WARNING: Keep this private key secret and secure!
`, result.Address, result.PrivateKey, result.WIF,
		FormatDuration(result.Elapsed), FormatNumber(result.Attempts),
		generated.Format("2006-01-02 15:04:05"))
}

// SaveResult writes the result to path, readable by the owner only.
func SaveResult(path string, result *generator.Result) error {
	if err := os.WriteFile(path, []byte(FormatResult(result, time.Now())), 0600); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}
