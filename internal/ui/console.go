package ui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
	"github.com/Amr-9/SegwitHunter/pkg/generator/bitcoin"
)

var (
	cyan   = color.New(color.FgCyan, color.Bold)
	green  = color.New(color.FgGreen, color.Bold)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	purple = color.New(color.FgMagenta, color.Bold)
	dim    = color.New(color.Faint)
)

// Out is where console output goes. It handles colours on Windows.
var Out io.Writer = color.Output

// ClearScreen clears the terminal
func ClearScreen() {
	fmt.Fprint(Out, "\033[H\033[2J")
}

// PrintWelcomeBanner shows the welcome screen
func PrintWelcomeBanner(version string) {
	fmt.Fprintln(Out)
	cyan.Fprintln(Out, "  ╔══════════════════════════════════════════════════════════╗")
	cyan.Fprintln(Out, "  ║   ╔═╗╔═╗╔═╗ ╦ ╦╦╔╦╗  ╦ ╦╦ ╦╔╗╔╔╦╗╔═╗╦═╗                  ║")
	cyan.Fprintln(Out, "  ║   ╚═╗║╣ ║ ╦ ║║║║ ║   ╠═╣║ ║║║║ ║ ║╣ ╠╦╝                  ║")
	cyan.Fprintln(Out, "  ║   ╚═╝╚═╝╚═╝ ╚╩╝╩ ╩   ╩ ╩╚═╝╝╚╝ ╩ ╚═╝╩╚═                  ║")
	cyan.Fprintln(Out, "  ╠══════════════════════════════════════════════════════════╣")
	fmt.Fprintf(Out, "  %s %s %s\n", cyan.Sprint("║"), yellow.Sprintf("bc1q vanity address generator %s", dim.Sprintf("• v%-23s", version)), cyan.Sprint("║"))
	cyan.Fprintln(Out, "  ╚══════════════════════════════════════════════════════════╝")
	fmt.Fprintln(Out)
}

// PatternDisplay renders the searched shape, e.g. "bc1qc0f...ee".
func PatternDisplay(config *generator.Config) string {
	s := bitcoin.AddressPrefix + config.Prefix
	if config.HasSuffix() {
		s += "..." + config.Suffix
	} else {
		s += "..."
	}
	return s
}

// PrintSearchInfo displays search configuration
func PrintSearchInfo(config *generator.Config, difficulty uint64) {
	fmt.Fprintf(Out, "\n    %s %s %s\n",
		green.Sprint("🚀 SEARCHING"),
		cyan.Sprint(PatternDisplay(config)),
		dim.Sprintf("(%s, 1/%s, %d threads)", bitcoin.AddressDescription(), FormatNumber(difficulty), config.Workers))
	fmt.Fprintln(Out)
}

// Probability returns the chance that a match has been found after attempts
// tries at the given difficulty.
func Probability(attempts, difficulty uint64) float64 {
	diff := float64(difficulty)
	if diff == 0 {
		diff = 1
	}
	return 1.0 - math.Pow(1.0-1.0/diff, float64(attempts))
}

// ProgressLine renders one progress line for a sample.
func ProgressLine(sample generator.Sample, difficulty uint64, frame int) string {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	const barWidth = 30
	filled := int(Probability(sample.Attempts, difficulty) * barWidth)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	return fmt.Sprintf("    %s %s %s │ %s │ %s",
		cyan.Sprint(spinner),
		dim.Sprint(bar),
		green.Sprint(FormatHashRate(sample.Rate)),
		yellow.Sprint(FormatNumber(sample.Attempts)),
		FormatDuration(sample.Elapsed))
}

// PrintProgress redraws the progress line in place
func PrintProgress(sample generator.Sample, difficulty uint64, frame int) {
	fmt.Fprint(Out, "\r"+ProgressLine(sample, difficulty, frame))
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// PrintSuccess shows the found address
func PrintSuccess(result *generator.Result, outputFile string) {
	fmt.Fprintln(Out)
	green.Fprintln(Out, "    ╔══════════════════════════════════════════════════════════╗")
	green.Fprintln(Out, "    ║               ✨ ADDRESS FOUND! ✨                       ║")
	green.Fprintln(Out, "    ╚══════════════════════════════════════════════════════════╝")
	fmt.Fprintln(Out)

	cyan.Fprintln(Out, "    ₿ BITCOIN ADDRESS (P2WPKH)")
	fmt.Fprintf(Out, "\n       %s\n\n", green.Sprint(result.Address))

	purple.Fprintln(Out, "    🔑 PRIVATE KEY (hex)")
	fmt.Fprintf(Out, "       %s\n\n", yellow.Sprint(result.PrivateKey))

	purple.Fprintln(Out, "    🔑 PRIVATE KEY (WIF)")
	fmt.Fprintf(Out, "       %s\n\n", yellow.Sprint(result.WIF))

	saved := outputFile
	if saved == "" {
		saved = "not saved"
	}
	fmt.Fprintf(Out, "    ⏱  %s   %s   📊  %s   %s   💾  %s\n\n",
		FormatDuration(result.Elapsed), dim.Sprint("│"),
		FormatNumber(result.Attempts), dim.Sprint("│"),
		saved)
	red.Fprintln(Out, "    ⚠  KEEP YOUR PRIVATE KEY SECRET!")
}

// PrintCancelled reports a search that ended without a match.
func PrintCancelled(stats generator.Stats) {
	fmt.Fprintf(Out, "\n\n    %s │ %s attempts │ %s\n",
		yellow.Sprint("⚠ Cancelled"),
		FormatNumber(stats.Attempts),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// PrintError reports a fatal error.
func PrintError(err error) {
	fmt.Fprintf(Out, "\n    %s\n", red.Sprintf("✗ %v", err))
}

// ClearLine clears the current line
func ClearLine() {
	fmt.Fprint(Out, "\r\033[2K")
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
