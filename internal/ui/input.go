package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Amr-9/SegwitHunter/pkg/generator/bitcoin"
)

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// PromptPatterns asks for a prefix and suffix until at least one valid
// pattern is given. Invalid input is reported and asked again.
func PromptPatterns(in io.Reader, out io.Writer) (string, string, error) {
	reader := bufio.NewReader(in)

	purple.Fprintln(out, "    🎯 TARGET PATTERN")
	for {
		prefix, err := promptPattern(reader, out, "Prefix", "(bc1q...)")
		if err != nil {
			return "", "", err
		}
		suffix, err := promptPattern(reader, out, "Suffix", "(...xxx)")
		if err != nil {
			return "", "", err
		}

		prefix, suffix, err = bitcoin.ValidatePatterns(prefix, suffix)
		if err == nil {
			return prefix, suffix, nil
		}
		fmt.Fprintf(out, "    %s\n", red.Sprintf("✗ %v", err))
	}
}

func promptPattern(reader *bufio.Reader, out io.Writer, label, hint string) (string, error) {
	for {
		fmt.Fprintf(out, "    %s %s: ", cyan.Sprint(label), hint)
		line, err := reader.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		pattern := strings.TrimSpace(line)

		if invalid := bitcoin.InvalidBech32Chars(pattern); len(invalid) > 0 {
			fmt.Fprintf(out, "    %s\n", red.Sprintf("⚠ Invalid Bech32 character(s): %s", string(invalid)))
			dim.Fprintln(out, "      (Not allowed: 1, b, i, o)")
			continue
		}
		return pattern, nil
	}
}
