//go:build ignore

// This program generates the text fixtures used by benchmarks and smoke tests.
package main

import (
	"fmt"
	"os"
	"strings"
)

var sections = []string{"server", "storage", "cache", "logging"}

func render(edit func(section string, i int) string) string {
	var sb strings.Builder
	for _, s := range sections {
		fmt.Fprintf(&sb, "[%s]\n", s)
		for i := 1; i <= 8; i++ {
			if line := edit(s, i); line != "" {
				sb.WriteString(line + "\n")
			}
		}
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func main() {
	original := render(func(s string, i int) string {
		return fmt.Sprintf("%s.option%d = value%d", s, i, i)
	})
	modified := render(func(s string, i int) string {
		switch {
		case s == "storage" && i == 3:
			return "" // removed
		case s == "cache" && i == 5:
			return fmt.Sprintf("%s.option%d = changed", s, i)
		case s == "logging" && i == 8:
			return fmt.Sprintf("%s.option%d = value%d\n%s.format = json", s, i, i, s)
		}
		return fmt.Sprintf("%s.option%d = value%d", s, i, i)
	})

	for name, content := range map[string]string{
		"sample_old.txt": original,
		"sample_new.txt": modified,
	} {
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	fmt.Println("Test fixtures generated successfully.")
}
