package error

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// SpecError is an error that occurs while compiling a grammar. Cause holds one of the sentinel errors of
// the reporting package, so callers can classify a failure with errors.Is.
type SpecError struct {
	Cause      error
	Detail     string
	FilePath   string
	SourceName string
	Rule       string
	Child      int
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 && e.Col != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	} else if e.Row != 0 {
		fmt.Fprintf(&b, "%v: ", e.Row)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Rule != "" {
		fmt.Fprintf(&b, " (rule %v", e.Rule)
		if e.Child >= 0 {
			fmt.Fprintf(&b, ", child %v", e.Child)
		}
		fmt.Fprintf(&b, ")")
	}
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.FilePath, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
