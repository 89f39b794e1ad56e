package observability

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset    = "\033[0m"
	colorNeonCyan = "\033[96m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return w
}

// PrintBanner prints the startup banner centered on the terminal.
func PrintBanner() {
	banner := `
    ____        __        _____           _ __
   / __ \____ _/ /_____ _/ ___/__________(_) /_  ___
  / / / / __ ` + "`" + `/ __/ __ ` + "`" + `/\__ \/ ___/ ___/ / __ \/ _ \
 / /_/ / /_/ / /_/ /_/ /___/ / /__/ /  / / /_/ /  __/
/_____/\__,_/\__/\__,_//____/\___/_/  /_/_.___/\___/

        >> ASK YOUR DATABASE ANYTHING <<
`

	width := termWidth()
	lines := strings.Split(banner, "\n")

	for _, l := range lines {
		padding := (width - len(l)) / 2
		if padding < 0 {
			padding = 0
		}
		fmt.Printf("%s%s%s\n", strings.Repeat(" ", padding), colorNeonCyan+l, colorReset)
	}
}
