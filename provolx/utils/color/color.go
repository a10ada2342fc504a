// provolx/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	infoColor    = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	passColor    = color.New(color.FgGreen, color.Bold)
	failColor    = color.New(color.FgMagenta, color.Bold)
)

func Heading(s string) string {
	return headingColor.Sprint(s)
}

func Info(s string) string {
	return infoColor.Sprint(s)
}

func Warning(s string) string {
	return warningColor.Sprint(s)
}

func Error(s string) string {
	return errorColor.Sprint(s)
}

// Status renders a PASS/FAIL badge.
func Status(ok bool) string {
	if ok {
		return passColor.Sprint("PASS")
	}
	return failColor.Sprint("FAIL")
}

// Disable turns colouring off, e.g. for --no-color or piped output.
func Disable() {
	color.NoColor = true
}
