// Package ui provides styled console output for the Poe sampler.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintBanner displays the startup banner.
func PrintBanner(model string) {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	cyan.Println("╔══════════════════════════════════════════════════════════╗")

	cyan.Print("║  ")
	magenta.Print("POE SAMPLER")
	dim.Print("  │  ")
	yellow.Print("single-shot text sampling")
	dim.Print("  │  ")
	white.Print("v1.0.0")
	dim.Print("     ")
	cyan.Println("║")

	cyan.Print("║  ")
	dim.Print("model: ")
	white.Printf("%-49s", model)
	cyan.Println(" ║")

	cyan.Println("╚══════════════════════════════════════════════════════════╝")
	fmt.Println()
}
