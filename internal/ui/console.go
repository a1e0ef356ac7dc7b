// Package ui provides styled console output for the Poe sampler.
package ui

import (
	"fmt"
	"time"

	"github.com/fatih/color"
)

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)
	debugBadge   = color.New(color.FgMagenta)

	// Text colors
	successText = color.New(color.FgGreen)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgHiMagenta)

	// Method badges
	methodPOST = color.New(color.BgHiGreen, color.FgBlack, color.Bold)
	methodGET  = color.New(color.BgHiCyan, color.FgBlack, color.Bold)
)

// PrintInfo logs general sampler information.
// Format: [SAMPLER] message
func PrintInfo(msg string) {
	infoBadge.Print("[SAMPLER]")
	fmt.Print(" ")
	infoText.Println(msg)
}

// PrintEmptyResult logs an empty sample result.
// Format: ∅ [EMPTY] model returned no usable text
func PrintEmptyResult(model string) {
	fmt.Print("∅  ")
	errorBadge.Print(" EMPTY ")
	fmt.Print(" ")
	errorText.Print(model)
	mutedText.Println(" returned no usable text")
}

// PrintCacheHit logs a cache hit with lightning styling.
// Format: ⚡ CACHE HIT | key:xxxxxxxx...
func PrintCacheHit(cacheKey string) {
	accentText.Print("⚡ CACHE HIT ")
	fmt.Print("| key:")
	mutedText.Println(shortKey(cacheKey))
}

// PrintRequest logs a request with styled output.
// Color-codes status, method, and latency for quick visual parsing.
func PrintRequest(method, path string, status int, latency time.Duration) {
	// Timestamp
	mutedText.Printf("%s ", time.Now().Format("15:04:05"))

	// Method badge
	printMethodBadge(method)
	fmt.Print(" ")

	// Path
	fmt.Printf("%-24s ", truncatePath(path, 24))

	// Status badge
	printStatusBadge(status)
	fmt.Print(" ")

	// Latency with color gradient
	printLatency(latency)

	fmt.Println()
}

// PrintUsage logs the cumulative estimated token usage.
// Format: Σ usage | prompt:N completion:N samples:N
func PrintUsage(promptTokens, completionTokens, samples int64) {
	infoText.Print("Σ usage ")
	fmt.Print("| prompt:")
	successText.Printf("%d", promptTokens)
	fmt.Print(" completion:")
	successText.Printf("%d", completionTokens)
	fmt.Print(" samples:")
	mutedText.Printf("%d\n", samples)
}

// printMethodBadge prints the HTTP method with appropriate color.
func printMethodBadge(method string) {
	switch method {
	case "POST":
		methodPOST.Printf(" %s ", method)
	case "GET":
		methodGET.Printf(" %s ", method)
	default:
		debugBadge.Printf(" %s ", method)
	}
}

// printStatusBadge prints the status code with appropriate color.
func printStatusBadge(status int) {
	switch {
	case status >= 200 && status < 300:
		successBadge.Printf(" %d ", status)
	case status >= 400 && status < 500:
		warningBadge.Printf(" %d ", status)
	case status >= 500:
		errorBadge.Printf(" %d ", status)
	default:
		debugBadge.Printf(" %d ", status)
	}
}

// printLatency prints the latency with a color gradient:
// green under 500ms, yellow under 2s, red above.
func printLatency(latency time.Duration) {
	ms := latency.Milliseconds()
	switch {
	case ms < 500:
		successText.Printf("%4dms", ms)
	case ms < 2000:
		warningText.Printf("%4dms", ms)
	default:
		errorText.Printf("%4dms", ms)
	}
}

// shortKey returns an abbreviated cache key for display.
func shortKey(key string) string {
	if len(key) <= 12 {
		return key
	}
	return key[:12] + "..."
}

// truncatePath shortens a path for aligned console output.
func truncatePath(path string, max int) string {
	if len(path) <= max {
		return path
	}
	return path[:max-3] + "..."
}
