// Package ui provides styled console output for the agent gateway:
// colorized request lines, status badges, and the startup banner.
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
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	infoText    = color.New(color.FgCyan)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
	neonBlue    = color.New(color.FgHiCyan, color.Bold)
)

// PrintGatewayInfo logs general gateway information.
// Format: [GATEWAY] message
func PrintGatewayInfo(msg string) {
	infoBadge.Print("[GATEWAY]")
	fmt.Print(" ")
	infoText.Println(msg)
}

// PrintCacheHit logs a cache hit with lightning styling.
// Format: ⚡ CACHE HIT | key:xxxx...xxxx | 0ms
func PrintCacheHit(cacheKey string, latency time.Duration) {
	neonBlue.Print("⚡ CACHE HIT ")
	fmt.Print("| key:")
	mutedText.Print(shortKey(cacheKey))
	fmt.Print(" | ")
	successText.Printf("%dms\n", latency.Milliseconds())
}

// PrintUsage logs the estimated token usage of a request/reply pair.
// Format: 🧮 USAGE prompt:N reply:N persona:xxx
func PrintUsage(promptTokens, replyTokens int, persona string) {
	accentText.Print("🧮 USAGE ")
	fmt.Print("prompt:")
	infoText.Printf("%d", promptTokens)
	fmt.Print(" reply:")
	infoText.Printf("%d", replyTokens)
	if persona != "" {
		mutedText.Printf(" persona:%s", persona)
	}
	fmt.Println()
}

// PrintFallback logs a provider or persona degradation event.
// Format: ⚠️ [FALLBACK] message
func PrintFallback(msg string) {
	fmt.Print("⚠️  ")
	warningBadge.Print("[FALLBACK]")
	fmt.Print(" ")
	warningText.Println(msg)
}

// PrintRequest logs a request with styled output.
// Color-codes status, method, and latency for quick visual parsing.
func PrintRequest(method, path string, status int, latency time.Duration) {
	mutedText.Printf("%s ", time.Now().Format("15:04:05"))

	printMethodBadge(method)
	fmt.Print(" ")

	fmt.Printf("%-24s ", truncatePath(path, 24))

	printStatusBadge(status)
	fmt.Print(" ")

	printLatency(latency)
	fmt.Println()
}

// printMethodBadge prints the HTTP method with appropriate color.
func printMethodBadge(method string) {
	switch method {
	case "POST":
		color.New(color.BgHiMagenta, color.FgBlack, color.Bold).Printf(" %s ", method)
	case "GET":
		color.New(color.BgHiCyan, color.FgBlack, color.Bold).Printf(" %s ", method)
	default:
		debugBadge.Printf(" %s ", method)
	}
}

// printStatusBadge prints the status code with appropriate color.
func printStatusBadge(status int) {
	switch {
	case status >= 200 && status < 300:
		successBadge.Printf(" %d ", status)
	case status >= 300 && status < 400:
		infoBadge.Printf(" %d ", status)
	case status >= 400 && status < 500:
		warningBadge.Printf(" %d ", status)
	default:
		errorBadge.Printf(" %d ", status)
	}
}

// printLatency prints latency with color gradient.
// Green: < 100ms, Yellow: < 2s, Red: >= 2s (LLM calls are slow by nature).
func printLatency(latency time.Duration) {
	ms := latency.Milliseconds()
	latencyStr := fmt.Sprintf("%5dms", ms)

	switch {
	case ms < 100:
		successText.Print(latencyStr)
	case ms < 2000:
		warningText.Print(latencyStr)
	default:
		errorText.Print(latencyStr)
	}
}

// shortKey returns a short masked version of a cache key or credential.
// Format: xxxx...xxxx
func shortKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "***"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// truncatePath truncates a path to maxLen characters.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return path[:maxLen-3] + "..."
}

// PrintStartupInfo prints styled server startup information.
func PrintStartupInfo(host string, port int, personas []string) {
	fmt.Println()
	infoBadge.Print("[GATEWAY]")
	fmt.Print(" Server starting on ")
	neonBlue.Printf("http://%s:%d\n", host, port)

	infoBadge.Print("[GATEWAY]")
	fmt.Print(" Personas: ")
	for i, p := range personas {
		if i > 0 {
			mutedText.Print(", ")
		}
		accentText.Print(p)
	}
	fmt.Println()

	fmt.Println()
	printEndpoints()
}

// printEndpoints prints the available API endpoints.
func printEndpoints() {
	mutedText.Println("  ┌──────────────────────────────────────────────────────────┐")
	printEndpoint("POST", "/chat", "Chat with a persona")
	printEndpoint("POST", "/valuation", "Structured class evaluation")
	printEndpoint("GET ", "/students", "List student records")
	printEndpoint("GET ", "/students/:id", "Single student record")
	printEndpoint("GET ", "/health", "Health and cache stats")
	mutedText.Println("  └──────────────────────────────────────────────────────────┘")
	fmt.Println()
}

func printEndpoint(method, path, desc string) {
	mutedText.Print("  │ ")
	if method == "POST" {
		color.New(color.BgHiMagenta, color.FgBlack, color.Bold).Printf(" %s ", method)
	} else {
		color.New(color.BgHiCyan, color.FgBlack, color.Bold).Printf(" %s ", method)
	}
	fmt.Printf(" %-15s ", path)
	mutedText.Printf(" %-30s", desc)
	mutedText.Println(" │")
}

// PrintShutdown prints a styled shutdown message.
func PrintShutdown() {
	fmt.Println()
	warningBadge.Print("[SHUTDOWN]")
	warningText.Println(" Graceful shutdown initiated...")
}

// PrintGoodbye prints a styled goodbye message.
func PrintGoodbye() {
	successBadge.Print(" OK ")
	fmt.Print(" ")
	successText.Println("Server stopped. Goodbye! 👋")
}
