// Package ui provides styled console output for the agent gateway.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintBanner displays the ASCII art startup banner.
func PrintBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	hiCyan := color.New(color.FgHiCyan)
	yellow := color.New(color.FgYellow, color.Bold)
	white := color.New(color.FgWhite)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	cyan.Println("╔══════════════════════════════════════════════════════════════╗")

	cyan.Print("║  ")
	hiCyan.Print(" █████╗  ██████╗ ███████╗███╗   ██╗████████╗")
	dim.Print("                  ")
	cyan.Println("║")

	cyan.Print("║  ")
	hiCyan.Print("██╔══██╗██╔════╝ ██╔════╝████╗  ██║╚══██╔══╝")
	dim.Print("                  ")
	cyan.Println("║")

	cyan.Print("║  ")
	hiCyan.Print("███████║██║  ███╗█████╗  ██╔██╗ ██║   ██║   ")
	magenta.Print("GATEWAY")
	dim.Print("           ")
	cyan.Println("║")

	cyan.Print("║  ")
	hiCyan.Print("██╔══██║██║   ██║██╔══╝  ██║╚██╗██║   ██║   ")
	dim.Print("                  ")
	cyan.Println("║")

	cyan.Print("║  ")
	hiCyan.Print("██║  ██║╚██████╔╝███████╗██║ ╚████║   ██║   ")
	dim.Print("                  ")
	cyan.Println("║")

	cyan.Print("║  ")
	hiCyan.Print("╚═╝  ╚═╝ ╚═════╝ ╚══════╝╚═╝  ╚═══╝   ╚═╝   ")
	dim.Print("                  ")
	cyan.Println("║")

	cyan.Println("╠══════════════════════════════════════════════════════════════╣")

	cyan.Print("║  ")
	yellow.Print("🤖 AI AGENT GATEWAY")
	dim.Print("  │  ")
	white.Print("chat · valuation · students")
	dim.Print("  │  ")
	white.Print("v1.0.0")
	dim.Print(" ")
	cyan.Println("║")

	cyan.Println("╚══════════════════════════════════════════════════════════════╝")
	fmt.Println()
}

// PrintMiniBanner displays a smaller banner for constrained terminals.
func PrintMiniBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)

	fmt.Println()
	cyan.Println("╔══════════════════════════════╗")
	cyan.Print("║  ")
	magenta.Print("AGENT GATEWAY")
	cyan.Println(" 🤖           ║")
	cyan.Println("╚══════════════════════════════╝")
	fmt.Println()
}
