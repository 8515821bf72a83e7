package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	okText      = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorText   = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText     = color.New(color.Faint).SprintFunc()
	metricLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	headerText  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func printHeader(title string) {
	width := 40
	border := strings.Repeat("═", width)
	fmt.Println(headerText("╔" + border + "╗"))
	fmt.Println(headerText("║" + centerText(title, width) + "║"))
	fmt.Println(headerText("╚" + border + "╝"))
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

func printMetric(label string, value any) {
	fmt.Printf("  %s: %v\n", metricLabel(label), value)
}
