package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ppiankov/durparse/pkg/duration"
	"github.com/spf13/cobra"
)

// supportedUnits lists the suffixes accepted in duration expressions.
func supportedUnits() []string {
	units := make([]string, 0, 4)
	for _, suffix := range "dhms" {
		seconds, _ := duration.Unit(suffix)
		units = append(units, fmt.Sprintf("%c=%ds", suffix, seconds))
	}
	return units
}

// NewVersionCmd creates the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and supported duration units",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("durparse %s\n", version)
			cmd.Printf("units: %s\n", strings.Join(supportedUnits(), " "))
			cmd.Printf("go: %s\n", runtime.Version())
			cmd.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
