package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/opdeck/internal/config"
	"github.com/zjrosen/opdeck/internal/presentation"
	"github.com/zjrosen/opdeck/internal/registry"
)

var unitsJSON bool

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Probe the hardware and list the registered units",
	Long: `Probe the configured hardware once, register it the way the console does
at startup and print each unit with its connectivity and panel variant.

Examples:
  opdeck units
  opdeck units --json | jq '.[] | select(.connected)'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printUnits(cmd.Context(), cmd.OutOrStdout(), cfg.Hardware, unitsJSON)
	},
}

func init() {
	unitsCmd.Flags().BoolVar(&unitsJSON, "json", false, "print JSON instead of a table")
	rootCmd.AddCommand(unitsCmd)
}

// probeUnits registers the configured units on a throwaway console.
func probeUnits(ctx context.Context, hw config.HardwareConfig) ([]presentation.UnitDTO, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	r := openRig(hw)
	defer r.close()

	c := newConsole(r, hw)
	if err := c.Startup(ctx); err != nil {
		return nil, fmt.Errorf("registering units: %w", err)
	}
	defer c.Shutdown()

	var out []presentation.UnitDTO
	for _, u := range c.Units() {
		variant := registry.VariantGeneric
		if u.Name == hw.Joystick.Name {
			variant = registry.VariantJoystick
		}
		out = append(out, presentation.FromUnit(u, variant))
	}
	return out, nil
}

func printUnits(ctx context.Context, w io.Writer, hw config.HardwareConfig, asJSON bool) error {
	units, err := probeUnits(ctx, hw)
	if err != nil {
		return err
	}
	if asJSON {
		return presentation.NewFormatter(w).FormatUnits(units)
	}

	rows := make([][]string, 0, len(units))
	for _, u := range units {
		connected := "no"
		if u.Connected {
			connected = "yes"
		}
		rows = append(rows, []string{u.Name, connected, u.Panel})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("UNIT", "CONNECTED", "PANEL").
		Rows(rows...)
	_, err = fmt.Fprintln(w, t.Render())
	return err
}
