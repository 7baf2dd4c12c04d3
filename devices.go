package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeberg.org/miketth/evseat/pkg/procinput"
)

func newDevicesCommand() *cobra.Command {
	var system bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List managed or system input devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			if system {
				return listSystemDevices()
			}
			return listConfiguredDevices()
		},
	}

	cmd.Flags().BoolVar(&system, "system", false, "list every input device the kernel knows about")

	return cmd
}

// listSystemDevices prints the kernel's view, including nodes nobody has
// added yet. Useful for writing the devices section of the config.
func listSystemDevices() error {
	devs, err := procinput.List()
	if err != nil {
		return err
	}

	for _, d := range devs {
		node := d.EventNode()
		if node == "" {
			node = "(no event node)"
		}

		fmt.Printf("%s\n", d.Name)
		fmt.Printf("  node: %s\n", node)
		fmt.Printf("  id:   bus %04x vendor %04x product %04x\n", d.Bus, d.Vendor, d.Product)
		if d.Phys != "" {
			fmt.Printf("  phys: %s\n", d.Phys)
		}
		fmt.Println()
	}

	return nil
}

// listConfiguredDevices brings up the configured devices the way the
// daemon would and prints the seats they land on.
func listConfiguredDevices() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger("warn", flagDebug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ictx, err := buildContext(cfg, nil, nil, log)
	if err != nil {
		if ictx == nil {
			return err
		}
		log.Warnf("not all devices came up: %v", err)
	}
	defer ictx.Destroy()

	seats := ictx.Seats()
	if len(seats) == 0 {
		fmt.Println("no devices (configure some, or try --system)")
		return nil
	}

	for _, seat := range seats {
		fmt.Printf("seat %s:%s\n", seat.PhysicalName(), seat.LogicalName())
		for _, dev := range seat.Devices() {
			caps := make([]string, 0, 4)
			for _, c := range dev.Capabilities() {
				caps = append(caps, c.String())
			}
			fmt.Printf("  %-8s %-32s [%s]\n", dev.Sysname(), dev.Name(), strings.Join(caps, " "))
		}
	}

	return nil
}
