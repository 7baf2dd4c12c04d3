package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"codeberg.org/miketth/evseat/pkg/calibstore"
	"codeberg.org/miketth/evseat/pkg/input"
)

func newCalibrationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibration",
		Short: "Inspect and edit stored calibration matrices",
	}

	cmd.AddCommand(
		newCalibrationShowCommand(),
		newCalibrationSetCommand(),
		newCalibrationClearCommand(),
	)

	return cmd
}

func newCalibrationShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [devnode]",
		Short: "Show the stored matrix for a device node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredStore()
			if err != nil {
				return err
			}
			defer store.Close()

			m, found, err := store.Get(args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("no calibration stored for %s\n", args[0])
				return nil
			}

			fmt.Printf("%g %g %g\n%g %g %g\n", m[0], m[1], m[2], m[3], m[4], m[5])
			return nil
		},
	}
}

func newCalibrationSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [devnode] [a b c d e f]",
		Short: "Store a calibration matrix for a device node",
		Long: "Stores the first two rows of the 3x3 transform applied to absolute\n" +
			"coordinates, row-major. The identity is 1 0 0 0 1 0. The matrix is\n" +
			"applied the next time the device is enabled.",
		Args: cobra.ExactArgs(7),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m input.CalibrationMatrix
			for i, arg := range args[1:] {
				f, err := strconv.ParseFloat(arg, 32)
				if err != nil {
					return fmt.Errorf("matrix value %q: %w", arg, err)
				}
				m[i] = float32(f)
			}

			store, err := openConfiguredStore()
			if err != nil {
				return err
			}

			if err := store.Set(args[0], m); err != nil {
				store.Close()
				return err
			}

			return store.Close()
		},
	}
}

func newCalibrationClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [devnode]",
		Short: "Remove the stored matrix for a device node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openConfiguredStore()
			if err != nil {
				return err
			}

			if err := store.Delete(args[0]); err != nil {
				store.Close()
				return err
			}

			return store.Close()
		},
	}
}

func openConfiguredStore() (calibstore.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := newLogger("warn", flagDebug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return openStore(cfg, log)
}
