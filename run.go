package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/miketth/evseat/pkg/input"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the seat manager daemon",
		Long: "Adds the configured devices and keeps them managed until terminated.\n" +
			"SIGUSR1 suspends every device, SIGUSR2 resumes them (a VT switch in\n" +
			"script form). Under systemd the device count is published as the\n" +
			"unit status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Log.Level, flagDebug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer store.Close()

	ictx, err := buildContext(cfg, store, &statusObserver{log: log}, log)
	if err != nil {
		if ictx == nil {
			return err
		}
		log.Warnf("not all devices came up: %v", err)
	}

	publishStatus(ictx)

	log.Info("started evseatd")

	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		err := suspendLoop(ctx, ictx, log)
		if err != nil {
			errChan <- fmt.Errorf("suspend loop: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := systemdNotifyLoop(ctx)
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	err = <-errChan
	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		wg.Wait()
		return nil
	case err != nil:
		return err
	}

	return nil
}

// suspendLoop services SIGUSR1 (suspend) and SIGUSR2 (resume) until ctx is
// canceled. It is the only goroutine touching the input context once the
// daemon is up, and it tears the context down on shutdown. A failed resume
// keeps the daemon alive with the devices suspended; the next SIGUSR2
// tries again.
func suspendLoop(ctx context.Context, ictx *input.Context, log *zap.SugaredLogger) error {
	suspend := make(chan os.Signal, 1)
	resume := make(chan os.Signal, 1)
	signal.Notify(suspend, syscall.SIGUSR1)
	signal.Notify(resume, syscall.SIGUSR2)
	defer signal.Stop(suspend)
	defer signal.Stop(resume)

	for {
		select {
		case <-ctx.Done():
			ictx.Destroy()
			return ctx.Err()

		case <-suspend:
			log.Info("suspending devices")
			ictx.Suspend()
			publishStatus(ictx)

		case <-resume:
			log.Info("resuming devices")
			if err := ictx.Resume(); err != nil {
				log.Errorf("resume failed, devices stay suspended: %v", err)
			}
			publishStatus(ictx)
		}
	}
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	// notify watchdog
	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

// publishStatus pushes the seat and device count to systemd, where
// supported.
func publishStatus(ictx *input.Context) {
	seats := ictx.Seats()
	devices := 0
	for _, seat := range seats {
		devices += len(seat.Devices())
	}

	_, _ = daemon.SdNotify(false, fmt.Sprintf("STATUS=%d devices on %d seats", devices, len(seats)))
}

// statusObserver logs device arrivals and departures.
type statusObserver struct {
	log *zap.SugaredLogger
}

func (o *statusObserver) DeviceAdded(d *input.Device) {
	o.log.Infof("device added: %s (%s) on %s:%s",
		d.Sysname(), d.Name(), d.Seat().PhysicalName(), d.Seat().LogicalName())
}

func (o *statusObserver) DeviceRemoved(d *input.Device) {
	o.log.Infof("device removed: %s (%s)", d.Sysname(), d.Name())
}
