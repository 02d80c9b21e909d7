package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// A terminal Ctrl-C reaches openvpn and this process together. A child that
// exits within this window of an interrupt counts as terminated, not failed.
var interruptGrace = 500 * time.Millisecond

type Launcher struct {
	command     []string
	dataCiphers string
	Stdout      io.Writer
	Stderr      io.Writer
}

func NewLauncher(cfg Config) *Launcher {
	return &Launcher{
		command:     cfg.OpenVPNCommand,
		dataCiphers: cfg.DataCiphers,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Args returns the full openvpn command line for the given files.
func (l *Launcher) Args(configPath, credentialsPath string) []string {
	args := append([]string{}, l.command...)
	return append(args,
		"--config", configPath,
		"--data-ciphers", l.dataCiphers,
		"--auth-user-pass", credentialsPath,
	)
}

// Run starts openvpn and waits for it. When ctx is cancelled the child gets
// SIGTERM and Run returns nil once it has exited.
func (l *Launcher) Run(ctx context.Context, configPath, credentialsPath string) error {
	if len(l.command) == 0 {
		return &LaunchError{Err: errors.New("no openvpn command configured")}
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return &IOError{Path: credentialsPath, Err: err}
	}

	args := l.Args(configPath, credentialsPath)
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr

	if err := cmd.Start(); err != nil {
		return &LaunchError{Err: err}
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if interrupted(ctx) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("openvpn exited: %w", err)
		}
		return errors.New("openvpn exited")
	case <-ctx.Done():
		if err := cmd.Process.Signal(syscall.SIGTERM); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return fmt.Errorf("terminate openvpn: %w", err)
		}
		<-done
		return nil
	}
}

func interrupted(ctx context.Context) bool {
	t := time.NewTimer(interruptGrace)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return true
	case <-t.C:
		return false
	}
}
