package main

import (
	"context"
	"errors"
	"fmt"
)

const (
	exitOK = iota
	exitUnexpected
	exitUsage
	exitFetch
	exitParse
	exitNoMatch
	exitDecode
	exitIO
	exitLaunch

	exitInterrupted = 130
)

type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("cannot get VPN servers data from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed server list: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NoMatchError means no server in the table belongs to the queried country.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no server found for country %q", e.Query)
}

type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode OpenVPN config: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("error launching VPN: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var (
		usageErr   *UsageError
		fetchErr   *FetchError
		parseErr   *ParseError
		noMatchErr *NoMatchError
		decodeErr  *DecodeError
		ioErr      *IOError
		launchErr  *LaunchError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted
	case errors.As(err, &usageErr):
		return exitUsage
	case errors.As(err, &fetchErr):
		return exitFetch
	case errors.As(err, &parseErr):
		return exitParse
	case errors.As(err, &noMatchErr):
		return exitNoMatch
	case errors.As(err, &decodeErr):
		return exitDecode
	case errors.As(err, &ioErr):
		return exitIO
	case errors.As(err, &launchErr):
		return exitLaunch
	default:
		return exitUnexpected
	}
}
