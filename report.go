package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

func printCountries(w io.Writer, countries []Country) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "Code\tCountry")
	for _, c := range countries {
		fmt.Fprintf(tw, "%s\t%s\n", c.Short, c.Long)
	}
	return tw.Flush()
}

func printBest(w io.Writer, best Server, matched int) {
	fmt.Fprintf(w, "%d servers found for country %s with OpenVPN support\n", matched, best.CountryLong)
	fmt.Fprintln(w, "\n== Best server ==")
	fmt.Fprintf(w, "Hostname: %s.opengw.net\n", best.HostName)
	fmt.Fprintf(w, "Bandwidth: %s MBps\n", formatBandwidth(best.Speed))
}

// formatBandwidth renders bits/sec in millions, always with a fractional
// part: 50000000 -> "50.0".
func formatBandwidth(speed int) string {
	s := strconv.FormatFloat(float64(speed)/1e6, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type answer struct {
	line string
	err  error
}

// confirm asks until the answer is y or n. EOF counts as n. Input is only
// read while a question is open, so nothing is taken from r after confirm
// returns; a read still pending at cancellation ends with the next line or
// EOF.
func confirm(ctx context.Context, r io.Reader, w io.Writer) (bool, error) {
	next := make(chan struct{})
	answers := make(chan answer, 1)
	defer close(next)

	go func() {
		reader := bufio.NewReader(r)
		for range next {
			line, err := reader.ReadString('\n')
			answers <- answer{line: line, err: err}
		}
	}()

	for {
		fmt.Fprint(w, "\nDo you want to connect [y|n] ? ")
		next <- struct{}{}

		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return false, ctx.Err()
		case a := <-answers:
			if a.err != nil && !errors.Is(a.err, io.EOF) {
				fmt.Fprintln(w)
				return false, a.err
			}
			if a.line == "" && a.err != nil {
				fmt.Fprintln(w)
				return false, nil
			}
			switch strings.TrimSpace(a.line) {
			case "y":
				return true, nil
			case "n":
				return false, nil
			default:
				fmt.Fprintln(w, "Invalid input")
			}
		}
	}
}

func uptimeToString(uptime int) string {
	days := uptime / (60 * 60 * 24 * 1000)
	return fmt.Sprintf("%d days", days)
}

func trafficToString(traffic int) string {
	gb := traffic / (1000 * 1000 * 1000)
	return fmt.Sprintf("%d gb", gb)
}
