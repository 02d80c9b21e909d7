package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

const usage = `vgate - connect to the fastest VPN Gate server of a country

Usage:
  vgate --list
  vgate --country <code|name>
  vgate --browse

Flags:
`

type options struct {
	list       bool
	country    string
	browse     bool
	configFile string
	listURL    string
	ovpnPath   string
	authPath   string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("vgate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.list, "list", false, "list the countries with available servers")
	fs.BoolVar(&opts.list, "l", false, "shorthand for --list")
	fs.StringVar(&opts.country, "country", "", "country code or name to connect to")
	fs.StringVar(&opts.country, "c", "", "shorthand for --country")
	fs.BoolVar(&opts.browse, "browse", false, "pick a server from an interactive table")
	fs.StringVar(&opts.configFile, "config", "", "path to YAML config")
	fs.StringVar(&opts.listURL, "url", "", "server list URL")
	fs.StringVar(&opts.ovpnPath, "ovpn", "", "where to write the OpenVPN config")
	fs.StringVar(&opts.authPath, "auth", "", "OpenVPN credentials file")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, err
		}
		return opts, &UsageError{Msg: err.Error()}
	}

	if !opts.list && opts.country == "" && !opts.browse {
		fs.Usage()
		return opts, &UsageError{Msg: "one of --list, --country or --browse is required"}
	}
	if opts.country != "" && len(opts.country) < 2 {
		return opts, &UsageError{Msg: "Country code is incorrect."}
	}
	return opts, nil
}

func loadConfig(opts options) (Config, error) {
	cfg, err := LoadConfig(opts.configFile)
	if err != nil {
		return Config{}, err
	}
	if opts.listURL != "" {
		cfg.ListURL = opts.listURL
	}
	if opts.ovpnPath != "" {
		cfg.ConfigPath = opts.ovpnPath
	}
	if opts.authPath != "" {
		cfg.CredentialsPath = opts.authPath
	}
	if err := Validate(cfg); err != nil {
		return Config{}, &UsageError{Msg: err.Error()}
	}
	return cfg, nil
}

func run(ctx context.Context, opts options, cfg Config, stdin io.Reader, stdout io.Writer) error {
	servers, err := FetchServers(ctx, cfg.ListURL)
	if err != nil {
		return err
	}

	if opts.list {
		return printCountries(stdout, Countries(servers))
	}

	var best Server
	if opts.browse {
		server, ok, err := NewApp(servers).Pick()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		best = server
		printBest(stdout, best, len(Matches(servers, best.CountryShort)))
	} else {
		best, err = SelectBest(servers, opts.country)
		if err != nil {
			return err
		}
		printBest(stdout, best, len(Matches(servers, opts.country)))
	}

	ok, err := confirm(ctx, stdin, stdout)
	if err != nil || !ok {
		return err
	}

	fmt.Fprintln(stdout, "\nLaunching VPN...")
	if err := WriteConfig(best.OpenVPNConfigDataBase64, cfg.ConfigPath); err != nil {
		return err
	}

	if err := NewLauncher(cfg).Run(ctx, cfg.ConfigPath, cfg.CredentialsPath); err != nil {
		return err
	}
	fmt.Fprintln(stdout, "\nVPN terminated")
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("vgate: ")

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		log.Print(err)
		os.Exit(exitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, cfg, os.Stdin, os.Stdout); err != nil {
		stop()
		if !errors.Is(err, context.Canceled) {
			log.Print(err)
		}
		os.Exit(exitCode(err))
	}
}
