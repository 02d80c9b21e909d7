package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gocarina/gocsv"
)

const DefaultListURL = "http://www.vpngate.net/api/iphone/"

type Server struct {
	HostName                string `csv:"#HostName"`
	IP                      string `csv:"IP"`
	Score                   int    `csv:"Score"`
	Ping                    string `csv:"Ping"`
	Speed                   int    `csv:"Speed"`
	CountryLong             string `csv:"CountryLong"`
	CountryShort            string `csv:"CountryShort"`
	NumVPNSessions          string `csv:"NumVpnSessions"`
	Uptime                  int    `csv:"Uptime"`
	TotalUsers              int    `csv:"TotalUsers"`
	TotalTraffic            int    `csv:"TotalTraffic"`
	LogType                 string `csv:"LogType"`
	Operator                string `csv:"Operator"`
	Message                 string `csv:"Message"`
	OpenVPNConfigDataBase64 string `csv:"OpenVPN_ConfigData_Base64"`
}

// FetchServers downloads the server list from url and parses it.
func FetchServers(ctx context.Context, url string) ([]Server, error) {
	b, err := fetchList(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseServers(b)
}

func fetchList(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return b, nil
}

// ParseServers drops the banner line and the two trailer lines around the
// table, then decodes the rest by column name.
func ParseServers(raw []byte) ([]Server, error) {
	lines := bytes.Split(raw, []byte("\n"))
	if len(lines) < 5 {
		return nil, &ParseError{Err: fmt.Errorf("got %d lines, want a banner, a header, at least one row and two trailer lines", len(lines))}
	}
	lines = lines[1 : len(lines)-2]
	for i, line := range lines {
		lines[i] = bytes.TrimSuffix(line, []byte("\r"))
	}

	var servers []Server
	if err := gocsv.Unmarshal(bytes.NewReader(bytes.Join(lines, []byte("\n"))), &servers); err != nil {
		return nil, &ParseError{Err: err}
	}
	return servers, nil
}
