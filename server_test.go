package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleList = "*vpn_servers\r\n" +
	"#HostName,IP,Score,Ping,Speed,CountryLong,CountryShort,NumVpnSessions,Uptime,TotalUsers,TotalTraffic,LogType,Operator,Message,OpenVPN_ConfigData_Base64\r\n" +
	"public-vpn-1,219.100.37.1,1200000,12,50000000,Japan,JP,30,86400000,1000,2000000000,2weeks,Daiyuu,,Y2xpZW50Cg==\r\n" +
	"public-vpn-2,219.100.37.2,900000,15,90000000,Japan,JP,12,86400000,500,1000000000,2weeks,Daiyuu,,Y2xpZW50Cg==\r\n" +
	"vpn-kr,121.1.1.1,800000,40,70000000,Korea Republic of,KR,3,3600000,10,1000,2weeks,anon,,Y2xpZW50Cg==\r\n" +
	"vpn-us,8.8.4.4,100,-,120000000,United States,US,1,1000,1,1,2weeks,anon,,Y2xpZW50Cg==\r\n" +
	"*\r\n"

func TestParseServers_SingleRow(t *testing.T) {
	t.Parallel()

	raw := "*vpn_servers\n" +
		"CountryShort,CountryLong,Speed,OpenVPN_ConfigData_Base64,#HostName\n" +
		"JP,Japan,50000000,U0dIC==,vpn001\n" +
		"*\n"
	servers, err := ParseServers([]byte(raw))
	require.NoError(t, err)
	require.Len(t, servers, 1)
	assert.Equal(t, Server{
		HostName:                "vpn001",
		CountryShort:            "JP",
		CountryLong:             "Japan",
		Speed:                   50000000,
		OpenVPNConfigDataBase64: "U0dIC==",
	}, servers[0])
}

func TestParseServers_CRLF(t *testing.T) {
	t.Parallel()

	servers, err := ParseServers([]byte(sampleList))
	require.NoError(t, err)
	require.Len(t, servers, 4)
	assert.Equal(t, "United States", servers[3].CountryLong)
	assert.Equal(t, "-", servers[3].Ping)
	assert.Equal(t, "Y2xpZW50Cg==", servers[0].OpenVPNConfigDataBase64)
}

func TestParseServers_FieldCountMismatch(t *testing.T) {
	t.Parallel()

	raw := "*vpn_servers\n" +
		"CountryShort,CountryLong,Speed,OpenVPN_ConfigData_Base64,#HostName\n" +
		"JP,Japan,50000000,vpn001\n" +
		"*\n"
	_, err := ParseServers([]byte(raw))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseServers_TooShort(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"*vpn_servers\n*\n",
		"*vpn_servers\nCountryShort,Speed\n*\n",
	} {
		_, err := ParseServers([]byte(raw))
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, "input %q", raw)
	}
}

func TestParseServers_BadNumber(t *testing.T) {
	t.Parallel()

	_, err := ParseServers([]byte("*vpn_servers\nCountryShort,Speed\nJP,fast\n*\n"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestFetchServers(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(sampleList))
	}))
	defer srv.Close()

	servers, err := FetchServers(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, servers, 4)
}

func TestFetchServers_BadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := FetchServers(context.Background(), srv.URL)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, exitFetch, exitCode(err))
}

func TestFetchServers_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := FetchServers(context.Background(), url)
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
}
