package main

import (
	"sort"
	"strings"
)

type Country struct {
	Short string
	Long  string
}

// Matches returns the servers of the queried country in table order. A
// two character query is a country code, anything longer a country name.
// Both compare case-insensitively.
func Matches(servers []Server, query string) []Server {
	var matched []Server
	for _, server := range servers {
		if matchCountry(server, query) {
			matched = append(matched, server)
		}
	}
	return matched
}

func matchCountry(server Server, query string) bool {
	if len(query) == 2 {
		return strings.ToUpper(server.CountryShort) == strings.ToUpper(query)
	}
	return strings.EqualFold(server.CountryLong, query)
}

// SelectBest returns the fastest server of the queried country. The first
// one in table order wins a tie.
func SelectBest(servers []Server, query string) (Server, error) {
	matched := Matches(servers, query)
	if len(matched) == 0 {
		return Server{}, &NoMatchError{Query: query}
	}

	best := matched[0]
	for _, server := range matched[1:] {
		if server.Speed > best.Speed {
			best = server
		}
	}
	return best, nil
}

// Countries lists every country in the table once, ordered by code.
func Countries(servers []Server) []Country {
	seen := make(map[string]bool)
	var countries []Country
	for _, server := range servers {
		code := strings.ToUpper(server.CountryShort)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		countries = append(countries, Country{Short: code, Long: server.CountryLong})
	}

	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Short < countries[j].Short
	})
	return countries
}
