package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App is the server browser. It ends when a server is picked or the user
// quits.
type App struct {
	*tview.Application
	serversView *ServersView
	statusView  *tview.TextView
	picked      *Server
}

func NewApp(servers []Server) *App {
	serversView := NewServersView(servers)

	statusView := tview.NewTextView()
	statusView.SetText(fmt.Sprintf("%d servers [enter: connect, q: quit]", len(servers)))

	flex := tview.NewFlex()
	flex.SetDirection(tview.FlexRow)
	flex.AddItem(serversView, 0, 1, true).
		AddItem(statusView, 1, 1, false)

	app := tview.NewApplication()
	app.SetRoot(flex, true)

	return &App{
		Application: app,
		serversView: serversView,
		statusView:  statusView,
	}
}

func (a *App) setAction() {
	a.serversView.SetSelectedFunc(func(row, column int) {
		server, ok := a.serversView.ServerAt(row)
		if !ok {
			return
		}
		a.picked = &server
		a.Application.Stop()
	})

	a.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || event.Rune() == 'q' {
			a.Application.Stop()
			return nil
		}
		return event
	})
}

// Pick runs the browser and returns the chosen server. ok is false when the
// user quit without choosing.
func (a *App) Pick() (server Server, ok bool, err error) {
	a.setAction()

	if err := a.Application.Run(); err != nil {
		return Server{}, false, err
	}
	if a.picked == nil {
		return Server{}, false, nil
	}
	return *a.picked, true, nil
}

type column struct {
	title string
	key   rune
	align int
	text  func(Server) string
	less  func(a, b Server) bool
	// rows without a value sort last in both directions
	known func(Server) bool
}

var columns = []column{
	{
		title: "Country", key: 'c', align: tview.AlignCenter,
		text: func(s Server) string { return strings.ToUpper(s.CountryShort) },
		less: func(a, b Server) bool { return a.CountryShort < b.CountryShort },
	},
	{
		title: "IP", align: tview.AlignRight,
		text: func(s Server) string { return s.IP },
	},
	{
		title: "Ping", key: 'p', align: tview.AlignRight,
		text:  func(s Server) string { return s.Ping },
		less:  func(a, b Server) bool { return pingOf(a) < pingOf(b) },
		known: pingKnown,
	},
	{
		title: "Speed", key: 's', align: tview.AlignRight,
		text: func(s Server) string { return formatBandwidth(s.Speed) + " MBps" },
		less: func(a, b Server) bool { return a.Speed < b.Speed },
	},
	{
		title: "Score", key: 'e', align: tview.AlignRight,
		text: func(s Server) string { return strconv.Itoa(s.Score) },
		less: func(a, b Server) bool { return a.Score < b.Score },
	},
	{
		title: "Uptime", key: 'u', align: tview.AlignRight,
		text: func(s Server) string { return uptimeToString(s.Uptime) },
		less: func(a, b Server) bool { return a.Uptime < b.Uptime },
	},
	{
		title: "TotalUsers", key: 't', align: tview.AlignRight,
		text: func(s Server) string { return strconv.Itoa(s.TotalUsers) },
		less: func(a, b Server) bool { return a.TotalUsers < b.TotalUsers },
	},
	{
		title: "TotalTraffic", key: 'f', align: tview.AlignRight,
		text: func(s Server) string { return trafficToString(s.TotalTraffic) },
		less: func(a, b Server) bool { return a.TotalTraffic < b.TotalTraffic },
	},
}

const scoreColumn = 4

func pingOf(s Server) int {
	ping, _ := strconv.Atoi(s.Ping)
	return ping
}

// VPN Gate reports "-" for servers it could not ping.
func pingKnown(s Server) bool {
	_, err := strconv.Atoi(s.Ping)
	return err == nil
}

type ServersView struct {
	*tview.Table
	servers []Server
	order   int
	desc    bool
}

func NewServersView(servers []Server) *ServersView {
	table := tview.NewTable()
	table.Select(1, 0).SetFixed(1, 1).SetSelectable(true, false)
	table.SetSelectionChangedFunc(func(row, column int) {
		if row == 0 {
			table.Select(1, 0)
		}
	})
	table.SetTitle("servers").SetTitleAlign(tview.AlignLeft).SetBorder(true)

	serversView := &ServersView{
		Table:   table,
		servers: append([]Server{}, servers...),
		order:   scoreColumn,
		desc:    true,
	}

	serversView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if !serversView.Toggle(event.Rune()) {
			return event
		}
		serversView.SetCells()
		return nil
	})
	serversView.SetCells()
	return serversView
}

// Toggle switches the sort column bound to key, flipping the direction when
// it is already the sort column.
func (s *ServersView) Toggle(key rune) bool {
	for i, col := range columns {
		if col.key == 0 || col.key != key {
			continue
		}
		if s.order == i {
			s.desc = !s.desc
		} else {
			s.order = i
			s.desc = true
		}
		return true
	}
	return false
}

// ServerAt maps a table row back to its server. Row 0 is the header.
func (s *ServersView) ServerAt(row int) (Server, bool) {
	if row < 1 || row > len(s.servers) {
		return Server{}, false
	}
	return s.servers[row-1], true
}

func (s *ServersView) SetCells() {
	s.Sort()

	s.Table.Clear()

	for i, col := range columns {
		title := col.title
		if col.key != 0 {
			title = fmt.Sprintf("%s(%c)", col.title, col.key)
		}
		if i == s.order {
			if s.desc {
				title += "▼"
			} else {
				title += "▲"
			}
		}
		s.Table.SetCell(0, i, tview.NewTableCell(title))
	}

	for row, server := range s.servers {
		for i, col := range columns {
			s.Table.SetCell(row+1, i, tview.NewTableCell(col.text(server)).SetAlign(col.align))
		}
	}
}

func (s *ServersView) Sort() {
	col := columns[s.order]
	sort.SliceStable(s.servers, func(i, j int) bool {
		a, b := s.servers[i], s.servers[j]
		if col.known != nil && col.known(a) != col.known(b) {
			return col.known(a)
		}
		if s.desc {
			return col.less(b, a)
		}
		return col.less(a, b)
	})
}
