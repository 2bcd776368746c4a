package engine

import (
	"fmt"
	"slices"
	"sync"

	"tchu/internal/bag"
)

// Map is a playing board: its stations, routes and ticket pool.
type Map struct {
	stations []*Station
	routes   []*Route
	tickets  []*Ticket
	byRoute  map[string]*Route
}

// NewMap indexes routes by id. Route ids must be unique.
func NewMap(stations []*Station, routes []*Route, tickets []*Ticket) (*Map, error) {
	m := &Map{
		stations: slices.Clone(stations),
		routes:   slices.Clone(routes),
		tickets:  slices.Clone(tickets),
		byRoute:  make(map[string]*Route, len(routes)),
	}
	for _, r := range routes {
		if _, dup := m.byRoute[r.id]; dup {
			return nil, fmt.Errorf("%w: duplicate route id %s", ErrInvalidArgument, r.id)
		}
		m.byRoute[r.id] = r
	}
	return m, nil
}

func (m *Map) Stations() []*Station { return slices.Clone(m.stations) }
func (m *Map) Routes() []*Route     { return slices.Clone(m.routes) }

// Route looks a route up by id.
func (m *Map) Route(id string) (*Route, bool) {
	r, ok := m.byRoute[id]
	return r, ok
}

// Tickets returns the ticket pool, ready for Initial.
func (m *Map) Tickets() bag.Bag[*Ticket] {
	return bag.Of(m.tickets...)
}

// SwissMap returns the Swiss board. It is built once and shared.
var SwissMap = sync.OnceValue(func() *Map {
	m, err := buildSwissMap()
	if err != nil {
		panic(fmt.Sprintf("engine: swiss map: %v", err))
	}
	return m
})

var swissStations = []string{
	"BAD:Baden", "BAL:Bâle", "BEL:Bellinzone", "BER:Berne", "BRI:Brigue",
	"BRU:Brusio", "COI:Coire", "DAV:Davos", "DEL:Delémont", "FRI:Fribourg",
	"GEN:Genève", "INT:Interlaken", "KRE:Kreuzlingen", "LAU:Lausanne",
	"LCF:La Chaux-de-Fonds", "LOC:Locarno", "LUC:Lucerne", "LUG:Lugano",
	"MAR:Martigny", "NEU:Neuchâtel", "OLT:Olten", "PFA:Pfäffikon",
	"SAR:Sargans", "SCE:Schaffhouse", "SCZ:Schwyz", "SIO:Sion",
	"SOL:Soleure", "STG:Saint-Gall", "VAD:Vaduz", "WAS:Wassen",
	"WIN:Winterthour", "YVE:Yverdon", "ZOU:Zoug", "ZUR:Zürich",
}

// Border crossings share their country's name.
var swissNeighbours = []struct {
	prefix string
	name   string
	count  int
}{
	{"DE", "Allemagne", 5},
	{"AT", "Autriche", 3},
	{"IT", "Italie", 5},
	{"FR", "France", 4},
}

type routeSpec struct {
	from, to string
	length   int
	level    Level
	color    Color
}

var swissRoutes = []routeSpec{
	{"AT1", "STG", 4, Underground, ColorNone},
	{"AT2", "VAD", 1, Underground, ColorRed},
	{"BAD", "BAL", 3, Underground, ColorRed},
	{"BAD", "OLT", 2, Overground, ColorViolet},
	{"BAD", "ZUR", 1, Overground, ColorYellow},
	{"BAL", "DE1", 1, Underground, ColorBlue},
	{"BAL", "DEL", 2, Underground, ColorYellow},
	{"BAL", "OLT", 2, Underground, ColorOrange},
	{"BEL", "LOC", 1, Underground, ColorBlack},
	{"BEL", "LUG", 1, Underground, ColorRed},
	{"BEL", "LUG", 1, Underground, ColorYellow},
	{"BEL", "WAS", 4, Underground, ColorNone},
	{"BEL", "WAS", 4, Underground, ColorNone},
	{"BER", "FRI", 1, Overground, ColorOrange},
	{"BER", "FRI", 1, Overground, ColorYellow},
	{"BER", "INT", 3, Overground, ColorBlue},
	{"BER", "LUC", 4, Overground, ColorNone},
	{"BER", "LUC", 4, Overground, ColorNone},
	{"BER", "NEU", 2, Overground, ColorRed},
	{"BER", "SOL", 2, Overground, ColorBlack},
	{"BRI", "INT", 2, Underground, ColorWhite},
	{"BRI", "IT5", 3, Underground, ColorGreen},
	{"BRI", "LOC", 6, Underground, ColorNone},
	{"BRI", "SIO", 3, Underground, ColorBlack},
	{"BRI", "WAS", 4, Underground, ColorRed},
	{"BRU", "COI", 5, Underground, ColorNone},
	{"BRU", "DAV", 4, Underground, ColorBlue},
	{"BRU", "IT2", 2, Underground, ColorGreen},
	{"COI", "DAV", 2, Underground, ColorViolet},
	{"COI", "SAR", 1, Underground, ColorWhite},
	{"COI", "WAS", 5, Underground, ColorNone},
	{"DAV", "AT3", 3, Underground, ColorNone},
	{"DAV", "IT1", 3, Underground, ColorNone},
	{"DAV", "SAR", 3, Underground, ColorBlack},
	{"DE2", "SCE", 1, Overground, ColorYellow},
	{"DE3", "KRE", 1, Overground, ColorOrange},
	{"DE4", "KRE", 1, Overground, ColorWhite},
	{"DE5", "STG", 2, Overground, ColorNone},
	{"DEL", "FR4", 2, Underground, ColorBlack},
	{"DEL", "LCF", 3, Underground, ColorWhite},
	{"DEL", "SOL", 1, Underground, ColorViolet},
	{"FR1", "MAR", 2, Underground, ColorNone},
	{"FR2", "GEN", 1, Overground, ColorYellow},
	{"FR3", "LCF", 2, Underground, ColorGreen},
	{"FRI", "LAU", 3, Overground, ColorRed},
	{"FRI", "LAU", 3, Overground, ColorViolet},
	{"GEN", "LAU", 4, Overground, ColorBlue},
	{"GEN", "LAU", 4, Overground, ColorWhite},
	{"GEN", "YVE", 6, Overground, ColorNone},
	{"INT", "LUC", 4, Overground, ColorViolet},
	{"IT3", "LUG", 2, Underground, ColorWhite},
	{"IT4", "LOC", 2, Underground, ColorOrange},
	{"KRE", "SCE", 3, Underground, ColorViolet},
	{"KRE", "STG", 1, Underground, ColorGreen},
	{"KRE", "WIN", 2, Overground, ColorYellow},
	{"LAU", "MAR", 4, Underground, ColorOrange},
	{"LAU", "NEU", 4, Overground, ColorNone},
	{"LCF", "NEU", 1, Underground, ColorOrange},
	{"LCF", "YVE", 3, Underground, ColorYellow},
	{"LOC", "LUG", 1, Underground, ColorViolet},
	{"LUC", "OLT", 3, Overground, ColorGreen},
	{"LUC", "SCZ", 1, Overground, ColorBlue},
	{"LUC", "ZOU", 1, Overground, ColorOrange},
	{"LUC", "ZOU", 1, Overground, ColorYellow},
	{"MAR", "SIO", 2, Underground, ColorGreen},
	{"NEU", "SOL", 4, Overground, ColorGreen},
	{"NEU", "YVE", 2, Overground, ColorBlack},
	{"OLT", "SOL", 1, Overground, ColorBlue},
	{"OLT", "ZUR", 3, Overground, ColorWhite},
	{"PFA", "SAR", 3, Underground, ColorYellow},
	{"PFA", "ZUR", 2, Overground, ColorBlue},
	{"SAR", "VAD", 1, Underground, ColorOrange},
	{"SCE", "WIN", 1, Overground, ColorBlack},
	{"SCE", "WIN", 1, Overground, ColorWhite},
	{"SCE", "ZUR", 3, Overground, ColorOrange},
	{"SCZ", "WAS", 2, Underground, ColorGreen},
	{"SCZ", "WAS", 2, Underground, ColorYellow},
	{"SCZ", "ZOU", 1, Overground, ColorBlack},
	{"SCZ", "ZOU", 1, Overground, ColorWhite},
	{"STG", "VAD", 2, Underground, ColorBlue},
	{"STG", "WIN", 4, Overground, ColorRed},
	{"STG", "ZUR", 4, Overground, ColorOrange},
	{"WIN", "ZUR", 1, Overground, ColorBlue},
	{"WIN", "ZUR", 1, Overground, ColorViolet},
	{"ZOU", "ZUR", 1, Overground, ColorGreen},
	{"ZOU", "ZUR", 1, Overground, ColorRed},
}

type ticketSpec struct {
	from, to string
	points   int
}

var swissTickets = []ticketSpec{
	{"BAL", "BER", 5}, {"BAL", "BRI", 10}, {"BAL", "STG", 8},
	{"BER", "COI", 10}, {"BER", "LUG", 12}, {"BER", "SCZ", 5},
	{"BER", "ZUR", 6}, {"FRI", "LUC", 5}, {"GEN", "BAL", 13},
	{"GEN", "BER", 8}, {"GEN", "SIO", 10}, {"GEN", "ZUR", 14},
	{"INT", "WIN", 7}, {"KRE", "ZUR", 3}, {"LAU", "INT", 7},
	{"LAU", "SCZ", 10}, {"LCF", "BER", 3}, {"LCF", "LUC", 7},
	{"LCF", "ZUR", 8}, {"LUC", "VAD", 6}, {"LUC", "ZUR", 2},
	{"LUG", "COI", 10}, {"NEU", "WIN", 9}, {"OLT", "SCE", 5},
	{"SCE", "MAR", 15}, {"SCE", "STG", 4}, {"SCE", "ZOU", 3},
	{"STG", "BRU", 9}, {"WIN", "SCZ", 3}, {"ZUR", "BAL", 4},
	{"ZUR", "BRI", 11}, {"ZUR", "VAD", 6},
}

// Tickets from a city or a country to every other country. Points follow
// swissNeighbours order: Germany, Austria, Italy, France.
var swissCountryTickets = []struct {
	from   string
	points [4]int
}{
	{"BER", [4]int{6, 11, 8, 5}},
	{"COI", [4]int{6, 5, 6, 12}},
	{"LUG", [4]int{12, 13, 2, 14}},
	{"ZUR", [4]int{3, 7, 11, 7}},
	{"DE", [4]int{0, 5, 13, 5}},
	{"AT", [4]int{5, 0, 14, 11}},
	{"IT", [4]int{13, 14, 0, 11}},
	{"FR", [4]int{5, 14, 11, 0}},
}

func buildSwissMap() (*Map, error) {
	var stations []*Station
	byCode := make(map[string]*Station)
	add := func(code, name string) error {
		s, err := NewStation(len(stations), name)
		if err != nil {
			return err
		}
		stations = append(stations, s)
		byCode[code] = s
		return nil
	}
	for _, entry := range swissStations {
		code, name := entry[:3], entry[4:]
		if err := add(code, name); err != nil {
			return nil, err
		}
	}
	countries := make(map[string][]*Station)
	for _, n := range swissNeighbours {
		for i := 1; i <= n.count; i++ {
			code := fmt.Sprintf("%s%d", n.prefix, i)
			if err := add(code, n.name); err != nil {
				return nil, err
			}
			countries[n.prefix] = append(countries[n.prefix], byCode[code])
		}
	}

	lookup := func(code string) (*Station, error) {
		if s, ok := byCode[code]; ok {
			return s, nil
		}
		return nil, fmt.Errorf("%w: unknown station %s", ErrInvalidArgument, code)
	}

	routes := make([]*Route, 0, len(swissRoutes))
	seen := make(map[string]int)
	for _, rs := range swissRoutes {
		from, err := lookup(rs.from)
		if err != nil {
			return nil, err
		}
		to, err := lookup(rs.to)
		if err != nil {
			return nil, err
		}
		key := rs.from + "_" + rs.to
		seen[key]++
		r, err := NewRoute(fmt.Sprintf("%s_%d", key, seen[key]), from, to, rs.length, rs.level, rs.color)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}

	tickets := make([]*Ticket, 0, len(swissTickets)+len(swissCountryTickets))
	for _, ts := range swissTickets {
		from, err := lookup(ts.from)
		if err != nil {
			return nil, err
		}
		to, err := lookup(ts.to)
		if err != nil {
			return nil, err
		}
		t, err := NewSingleTicket(from, to, ts.points)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	for _, ct := range swissCountryTickets {
		from, ok := countries[ct.from]
		if !ok {
			s, err := lookup(ct.from)
			if err != nil {
				return nil, err
			}
			from = []*Station{s}
		}
		var trips []Trip
		for i, n := range swissNeighbours {
			if ct.points[i] == 0 {
				continue
			}
			ts, err := AllTrips(from, countries[n.prefix], ct.points[i])
			if err != nil {
				return nil, err
			}
			trips = append(trips, ts...)
		}
		t, err := NewTicket(trips)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}

	return NewMap(stations, routes, tickets)
}
