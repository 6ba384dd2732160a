package model

// Layout describes a complete plate configuration: the plates, the socket
// groups placed on them and whether sockets are enabled at all. It is the
// unit exchanged with exporters, the HTTP API and layout files.
type Layout struct {
	Plates         []Plate       `json:"plates" yaml:"plates"`
	SocketGroups   []SocketGroup `json:"socket_groups" yaml:"socket_groups"`
	SocketsEnabled bool          `json:"sockets_enabled" yaml:"sockets_enabled"`
}

// FindPlate returns the plate with the given ID.
func (l Layout) FindPlate(id string) (Plate, bool) {
	for _, p := range l.Plates {
		if p.ID == id {
			return p, true
		}
	}
	return Plate{}, false
}

// FindGroup returns the socket group with the given ID.
func (l Layout) FindGroup(id string) (SocketGroup, bool) {
	for _, g := range l.SocketGroups {
		if g.ID == id {
			return g, true
		}
	}
	return SocketGroup{}, false
}

// PlateIndex returns the position of a plate in the layout, or -1.
func (l Layout) PlateIndex(id string) int {
	for i, p := range l.Plates {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// GroupsOnPlate returns the socket groups placed on the given plate,
// in layout order.
func (l Layout) GroupsOnPlate(plateID string) []SocketGroup {
	var groups []SocketGroup
	for _, g := range l.SocketGroups {
		if g.PlateID == plateID {
			groups = append(groups, g)
		}
	}
	return groups
}

// EligiblePlates returns the plates large enough to host sockets.
func (l Layout) EligiblePlates() []Plate {
	var plates []Plate
	for _, p := range l.Plates {
		if p.Eligible() {
			plates = append(plates, p)
		}
	}
	return plates
}

// SocketCount returns the total number of individual sockets across all groups.
func (l Layout) SocketCount() int {
	total := 0
	for _, g := range l.SocketGroups {
		total += g.Count
	}
	return total
}

// TotalArea returns the combined plate area in cm².
func (l Layout) TotalArea() float64 {
	var total float64
	for _, p := range l.Plates {
		total += p.Area()
	}
	return total
}
