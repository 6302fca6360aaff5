package result

import (
	"encoding/json"
	"fmt"
)

// Peer is one entry of a getpeers response: an address the node is
// connected to, wants to connect to, or has given up on.
type Peer struct {
	Address string `json:"address"`
	Port    uint16 `json:"port"`
}

type peerAux struct {
	Address string          `json:"address"`
	Port    json.RawMessage `json:"port"`
}

// MarshalJSON implements the json.Marshaler interface.
func (p Peer) MarshalJSON() ([]byte, error) {
	portJSON, err := json.Marshal(p.Port)
	if err != nil {
		return nil, err
	}
	return json.Marshal(peerAux{Address: p.Address, Port: portJSON})
}

// UnmarshalJSON implements the json.Unmarshaler interface, tolerating
// both the current node's numeric port and the legacy string-encoded
// port some older nodes still emit.
func (p *Peer) UnmarshalJSON(data []byte) error {
	var aux peerAux
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var port uint16
	if err := json.Unmarshal(aux.Port, &port); err != nil {
		var s string
		if err := json.Unmarshal(aux.Port, &s); err != nil {
			return fmt.Errorf("invalid peer port: %s", aux.Port)
		}
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 0 || n > 65535 {
			return fmt.Errorf("invalid peer port: %s", s)
		}
		port = uint16(n)
	}
	p.Address = aux.Address
	p.Port = port
	return nil
}

// GetPeers is the result of getpeers: the node's view of its
// connected, known-but-unconnected, and recently bad peers.
type GetPeers struct {
	Unconnected []Peer `json:"unconnected"`
	Connected   []Peer `json:"connected"`
	Bad         []Peer `json:"bad"`
}

// NewGetPeers returns a GetPeers with all three lists initialized empty.
func NewGetPeers() GetPeers {
	return GetPeers{
		Unconnected: []Peer{},
		Connected:   []Peer{},
		Bad:         []Peer{},
	}
}

// AddUnconnected appends addr:port pairs to the Unconnected list.
func (p *GetPeers) AddUnconnected(addrs []Peer) { p.Unconnected = append(p.Unconnected, addrs...) }

// AddConnected appends addr:port pairs to the Connected list.
func (p *GetPeers) AddConnected(addrs []Peer) { p.Connected = append(p.Connected, addrs...) }

// AddBad appends addr:port pairs to the Bad list.
func (p *GetPeers) AddBad(addrs []Peer) { p.Bad = append(p.Bad, addrs...) }
