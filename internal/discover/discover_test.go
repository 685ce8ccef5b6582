package discover

import (
	"context"
	"testing"
	"time"

	"github.com/0xEkho/ALE-OmniSwitch-MCP/internal/domain"
)

type fakeRunner struct {
	outputs map[string]string
}

func (f *fakeRunner) Run(_ context.Context, device domain.Device, command string, _ time.Duration, _ ZoneResolver) (*domain.CommandResult, error) {
	return &domain.CommandResult{Stdout: f.outputs[device.Host]}, nil
}

type fakeZones struct{}

func (fakeZones) Primary(string) (domain.ZoneCredentials, bool) { return domain.ZoneCredentials{}, false }

const seedLLDPOutput = `Remote LLDP Agents on Local Slot/Port: 1/1/1:
  Chassis Id = 00:1a:2b:3c:4d:01,
  Port Id = 1/1/24,
  Port Description = uplink,
  System Name = core-sw-1,
  System Description = Alcatel-Lucent Enterprise OS6900,
  Management Address = 10.5.1.2,
`

const nonVendorLLDPOutput = `Remote LLDP Agents on Local Slot/Port: 1/1/5:
  Chassis Id = aa:bb:cc:dd:ee:02,
  Port Id = eth0,
  Port Description = printer uplink,
  System Name = office-printer,
  System Description = HP LaserJet,
  Management Address = 10.5.1.9,
`

func TestWalkFollowsVendorMatchingNeighbor(t *testing.T) {
	seed := domain.Device{ID: "seed", Host: "10.5.1.1", Port: 22}
	runner := &fakeRunner{outputs: map[string]string{
		"10.5.1.1": seedLLDPOutput,
		"10.5.1.2": "",
	}}

	visited, edges, err := Walk(context.Background(), seed, runner, fakeZones{}, Options{MaxDepth: 2, MaxDevices: 10, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != 2 {
		t.Fatalf("expected 2 visited devices, got %d: %+v", len(visited), visited)
	}
	if visited[1].Host != "10.5.1.2" {
		t.Fatalf("expected second visited device to be the discovered neighbor, got %q", visited[1].Host)
	}
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].SystemName != "core-sw-1" || edges[0].ViaDeviceHost != "10.5.1.1" {
		t.Fatalf("unexpected edge: %+v", edges[0])
	}
}

func TestWalkSkipsNonVendorNeighbor(t *testing.T) {
	seed := domain.Device{ID: "seed", Host: "10.5.1.1", Port: 22}
	runner := &fakeRunner{outputs: map[string]string{"10.5.1.1": nonVendorLLDPOutput}}

	visited, edges, err := Walk(context.Background(), seed, runner, fakeZones{}, Options{MaxDepth: 2, MaxDevices: 10, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != 1 {
		t.Fatalf("expected only the seed to be visited, got %d", len(visited))
	}
	if len(edges) != 0 {
		t.Fatalf("expected no edges for a non-vendor neighbor, got %d", len(edges))
	}
}

func TestWalkRespectsMaxDepth(t *testing.T) {
	seed := domain.Device{ID: "seed", Host: "10.5.1.1", Port: 22}
	runner := &fakeRunner{outputs: map[string]string{
		"10.5.1.1": seedLLDPOutput,
		"10.5.1.2": seedLLDPOutput,
	}}

	visited, _, err := Walk(context.Background(), seed, runner, fakeZones{}, Options{MaxDepth: 0, MaxDevices: 10, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != 1 {
		t.Fatalf("expected MaxDepth 0 to stop after the seed, got %d visited", len(visited))
	}
}

func TestWalkRespectsMaxDevices(t *testing.T) {
	seed := domain.Device{ID: "seed", Host: "10.5.1.1", Port: 22}
	runner := &fakeRunner{outputs: map[string]string{
		"10.5.1.1": seedLLDPOutput,
		"10.5.1.2": seedLLDPOutput,
	}}

	visited, _, err := Walk(context.Background(), seed, runner, fakeZones{}, Options{MaxDepth: 5, MaxDevices: 1, Timeout: time.Second})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != 1 {
		t.Fatalf("expected MaxDevices 1 to stop after the seed, got %d visited", len(visited))
	}
}
