package parse

import "testing"

const lldpSample = `Remote LLDP Agents on Local Slot/Port: 1/1/1:
  Chassis Id = 00:1a:2b:3c:4d:01,
  Port Id = 1/1/24,
  Port Description = uplink to core,
  System Name = core-sw-1,
  System Description = Alcatel-Lucent Enterprise OS6900,
  Management Address = 10.5.1.2,
  Capabilities = Bridge, Router,

Remote LLDP Agents on Local Slot/Port: 1/1/5:
  Chassis Id = aa:bb:cc:dd:ee:02,
  Port Id = eth0,
  Port Description = (null),
  System Name = office-printer,
  System Description = HP LaserJet,
  Management Address = 10.5.1.9,
`

func TestShowLLDPRemoteSystemParsesMultipleNeighbors(t *testing.T) {
	neighbors := ShowLLDPRemoteSystem(lldpSample)
	if len(neighbors) != 2 {
		t.Fatalf("got %d neighbors, want 2", len(neighbors))
	}

	n, ok := neighbors["1/1/1"]
	if !ok {
		t.Fatal("expected a neighbor keyed by local port 1/1/1")
	}
	if n.ChassisID != "00:1a:2b:3c:4d:01" {
		t.Errorf("ChassisID = %q, want 00:1a:2b:3c:4d:01", n.ChassisID)
	}
	if n.SystemName != "core-sw-1" {
		t.Errorf("SystemName = %q, want core-sw-1", n.SystemName)
	}
	if n.ManagementIP != "10.5.1.2" {
		t.Errorf("ManagementIP = %q, want 10.5.1.2", n.ManagementIP)
	}
	if n.Capabilities != "Bridge, Router" {
		t.Errorf("Capabilities = %q, want %q", n.Capabilities, "Bridge, Router")
	}
}

func TestShowLLDPRemoteSystemTreatsNullAsEmpty(t *testing.T) {
	neighbors := ShowLLDPRemoteSystem(lldpSample)
	n, ok := neighbors["1/1/5"]
	if !ok {
		t.Fatal("expected a neighbor keyed by local port 1/1/5")
	}
	if n.PortDescription != "" {
		t.Errorf("PortDescription = %q, want empty for a (null) value", n.PortDescription)
	}
}

func TestShowLLDPRemoteSystemEmptyOutput(t *testing.T) {
	neighbors := ShowLLDPRemoteSystem("")
	if len(neighbors) != 0 {
		t.Fatalf("got %d neighbors for empty output, want 0", len(neighbors))
	}
}

func TestShowLLDPLocalManagementAddress(t *testing.T) {
	out := "Chassis ID Subtype = MAC address,\nManagement IP Address = 10.0.0.5,\n"
	ip, ok := ShowLLDPLocalManagementAddress(out)
	if !ok {
		t.Fatal("expected a management address to be found")
	}
	if ip != "10.0.0.5" {
		t.Fatalf("ip = %q, want 10.0.0.5", ip)
	}
}

func TestShowLLDPLocalManagementAddressNotFound(t *testing.T) {
	if _, ok := ShowLLDPLocalManagementAddress("no such line here"); ok {
		t.Fatal("expected ok=false when no management address line is present")
	}
}
