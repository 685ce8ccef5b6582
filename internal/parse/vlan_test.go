package parse

import (
	"strings"
	"testing"
)

const vlanSample = `VLAN  Type Admin    Oper   IP Rtg  MTU  Name
----- ---- ------- ------  ------  ----  --------------------
1     std  Ena     Ena     Dis     1500  default
100   std  Ena     Dis     Ena     1500  engineering-test
200   vcm  Dis     Dis     Dis     1500  finance
`

func TestShowVlanParsesRows(t *testing.T) {
	vlans := ShowVlan(vlanSample)
	if len(vlans) != 3 {
		t.Fatalf("got %d vlans, want 3", len(vlans))
	}
	if vlans[0].VLANID != 1 || vlans[0].AdminState != "Ena" {
		t.Errorf("vlans[0] = %+v, want VLANID=1 AdminState=Ena", vlans[0])
	}
	if vlans[1].Name != "engineering-test" {
		t.Errorf("vlans[1].Name = %q, want engineering-test", vlans[1].Name)
	}
	if vlans[2].Type != "vcm" {
		t.Errorf("vlans[2].Type = %q, want vcm", vlans[2].Type)
	}
}

func TestShowVlanDetailParsesKeyValues(t *testing.T) {
	out := `Name               : default,
Type               : std,
Administrative State: Ena,
Operational State  : Ena,
IP Routing         : Dis,
IP MTU             : 1500,
MAC Tunneling      : Dis,
`
	d := ShowVlanDetail(out)
	if d.Name != "default" {
		t.Errorf("Name = %q, want default", d.Name)
	}
	if d.MTU != 1500 {
		t.Errorf("MTU = %d, want 1500", d.MTU)
	}
	if d.AdminState != "Ena" {
		t.Errorf("AdminState = %q, want Ena", d.AdminState)
	}
}

func TestAnalyzeVlanConfigFlagsEnabledButDown(t *testing.T) {
	vlans := ShowVlan(vlanSample)
	summary, issues := AnalyzeVlanConfig(vlans)

	if summary.Total != 3 || summary.Enabled != 2 || summary.Disabled != 1 {
		t.Fatalf("summary = %+v, want Total=3 Enabled=2 Disabled=1", summary)
	}

	foundDown := false
	foundDefault := false
	foundSuspicious := false
	for _, issue := range issues {
		if strings.Contains(issue,"Enabled but operationally down") {
			foundDown = true
		}
		if strings.Contains(issue,"Default VLAN is enabled") {
			foundDefault = true
		}
		if strings.Contains(issue,"Suspicious name") {
			foundSuspicious = true
		}
	}
	if !foundDown {
		t.Error("expected an issue for VLAN 100 being enabled but operationally down")
	}
	if !foundDefault {
		t.Error("expected an issue for VLAN 1 being enabled")
	}
	if !foundSuspicious {
		t.Error("expected an issue for the 'engineering-test' suspicious name")
	}
}
