// Package compliance reduces a fetched device inventory plus a policy into
// a single fleet posture snapshot. The reduction is pure: no I/O, no
// retained state, and a malformed device record never aborts the batch.
package compliance

import (
	"math"
	"strings"

	"github.com/HerbHall/fleetadvisor/internal/jamf"
)

// UnknownVersion is the breakdown bucket for devices whose OS version is
// absent or unparseable. Such devices still count toward the total.
const UnknownVersion = "unknown"

// Policy is the compliance policy a fleet is judged against. It is consumed
// read-only; MaxNoncompliantPercentage is informational and echoed into the
// snapshot without gating anything.
type Policy struct {
	MinOSVersion              string  `mapstructure:"min_os_version" json:"min_os_version"`
	RequireFileVault          bool    `mapstructure:"require_filevault" json:"require_filevault"`
	RequireFirewall           bool    `mapstructure:"require_firewall" json:"require_firewall"`
	MaxNoncompliantPercentage float64 `mapstructure:"max_noncompliant_percentage" json:"max_noncompliant_percentage"`
}

// Snapshot is the aggregated posture of one fetched inventory. The policy
// thresholds used are echoed so downstream consumers can audit what the
// counts were judged against.
type Snapshot struct {
	TotalDevices           int            `json:"total_devices"`
	OSVersionBreakdown     map[string]int `json:"os_version_breakdown"`
	FileVaultDisabledCount int            `json:"filevault_disabled_count"`
	FirewallDisabledCount  int            `json:"firewall_disabled_count"`
	NoncompliantCount      int            `json:"noncompliant_count"`
	NoncompliantPercentage float64        `json:"noncompliant_percentage"`

	MinOSVersion              string  `json:"min_os_version"`
	RequireFileVault          bool    `json:"require_filevault"`
	RequireFirewall           bool    `json:"require_firewall"`
	MaxNoncompliantPercentage float64 `json:"max_noncompliant_percentage"`
}

// BuildSnapshot computes the fleet snapshot for the given devices.
//
// Per device: the OS version is bucketed in the breakdown (under
// UnknownVersion when absent or unparseable), required-but-disabled
// controls increment their disabled counters, and the compliance predicate
// runs only when a version string is present. A present-but-unparseable
// version reads as out of policy; an absent one is tracked but never
// judged.
func BuildSnapshot(devices []jamf.Device, policy Policy) Snapshot {
	breakdown := make(map[string]int)
	var fvDisabled, fwDisabled, noncompliant int

	minVersion, minKnown := ParseVersion(policy.MinOSVersion)

	for _, d := range devices {
		fvEnabled := d.Security.FileVaultEnabled
		fwEnabled := d.Security.FirewallEnabled
		if policy.RequireFileVault && !fvEnabled {
			fvDisabled++
		}
		if policy.RequireFirewall && !fwEnabled {
			fwDisabled++
		}

		rawVersion := strings.TrimSpace(d.OperatingSystem.Version)
		if rawVersion == "" || strings.EqualFold(rawVersion, UnknownVersion) {
			// No version reported: counted, never judged.
			breakdown[UnknownVersion]++
			continue
		}

		version, parsed := ParseVersion(rawVersion)
		if parsed {
			breakdown[rawVersion]++
		} else {
			breakdown[UnknownVersion]++
		}

		versionOK := parsed && minKnown && version.AtLeast(minVersion)
		compliant := versionOK &&
			(!policy.RequireFileVault || fvEnabled) &&
			(!policy.RequireFirewall || fwEnabled)
		if !compliant {
			noncompliant++
		}
	}

	total := len(devices)
	var pct float64
	if total > 0 {
		pct = round2(float64(noncompliant) / float64(total) * 100)
	}

	return Snapshot{
		TotalDevices:           total,
		OSVersionBreakdown:     breakdown,
		FileVaultDisabledCount: fvDisabled,
		FirewallDisabledCount:  fwDisabled,
		NoncompliantCount:      noncompliant,
		NoncompliantPercentage: pct,

		MinOSVersion:              policy.MinOSVersion,
		RequireFileVault:          policy.RequireFileVault,
		RequireFirewall:           policy.RequireFirewall,
		MaxNoncompliantPercentage: policy.MaxNoncompliantPercentage,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
