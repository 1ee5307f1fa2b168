package ir

// HardwareUnit is one concrete typed execution resource (§3).
type HardwareUnit struct {
	ID             string            `json:"id"`
	Type           Taxonomy          `json:"type"`
	ThroughputOpS  float64           `json:"throughput"` // operations per second
	MemoryKB       float64           `json:"memory_kb"`
	LatencyCycles  int64             `json:"latency_cycles"`
	AreaMM2        float64           `json:"area_mm2,omitempty"`
	PowerMW        float64           `json:"power_mw,omitempty"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// MemoryHierarchy describes the optional main-memory bandwidth used by the
// memory-bandwidth floor post-pass (§4.3) and the roofline memory term
// (§4.2).
type MemoryHierarchy struct {
	MainMemoryBandwidthGBs float64 `json:"main_memory_bandwidth_gb_s,omitempty"`
}

// SRAMIOPolicy describes the optional on-chip SRAM IO parameters named in
// §6. It is consumed by hwio; the core scheduler only threads it through.
type SRAMIOPolicy struct {
	GranuleBytes        int64   `json:"granule_bytes,omitempty"`
	ReadBandwidthGBs    float64 `json:"read_bandwidth_gb_s,omitempty"`
	WriteBandwidthGBs   float64 `json:"write_bandwidth_gb_s,omitempty"`
	AccessLatencyCycles int64   `json:"access_latency_cycles,omitempty"`
	AccessEnergyPJ      float64 `json:"access_energy_pj,omitempty"`
}

// HardwareConfig is the set of hardware units available to a run (§3).
type HardwareConfig struct {
	AcceleratorName  string           `json:"accelerator_name"`
	ClockMHz         float64          `json:"clock_mhz"`
	Units            []HardwareUnit   `json:"units"`
	MemoryHierarchy  *MemoryHierarchy `json:"memory_hierarchy,omitempty"`
	SRAMIOPolicy     *SRAMIOPolicy    `json:"sram_io_policy,omitempty"`
}

// UnitsByType groups units by their Type tag, preserving Units order within
// each group (needed for deterministic round-robin selection in mapping).
func (c HardwareConfig) UnitsByType() map[Taxonomy][]HardwareUnit {
	out := make(map[Taxonomy][]HardwareUnit)
	for _, u := range c.Units {
		out[u.Type] = append(out[u.Type], u)
	}
	return out
}

// ByID returns the unit with the given id, or false if absent.
func (c HardwareConfig) ByID(id string) (HardwareUnit, bool) {
	for _, u := range c.Units {
		if u.ID == id {
			return u, true
		}
	}
	return HardwareUnit{}, false
}

// ClockHz returns the target clock frequency in Hz.
func (c HardwareConfig) ClockHz() float64 {
	return c.ClockMHz * 1e6
}
