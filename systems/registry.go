package systems

import "github.com/pthm-cable/starfield/telemetry"

// SystemInfo describes one frame phase for UI display.
type SystemInfo struct {
	ID          string // Phase name used by the perf collector
	Name        string // Display name
	Description string // What this phase does
}

// SystemRegistry holds display metadata for the frame phases, keeping the UI
// and the perf collector in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with every frame phase.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the frame phases in execution order.
// Update this when adding a phase to telemetry.Phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: telemetry.PhaseGridReset, Name: "Grid Reset", Description: "Clears cell counts"})
	r.Register(SystemInfo{ID: telemetry.PhaseGridAssign, Name: "Grid Assign", Description: "Bins stars into cells"})
	r.Register(SystemInfo{ID: telemetry.PhasePhysics, Name: "Physics", Description: "Moves stars, reflects off walls, pulls toward centre"})
	r.Register(SystemInfo{ID: telemetry.PhaseInteraction, Name: "Interaction", Description: "Applies pair forces by colour class"})
	r.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Counts overflow and records frame stats"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
