package stressor

// Metric is one named measurement reported by a stressor instance.
// Slots are fixed per stressor so results line up across instances.
type Metric struct {
	Slot  int     `json:"slot"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Metrics is the per-instance metrics sink. An instance is strictly
// single-threaded and owns its sink exclusively, so no locking is done.
type Metrics struct {
	slots []Metric
	set   []bool
}

// Set records value for the given slot, growing the slot table as
// needed. Later writes to the same slot overwrite earlier ones.
func (m *Metrics) Set(slot int, label string, value float64) {
	if slot < 0 {
		return
	}

	for len(m.slots) <= slot {
		m.slots = append(m.slots, Metric{Slot: len(m.slots)})
		m.set = append(m.set, false)
	}

	m.slots[slot] = Metric{Slot: slot, Label: label, Value: value}
	m.set[slot] = true
}

// All returns the populated metrics in slot order.
func (m *Metrics) All() []Metric {
	out := make([]Metric, 0, len(m.slots))
	for i, metric := range m.slots {
		if m.set[i] {
			out = append(out, metric)
		}
	}

	return out
}
