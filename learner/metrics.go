package learner

import "sync/atomic"

type Metrics struct {
	Explorations  int64
	Exploitations int64
	Ties          int64 // Greedy selections that had to break a tie
	Updates       int64
	ShapedRewards int64 // Updates whose reward the shaper changed
}

type Collector interface {
	AddExploration()
	AddExploitation(tie bool)
	AddUpdate()
	AddShapedReward()
	Snapshot() Metrics
}

type collector struct {
	explorations  atomic.Int64
	exploitations atomic.Int64
	ties          atomic.Int64
	updates       atomic.Int64
	shapedRewards atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) AddExploration() {
	m.explorations.Add(1)
}

func (m *collector) AddExploitation(tie bool) {
	m.exploitations.Add(1)
	if tie {
		m.ties.Add(1)
	}
}

func (m *collector) AddUpdate() {
	m.updates.Add(1)
}

func (m *collector) AddShapedReward() {
	m.shapedRewards.Add(1)
}

func (m *collector) Snapshot() Metrics {
	return Metrics{
		Explorations:  m.explorations.Load(),
		Exploitations: m.exploitations.Load(),
		Ties:          m.ties.Load(),
		Updates:       m.updates.Load(),
		ShapedRewards: m.shapedRewards.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) AddExploration()          {}
func (m *dummyCollector) AddExploitation(tie bool) {}
func (m *dummyCollector) AddUpdate()               {}
func (m *dummyCollector) AddShapedReward()         {}
func (m *dummyCollector) Snapshot() Metrics        { return Metrics{} }
