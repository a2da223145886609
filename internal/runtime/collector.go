package runtime

import "github.com/aretw0/ndtm/pkg/domain"

// Collector accumulates terminal records in discovery order.
// Records are never deduplicated here; see Engine.Simulate's optimize flag.
type Collector struct {
	outputs domain.Outputs
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{outputs: domain.Outputs{}}
}

// Add appends o.
func (c *Collector) Add(o domain.Output) {
	c.outputs = append(c.outputs, o)
}

// Len returns the number of records collected.
func (c *Collector) Len() int {
	return len(c.outputs)
}

// Outputs returns the collected records.
func (c *Collector) Outputs() domain.Outputs {
	return c.outputs
}
