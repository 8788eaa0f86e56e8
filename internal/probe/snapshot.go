package probe

import "time"

// NodeHealth describes whether the node answers and where it is on the ledger.
// Nil pointers mean the query for that field failed.
type NodeHealth struct {
	Responsive bool    `json:"responsive" yaml:"responsive"`
	Version    *string `json:"version,omitempty" yaml:"version,omitempty"`
	Slot       *uint64 `json:"slot,omitempty" yaml:"slot,omitempty"`
	Epoch      *uint64 `json:"epoch,omitempty" yaml:"epoch,omitempty"`
	TotalNodes *uint64 `json:"total_nodes,omitempty" yaml:"total_nodes,omitempty"`
}

// NetworkPerformance is derived from the latest performance sample plus
// the confirmation probe.
type NetworkPerformance struct {
	TPS              float64        `json:"tps" yaml:"tps"`
	AvgBlockTime     *float64       `json:"avg_block_time_secs,omitempty" yaml:"avg_block_time_secs,omitempty"`
	ConfirmationTime *time.Duration `json:"confirmation_time,omitempty" yaml:"confirmation_time,omitempty"`

	// ConfirmationTimeout is set when the slot never advanced within the
	// confirmation budget, as opposed to the probe failing outright.
	ConfirmationTimeout bool `json:"confirmation_timeout,omitempty" yaml:"confirmation_timeout,omitempty"`
}

// Troubleshoot holds the diagnostic flags and the wider cluster counters.
type Troubleshoot struct {
	ConnectionOK      bool `json:"connection_ok" yaml:"connection_ok"`
	VersionMismatch   bool `json:"version_mismatch" yaml:"version_mismatch"`
	HighLatency       bool `json:"high_latency" yaml:"high_latency"`
	NetworkCongestion bool `json:"network_congestion" yaml:"network_congestion"`

	DelinquentValidators *uint64 `json:"delinquent_validators,omitempty" yaml:"delinquent_validators,omitempty"`
	EmptyBlocks          *uint64 `json:"empty_blocks,omitempty" yaml:"empty_blocks,omitempty"`
	LargeAccounts        *uint64 `json:"large_accounts,omitempty" yaml:"large_accounts,omitempty"`
}

// Problems lists the diagnostic flags that indicate something is wrong,
// in a stable order.
func (t Troubleshoot) Problems() []string {
	var out []string
	if !t.ConnectionOK {
		out = append(out, "connection failed")
	}
	if t.VersionMismatch {
		out = append(out, "version mismatch")
	}
	if t.HighLatency {
		out = append(out, "high latency")
	}
	if t.NetworkCongestion {
		out = append(out, "network congestion")
	}
	return out
}

// Snapshot is one complete evaluation of a node.
type Snapshot struct {
	Health       NodeHealth         `json:"health" yaml:"health"`
	Performance  NetworkPerformance `json:"performance" yaml:"performance"`
	Troubleshoot Troubleshoot       `json:"troubleshoot" yaml:"troubleshoot"`
	EvaluatedAt  time.Time          `json:"evaluated_at" yaml:"evaluated_at"`
}

func ptr[T any](v T) *T {
	return &v
}
