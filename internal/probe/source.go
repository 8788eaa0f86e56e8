// Package probe turns point-in-time node queries into health, performance and
// troubleshooting snapshots.
//
// Every query may fail on its own. A failure only makes the matching field of
// the snapshot absent; evaluation itself never fails.
package probe

import (
	"context"

	"github.com/rileyhilliard/solprobe/internal/rpc"
)

// Source is the set of node queries the evaluator depends on.
// *rpc.Client satisfies it; tests use an in-memory fake.
type Source interface {
	Health(ctx context.Context) error
	Version(ctx context.Context) (string, error)
	Slot(ctx context.Context) (uint64, error)
	EpochInfo(ctx context.Context) (rpc.EpochInfo, error)
	ClusterNodeCount(ctx context.Context) (uint64, error)
	RecentPerformanceSample(ctx context.Context) (rpc.PerformanceSample, error)
	VoteAccounts(ctx context.Context) (rpc.VoteAccounts, error)
	BlocksWithLimit(ctx context.Context, fromSlot, limit uint64) ([]uint64, error)
	LargestAccounts(ctx context.Context) ([]rpc.AccountBalance, error)
}

var _ Source = (*rpc.Client)(nil)
