package probe

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/rileyhilliard/solprobe/internal/rpc"
)

var errDown = stderrors.New("connection refused")

// fakeClock only moves when something sleeps or a fake query takes time.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	return nil
}

// fakeSource is an in-memory node. Slot returns successive values from
// slots, repeating the last one once exhausted. With no slots it counts up
// from slotBase so the chain always advances.
type fakeSource struct {
	clock *fakeClock

	healthErr  error
	version    string
	versionErr error

	slots     []uint64
	slotBase  uint64
	slotErr   error
	slotDelay time.Duration
	slotCalls int

	epoch    rpc.EpochInfo
	epochErr error

	nodes    uint64
	nodesErr error

	sample      rpc.PerformanceSample
	samples     []rpc.PerformanceSample // successive samples; overrides sample
	sampleErr   error
	sampleCalls int

	votes    rpc.VoteAccounts
	votesErr error

	blocks      []uint64
	blocksErr   error
	blocksFrom  uint64
	blocksLimit uint64

	accounts    []rpc.AccountBalance
	accountsErr error
}

func healthySource(clock *fakeClock) *fakeSource {
	return &fakeSource{
		clock:    clock,
		version:  "1.14.0",
		slotBase: 1000,
		epoch:    rpc.EpochInfo{Epoch: 27, AbsoluteSlot: 1000},
		nodes:    3,
		sample: rpc.PerformanceSample{
			NumTransactions:  3000,
			SamplePeriodSecs: 2,
			NumSlots:         4,
		},
		votes: rpc.VoteAccounts{
			Current:    []rpc.VoteAccount{{VotePubkey: "a"}, {VotePubkey: "b"}},
			Delinquent: []rpc.VoteAccount{{VotePubkey: "c"}},
		},
		blocks:   []uint64{900, 901, 902, 904},
		accounts: []rpc.AccountBalance{{Address: "x", Lamports: 10}, {Address: "y", Lamports: 5}},
	}
}

func failingSource(clock *fakeClock) *fakeSource {
	return &fakeSource{
		clock:       clock,
		healthErr:   errDown,
		versionErr:  errDown,
		slotErr:     errDown,
		epochErr:    errDown,
		nodesErr:    errDown,
		sampleErr:   errDown,
		votesErr:    errDown,
		blocksErr:   errDown,
		accountsErr: errDown,
	}
}

func (f *fakeSource) Health(ctx context.Context) error { return f.healthErr }

func (f *fakeSource) Version(ctx context.Context) (string, error) {
	return f.version, f.versionErr
}

func (f *fakeSource) Slot(ctx context.Context) (uint64, error) {
	if f.clock != nil && f.slotDelay > 0 {
		f.clock.now = f.clock.now.Add(f.slotDelay)
	}
	if f.slotErr != nil {
		return 0, f.slotErr
	}
	i := f.slotCalls
	f.slotCalls++
	if len(f.slots) == 0 {
		return f.slotBase + uint64(i), nil
	}
	if i >= len(f.slots) {
		i = len(f.slots) - 1
	}
	return f.slots[i], nil
}

func (f *fakeSource) EpochInfo(ctx context.Context) (rpc.EpochInfo, error) {
	return f.epoch, f.epochErr
}

func (f *fakeSource) ClusterNodeCount(ctx context.Context) (uint64, error) {
	return f.nodes, f.nodesErr
}

func (f *fakeSource) RecentPerformanceSample(ctx context.Context) (rpc.PerformanceSample, error) {
	i := f.sampleCalls
	f.sampleCalls++
	if f.sampleErr != nil {
		return rpc.PerformanceSample{}, f.sampleErr
	}
	if len(f.samples) == 0 {
		return f.sample, nil
	}
	if i >= len(f.samples) {
		i = len(f.samples) - 1
	}
	return f.samples[i], nil
}

func (f *fakeSource) VoteAccounts(ctx context.Context) (rpc.VoteAccounts, error) {
	return f.votes, f.votesErr
}

func (f *fakeSource) BlocksWithLimit(ctx context.Context, fromSlot, limit uint64) ([]uint64, error) {
	f.blocksFrom, f.blocksLimit = fromSlot, limit
	return f.blocks, f.blocksErr
}

func (f *fakeSource) LargestAccounts(ctx context.Context) ([]rpc.AccountBalance, error) {
	return f.accounts, f.accountsErr
}
