package backend

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/abawan7/quantum-entanglement-and-decoherence-simulator/internal/sim"
)

// Comparison holds the outcome mappings of a simulated leg and a remote leg
// executed over the same circuit description. When the remote leg fails
// after retries, Remote is an empty mapping and RemoteGap records why, so
// the comparison can still be rendered with the gap noted.
type Comparison struct {
	Simulated sim.Counts
	Remote    sim.Counts
	RemoteGap error
}

// Compare runs the request on both sessions as independent parallel tasks.
// Each leg owns its state and result; nothing is shared. A simulated-leg
// failure aborts the comparison, a remote-leg failure only leaves a gap.
func Compare(ctx context.Context, simulated, remote *Session, req *Request) (*Comparison, error) {
	cmp := &Comparison{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := simulated.Submit(ctx, req)
		if err != nil {
			return err
		}
		cmp.Simulated = counts
		return nil
	})

	if remote != nil {
		// The remote leg never fails the group: exhausted retries become a
		// recorded gap instead.
		remoteCtx := ctx
		g.Go(func() error {
			counts, err := remote.Submit(remoteCtx, req)
			if err != nil {
				cmp.Remote = sim.Counts{}
				cmp.RemoteGap = err
				return nil
			}
			cmp.Remote = counts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cmp, nil
}
