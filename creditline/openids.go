package creditline

import (
	"math/big"

	"golang.org/x/sync/errgroup"
)

// maxIDFanOut caps concurrent ids(i) reads so a line with many positions
// does not flood the RPC endpoint.
const maxIDFanOut = 8

// OpenPositionIDs resolves the identifiers of all open positions: one read
// for the open count, then one ids(i) read per index in [0, count). The
// per-index reads are independent and fan out concurrently, but the result
// preserves index order regardless of completion order. A zero count
// yields an empty slice, not an error.
func (l *SecuredLine) OpenPositionIDs() ([]*big.Int, error) {
	counts, err := l.Counts()
	if err != nil {
		return nil, err
	}

	open := counts.Open.Int64()
	if open == 0 {
		return []*big.Int{}, nil
	}

	ids := make([]*big.Int, open)

	var g errgroup.Group
	g.SetLimit(maxIDFanOut)
	for i := int64(0); i < open; i++ {
		g.Go(func() error {
			result, err := l.cc.Call(nil, "ids", big.NewInt(i))
			if err != nil {
				return l.queryError("ids", err)
			}
			ids[i] = result[0].(*big.Int)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ids, nil
}
