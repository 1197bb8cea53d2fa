package creditline

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

// TestLiveLine runs read-only calls against a real deployment. It is
// skipped unless testdata/.env.local provides NETWORK, CONTRACT_ADDR,
// RPC_URL and PRIVATE_KEY.
func TestLiveLine(t *testing.T) {
	if err := godotenv.Load("testdata/.env.local"); err != nil {
		t.Skip("no live environment configured")
	}

	network := os.Getenv("NETWORK")
	contractAddr := os.Getenv("CONTRACT_ADDR")
	rpcURL := os.Getenv("RPC_URL")
	key := os.Getenv("PRIVATE_KEY")
	if network == "" || contractAddr == "" || key == "" {
		t.Skip("incomplete live environment")
	}

	line, err := New(network, key, contractAddr, rpcURL)
	if err != nil {
		t.Fatal(err)
	}

	status, err := line.Status()
	assert.NoError(t, err)
	t.Logf("line status: %s", status)

	ids, err := line.OpenPositionIDs()
	assert.NoError(t, err)
	t.Logf("open positions: %v", ids)

	counts, err := line.Counts()
	assert.NoError(t, err)
	assert.Equal(t, counts.Open.Int64(), int64(len(ids)))
}
