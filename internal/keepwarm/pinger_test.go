package keepwarm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialplan/dialplan/internal/keepwarm"
)

func TestNew_RejectsOutOfRangeInterval(t *testing.T) {
	for _, interval := range []int{0, -1, 61} {
		_, err := keepwarm.New("https://ivr.example.com/ping", interval, nil)
		require.Error(t, err, "interval %d", interval)
		assert.Contains(t, err.Error(), "between 1 and 60")
	}
}

func TestNew_AcceptsValidInterval(t *testing.T) {
	p, err := keepwarm.New("https://ivr.example.com/ping", 10, nil)
	require.NoError(t, err)
	require.NotNil(t, p)

	p.Start()
	p.Stop()
}
