package clock

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNowMicro_Monotonic(t *testing.T) {
	prev := NowMicro()
	for i := 0; i < 1000; i++ {
		cur := NowMicro()
		require.Greater(t, cur, prev, "iteration %d must strictly increase", i)
		prev = cur
	}
}
