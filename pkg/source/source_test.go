package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kevin-Rudy/gotrend/pkg/core"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name string
		opt  Option
	}{
		{"零间隔", WithInterval(0)},
		{"间隔过小", WithInterval(time.Millisecond)},
		{"零缓冲区", WithBufferSize(0)},
		{"零步长", WithStep(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.opt(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestValidateTraces(t *testing.T) {
	require.NoError(t, ValidateTraces([]string{"a", "b"}))
	require.Error(t, ValidateTraces(nil))
	require.Error(t, ValidateTraces([]string{"a", ""}))
	require.Error(t, ValidateTraces([]string{"a", "a"}))

	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestWalkIsDeterministic(t *testing.T) {
	cfg := NewConfig(WithSeed(42), WithStep(2))
	a, b := newWalk(cfg, 0), newWalk(cfg, 0)
	other := newWalk(cfg, 1)

	same := true
	for i := 0; i < 100; i++ {
		va, vb := a.next(), b.next()
		require.Equal(t, va, vb)
		if other.next() != va {
			same = false
		}
	}
	require.False(t, same)
}

func TestWalkStepBounded(t *testing.T) {
	cfg := NewConfig(WithStep(0.5))
	w := newWalk(cfg, 3)
	prev := w.value
	for i := 0; i < 1000; i++ {
		v := w.next()
		require.LessOrEqual(t, v-prev, 0.5+1e-9)
		require.GreaterOrEqual(t, v-prev, -0.5-1e-9)
		prev = v
	}
}

func TestWalkerLifecycle(t *testing.T) {
	w, err := NewWithOptions([]string{"cpu", "mem"}, WithInterval(10*time.Millisecond))
	require.NoError(t, err)

	var source core.DataSource = w
	source.Start()
	source.Start()

	seen := map[string]int{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 || seen["cpu"] < 2 || seen["mem"] < 2 {
		select {
		case s := <-source.DataStream():
			seen[s.Trace]++
		case <-timeout:
			t.Fatalf("timed out waiting for samples, got %v", seen)
		}
	}

	source.Stop()
	source.Stop()

	// 停止后通道被关闭
	for range source.DataStream() {
	}
}
