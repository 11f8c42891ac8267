/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package inventory

import (
	"context"
	stderrors "errors"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifiers(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{"sorted", []string{"node/worker-2", "node/control-plane", "node/worker-1"}, []string{"control-plane", "worker-1", "worker-2"}},
		{"group qualified kind", []string{"deployment.apps/web"}, []string{"web"}},
		{"strips through first slash only", []string{"a/b/c"}, []string{"b/c"}},
		{"blank lines", []string{"", "  ", "namespace/default", ""}, []string{"default"}},
		{"no slash", []string{"worker-1", "node/worker-2"}, []string{"worker-2"}},
		{"no name", []string{"node/", "node/a"}, []string{"a"}},
		{"surrounding whitespace", []string{"  node/a\r"}, []string{"a"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIdentifiers(tt.lines))
		})
	}
}

func TestCollect_PreservesOrder(t *testing.T) {
	ids := make([]string, 20)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}

	fetch := func(_ context.Context, id string) (string, error) {
		n, _ := strconv.Atoi(id)
		// Later ids finish first.
		time.Sleep(time.Duration(20-n) * time.Millisecond)
		return "raw-" + id, nil
	}
	build := func(id, raw string) (string, bool) {
		return id + ":" + raw, true
	}

	for _, parallelism := range []int{0, 1, 4, 32} {
		t.Run(strconv.Itoa(parallelism), func(t *testing.T) {
			got, err := Collect(context.Background(), ids, fetch, build, parallelism)
			require.NoError(t, err)
			require.Len(t, got, len(ids))
			for i, v := range got {
				assert.Equal(t, ids[i]+":raw-"+ids[i], v)
			}
		})
	}
}

func TestCollect_SkipsRejected(t *testing.T) {
	ids := []string{"a", "skip-b", "c", "skip-d"}
	fetch := func(_ context.Context, id string) (string, error) { return id, nil }
	build := func(id, _ string) (string, bool) { return id, !strings.HasPrefix(id, "skip-") }

	got, err := Collect(context.Background(), ids, fetch, build, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestCollect_RespectsParallelism(t *testing.T) {
	var running, peak atomic.Int32
	fetch := func(_ context.Context, id string) (string, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return id, nil
	}
	build := func(id, _ string) (string, bool) { return id, true }

	ids := make([]string, 16)
	for i := range ids {
		ids[i] = strconv.Itoa(i)
	}

	_, err := Collect(context.Background(), ids, fetch, build, 3)
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestCollect_FetchErrorAborts(t *testing.T) {
	boom := stderrors.New("boom")
	var fetched atomic.Int32

	fetch := func(ctx context.Context, id string) (string, error) {
		fetched.Add(1)
		if id == "b" {
			return "", boom
		}
		return id, nil
	}
	build := func(id, _ string) (string, bool) { return id, true }

	got, err := Collect(context.Background(), []string{"a", "b", "c", "d"}, fetch, build, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"b"`)
	assert.Nil(t, got)
	// Serial collection stops at the failing identifier.
	assert.Equal(t, int32(2), fetched.Load())
}

func TestCollect_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	fetch := func(context.Context, string) (string, error) {
		called = true
		return "", nil
	}
	build := func(id, _ string) (string, bool) { return id, true }

	_, err := Collect(ctx, []string{"a"}, fetch, build, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestCollect_Empty(t *testing.T) {
	got, err := Collect(context.Background(), nil,
		func(context.Context, string) (string, error) { return "", nil },
		func(id, _ string) (int, bool) { return 0, true }, 4)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
