package explorer

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/addrscope/pkg/errors"
	"github.com/matzehuels/addrscope/pkg/graph"
	"github.com/matzehuels/addrscope/pkg/layout"
	"github.com/matzehuels/addrscope/pkg/reveal"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), reveal.Default(), Options{Logger: log.New(io.Discard)})
	require.NoError(t, err)
	return s
}

func TestSessionBootstrap(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, 2, s.Graph().Len())
	assert.Equal(t, 1, s.Graph().LinkCount())
	assert.Equal(t, 1, s.Step())
	for _, n := range s.Graph().Nodes() {
		assert.True(t, n.HasPosition())
	}
}

func TestSessionRejectsBadLayout(t *testing.T) {
	cfg := layout.DefaultConfig()
	cfg.AlphaDecay = 2
	_, err := NewSession(context.Background(), reveal.Default(), Options{Layout: cfg, Logger: log.New(io.Discard)})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

type brokenBootstrap struct{ reveal.Provider }

func (brokenBootstrap) Bootstrap(context.Context) (graph.Subgraph, error) {
	return graph.Subgraph{}, errors.New(errors.ErrCodeNetwork, "down")
}

func TestSessionBootstrapError(t *testing.T) {
	_, err := NewSession(context.Background(), brokenBootstrap{reveal.Default()}, Options{Logger: log.New(io.Discard)})
	assert.True(t, errors.Is(err, errors.ErrCodeNetwork))
}

func TestSessionClickReheatsLayout(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)
	s.Settle(10_000)
	require.True(t, s.Simulation().Settled())

	out, err := s.Click(ctx, reveal.AddrMEXC)
	require.NoError(t, err)
	assert.True(t, out.Revealed)
	assert.False(t, s.Simulation().Settled())
	assert.Equal(t, 0.8, s.Simulation().Alpha())

	for _, n := range s.Graph().Nodes() {
		assert.True(t, n.HasPosition(), "%s placed after reveal", n.Address)
	}

	s.Settle(10_000)
	v := s.View()
	assert.Equal(t, 2, v.Step)
	assert.False(t, v.Done)
	assert.Len(t, v.Graph.Nodes, 4)
	assert.Len(t, v.Frame.Links, 3)
}

func TestSessionFullWalk(t *testing.T) {
	ctx := context.Background()
	s := newSession(t)

	for _, addr := range []string{reveal.AddrMEXC, reveal.AddrUnstETH, reveal.AddrERC1967Proxy} {
		_, err := s.Click(ctx, addr)
		require.NoError(t, err)
		s.Settle(50)
	}
	v := s.View()
	assert.True(t, v.Done)
	assert.Len(t, v.Frame.Nodes, 5)
	assert.Len(t, v.Frame.Links, 5)
}

func TestSessionDrag(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.DragStart(reveal.AddrMEXC))
	require.NoError(t, s.DragMove(reveal.AddrMEXC, 10, 20))
	s.Settle(5)
	require.NoError(t, s.DragEnd(reveal.AddrMEXC))

	n := s.Graph().Node(reveal.AddrMEXC)
	assert.False(t, n.Pinned())
	assert.Equal(t, 10.0, n.X)
	assert.Equal(t, 20.0, n.Y)
}

func startLoop(t *testing.T, s *Session) (*Loop, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop(s, time.Millisecond)
	go func() { _ = l.Run(ctx) }()
	t.Cleanup(cancel)
	return l, cancel
}

func TestLoopTicksUntilSettled(t *testing.T) {
	s := newSession(t)
	l, _ := startLoop(t, s)

	require.Eventually(t, func() bool {
		var settled bool
		_ = l.Do(context.Background(), func(s *Session) error {
			settled = s.Simulation().Settled()
			return nil
		})
		return settled
	}, 5*time.Second, 5*time.Millisecond)
}

func TestLoopDoRunsCommands(t *testing.T) {
	s := newSession(t)
	l, _ := startLoop(t, s)
	ctx := context.Background()

	err := l.Do(ctx, func(s *Session) error {
		_, err := s.Click(ctx, reveal.AddrMEXC)
		return err
	})
	require.NoError(t, err)

	var frame layout.Frame
	require.NoError(t, l.Do(ctx, func(s *Session) error {
		frame = s.Frame()
		return nil
	}))
	assert.Len(t, frame.Nodes, 4)
	assert.Len(t, frame.Links, 3)

	err = l.Do(ctx, func(s *Session) error { return s.DragStart("0xmissing") })
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound))
}

func TestLoopConcurrentCommands(t *testing.T) {
	s := newSession(t)
	l, _ := startLoop(t, s)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, addr := range []string{reveal.AddrMEXC, reveal.AddrUnstETH} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(ctx, func(s *Session) error {
				_, err := s.Click(ctx, addr)
				return err
			})
		}()
	}
	wg.Wait()

	require.NoError(t, l.Do(ctx, func(s *Session) error {
		assert.Equal(t, 3, s.Step())
		assert.Equal(t, 5, s.Graph().Len())
		// Link count depends on which click won the race to step 2.
		assert.GreaterOrEqual(t, s.Graph().LinkCount(), 4)
		return s.Graph().Validate()
	}))
}

func TestLoopClose(t *testing.T) {
	s := newSession(t)
	l, _ := startLoop(t, s)

	l.Close()
	l.Close()
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	assert.ErrorIs(t, l.Do(context.Background(), func(*Session) error { return nil }), ErrClosed)
	assert.ErrorIs(t, l.Run(context.Background()), ErrRunning)
}

func TestLoopContextCancel(t *testing.T) {
	s := newSession(t)
	l, cancel := startLoop(t, s)

	cancel()
	select {
	case <-l.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	assert.ErrorIs(t, l.Do(context.Background(), func(*Session) error { return nil }), ErrClosed)
}

func TestLoopDoHonorsContext(t *testing.T) {
	s := newSession(t)
	l := NewLoop(s, time.Millisecond) // never started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := l.Do(ctx, func(*Session) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
