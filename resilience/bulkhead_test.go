package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestBulkheadLimitsConcurrency(t *testing.T) {
	b := NewBulkhead(3)
	var inFlight, peak int32
	var wg sync.WaitGroup

	release := make(chan struct{})
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.Execute(context.Background(), func() error {
				n := atomic.AddInt32(&inFlight, 1)
				for {
					p := atomic.LoadInt32(&peak)
					if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
						break
					}
				}
				<-release
				atomic.AddInt32(&inFlight, -1)
				return nil
			})
		}()
	}

	close(release)
	wg.Wait()

	if peak > 3 {
		t.Errorf("peak concurrency %d exceeded limit 3", peak)
	}
}

func TestBulkheadContextCancel(t *testing.T) {
	b := NewBulkhead(1)
	hold := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = b.Execute(context.Background(), func() error {
			close(done)
			<-hold
			return nil
		})
	}()
	<-done

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Execute(ctx, func() error { return nil })
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	close(hold)
}

func TestExecuteWithResult(t *testing.T) {
	b := NewBulkhead(2)
	got, err := ExecuteWithResult(b, context.Background(), func() (int, error) {
		return 7, nil
	})
	if err != nil || got != 7 {
		t.Errorf("got (%d, %v)", got, err)
	}
	if b.InUse() != 0 {
		t.Errorf("slot leaked: %d in use", b.InUse())
	}
	if b.MaxConcurrent() != 2 {
		t.Errorf("unexpected capacity %d", b.MaxConcurrent())
	}
}
