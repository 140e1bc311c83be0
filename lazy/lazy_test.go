package lazy

import (
	"errors"
	"testing"

	"github.com/funvibe/persist/errs"
	"github.com/funvibe/persist/ordmap"
)

func TestCellEvaluatesOnce(t *testing.T) {
	calls := 0
	c := New(func() (any, error) {
		calls++
		return calls, nil
	})
	v1, err := c.Get()
	if err != nil || v1.(int) != 1 {
		t.Fatalf("first Get() = %v, %v; want 1", v1, err)
	}
	v2, err := c.Get()
	if err != nil || v2.(int) != 1 {
		t.Fatalf("second Get() = %v, %v; want 1 (memoized)", v2, err)
	}
	if calls != 1 {
		t.Fatalf("thunk ran %d times, want 1", calls)
	}
	if !c.IsReady() {
		t.Fatalf("cell should report ready after a successful Get")
	}
}

func TestLazyListOnceOnly(t *testing.T) {
	counter := 0
	bump := func(n int) func() (any, error) {
		return func() (any, error) {
			counter += n
			return counter, nil
		}
	}
	l := Of(New(bump(1)), New(bump(10)))

	v0, err := l.Get(0)
	if err != nil || v0.(int) != 1 || counter != 1 {
		t.Fatalf("l.Get(0) = %v, %v, counter=%d; want 1, nil, 1", v0, err, counter)
	}
	v0again, err := l.Get(0)
	if err != nil || v0again.(int) != 1 || counter != 1 {
		t.Fatalf("l.Get(0) again = %v, %v, counter=%d; want 1, nil, 1", v0again, err, counter)
	}
	v1, err := l.Get(1)
	if err != nil || v1.(int) != 11 || counter != 11 {
		t.Fatalf("l.Get(1) = %v, %v, counter=%d; want 11, nil, 11", v1, err, counter)
	}

	var seen []any
	for _, v := range l.Iter() {
		seen = append(seen, v)
	}
	if len(seen) != 2 || seen[0].(int) != 1 || seen[1].(int) != 11 {
		t.Fatalf("Iter produced %v, want [1 11]", seen)
	}
	if counter != 11 {
		t.Fatalf("counter drifted after Iter: %d, want 11", counter)
	}
}

func TestCellFailureLeavesPendingAndRetries(t *testing.T) {
	attempts := 0
	c := New(func() (any, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("not yet")
		}
		return "done", nil
	})
	_, err1 := c.Get()
	if err1 == nil {
		t.Fatalf("first Get should fail")
	}
	if !errors.Is(err1, errs.ErrEvaluationFailed) {
		t.Fatalf("failure should be an ErrEvaluationFailed")
	}
	if _, err := c.Get(); err == nil {
		t.Fatalf("second Get should still fail")
	}
	v, err := c.Get()
	if err != nil || v.(string) != "done" {
		t.Fatalf("third Get() = %v, %v; want done", v, err)
	}
	if attempts != 3 {
		t.Fatalf("thunk ran %d times, want 3 retries-until-success", attempts)
	}
}

func TestCycleDetectedOnSameGoroutine(t *testing.T) {
	var self *Cell
	self = New(func() (any, error) {
		return self.Get()
	})
	_, err := self.Get()
	if err == nil {
		t.Fatalf("a cell whose thunk calls itself should fail, not deadlock")
	}
	if !errors.Is(err, errs.ErrCycleDetected) {
		t.Fatalf("self-referential evaluation should report ErrCycleDetected, got %v", err)
	}
}

func TestReifyNonCellIsIdentity(t *testing.T) {
	v, err := Reify(42)
	if err != nil || v.(int) != 42 {
		t.Fatalf("Reify(42) = %v, %v; want 42, nil", v, err)
	}
}

func TestLazyMapReifiesValues(t *testing.T) {
	calls := 0
	m := OfPairs(ordmap.Pair{Key: "a", Value: New(func() (any, error) {
		calls++
		return 7, nil
	})})
	v, err := m.Get("a")
	if err != nil || v.(int) != 7 {
		t.Fatalf("Get(a) = %v, %v; want 7", v, err)
	}
	raw, err := m.GetRaw("a")
	if err != nil {
		t.Fatalf("GetRaw: %v", err)
	}
	if !IsCell(raw) {
		t.Fatalf("GetRaw should return the unreified cell")
	}
	if _, err := m.Get("a"); err != nil || calls != 1 {
		t.Fatalf("cell should evaluate exactly once across Get calls, ran %d times", calls)
	}
}

func TestLazyMapTransientPopReifies(t *testing.T) {
	tr := OfPairs(ordmap.Pair{Key: "a", Value: New(func() (any, error) { return 99, nil })}).Transient()
	v, err := tr.Pop("a")
	if err != nil || v.(int) != 99 {
		t.Fatalf("Pop(a) = %v, %v; want 99", v, err)
	}
	if tr.Contains("a") {
		t.Fatalf("Pop should have removed the key")
	}
}
