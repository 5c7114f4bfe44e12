package diagnostics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollectorCountsBySeverity(t *testing.T) {
	c := &Collector{}
	c.Emit(Diagnostic{Severity: SeverityWarning, Message: "unresolved link"})
	c.Emit(Diagnostic{Severity: SeverityError, Message: "decode failed", Source: "a.json"})
	c.Emit(Diagnostic{Severity: SeverityWarning, Message: "unresolved link"})

	require.Len(t, c.All(), 3)
	require.Equal(t, 2, c.Count(SeverityWarning))
	require.Equal(t, 1, c.Count(SeverityError))
	require.Equal(t, 0, c.Count(SeverityInfo))
}

func TestCollectorConcurrentEmit(t *testing.T) {
	c := &Collector{}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Emit(Diagnostic{Severity: SeverityWarning, Message: "w"})
		}()
	}
	wg.Wait()
	require.Equal(t, 32, c.Count(SeverityWarning))
}

func TestMultiFansOut(t *testing.T) {
	a := &Collector{}
	b := &Collector{}
	m := Multi{a, b, Discard{}}
	m.Emit(Diagnostic{Severity: SeverityInfo, Message: "hello"})
	require.Len(t, a.All(), 1)
	require.Len(t, b.All(), 1)
}
