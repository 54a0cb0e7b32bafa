package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_GetSet(t *testing.T) {
	v := New(1)
	assert.Equal(t, 1, v.Get())

	v.Set(2)
	assert.Equal(t, 2, v.Get())
}

func TestValue_Subscribe(t *testing.T) {
	v := New("a")

	var got []string
	cancel := v.Subscribe(func(s string) { got = append(got, s) })

	v.Set("b")
	v.Set("c")
	cancel()
	v.Set("d")
	cancel()

	assert.Equal(t, []string{"b", "c"}, got)
	assert.Equal(t, "d", v.Get())
}

func TestValue_SubscriberSeesPublishedValue(t *testing.T) {
	v := New(0)
	v.Subscribe(func(n int) {
		assert.Equal(t, n, v.Get())
	})
	v.Set(42)
}

func TestValue_ConcurrentReads(t *testing.T) {
	type pair struct{ a, b int }
	v := New(pair{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 1000; i++ {
			v.Set(pair{a: i, b: i})
		}
	}()

	for i := 0; i < 1000; i++ {
		p := v.Get()
		assert.Equal(t, p.a, p.b)
	}
	wg.Wait()
}
