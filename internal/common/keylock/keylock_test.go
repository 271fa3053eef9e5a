package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockSerializesSameKey(t *testing.T) {
	l := New()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("guild", "member")
			defer unlock()
			v := counter
			v++
			counter = v
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockIndependentKeys(t *testing.T) {
	l := New()

	unlockA := l.Lock("guild", "a")
	done := make(chan struct{})
	go func() {
		unlockB := l.Lock("guild", "b")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

func TestKey(t *testing.T) {
	assert.Equal(t, "g/m", Key("g", "m"))
	assert.Equal(t, "solo", Key("solo"))
}
