package capability

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type greeter interface {
	Greet() string
}

type english struct{ name string }

func (e *english) Greet() string { return "hello" }

var greeterKey = NewKey[greeter]("greeter")

func TestResolve_Unbound(t *testing.T) {
	c := NewContainer()

	_, err := Resolve(c, greeterKey)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Contains(t, err.Error(), "greeter")
}

func TestResolve_UnboundRunsNoFactory(t *testing.T) {
	c := NewContainer()
	other := NewKey[greeter]("other")
	ran := false
	Bind(c, other, func() (greeter, error) {
		ran = true
		return &english{}, nil
	})

	_, err := Resolve(c, greeterKey)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.False(t, ran)
}

func TestMustResolve_PanicsWhenUnbound(t *testing.T) {
	c := NewContainer()
	assert.Panics(t, func() {
		MustResolve(c, greeterKey)
	})
}

func TestResolve_LazySingleton(t *testing.T) {
	c := NewContainer()
	constructed := 0
	Bind(c, greeterKey, func() (greeter, error) {
		constructed++
		return &english{}, nil
	})

	assert.Equal(t, 0, constructed, "factory must not run at bind time")

	first, err := Resolve(c, greeterKey)
	require.NoError(t, err)
	second, err := Resolve(c, greeterKey)
	require.NoError(t, err)

	assert.Equal(t, 1, constructed)
	assert.Same(t, first, second)
	assert.Equal(t, "hello", first.Greet())
}

func TestResolve_ConcurrentFirstUse(t *testing.T) {
	c := NewContainer()
	var mu sync.Mutex
	constructed := 0
	Bind(c, greeterKey, func() (greeter, error) {
		mu.Lock()
		constructed++
		mu.Unlock()
		return &english{}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = Resolve(c, greeterKey)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, constructed)
}

func TestResolve_FactoryError(t *testing.T) {
	c := NewContainer()
	boom := errors.New("no steam")
	Bind(c, greeterKey, func() (greeter, error) {
		return nil, boom
	})

	_, err := Resolve(c, greeterKey)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestBind_Rebind(t *testing.T) {
	c := NewContainer()
	a := &english{name: "a"}
	b := &english{name: "b"}
	BindValue[greeter](c, greeterKey, a)

	got, err := Resolve(c, greeterKey)
	require.NoError(t, err)
	assert.Same(t, a, got)

	BindValue[greeter](c, greeterKey, b)
	got, err = Resolve(c, greeterKey)
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.True(t, IsBound(c, greeterKey))
}
