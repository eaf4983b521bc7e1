package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventSubscribeRaise(t *testing.T) {
	var ev Event[PropertyChangedEventArgs]
	var got []string

	unsubA := ev.Subscribe(func(_ any, a PropertyChangedEventArgs) { got = append(got, "a:"+a.PropertyName) })
	ev.Subscribe(func(_ any, a PropertyChangedEventArgs) { got = append(got, "b:"+a.PropertyName) })
	assert.Equal(t, 2, ev.Len())

	ev.Raise(nil, PropertyChangedEventArgs{PropertyName: "Age"})
	assert.Equal(t, []string{"a:Age", "b:Age"}, got)

	unsubA()
	unsubA()
	got = nil
	ev.Raise(nil, PropertyChangedEventArgs{PropertyName: "Name"})
	assert.Equal(t, []string{"b:Name"}, got)
	assert.Equal(t, 1, ev.Len())
}

func TestEventUnsubscribeDuringRaise(t *testing.T) {
	var ev Event[struct{}]
	calls := 0
	var unsub func()
	unsub = ev.Subscribe(func(any, struct{}) {
		calls++
		unsub()
	})
	ev.Subscribe(func(any, struct{}) { calls++ })

	ev.Raise(nil, struct{}{})
	assert.Equal(t, 2, calls)
	ev.Raise(nil, struct{}{})
	assert.Equal(t, 3, calls)
}

func TestPendingNames(t *testing.T) {
	var p PendingNames
	assert.True(t, p.Add("B"))
	assert.True(t, p.Add("A"))
	assert.False(t, p.Add("B"))
	assert.Equal(t, 2, p.Len())

	assert.Equal(t, []string{"B", "A"}, p.Drain())
	assert.Equal(t, 0, p.Len())
	assert.Nil(t, p.Drain())
	assert.True(t, p.Add("B"))
}

func TestEqual(t *testing.T) {
	utc := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	local := utc.In(time.FixedZone("X", 3600))

	tests := []struct {
		name string
		eq   bool
		got  bool
	}{
		{"strings", true, Equal("a", "a")},
		{"strings differ", false, Equal("a", "b")},
		{"slices", true, Equal([]int{1, 2}, []int{1, 2})},
		{"nil slices", true, Equal[[]int](nil, nil)},
		{"time uses Equal method", true, Equal(utc, local)},
		{"maps differ", false, Equal(map[string]int{"a": 1}, map[string]int{"a": 2})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eq, tt.got)
		})
	}
}

func TestPointeeEqual(t *testing.T) {
	a, b, c := 5, 5, 6
	assert.True(t, PointeeEqual(&a, &b))
	assert.False(t, PointeeEqual(&a, &c))
	assert.True(t, PointeeEqual[int](nil, nil))
	assert.False(t, PointeeEqual(&a, nil))
	assert.False(t, PointeeEqual(nil, &a))
}

func TestRelayCommand(t *testing.T) {
	enabled := false
	ran := 0
	cmd := NewRelayCommand(func() { ran++ }, func() bool { return enabled })

	raised := 0
	cmd.CanExecuteChanged.Subscribe(func(any, struct{}) { raised++ })

	cmd.Execute()
	assert.Equal(t, 0, ran)

	enabled = true
	cmd.NotifyCanExecuteChanged()
	cmd.Execute()
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, raised)

	var _ Command = cmd
}

func TestExtensionState(t *testing.T) {
	var x Extension
	s := x.NotifyState()
	assert.Same(t, s, x.NotifyState())
	assert.False(t, s.Suppressed())
	s.Deferred++
	assert.True(t, s.Suppressed())
}
