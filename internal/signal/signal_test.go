package signal

import "testing"

func TestEmitDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEmitter()
	var order []string
	bus.Subscribe(CommandStarted, func(args ...any) {
		order = append(order, "first")
	})
	bus.Subscribe(CommandStarted, func(args ...any) {
		order = append(order, "second")
	})

	bus.Emit(CommandStarted, "whoami")

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected delivery order: %+v", order)
	}
}

func TestEmitPassesArguments(t *testing.T) {
	bus := NewEmitter()
	var got []any
	bus.Subscribe(CommandFinished, func(args ...any) {
		got = args
	})

	bus.Emit(CommandFinished, "login", 42)

	if len(got) != 2 || got[0] != "login" || got[1] != 42 {
		t.Fatalf("unexpected args: %+v", got)
	}
}

func TestEmitWithoutListenersIsNoop(t *testing.T) {
	bus := NewEmitter()
	bus.Emit(Connected)
}

func TestNilEmitterIsSafe(t *testing.T) {
	var bus *Emitter
	bus.Emit(Connected)
}

func TestSubscribeNilListenerIgnored(t *testing.T) {
	bus := NewEmitter()
	bus.Subscribe(Connected, nil)
	bus.Emit(Connected)
}
