package input

import (
	"reflect"
	"testing"
)

func TestDispatcher(t *testing.T) {
	d := NewDispatcher()

	var got []string
	unsub0 := d.Subscribe(func(key string) { got = append(got, "0:"+key) })
	unsub1 := d.Subscribe(func(key string) { got = append(got, "1:"+key) })
	if n := d.Len(); n != 2 {
		t.Fatalf("Expected 2 subscribers, got %d", n)
	}

	d.Dispatch("w")
	if expected := []string{"0:w", "1:w"}; !reflect.DeepEqual(expected, got) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	unsub0()
	unsub0()
	if n := d.Len(); n != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", n)
	}

	got = nil
	d.Dispatch("a")
	if expected := []string{"1:a"}; !reflect.DeepEqual(expected, got) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	unsub1()
	got = nil
	d.Dispatch("s")
	if len(got) != 0 {
		t.Errorf("Expected no delivery, got %v", got)
	}
}

func TestDispatcher_UnsubscribeInCallback(t *testing.T) {
	d := NewDispatcher()

	var n int
	var unsub func()
	unsub = d.Subscribe(func(string) {
		n++
		unsub()
	})
	d.Dispatch("w")
	d.Dispatch("w")
	if n != 1 {
		t.Errorf("Expected 1 call, got %d", n)
	}
}
