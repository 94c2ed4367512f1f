package testkit

import "testing"

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("yep") })
}

func TestMustNotPanic(t *testing.T) {
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	MustContain(t, "hello world", "world")
}

func TestEq(t *testing.T) {
	Eq(t, 3, 3)
	Eq(t, "a", "a")
}
