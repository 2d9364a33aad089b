package animation_test

import (
	"fmt"
	"time"

	"github.com/go-drift/animatronic/pkg/animation"
	animtest "github.com/go-drift/animatronic/pkg/testing"
)

// This example shows how to create a custom easing curve.
func ExampleCubicBezier() {
	// Create a custom curve matching CSS cubic-bezier(0.4, 0.0, 0.2, 1.0)
	customEase := animation.CubicBezier(0.4, 0.0, 0.2, 1.0)

	// The curve transforms linear progress to eased progress
	fmt.Printf("Progress 0.0 -> %.2f\n", customEase(0.0))
	fmt.Printf("Progress 0.5 -> %.2f\n", customEase(0.5))
	fmt.Printf("Progress 1.0 -> %.2f\n", customEase(1.0))

	// Output:
	// Progress 0.0 -> 0.00
	// Progress 0.5 -> 0.78
	// Progress 1.0 -> 1.00
}

// This example shows how to resolve an easing by name.
func ExampleParseCurve() {
	curve, err := animation.ParseCurve("linear")
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.2f\n", curve(0.25))

	// Output:
	// 0.25
}

// This example shows how a host drives a FrameLoop from its own frame
// callback.
func ExampleFrameLoop() {
	clock := animtest.NewFakeClock()
	loop := animation.NewFrameLoop(clock)

	loop.AfterFunc(20*time.Millisecond, func() { fmt.Println("timer") })
	loop.RequestFrame(func(time.Time) { fmt.Println("frame") })

	loop.Pump()
	clock.Advance(20 * time.Millisecond)
	loop.Pump()

	// Output:
	// frame
	// timer
}
