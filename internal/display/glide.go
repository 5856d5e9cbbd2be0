package display

import (
	"context"
	"time"
)

// GlideSteps returns how many intermediate positions a pointer move takes
// at speed 1 (slowest) to 100 (instant)
func GlideSteps(speed int) int {
	if speed >= 100 || speed <= 0 {
		return 0
	}
	return (100 - speed) / 5
}

// Glide moves the pointer from (fromX, fromY) towards (toX, toY) through
// intermediate positions, leaving the final warp to the caller
func Glide(ctx context.Context, fromX, fromY, toX, toY, speed int, warp func(x, y int) error) error {
	steps := GlideSteps(speed)
	for i := 1; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := warp(fromX+(toX-fromX)*i/steps, fromY+(toY-fromY)*i/steps); err != nil {
			return err
		}
		time.Sleep(4 * time.Millisecond)
	}
	return nil
}
