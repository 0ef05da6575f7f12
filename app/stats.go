package app

import (
	"time"

	"go.uber.org/zap"

	"tankdemo/internal/kinematics"
)

// frameStats tracks the frame rate shown in the HUD and the periodic
// debug report.
type frameStats struct {
	frames uint64
	fps    float64

	// One-second window for fps.
	windowStart  uint64
	windowFrames int

	every       uint64
	lastReport  uint64
	reportCount int
	reportDT    float64
}

func newFrameStats(interval time.Duration) frameStats {
	return frameStats{every: uint64(interval / time.Millisecond)}
}

func (s *frameStats) record(now uint64, dt float64) {
	s.frames++
	if s.frames == 1 {
		s.windowStart = now
		s.lastReport = now
		return
	}
	s.windowFrames++
	s.reportCount++
	s.reportDT += dt

	if elapsed := now - s.windowStart; now > s.windowStart && elapsed >= 1000 {
		s.fps = float64(s.windowFrames) * 1000 / float64(elapsed)
		s.windowStart = now
		s.windowFrames = 0
	}
}

// report logs at debug level once per interval. A zero interval disables it.
func (s *frameStats) report(log *zap.Logger, now uint64, st kinematics.State) {
	if s.every == 0 || now < s.lastReport || now-s.lastReport < s.every {
		return
	}
	var mean float64
	if s.reportCount > 0 {
		mean = s.reportDT / float64(s.reportCount)
	}
	log.Debug("frame stats",
		zap.Uint64("frames", s.frames),
		zap.Float64("fps", s.fps),
		zap.Float64("mean_dt", mean),
		zap.Float64("x", st.Position.X()),
		zap.Float64("y", st.Position.Y()),
		zap.Float64("rotation_z", st.RotationZ),
	)
	s.lastReport = now
	s.reportCount = 0
	s.reportDT = 0
}
