package core

import "time"

const AVG_COUNT uint8 = 30

// Metrics keeps a rolling frame time average, the frames per second and
// the number of entities skipped by scene assembly.
type Metrics struct {
	frameAVGCounter    uint8
	msTimes            [AVG_COUNT]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64

	totalFrames  uint64
	totalSkipped uint64
	lastSkipped  int
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Update records one frame that took frameElapsed and skipped the given
// number of renderable entities.
func (m *Metrics) Update(frameElapsed time.Duration, skipped int) {
	// Calculate frame ms average
	frameMS := float64(frameElapsed) / float64(time.Millisecond)
	m.msTimes[m.frameAVGCounter] = frameMS
	if m.frameAVGCounter == AVG_COUNT-1 {
		m.msAvg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.msAvg += m.msTimes[i]
		}
		m.msAvg /= float64(AVG_COUNT)
	}
	m.frameAVGCounter++
	m.frameAVGCounter %= AVG_COUNT

	// Calculate frames per second.
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}

	m.frames++
	m.totalFrames++
	m.lastSkipped = skipped
	m.totalSkipped += uint64(skipped)
}

func (m *Metrics) FPS() float64 {
	return m.fps
}

func (m *Metrics) FrameTime() float64 {
	return m.msAvg
}

// Skipped returns the skips of the last frame and the running total.
func (m *Metrics) Skipped() (int, uint64) {
	return m.lastSkipped, m.totalSkipped
}

func (m *Metrics) Frames() uint64 {
	return m.totalFrames
}
