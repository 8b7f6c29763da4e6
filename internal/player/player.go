// Package player plays synthesized MP3 clips through the system audio device.
package player

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	speakerBufferLen = time.Second / 10
	resampleQuality  = 4
)

var ErrNoAudio = errors.New("clip has no audio data")

type clip struct {
	ctrl *beep.Ctrl
	done chan struct{}
	once sync.Once
}

func (c *clip) finish() {
	c.once.Do(func() { close(c.done) })
}

// Speaker plays one clip at a time. Starting a clip replaces whatever was
// playing; the returned channel closes when the clip ends or is stopped.
//
// The speaker device is initialized from the first clip's sample rate; later
// clips with a different rate are resampled instead of re-initializing, which
// the audio backend does not support cleanly.
type Speaker struct {
	mu          sync.Mutex
	initialized bool
	sampleRate  beep.SampleRate
	current     *clip
}

func NewSpeaker() *Speaker {
	return &Speaker{}
}

func (s *Speaker) Start(audio []byte) (<-chan struct{}, error) {
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(audio)))
	if err != nil {
		return nil, fmt.Errorf("decode mp3: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(speakerBufferLen)); err != nil {
			return nil, fmt.Errorf("open audio device: %w", err)
		}
		s.sampleRate = format.SampleRate
		s.initialized = true
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		stream = beep.Resample(resampleQuality, format.SampleRate, s.sampleRate, streamer)
	}

	if s.current != nil {
		s.current.finish()
	}
	c := &clip{ctrl: &beep.Ctrl{Streamer: stream}, done: make(chan struct{})}
	s.current = c

	speaker.Clear()
	speaker.Play(beep.Seq(c.ctrl, beep.Callback(c.finish)))
	return c.done, nil
}

func (s *Speaker) Pause()  { s.setPaused(true) }
func (s *Speaker) Resume() { s.setPaused(false) }

func (s *Speaker) setPaused(paused bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	speaker.Lock()
	s.current.ctrl.Paused = paused
	speaker.Unlock()
}

func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	speaker.Clear()
	s.current.finish()
	s.current = nil
}

// Null is a playback stand-in for tests and machines without an audio
// device. It tracks the same lifecycle without producing sound.
type Null struct {
	mu      sync.Mutex
	current *clip
	Paused  bool
	Started int
	Stopped int
}

func NewNull() *Null {
	return &Null{}
}

func (n *Null) Start(audio []byte) (<-chan struct{}, error) {
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil {
		n.current.finish()
	}
	n.current = &clip{done: make(chan struct{})}
	n.Started++
	n.Paused = false
	return n.current.done, nil
}

func (n *Null) Pause()  { n.setPaused(true) }
func (n *Null) Resume() { n.setPaused(false) }

func (n *Null) setPaused(paused bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Paused = paused
}

func (n *Null) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Stopped++
	if n.current != nil {
		n.current.finish()
		n.current = nil
	}
}
