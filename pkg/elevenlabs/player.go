package elevenlabs

import (
	"encoding/binary"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Player renders 16-bit little-endian mono PCM through the default output
// device. Feed it with Write as chunks arrive (from Stream or a realtime
// session using a pcm_* output format) and call Drain to block until the
// buffered samples have been consumed.
type Player struct {
	sampleRate int
	stream     *portaudio.Stream

	mu      sync.Mutex
	cond    *sync.Cond
	pending []float32
}

// NewPlayer opens and starts an output stream at the given sample rate.
func NewPlayer(sampleRate int) (*Player, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	p := &Player{sampleRate: sampleRate}
	p.cond = sync.NewCond(&p.mu)

	stream, err := portaudio.OpenDefaultStream(0, 1, float64(sampleRate), 1024, p.fill)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}
	p.stream = stream
	return p, nil
}

func (p *Player) fill(out []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := copy(out, p.pending)
	p.pending = p.pending[n:]
	for i := n; i < len(out); i++ {
		out[i] = 0
	}
	if len(p.pending) == 0 {
		p.cond.Broadcast()
	}
}

// Write queues a chunk of PCM bytes for playback. A trailing odd byte is
// dropped.
func (p *Player) Write(pcm []byte) {
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		samples[i] = float32(s) / 32768
	}

	p.mu.Lock()
	p.pending = append(p.pending, samples...)
	p.mu.Unlock()
}

// Drain blocks until every queued sample has been handed to the device.
func (p *Player) Drain() {
	p.mu.Lock()
	for len(p.pending) > 0 {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// Close stops the stream and releases the audio device.
func (p *Player) Close() error {
	err := p.stream.Stop()
	if closeErr := p.stream.Close(); err == nil {
		err = closeErr
	}
	portaudio.Terminate()
	return err
}

// PlayPCM16 plays a complete PCM buffer and returns once playback finishes.
func PlayPCM16(pcm []byte, sampleRate int) error {
	p, err := NewPlayer(sampleRate)
	if err != nil {
		return err
	}
	p.Write(pcm)
	p.Drain()
	return p.Close()
}
