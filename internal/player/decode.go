package player

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-mp3"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"
	extM4A  = ".m4a"
	extMP4  = ".mp4"
	extAAC  = ".aac"
)

// decode picks a decoder from the extension. On error rc is left open.
func decode(rc io.ReadSeekCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		src, err := newMP3Source(rc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("mp3: %w", err)
		}
		return newPCMStreamer(src), src.format(), nil
	case extM4A, extMP4, extAAC:
		src, err := newAACSource(rc)
		if err != nil {
			return nil, beep.Format{}, fmt.Errorf("aac: %w", err)
		}
		return newPCMStreamer(src), src.format(), nil
	case extFLAC:
		return flac.Decode(rc)
	case extWAV:
		return wav.Decode(rc)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// pcmSource yields interleaved signed 16-bit samples.
type pcmSource interface {
	read(buf []int16) (int, error)
	channels() int
	format() beep.Format
	frames() int
	frame() int
	seekFrame(n int) error
	io.Closer
}

// pcmStreamer adapts a pcmSource to beep, duplicating mono to stereo.
type pcmStreamer struct {
	src pcmSource
	buf []int16
	err error
}

func newPCMStreamer(src pcmSource) *pcmStreamer {
	return &pcmStreamer{src: src, buf: make([]int16, 8192)}
}

func (s *pcmStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	ch := max(s.src.channels(), 1)
	need := len(samples) * ch
	if len(s.buf) < need {
		s.buf = make([]int16, need)
	}

	got, err := s.src.read(s.buf[:need])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		s.err = err
		return 0, false
	}
	n := min(got/ch, len(samples))
	if n == 0 {
		return 0, false
	}
	for i := range n {
		l := float64(s.buf[i*ch]) / 32768.0
		r := l
		if ch > 1 {
			r = float64(s.buf[i*ch+1]) / 32768.0
		}
		samples[i] = [2]float64{l, r}
	}
	return n, true
}

func (s *pcmStreamer) Err() error    { return s.err }
func (s *pcmStreamer) Len() int      { return s.src.frames() }
func (s *pcmStreamer) Position() int { return s.src.frame() }
func (s *pcmStreamer) Close() error  { return s.src.Close() }

func (s *pcmStreamer) Seek(p int) error {
	p = min(max(p, 0), s.Len())
	if err := s.src.seekFrame(p); err != nil {
		return err
	}
	s.err = nil
	return nil
}

// mp3Source decodes with go-mp3, which always yields 16-bit stereo.
type mp3Source struct {
	dec    *mp3.Decoder
	closer io.Closer
	raw    []byte
}

func newMP3Source(rc io.ReadSeekCloser) (*mp3Source, error) {
	dec, err := mp3.NewDecoder(rc)
	if err != nil {
		return nil, err
	}
	if dec.SampleRate() == 0 {
		return nil, errors.New("invalid sample rate")
	}
	return &mp3Source{dec: dec, closer: rc}, nil
}

func (m *mp3Source) read(buf []int16) (int, error) {
	if need := len(buf) * 2; len(m.raw) < need {
		m.raw = make([]byte, need)
	}
	n, err := io.ReadFull(m.dec, m.raw[:len(buf)*2])
	for i := range n / 2 {
		buf[i] = int16(binary.LittleEndian.Uint16(m.raw[i*2:])) //nolint:gosec // pcm sample
	}
	return n / 2, err
}

func (m *mp3Source) channels() int { return 2 }

func (m *mp3Source) format() beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(m.dec.SampleRate()), NumChannels: 2, Precision: 2}
}

func (m *mp3Source) frames() int {
	return int(max(m.dec.SampleCount(), 0))
}

func (m *mp3Source) frame() int { return int(m.dec.SamplePosition()) }

func (m *mp3Source) seekFrame(n int) error { return m.dec.SeekToSample(int64(n)) }

func (m *mp3Source) Close() error { return m.closer.Close() }

// aacSource decodes AAC in an MP4 container with go-faad2.
type aacSource struct {
	r      *faad2.M4AReader
	closer io.Closer
	total  int
}

func newAACSource(rc io.ReadSeekCloser) (*aacSource, error) {
	r, err := faad2.OpenM4A(context.Background(), rc)
	if err != nil {
		return nil, err
	}
	return &aacSource{
		r:      r,
		closer: rc,
		total:  int(r.Duration().Seconds() * float64(r.SampleRate())),
	}, nil
}

func (a *aacSource) read(buf []int16) (int, error) {
	return a.r.Read(context.Background(), buf)
}

func (a *aacSource) channels() int { return int(a.r.Channels()) }

func (a *aacSource) format() beep.Format {
	return beep.Format{SampleRate: beep.SampleRate(a.r.SampleRate()), NumChannels: 2, Precision: 2}
}

func (a *aacSource) frames() int { return a.total }

func (a *aacSource) frame() int {
	return int(a.r.Position().Seconds() * float64(a.r.SampleRate()))
}

func (a *aacSource) seekFrame(n int) error {
	rate := float64(a.r.SampleRate())
	return a.r.Seek(time.Duration(float64(n) / rate * float64(time.Second)))
}

func (a *aacSource) Close() error {
	if err := a.r.Close(context.Background()); err != nil {
		_ = a.closer.Close()
		return err
	}
	return a.closer.Close()
}
