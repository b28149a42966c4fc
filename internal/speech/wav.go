package speech

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrBadWAV is returned for data that is not a PCM WAV file.
var ErrBadWAV = errors.New("not a valid WAV file")

// Wave is decoded 16-bit PCM audio.
type Wave struct {
	Rate     int
	Channels int
	PCM      []byte // signed 16-bit little endian, interleaved
}

// EncodeWAV wraps 16-bit PCM in a RIFF/WAVE header.
func EncodeWAV(pcm []byte, rate, channels int) []byte {
	blockAlign := channels * BitDepth / 8
	out := make([]byte, 44+len(pcm))
	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+len(pcm)))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:], uint16(channels))
	binary.LittleEndian.PutUint32(out[24:], uint32(rate))
	binary.LittleEndian.PutUint32(out[28:], uint32(rate*blockAlign))
	binary.LittleEndian.PutUint16(out[32:], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:], BitDepth)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(len(pcm)))
	copy(out[44:], pcm)
	return out
}

// DecodeWAV walks the RIFF chunks and returns the format and PCM payload.
// Streamed WAVs (espeak-ng --stdout) carry a bogus data size; it is clamped
// to the bytes actually present.
func DecodeWAV(data []byte) (Wave, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return Wave{}, ErrBadWAV
	}

	var w Wave
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return Wave{}, ErrBadWAV
			}
			if binary.LittleEndian.Uint16(data[body+14:]) != BitDepth {
				return Wave{}, errors.New("wav: only 16-bit PCM is supported")
			}
			w.Channels = int(binary.LittleEndian.Uint16(data[body+2:]))
			w.Rate = int(binary.LittleEndian.Uint32(data[body+4:]))
		case "data":
			if w.Rate == 0 {
				return Wave{}, errors.New("wav: data chunk before fmt chunk")
			}
			end := body + size
			if size < 0 || end > len(data) {
				end = len(data)
			}
			w.PCM = data[body:end]
			return w, nil
		}

		pos = body + size
		if size%2 != 0 {
			pos++
		}
	}
	return Wave{}, errors.New("wav: data chunk not found")
}

// Normalize converts a wave to the playback format: mono, SampleRate Hz.
func Normalize(w Wave) []byte {
	samples := toMono(w)
	if w.Rate != SampleRate && w.Rate > 0 {
		samples = resample(samples, w.Rate, SampleRate)
	}
	return fromSamples(samples)
}

func toMono(w Wave) []float64 {
	ch := max(w.Channels, 1)
	frames := len(w.PCM) / (2 * ch)
	out := make([]float64, frames)
	for i := range out {
		var sum float64
		for c := 0; c < ch; c++ {
			off := (i*ch + c) * 2
			sum += float64(int16(binary.LittleEndian.Uint16(w.PCM[off:])))
		}
		out[i] = sum / float64(ch)
	}
	return out
}

// resample uses linear interpolation; good enough for speech.
func resample(in []float64, from, to int) []float64 {
	if len(in) == 0 {
		return in
	}
	n := int(math.Round(float64(len(in)) * float64(to) / float64(from)))
	out := make([]float64, n)
	step := float64(from) / float64(to)
	for i := range out {
		x := float64(i) * step
		j := int(x)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := x - float64(j)
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}

func fromSamples(samples []float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		s = math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(s)))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}
