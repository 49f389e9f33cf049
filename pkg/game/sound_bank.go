package game

import (
	"encoding/binary"
	"math"
)

// SampleRate 音频采样率
const SampleRate = 44100

// 每个采样帧字节数（16bit 立体声）
const bytesPerFrame = 4

// toneNote 合成用音符
type toneNote struct {
	Freq     float64 // Hz，0 表示静音
	Duration float64 // 秒
	Volume   float64 // 0~1
	Square   bool    // 方波（否则正弦）
}

// SoundClip 已合成的 PCM 片段（s16le 立体声）
type SoundClip struct {
	ID     string
	PCM    []byte
	Length float64 // 秒
}

// soundScores 各音效的音符序列
var soundScores = map[string][]toneNote{
	SoundButton: {
		{Freq: 880, Duration: 0.05, Volume: 0.5},
	},
	SoundThrowBall: {
		{Freq: 520, Duration: 0.03, Volume: 0.4},
		{Freq: 660, Duration: 0.04, Volume: 0.35},
	},
	SoundPaintRingPiece: {
		{Freq: 990, Duration: 0.06, Volume: 0.45},
	},
	SoundFinishedRing: {
		{Freq: 660, Duration: 0.08, Volume: 0.5},
		{Freq: 880, Duration: 0.08, Volume: 0.5},
		{Freq: 1320, Duration: 0.12, Volume: 0.5},
	},
	SoundPassLevel: {
		{Freq: 523.25, Duration: 0.12, Volume: 0.5},
		{Freq: 659.25, Duration: 0.12, Volume: 0.5},
		{Freq: 783.99, Duration: 0.12, Volume: 0.5},
		{Freq: 1046.5, Duration: 0.3, Volume: 0.5},
	},
	SoundGameOver: {
		{Freq: 392, Duration: 0.18, Volume: 0.5, Square: true},
		{Freq: 311.13, Duration: 0.18, Volume: 0.5, Square: true},
		{Freq: 196, Duration: 0.4, Volume: 0.5, Square: true},
	},
	SoundSessionStart: {
		{Freq: 587.33, Duration: 0.1, Volume: 0.45},
		{Freq: 880, Duration: 0.2, Volume: 0.45},
	},
	SoundTimerWarning: {
		{Freq: 1200, Duration: 0.08, Volume: 0.4, Square: true},
		{Freq: 0, Duration: 0.08},
		{Freq: 1200, Duration: 0.08, Volume: 0.4, Square: true},
	},
	SoundBackground: backgroundScore(),
}

// backgroundScore 循环背景音乐：两小节分解和弦
func backgroundScore() []toneNote {
	chords := [][]float64{
		{261.63, 329.63, 392.00, 329.63},
		{220.00, 261.63, 329.63, 261.63},
		{174.61, 220.00, 261.63, 220.00},
		{196.00, 246.94, 293.66, 246.94},
	}
	notes := make([]toneNote, 0, 32)
	for _, chord := range chords {
		for rep := 0; rep < 2; rep++ {
			for _, f := range chord {
				notes = append(notes, toneNote{Freq: f, Duration: 0.125, Volume: 0.18})
			}
		}
	}
	return notes
}

// BuildSoundBank 合成全部音效
func BuildSoundBank() map[string]*SoundClip {
	bank := make(map[string]*SoundClip, len(soundScores))
	for id, notes := range soundScores {
		pcm := synthesize(notes)
		bank[id] = &SoundClip{
			ID:     id,
			PCM:    pcm,
			Length: float64(len(pcm)/bytesPerFrame) / SampleRate,
		}
	}
	return bank
}

// synthesize 把音符序列渲染为 s16le 立体声 PCM
// 每个音符带 5ms 起音和释音包络，避免爆音
func synthesize(notes []toneNote) []byte {
	total := 0
	for _, n := range notes {
		total += int(n.Duration * SampleRate)
	}
	buf := make([]byte, total*bytesPerFrame)

	const attack = 0.005
	offset := 0
	for _, n := range notes {
		frames := int(n.Duration * SampleRate)
		for i := 0; i < frames; i++ {
			t := float64(i) / SampleRate
			v := 0.0
			if n.Freq > 0 {
				phase := 2 * math.Pi * n.Freq * t
				if n.Square {
					if math.Sin(phase) >= 0 {
						v = 0.6
					} else {
						v = -0.6
					}
				} else {
					v = math.Sin(phase)
				}
				env := 1.0
				if t < attack {
					env = t / attack
				} else if rem := n.Duration - t; rem < attack {
					env = rem / attack
				}
				v *= env * n.Volume
			}
			sample := int16(v * math.MaxInt16)
			pos := (offset + i) * bytesPerFrame
			binary.LittleEndian.PutUint16(buf[pos:], uint16(sample))
			binary.LittleEndian.PutUint16(buf[pos+2:], uint16(sample))
		}
		offset += frames
	}
	return buf
}
