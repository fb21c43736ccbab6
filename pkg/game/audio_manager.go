package game

import (
	"encoding/binary"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 音效ID
const (
	SoundClick   = "click"   // 计入门控的点击
	SoundUnlock  = "unlock"  // 门控打开 / 锁存翻转
	SoundRelease = "release" // 松手
	SoundToggle  = "toggle"  // 强制拖拽开关
)

// toneSpec 合成音效的参数
type toneSpec struct {
	freqs    []float64     // 依次播放的频率（Hz），平均分配时长
	duration time.Duration // 总时长
}

var toneTable = map[string]toneSpec{
	SoundClick:   {freqs: []float64{1200}, duration: 30 * time.Millisecond},
	SoundUnlock:  {freqs: []float64{660, 990}, duration: 140 * time.Millisecond},
	SoundRelease: {freqs: []float64{440}, duration: 60 * time.Millisecond},
	SoundToggle:  {freqs: []float64{880, 587}, duration: 80 * time.Millisecond},
}

// AudioManager 音频管理器
// 音效在创建时合成为 PCM，播放时按 SettingsManager 的开关和音量
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	sounds          map[string][]byte
	players         map[string]*audio.Player
}

// NewAudioManager 创建音频管理器并合成所有音效
//
// 参数：
//   - ctx: 音频上下文（每个进程只能创建一个）
//   - sm: 设置管理器，可为 nil
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		sounds:          make(map[string][]byte, len(toneTable)),
		players:         make(map[string]*audio.Player),
	}
	for id, spec := range toneTable {
		am.sounds[id] = synthTone(spec, SampleRate)
	}
	log.Printf("[AudioManager] %d sounds synthesized", len(am.sounds))
	return am
}

// PlaySound 播放音效，返回是否播放
// am 为 nil、音效关闭或 ID 未知时返回 false
func (am *AudioManager) PlaySound(soundID string) bool {
	if am == nil || am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	data, ok := am.sounds[soundID]
	if !ok {
		log.Printf("[AudioManager] Warning: unknown sound %s", soundID)
		return false
	}

	if old := am.players[soundID]; old != nil && old.IsPlaying() {
		old.Pause()
	}
	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.volume())
	player.Play()
	am.players[soundID] = player
	return true
}

func (am *AudioManager) volume() float64 {
	if am.settingsManager == nil {
		return 1.0
	}
	return am.settingsManager.GetSettings().SoundVolume
}

// synthTone 合成 16 位小端立体声 PCM（Ebitengine audio 的默认格式）
// 每段频率两端各有 5ms 线性淡入淡出，避免爆音
func synthTone(spec toneSpec, sampleRate int) []byte {
	total := int(spec.duration.Seconds() * float64(sampleRate))
	if total <= 0 || len(spec.freqs) == 0 {
		return nil
	}
	segment := total / len(spec.freqs)
	if segment == 0 {
		return nil
	}
	fade := sampleRate / 200

	buf := make([]byte, total*4)
	for i := 0; i < total; i++ {
		seg := i / segment
		if seg >= len(spec.freqs) {
			seg = len(spec.freqs) - 1
		}
		local := i - seg*segment
		length := segment
		if seg == len(spec.freqs)-1 {
			length = total - seg*segment
		}

		env := 1.0
		if local < fade {
			env = float64(local) / float64(fade)
		} else if remain := length - local; remain < fade {
			env = float64(remain) / float64(fade)
		}

		t := float64(i) / float64(sampleRate)
		v := int16(math.Sin(2*math.Pi*spec.freqs[seg]*t) * env * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
