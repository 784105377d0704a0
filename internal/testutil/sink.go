package testutil

import (
	"strings"
	"sync"
)

// Sent — одна записанная отправка.
type Sent struct {
	CharID int64 // 0 для рассылки по карте
	MapID  int32 // 0 для личной отправки
	Line   string
}

// Recorder — in-memory sink для broadcast.Broadcaster.
// Записывает все пакеты вместо отправки в сеть. Потокобезопасен.
type Recorder struct {
	mu      sync.Mutex
	sent    []Sent
	offline map[int64]bool
}

// NewRecorder создаёт пустой Recorder.
func NewRecorder() *Recorder {
	return &Recorder{offline: make(map[int64]bool)}
}

// SetOffline помечает персонажа как отключившегося: личные пакеты ему не доходят.
func (r *Recorder) SetOffline(charID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offline[charID] = true
}

// SendTo записывает личный пакет.
func (r *Recorder) SendTo(charID int64, data []byte) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.offline[charID] {
		return false
	}
	r.sent = append(r.sent, Sent{CharID: charID, Line: strings.TrimSuffix(string(data), "\n")})
	return true
}

// SendToMap записывает пакет для всей карты.
func (r *Recorder) SendToMap(mapID int32, data []byte) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, Sent{MapID: mapID, Line: strings.TrimSuffix(string(data), "\n")})
	return 1
}

// All возвращает копию всех записанных отправок в порядке поступления.
func (r *Recorder) All() []Sent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sent, len(r.sent))
	copy(out, r.sent)
	return out
}

// Private возвращает строки, отправленные лично charID.
func (r *Recorder) Private(charID int64) []string {
	var out []string
	for _, s := range r.All() {
		if s.MapID == 0 && s.CharID == charID {
			out = append(out, s.Line)
		}
	}
	return out
}

// Map возвращает строки, разосланные по карте mapID.
func (r *Recorder) Map(mapID int32) []string {
	var out []string
	for _, s := range r.All() {
		if s.MapID == mapID {
			out = append(out, s.Line)
		}
	}
	return out
}

// Headers возвращает заголовки всех отправок (первое слово строки).
func (r *Recorder) Headers() []string {
	all := r.All()
	out := make([]string, 0, len(all))
	for _, s := range all {
		out = append(out, Header(s.Line))
	}
	return out
}

// WithHeader возвращает строки с заданным заголовком.
func (r *Recorder) WithHeader(header string) []string {
	var out []string
	for _, s := range r.All() {
		if Header(s.Line) == header {
			out = append(out, s.Line)
		}
	}
	return out
}

// Reset очищает записанное.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
}

// Header возвращает первое слово строки пакета.
func Header(line string) string {
	head, _, _ := strings.Cut(line, " ")
	return head
}
