package testutil

import "sync"

// ScriptedRand — детерминированный источник случайности для тестов.
// IntN и Float64 возвращают заранее заданные значения по очереди;
// когда очередь пуста, возвращают 0. Shuffle не меняет порядок.
type ScriptedRand struct {
	mu     sync.Mutex
	ints   []int
	floats []float64
}

// NewScriptedRand создаёт ScriptedRand с очередью целых значений.
func NewScriptedRand(ints ...int) *ScriptedRand {
	return &ScriptedRand{ints: ints}
}

// PushInts добавляет значения в очередь IntN.
func (r *ScriptedRand) PushInts(v ...int) *ScriptedRand {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, v...)
	return r
}

// PushFloats добавляет значения в очередь Float64.
func (r *ScriptedRand) PushFloats(v ...float64) *ScriptedRand {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.floats = append(r.floats, v...)
	return r
}

// IntN возвращает следующее значение, ограниченное [0, n).
func (r *ScriptedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return max(0, min(v, n-1))
}

// Float64 возвращает следующее значение из очереди.
func (r *ScriptedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// Shuffle оставляет порядок без изменений.
func (r *ScriptedRand) Shuffle(int, func(i, j int)) {}

// Remaining возвращает число неиспользованных значений IntN.
func (r *ScriptedRand) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ints)
}
