package greenflag

// Scheduler drives cooperative threads one frame at a time. Each Tick gives
// every live thread exactly one turn in spawn order. Threads spawned during
// a Tick get their first turn in that same Tick.
type Scheduler struct {
	threads []*Thread
	current *Thread
	frame   uint64
	now     float64
	dt      float64
	ticking bool
}

// NewScheduler creates an idle scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// spawn launches t and queues it for its first turn.
func (s *Scheduler) spawn(t *Thread) {
	t.launch()
	s.threads = append(s.threads, t)
}

// Tick advances the clock by dt seconds and runs one turn of every live
// thread. It returns false without doing anything when called from inside
// a thread body.
func (s *Scheduler) Tick(dt float64) bool {
	if s.ticking {
		return false
	}
	s.ticking = true
	defer func() { s.ticking = false }()

	if dt < 0 {
		dt = 0
	}
	s.frame++
	s.dt = dt
	s.now += dt

	// The slice may grow while iterating.
	for i := 0; i < len(s.threads); i++ {
		t := s.threads[i]
		if t.Done() {
			continue
		}
		s.current = t
		t.step()
		s.current = nil
	}
	s.compact()
	return true
}

// compact drops finished threads, keeping spawn order.
func (s *Scheduler) compact() {
	live := s.threads[:0]
	for _, t := range s.threads {
		if !t.Done() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.threads); i++ {
		s.threads[i] = nil
	}
	s.threads = live
}

// Current returns the thread holding the turn, or nil between turns.
func (s *Scheduler) Current() *Thread { return s.current }

// Frame returns the number of Ticks run so far.
func (s *Scheduler) Frame() uint64 { return s.frame }

// Now returns the simulated time in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Delta returns the dt of the current or most recent Tick.
func (s *Scheduler) Delta() float64 { return s.dt }

// Live returns the number of threads that have not finished.
func (s *Scheduler) Live() int {
	n := 0
	for _, t := range s.threads {
		if !t.Done() {
			n++
		}
	}
	return n
}
