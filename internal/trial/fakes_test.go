package trial

type fakeOrchestrator struct {
	started int
	ended   int
	events  []string
}

func (o *fakeOrchestrator) AttemptStarted() {
	o.started++
	o.events = append(o.events, "started")
}

func (o *fakeOrchestrator) AttemptEnded() {
	o.ended++
	o.events = append(o.events, "ended")
}

type fakeFeedback struct {
	calls []bool
}

func (f *fakeFeedback) SetQuickReach(quick bool) { f.calls = append(f.calls, quick) }

func (f *fakeFeedback) last() bool { return f.calls[len(f.calls)-1] }

type fakeActuator struct {
	calls [][2]float64
}

func (a *fakeActuator) SetVibration(frequency, amplitude float64) {
	a.calls = append(a.calls, [2]float64{frequency, amplitude})
}
