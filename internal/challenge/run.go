package challenge

// Inputs bundles everything a blocking round needs.
type Inputs struct {
	// Poll refreshes the decoder from the input lines. Called once per
	// iteration before any check. May be nil when the encoder is fed elsewhere.
	Poll func()

	// Encoder is read for twist rounds.
	Encoder Encoder

	// Classify returns the current tilt gesture.
	Classify ClassifyFunc

	// Clock returns monotonic seconds.
	Clock func() float64

	// Progress, if set, is called after every non-terminal iteration so a
	// presenter can redraw the remaining time.
	Progress func(elapsed, limit float64)

	// TwistThreshold overrides DefaultTwistThreshold when positive.
	TwistThreshold int
}

// Run executes one round as a busy-poll loop and blocks until it succeeds or
// times out. There is no cancellation: the round ends only via its own clock.
// An invalid spec is rejected before the clock is read.
func Run(spec Spec, in Inputs) (Outcome, error) {
	r, err := NewRound(spec, in.TwistThreshold)
	if err != nil {
		return Timeout, err
	}

	if in.Poll != nil {
		in.Poll()
	}
	r.Start(in.Clock(), in.Encoder)

	for {
		if in.Poll != nil {
			in.Poll()
		}
		state := r.Tick(in.Clock(), in.Encoder, in.Classify)
		if state.Terminal() {
			o, _ := r.Outcome()
			return o, nil
		}
		if in.Progress != nil {
			in.Progress(r.Elapsed(), spec.Limit)
		}
	}
}
