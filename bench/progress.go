package bench

import (
	"time"

	"github.com/cheggaaa/pb/v3"
)

// ProgressThreshold is the smallest amount of work that gets a bar
var ProgressThreshold = 100

// MaybeProgress is a progress bar that only shows for long jobs. A nil
// *MaybeProgress is a valid no-op.
type MaybeProgress struct {
	bar *pb.ProgressBar
}

func NewProgress(n int) *MaybeProgress {
	mp := &MaybeProgress{}
	if n > ProgressThreshold {
		mp.bar = pb.ProgressBarTemplate(`{{string . "prefix"}}{{counters . }} {{bar . }} {{percent . }} {{speed . }} {{etime . }}`).New(n)
		mp.bar.SetRefreshRate(time.Second)
	}
	return mp
}

func (mp *MaybeProgress) Start() {
	if mp != nil && mp.bar != nil {
		mp.bar.Start()
	}
}

func (mp *MaybeProgress) Increment() {
	if mp != nil && mp.bar != nil {
		mp.bar.Increment()
	}
}

func (mp *MaybeProgress) Finish() {
	if mp != nil && mp.bar != nil {
		mp.bar.Finish()
	}
}
