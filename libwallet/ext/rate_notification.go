package ext

// RateListener listens for new tickers and rate source change notifications.
type RateListener struct {
	RateUpdateChan chan *struct{}
}

// NewRateListener returns a listener whose channel holds one pending
// notification, so a slow reader only misses duplicates.
func NewRateListener() *RateListener {
	return &RateListener{
		RateUpdateChan: make(chan *struct{}, 1),
	}
}

func (rl *RateListener) Notify() {
	select {
	case rl.RateUpdateChan <- &struct{}{}:
	default:
	}
}
