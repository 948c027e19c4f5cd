package tui

// ChanNotifier delivers session notifications to the UI loop.
type ChanNotifier struct {
	ch chan string
}

// NewChanNotifier returns a notifier buffering up to size messages.
func NewChanNotifier(size int) *ChanNotifier {
	if size < 1 {
		size = 1
	}
	return &ChanNotifier{ch: make(chan string, size)}
}

// Notify queues msg. Messages are dropped when the buffer is full so a
// session goroutine never blocks on a UI that has gone away.
func (n *ChanNotifier) Notify(msg string) {
	select {
	case n.ch <- msg:
	default:
	}
}

// C returns the receive side of the notifier.
func (n *ChanNotifier) C() <-chan string { return n.ch }
