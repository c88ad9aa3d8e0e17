package services

// BadgeClaimed is the typed domain event emitted by the claim workflow.
// It replaces the ad hoc payloads the legacy client pushed through DOM
// events; listeners get one well-defined value.
type BadgeClaimed struct {
	DeviceID string
	BadgeID  string
	IsNew    bool
}

type ClaimListener interface {
	OnBadgeClaimed(ev BadgeClaimed)
}

// ClaimNotifier fans claim events out to subscribers. Subscriptions happen
// once at startup; the listener slice is never mutated while serving, so
// Publish needs no locking.
type ClaimNotifier struct {
	listeners []ClaimListener
}

func NewClaimNotifier() *ClaimNotifier {
	return &ClaimNotifier{}
}

func (n *ClaimNotifier) Subscribe(l ClaimListener) {
	n.listeners = append(n.listeners, l)
}

func (n *ClaimNotifier) Publish(ev BadgeClaimed) {
	for _, l := range n.listeners {
		l.OnBadgeClaimed(ev)
	}
}
