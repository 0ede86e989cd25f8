package notify

// Recorder is a Notifier that keeps every notification in memory
type Recorder struct {
	Notifications []Notification
}

// Notify implements Notifier
func (r *Recorder) Notify(eventType string, payload Payload) {
	r.Notifications = append(r.Notifications, Notification{Type: eventType, Payload: payload})
}

// Types returns the recorded notification types in order
func (r *Recorder) Types() []string {
	out := make([]string, 0, len(r.Notifications))
	for _, n := range r.Notifications {
		out = append(out, n.Type)
	}
	return out
}

// Count returns how many notifications of one type were recorded
func (r *Recorder) Count(eventType string) int {
	count := 0
	for _, n := range r.Notifications {
		if n.Type == eventType {
			count++
		}
	}
	return count
}

// Reset clears the recorded notifications
func (r *Recorder) Reset() {
	r.Notifications = nil
}

// Fanout forwards every notification to each notifier in order
type Fanout []Notifier

// Notify implements Notifier
func (f Fanout) Notify(eventType string, payload Payload) {
	for _, n := range f {
		if n != nil {
			n.Notify(eventType, payload)
		}
	}
}
