package plant

import "time"

// SetNowForTest overrides the lifecycle clock; available to tests only.
func (l *Lifecycle) SetNowForTest(now func() time.Time) { l.now = now }
