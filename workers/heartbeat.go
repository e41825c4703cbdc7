package workers

import (
	"time"

	"github.com/go-co-op/gocron/v2"

	"squares-pool/broadcast"
	"squares-pool/utils/logger"
)

// StartHeartbeat keeps realtime streams alive and prunes stalled ones on
// every interval. The caller shuts the returned scheduler down.
func StartHeartbeat(hub *broadcast.Hub, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			live, pruned := hub.Heartbeat()
			if pruned > 0 {
				logger.Infof("[Heartbeat] pruned %d stalled streams, %d live", pruned, live)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	logger.Infof("🔁 Heartbeat running every %s", interval)
	return sched, nil
}
