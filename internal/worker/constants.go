package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// Default pool sizing for the event retry pool.
const (
	DefaultRetryWorkers   = 4
	DefaultRetryQueueSize = 256
)
