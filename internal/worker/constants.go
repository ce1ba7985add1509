package worker

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// LogMsgJobSkipped is logged when a periodic job is dropped because the
// queue is full
const LogMsgJobSkipped = "Job queue full, skipping cycle"
