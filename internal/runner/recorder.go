package runner

// Recorder persists a summary of a run. Source names the front end
// that produced it ("tui", "cli" or "ssh").
type Recorder interface {
	RecordRun(snap Snapshot, source string) (string, error)
}
