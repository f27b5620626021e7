package tui

// answerMsg carries a completed answer back into the update loop.
type answerMsg struct {
	question string
	answer   string
}

// answerErrMsg carries a failed question back into the update loop.
type answerErrMsg struct {
	question string
	err      error
}

// ReloadMsg asks the TUI to re-ingest a changed document. The chat
// command's file watcher sends it from outside the program.
type ReloadMsg struct {
	// Path is the document that changed on disk.
	Path string
}

// reloadedMsg reports the outcome of a ReloadMsg ingestion.
type reloadedMsg struct {
	path   string
	chunks int
	err    error
}
