package main

// cliProgress routes pipeline progress callbacks through the shared output
// helpers so --quiet and --verbose behave consistently across commands.
type cliProgress struct{}

func (cliProgress) OnPage(current, total int64) {
	printVerbose("  page %d/%d\n", current, total)
}

func (cliProgress) OnFile(path string, current, total int) {
	printInfo("[%d/%d] %s\n", current, total, path)
}
