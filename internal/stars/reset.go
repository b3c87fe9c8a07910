package stars

// Reset drops the current stars so the next SetTheme regenerates them
// even for the same theme key.
func (f *Field) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stars = nil
	f.elapsed = 0
}
