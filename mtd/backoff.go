package mtd

// fibonacci yields the back-off sequence 1, 1, 2, 3, 5, ... (the
// Fibonacci numbers, skipping 0). The zero value is ready to use.
type fibonacci struct {
	prev, cur int
}

func (f *fibonacci) next() int {
	if f.cur == 0 {
		f.cur = 1
		return 1
	}

	f.prev, f.cur = f.cur, f.prev+f.cur
	return f.cur
}
