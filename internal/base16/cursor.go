package base16

// ceilingCursor hands out background lightness ceilings in call order. It is
// created per run and only moves forward.
type ceilingCursor struct {
	ceilings []float64
	pos      int
}

func newCeilingCursor(ceilings []float64) *ceilingCursor {
	return &ceilingCursor{ceilings: ceilings}
}

// next returns the current position and its ceiling, then advances. Past the
// end of the schedule the last ceiling repeats.
func (c *ceilingCursor) next() (int, float64) {
	pos := c.pos
	c.pos++

	if len(c.ceilings) == 0 {
		return pos, 1.0
	}
	return pos, c.ceilings[min(pos, len(c.ceilings)-1)]
}
