package box

// Split breaks a horizontal box wider than width into lines at its
// recorded breakpoints and stacks them in a vertical box with interline
// space between lines. Glue at the start of a continuation line is
// dropped. A box that fits, or has no breakpoints, is returned unchanged.
//
// Lines are filled greedily; a line is only longer than width when no
// breakpoint allows a shorter one.
func Split(b *Box, width, interline float64) *Box {
	if b == nil || b.Kind != KindHBox || b.Width <= width || len(b.Breaks) == 0 {
		return b
	}

	breakAfter := make(map[int]bool, len(b.Breaks))
	for _, i := range b.Breaks {
		breakAfter[i] = true
	}

	var lines []*Box
	line := NewHBox()
	lastBreak := -1 // index into line.Children of the last breakpoint

	flush := func(upto int) {
		head := NewHBox()
		for _, c := range line.Children[:upto+1] {
			c.Elder = nil
			head.Add(c)
		}
		lines = append(lines, head)
		rest := line.Children[upto+1:]
		line = NewHBox()
		lastBreak = -1
		for _, c := range rest {
			if len(line.Children) == 0 && c.Kind == KindGlue {
				continue
			}
			c.Elder = nil
			line.Add(c)
		}
	}

	for i, c := range b.Children {
		if len(line.Children) == 0 && len(lines) > 0 && c.Kind == KindGlue {
			continue
		}
		c.Elder = nil
		line.Add(c)
		if line.Width > width && lastBreak >= 0 {
			flush(lastBreak)
		}
		if breakAfter[i] {
			lastBreak = len(line.Children) - 1
		}
	}
	if len(line.Children) > 0 {
		lines = append(lines, line)
	}
	if len(lines) == 1 {
		for _, c := range b.Children {
			c.Elder = b
		}
		return b
	}

	out := NewVBox()
	out.Foreground, out.Background = b.Foreground, b.Background
	for i, l := range lines {
		if i > 0 && interline > 0 {
			out.Add(NewStrut(0, interline, 0, 0))
		}
		out.Add(l)
	}
	return out
}
