package engine

// Complete reports whether the session's end condition holds. The time
// check only fires when checkTime is set, so a pre-start probe never ends
// a countdown session that has not begun.
func (s *Session) Complete(checkTime bool) bool {
	switch s.kind {
	case endTime:
		if !checkTime || s.startedAt.IsZero() || s.cfg.DurationTarget == 0 {
			return false
		}
		return s.now().Sub(s.startedAt).Seconds() >= float64(s.cfg.DurationTarget)
	case endWords:
		if s.cfg.WordTarget == 0 {
			return false
		}
		return s.completedWords() >= s.cfg.WordTarget
	default:
		return s.cursor >= len(s.chars)
	}
}

// completedWords counts words closed by a correctly typed boundary space.
// A word counts only if every character in it is correct. A final word with
// no trailing space counts once the cursor sits at the end of the text.
func (s *Session) completedWords() int {
	completed := 0
	inWord := false
	wordOK := true
	for i := 0; i < s.cursor; i++ {
		c := s.chars[i]
		if c.R != ' ' {
			inWord = true
			if c.Status == StatusIncorrect {
				wordOK = false
			}
			continue
		}
		if inWord && wordOK && c.Status == StatusCorrect {
			completed++
		}
		inWord = false
		wordOK = true
	}
	if s.cursor > 0 && s.cursor == len(s.chars) && inWord && wordOK &&
		s.chars[s.cursor-1].Status == StatusCorrect {
		completed++
	}
	return completed
}
