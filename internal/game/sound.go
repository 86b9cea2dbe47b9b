package game

import "log"

// CueLog is the demo SoundPlayer: the host engine would play real audio, so
// the simulation logs cues and keeps the last few for the on-screen status
// line.
type CueLog struct {
	recent []string
}

// NewCueLog creates an empty cue log.
func NewCueLog() *CueLog {
	return &CueLog{}
}

// Play implements host.SoundPlayer.
func (c *CueLog) Play(cue string) {
	if cue == "" {
		return
	}
	log.Printf("sound cue: %s", cue)
	c.recent = append(c.recent, cue)
	if len(c.recent) > 4 {
		c.recent = c.recent[len(c.recent)-4:]
	}
}

// Recent returns up to the last four cues, oldest first.
func (c *CueLog) Recent() []string {
	return c.recent
}
