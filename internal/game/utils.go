package game

import (
	"fmt"
	"time"

	"github.com/iburimskiy/ellipse-stack/internal/config"
)

// formatDuration formats a duration as MM:SS.mmm
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func statusLine(p config.Params) string {
	return fmt.Sprintf("n=%d  a0=%.1f  b0=%.1f  np0=%d  dt=%.0fdeg  extinction=%d (%s)  rotate=%s  text=%s  layout=%s",
		p.N, p.A0, p.B0, p.NP0, p.DT, int(p.Extinction), p.Extinction, onOff(p.RotateEllipses), onOff(p.PlotText), p.Layout())
}
