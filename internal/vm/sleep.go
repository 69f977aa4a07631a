package vm

import "time"

func sleepMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}
