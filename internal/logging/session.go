package logging

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// GenerateSessionID names one host process in the shared log file. The
// browser spawns a fresh host per port, so lines from several hosts interleave.
// Format: YYYYMMDD_HHMMSS_<pid>_<8 hex>
func GenerateSessionID() string {
	suffix := uuid.New().String()[:8]
	return time.Now().Format("20060102_150405") + "_" + strconv.Itoa(os.Getpid()) + "_" + suffix
}
