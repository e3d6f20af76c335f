package scan

import (
	"fortio.org/safecast"
)

func toUint32(v int) (uint32, error) {
	return safecast.Conv[uint32](v)
}
