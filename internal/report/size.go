package report

import (
	"closurec/internal/domain/errors/domain"
	"fmt"
)

// sizeMultiple is the divisor between consecutive size units.
const sizeMultiple = 1024

// sizeSuffixes starts at KiB: sizes are always divided at least once, so a
// 10 byte file renders as "0.01 KiB". Existing output depends on this.
var sizeSuffixes = [...]string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB", "ZiB", "YiB"}

// FormatSize renders a byte count as "<value> <unit>" with two decimals.
func FormatSize(size int64) (string, error) {
	if size < 0 {
		return "", fmt.Errorf("%w: size must be non-negative, got %d", domain.ErrInvalidArgument, size)
	}

	value := float64(size)
	suffix := sizeSuffixes[0]
	for _, suffix = range sizeSuffixes {
		value /= sizeMultiple
		if value < sizeMultiple {
			break
		}
	}

	return fmt.Sprintf("%.2f %s", value, suffix), nil
}
