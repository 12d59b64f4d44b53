package userconfig

import (
	"fmt"
	"strings"
)

const (
	BYTE = 1.0 << (10 * iota)
	KIBIBYTE
	MEBIBYTE
	GIBIBYTE
	TEBIBYTE
)

func bytesConvert(bytes uint64) string {
	unit := ""
	value := float64(bytes)

	switch {
	case bytes >= TEBIBYTE:
		unit = "TB"
		value = value / TEBIBYTE
	case bytes >= GIBIBYTE:
		unit = "GB"
		value = value / GIBIBYTE
	case bytes >= MEBIBYTE:
		unit = "MB"
		value = value / MEBIBYTE
	case bytes >= KIBIBYTE:
		unit = "KB"
		value = value / KIBIBYTE
	case bytes >= BYTE:
		unit = "B"
	case bytes == 0:
		return "0 B"
	}

	stringValue := strings.TrimSuffix(
		fmt.Sprintf("%.2f", value), ".00",
	)

	return fmt.Sprintf("%s %s", stringValue, unit)
}
