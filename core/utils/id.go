package utils

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"appointment-sync/core/constants"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 7)
	if err != nil {
		return ""
	}
	return id
}

// GenerateGenerationID returns the store-agnostic id assigned to a logical
// booking before fan-out. The timestamp keeps ids traceable in store dumps;
// the nanoid suffix keeps two bookings in the same second distinct.
func GenerateGenerationID(now time.Time) string {
	return fmt.Sprintf("%s%s_%s", constants.GenerationIDPrefix, now.Format("20060102150405"), GenerateID())
}

func GenerateConfirmationCode(now time.Time) string {
	return fmt.Sprintf("%s%s_%s", constants.ConfirmationCodePrefix, now.Format("20060102150405"), GenerateID())
}

// NumericID renders an id for stores that require integer ids. Numeric ids
// pass through; anything else maps to a stable FNV-1a hash so distinct ids
// never collapse onto a shared fallback value.
func NumericID(id string) int {
	if n, err := strconv.Atoi(id); err == nil && n >= 0 {
		return n
	}
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() & 0x7fffffff)
}
