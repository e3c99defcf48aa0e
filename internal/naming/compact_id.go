package naming

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"time"
)

// NewCompactID returns a time-ordered compact ID (12 chars, base36) for
// resource naming. Format: 7-char timestamp (base36) + 5-char random
// (base36). Lowercase only, second-level ordering.
func NewCompactID() (string, error) {
	timestamp := time.Now().UTC().Unix()

	if timestamp < 0 {
		return "", fmt.Errorf("negative timestamp not supported")
	}
	if timestamp >= 78364164096 { // 36^7
		return "", fmt.Errorf("timestamp too large for 7-char base36 encoding")
	}

	timeStr := strconv.FormatInt(timestamp, 36)
	timeStr = fmt.Sprintf("%07s", timeStr)

	randomBytes := make([]byte, 3)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}

	var randomInt uint64
	for _, b := range randomBytes {
		randomInt = randomInt*256 + uint64(b)
	}
	randomInt = randomInt % (36 * 36 * 36 * 36 * 36)

	randomStr := strconv.FormatUint(randomInt, 36)
	randomStr = fmt.Sprintf("%05s", randomStr)

	return timeStr + randomStr, nil
}
