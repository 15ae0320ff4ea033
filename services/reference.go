package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"student-concern-api/models"

	"gorm.io/gorm"
)

// Concern numbers look like SC-MLCGEX8B-5W3W: a base36 millisecond
// timestamp plus a random base36 suffix, both upper-cased. The time
// component makes collisions unlikely; the random suffix covers
// same-millisecond submissions. Uniqueness is still verified against the
// store before use.
const (
	referenceRetryBudget  = 5
	referenceSuffixLength = 4
)

var base36Alphabet = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// NewConcernNumber builds one candidate concern number.
func NewConcernNumber(now time.Time) (string, error) {
	suffix := make([]byte, referenceSuffixLength)
	for i := range suffix {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Alphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate concern number suffix: %w", err)
		}
		suffix[i] = base36Alphabet[n.Int64()]
	}

	stamp := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	return fmt.Sprintf("SC-%s-%s", stamp, string(suffix)), nil
}

// GenerateConcernNumber returns a concern number unused in the store,
// regenerating on collision up to a bounded budget. The concerns table also
// carries a unique index on concern_number as the final authority.
func GenerateConcernNumber(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < referenceRetryBudget; attempt++ {
		number, err := NewConcernNumber(time.Now())
		if err != nil {
			return "", err
		}

		var count int64
		if err := db.Model(&models.Concern{}).
			Where("concern_number = ?", number).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check concern number: %w", err)
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", ErrReferenceCollision
}
