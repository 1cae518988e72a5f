package kernel

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"parceldelivery/internal/pkg/errs"
)

const (
	// TrackingIDPrefix starts every tracking identifier.
	TrackingIDPrefix = "PRC"

	trackingIDDateLayout  = "20060102"
	trackingIDSuffixBytes = 4
)

var trackingIDPattern = regexp.MustCompile(`^PRC-\d{8}-[0-9A-F]{8}$`)

// TrackingID is the human readable shipment identifier shared with customers,
// e.g. "PRC-20261016-9F03A2C1". The date part makes identifiers sort by the day
// they were issued; the random suffix gives 2^32 values per day.
type TrackingID struct {
	value string
}

// AllocateTrackingID issues a tracking identifier for the current UTC day.
func AllocateTrackingID() TrackingID {
	id, err := NewTrackingID(time.Now(), rand.Reader)
	if err != nil {
		// crypto/rand.Reader does not fail on supported platforms.
		panic(fmt.Sprintf("allocate tracking id: %v", err))
	}
	return id
}

// NewTrackingID builds an identifier for the UTC date of at, reading the suffix
// from entropy.
func NewTrackingID(at time.Time, entropy io.Reader) (TrackingID, error) {
	suffix := make([]byte, trackingIDSuffixBytes)
	if _, err := io.ReadFull(entropy, suffix); err != nil {
		return TrackingID{}, fmt.Errorf("read tracking id suffix: %w", err)
	}

	return TrackingID{
		value: TrackingIDPrefix + "-" +
			at.UTC().Format(trackingIDDateLayout) + "-" +
			strings.ToUpper(hex.EncodeToString(suffix)),
	}, nil
}

// TrackingIDFromString restores an identifier read from storage or a request.
func TrackingIDFromString(s string) (TrackingID, error) {
	if s == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}
	if !trackingIDPattern.MatchString(s) {
		return TrackingID{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingId",
			fmt.Errorf("%q does not match %s-YYYYMMDD-XXXXXXXX", s, TrackingIDPrefix),
		)
	}
	return TrackingID{value: s}, nil
}

func (t TrackingID) String() string {
	return t.value
}

func (t TrackingID) IsEqual(other TrackingID) bool {
	return t.value == other.value
}

func (t TrackingID) IsZero() bool {
	return t.value == ""
}

func (t TrackingID) Validate() error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("trackingId")
	}
	return nil
}
