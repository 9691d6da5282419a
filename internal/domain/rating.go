package domain

import "fmt"

// Rating is the ordinal performance rating on the 1-5 review scale.
type Rating int

const (
	RatingNotMet         Rating = 1
	RatingPartiallyMet   Rating = 2
	RatingAchieving      Rating = 3
	RatingHighPerforming Rating = 4
	RatingExceeding      Rating = 5
)

var ratingLabels = map[Rating]string{
	RatingNotMet:         "Not met",
	RatingPartiallyMet:   "Partially met",
	RatingAchieving:      "Achieving",
	RatingHighPerforming: "High Performing",
	RatingExceeding:      "Exceeding",
}

var ratingByLabel = map[string]Rating{
	"Not met":         RatingNotMet,
	"Partially met":   RatingPartiallyMet,
	"Achieving":       RatingAchieving,
	"High Performing": RatingHighPerforming,
	"Exceeding":       RatingExceeding,
}

// ParseRating resolves a review-scale label to its rating.
func ParseRating(label string) (Rating, error) {
	if r, ok := ratingByLabel[label]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("unknown performance rating %q", label)
}

// Valid reports whether the rating is on the 1-5 scale.
func (r Rating) Valid() bool {
	return r >= RatingNotMet && r <= RatingExceeding
}

// Score returns the rating as a numeric score for weighted calculations.
func (r Rating) Score() float64 {
	return float64(r)
}

// Step moves the rating by delta levels, clamped to the scale ends.
func (r Rating) Step(delta int) Rating {
	stepped := Rating(int(r) + delta)
	if stepped < RatingNotMet {
		return RatingNotMet
	}
	if stepped > RatingExceeding {
		return RatingExceeding
	}
	return stepped
}

// String returns the review-scale label, or a placeholder for invalid values.
func (r Rating) String() string {
	if label, ok := ratingLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// MarshalText encodes the rating as its label so JSON and YAML carry the
// review-scale names rather than bare integers.
func (r Rating) MarshalText() ([]byte, error) {
	label, ok := ratingLabels[r]
	if !ok {
		return nil, fmt.Errorf("cannot encode invalid performance rating %d", int(r))
	}
	return []byte(label), nil
}

// UnmarshalText decodes a review-scale label.
func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
