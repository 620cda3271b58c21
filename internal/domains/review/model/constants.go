package model

const (
	// Rating
	MinRating = 1
	MaxRating = 5

	// HideThreshold is the report count at which a review or reply
	// is automatically hidden pending admin action. Applies identically
	// to reviews and replies.
	HideThreshold = 5

	// Content limits
	MinContentLength = 10
	MaxContentLength = 2000
	MaxReplyLength   = 1000
	MaxReasonLength  = 500
	MaxImages        = 5
)
