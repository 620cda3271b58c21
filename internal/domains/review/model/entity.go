package model

import (
	"time"

	"github.com/google/uuid"
)

// Review represents a listing review entity.
// Likes, replies and reports are nested documents stored on the review row.
type Review struct {
	ID           uuid.UUID `json:"id"`
	ListingID    uuid.UUID `json:"listing_id"`
	ListingTitle string    `json:"listing_title"` // snapshot at review time, not kept in sync with renames
	AuthorID     uuid.UUID `json:"author_id"`
	AuthorName   string    `json:"author_name"`

	// Content
	Rating  int      `json:"rating"` // 1-5
	Content string   `json:"content"`
	Images  []string `json:"images"`

	// Engagement & moderation
	Likes   []uuid.UUID `json:"likes"` // set semantics, keyed on user id
	Replies []Reply     `json:"replies"`
	Reports []Report    `json:"reports"`
	Hidden  bool        `json:"hidden"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Reply is a threaded comment nested inside a Review.
// It carries its own report ledger, independent of the parent review's.
type Reply struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	Reports    []Report  `json:"reports"`
	Hidden     bool      `json:"hidden"`
	CreatedAt  time.Time `json:"created_at"`
}

// Report is one user's flag of a review or reply.
// At most one report per user per target.
type Report struct {
	UserID    uuid.UUID `json:"user_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// IsOwnedBy checks content ownership for edit/delete gating
func (r *Review) IsOwnedBy(userID uuid.UUID) bool {
	return r.AuthorID == userID
}

// HasReportFrom reports whether userID already reported this review
func (r *Review) HasReportFrom(userID uuid.UUID) bool {
	return hasReportFrom(r.Reports, userID)
}

// AddReport appends a report and flips Hidden the instant the count
// reaches HideThreshold, in the same mutation. Returns ErrDuplicateReport
// if the reporter already reported this review.
func (r *Review) AddReport(report Report) (bool, error) {
	if r.HasReportFrom(report.UserID) {
		return r.Hidden, ErrDuplicateReport
	}

	r.Reports = append(r.Reports, report)
	if len(r.Reports) >= HideThreshold {
		r.Hidden = true
	}

	return r.Hidden, nil
}

// ToggleLike adds userID to the likes set if absent, removes it if present.
// Returns the new membership state and the new set size.
func (r *Review) ToggleLike(userID uuid.UUID) (bool, int) {
	for i, id := range r.Likes {
		if id == userID {
			r.Likes = append(r.Likes[:i], r.Likes[i+1:]...)
			return false, len(r.Likes)
		}
	}

	r.Likes = append(r.Likes, userID)
	return true, len(r.Likes)
}

// AddReply appends a reply; insertion order is chronological order
func (r *Review) AddReply(reply Reply) {
	r.Replies = append(r.Replies, reply)
}

// FindReply returns a pointer into the replies slice so the caller
// can mutate the reply in place before persisting the review.
func (r *Review) FindReply(replyID uuid.UUID) (*Reply, bool) {
	for i := range r.Replies {
		if r.Replies[i].ID == replyID {
			return &r.Replies[i], true
		}
	}
	return nil, false
}

// Restore clears the report ledger and unhides the review
func (r *Review) Restore() {
	r.Reports = []Report{}
	r.Hidden = false
}

// HasReportFrom reports whether userID already reported this reply
func (p *Reply) HasReportFrom(userID uuid.UUID) bool {
	return hasReportFrom(p.Reports, userID)
}

// AddReport mirrors Review.AddReport; the threshold rule is evaluated
// independently of the parent review's hidden state.
func (p *Reply) AddReport(report Report) (bool, error) {
	if p.HasReportFrom(report.UserID) {
		return p.Hidden, ErrDuplicateReport
	}

	p.Reports = append(p.Reports, report)
	if len(p.Reports) >= HideThreshold {
		p.Hidden = true
	}

	return p.Hidden, nil
}

func hasReportFrom(reports []Report, userID uuid.UUID) bool {
	for _, report := range reports {
		if report.UserID == userID {
			return true
		}
	}
	return false
}
