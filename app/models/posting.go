package models

import "time"

// PostingState is embedded by every transactional entity (readings, invoices,
// receipts, expenses, settlements). A posted record is finalized: only an
// administrator may unpost it, and edits/deletes are refused for everyone else.
type PostingState struct {
	IsPosted bool       `gorm:"default:false;index" json:"is_posted"`
	PostedBy *uint      `gorm:"default:null" json:"posted_by,omitempty"`
	PostedAt *time.Time `gorm:"type:timestamp;default:null" json:"posted_at,omitempty"`
}

// MarkPosted stamps the record as posted by the given user.
func (p *PostingState) MarkPosted(userID uint, at time.Time) {
	p.IsPosted = true
	p.PostedBy = &userID
	p.PostedAt = &at
}

// MarkUnposted returns the record to draft state.
func (p *PostingState) MarkUnposted() {
	p.IsPosted = false
	p.PostedBy = nil
	p.PostedAt = nil
}
