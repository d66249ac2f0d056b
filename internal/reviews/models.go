package reviews

import "time"

// Status is the moderation state of a review. New reviews start pending and
// become publicly visible only once approved.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Review is a moderated product review. At most one review exists per
// (user, product) pair.
type Review struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	ProductID  string     `json:"product_id"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment"`
	Status     Status     `json:"status"`
	AdminID    string     `json:"admin_id,omitempty"`
	AdminReply string     `json:"admin_reply,omitempty"`
	RepliedAt  *time.Time `json:"replied_at,omitempty"`

	// Display fields joined for listings
	UserName    string `json:"user_name,omitempty"`
	UserAvatar  string `json:"user_avatar,omitempty"`
	AdminName   string `json:"admin_name,omitempty"`
	AdminAvatar string `json:"admin_avatar,omitempty"`
	ProductName string `json:"product_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
