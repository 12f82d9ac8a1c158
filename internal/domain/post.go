package domain

import "time"

// LostFound categories accepted by the form validator.
const (
	CategorySchool    = "School"
	CategoryCollege   = "College"
	CategoryOffice    = "Office"
	CategoryHostel    = "Hostel"
	CategoryApartment = "Apartment"
)

// LostFound post types.
const (
	TypeLost  = "Lost"
	TypeFound = "Found"
)

// LostFoundPost is a lost-and-found entry. Image holds the stored filename of
// the optional attachment; nil means no file was uploaded.
type LostFoundPost struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Type        string    `gorm:"type:varchar(10);not null" json:"type"`
	Item        string    `gorm:"type:varchar(200);not null" json:"item"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Image       *string   `gorm:"type:text" json:"image"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the original table name instead of gorm's pluralization.
func (LostFoundPost) TableName() string { return "lostfound" }

// Complaint is a reported issue, optionally with an attached image.
type Complaint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Issue     string    `gorm:"type:text;not null" json:"issue"`
	Image     *string   `gorm:"type:text" json:"image"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Complaint) TableName() string { return "complaint" }

// HelpPost is a help-and-sharing request. ShareFile holds the stored filename
// of the optional shared attachment.
type HelpPost struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	ShareFile *string   `gorm:"type:text" json:"share_file"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (HelpPost) TableName() string { return "help" }

// Comment is attached to a post by id only. The reference is deliberately
// weak: posts are never deleted, so no foreign key is enforced.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index" json:"post_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }
