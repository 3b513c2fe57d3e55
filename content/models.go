// Package content defines the portfolio's domain records and the typed
// store that persists them through a storage.Repository.
package content

import "time"

// Collection names used as storage keys. These mirror the tables of the
// hosted relational deployment.
const (
	CollectionProfiles       = "profiles"
	CollectionExperiences    = "experiences"
	CollectionTechnologies   = "technologies"
	CollectionProjects       = "projects"
	CollectionFunFacts       = "fun_facts"
	CollectionEducation      = "education"
	CollectionCertifications = "certifications"
	CollectionTestimonials   = "testimonials"
	CollectionConnections    = "connections"
	CollectionReviews        = "reviews"
	CollectionFeedback       = "feedback"
	CollectionStats          = "portfolio_stats"
)

// Meta carries the identity and bookkeeping fields shared by every record.
type Meta struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meta) docID() string      { return m.ID }
func (m *Meta) setDocID(id string) { m.ID = id }

func (m *Meta) touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// Profile is the site owner's singleton bio record.
type Profile struct {
	Meta
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url,omitempty"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
}

// Experience is one entry on the work-history timeline.
type Experience struct {
	Meta
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	LogoURL       string   `json:"logo_url,omitempty"`
	Description   string   `json:"description"`
	Duration      string   `json:"duration"`
	RoleIconName  string   `json:"role_icon_name,omitempty"`
	StartDate     string   `json:"start_date,omitempty"`
	EndDate       string   `json:"end_date,omitempty"`
	IsCurrent     bool     `json:"is_current"`
	SortOrder     int      `json:"sort_order"`
	TechnologyIDs []string `json:"technology_ids,omitempty"`
}

// Technology is a named tool or stack element referenced by experiences and
// projects.
type Technology struct {
	Meta
	Name     string `json:"name"`
	IconName string `json:"icon_name"`
	Category string `json:"category,omitempty"`
}

// Project is a showcased piece of work.
type Project struct {
	Meta
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url,omitempty"`
	ProjectURL    string   `json:"project_url,omitempty"`
	GithubURL     string   `json:"github_url,omitempty"`
	IsFeatured    bool     `json:"is_featured"`
	SortOrder     int      `json:"sort_order"`
	TechnologyIDs []string `json:"technology_ids,omitempty"`
}

// FunFact is a single entry on the about page, grouped by category.
type FunFact struct {
	Meta
	Category         string `json:"category"`
	CategoryIconName string `json:"category_icon_name,omitempty"`
	Name             string `json:"name"`
	IconName         string `json:"icon_name,omitempty"`
	SortOrder        int    `json:"sort_order"`
}

// Education is one entry on the education timeline.
type Education struct {
	Meta
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	IsCurrent   bool   `json:"is_current"`
	IconName    string `json:"icon_name,omitempty"`
	SortOrder   int    `json:"sort_order"`
}

// Certification is a completed course or credential.
type Certification struct {
	Meta
	Name           string `json:"name"`
	Platform       string `json:"platform"`
	LogoURL        string `json:"logo_url,omitempty"`
	CertificateURL string `json:"certificate_url,omitempty"`
	IssueDate      string `json:"issue_date,omitempty"`
	ExpiryDate     string `json:"expiry_date,omitempty"`
	IsActive       bool   `json:"is_active"`
	SortOrder      int    `json:"sort_order"`
}

// Testimonial is a curated quote shown on the testimonials page.
type Testimonial struct {
	Meta
	Name       string `json:"name"`
	Role       string `json:"role"`
	Company    string `json:"company,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Content    string `json:"content"`
	Rating     int    `json:"rating,omitempty"`
	IsApproved bool   `json:"is_approved"`
	SortOrder  int    `json:"sort_order"`
}

// ConnectionStatus tracks the moderation state of a contact message.
type ConnectionStatus string

const (
	ConnectionUnread   ConnectionStatus = "unread"
	ConnectionRead     ConnectionStatus = "read"
	ConnectionReplied  ConnectionStatus = "replied"
	ConnectionArchived ConnectionStatus = "archived"
)

// Connection is a message submitted through the public contact form.
type Connection struct {
	Meta
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Subject string           `json:"subject"`
	Message string           `json:"message"`
	Status  ConnectionStatus `json:"status"`
}

// ReviewStatus tracks the moderation state of a visitor review.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Review is a visitor-submitted review awaiting moderation.
type Review struct {
	Meta
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      string       `json:"role,omitempty"`
	Company   string       `json:"company,omitempty"`
	AvatarURL string       `json:"avatar_url,omitempty"`
	Content   string       `json:"content"`
	Rating    int          `json:"rating,omitempty"`
	Status    ReviewStatus `json:"status"`
}

// FeedbackStatus tracks the triage state of a feedback submission.
type FeedbackStatus string

const (
	FeedbackNew      FeedbackStatus = "new"
	FeedbackReviewed FeedbackStatus = "reviewed"
	FeedbackResolved FeedbackStatus = "resolved"
	FeedbackArchived FeedbackStatus = "archived"
)

// FeedbackPriority is the triage priority of a feedback submission.
type FeedbackPriority string

const (
	PriorityLow    FeedbackPriority = "low"
	PriorityMedium FeedbackPriority = "medium"
	PriorityHigh   FeedbackPriority = "high"
)

// Feedback is an anonymous-or-named suggestion, bug report, or comment
// submitted through the feedback widget.
type Feedback struct {
	Meta
	Name     string           `json:"name,omitempty"`
	Email    string           `json:"email,omitempty"`
	Type     string           `json:"type"`
	Subject  string           `json:"subject,omitempty"`
	Content  string           `json:"content"`
	Priority FeedbackPriority `json:"priority"`
	Status   FeedbackStatus   `json:"status"`
}

// Stat is a single named metric shown on the stats page.
type Stat struct {
	Meta
	MetricName  string  `json:"metric_name"`
	MetricValue float64 `json:"metric_value"`
}
