package content

import (
	"net/mail"
	"net/url"
	"unicode"
	"unicode/utf8"
)

const (
	MaxNameLength    = 200
	MaxTitleLength   = 300
	MaxSubjectLength = 300
	MaxTextLength    = 5000
	MaxURLLength     = 2000
	MinRating        = 1
	MaxRating        = 5
)

func validateText(label, s string, max int, required bool) error {
	if s == "" {
		if required {
			return validationErrorf("%s must not be empty", label)
		}
		return nil
	}
	if len(s) > max {
		return validationErrorf("%s exceeds maximum length of %d", label, max)
	}
	if !utf8.ValidString(s) {
		return validationErrorf("%s contains invalid UTF-8", label)
	}
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\r' && r != '\t' {
			return validationErrorf("%s contains control character", label)
		}
	}
	return nil
}

func validateEmail(label, s string, required bool) error {
	if s == "" {
		if required {
			return validationErrorf("%s must not be empty", label)
		}
		return nil
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return validationErrorf("%s is not a valid email address", label)
	}
	return nil
}

func validateURL(label, s string) error {
	if s == "" {
		return nil
	}
	if len(s) > MaxURLLength {
		return validationErrorf("%s exceeds maximum length of %d", label, MaxURLLength)
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return validationErrorf("%s must be an absolute http(s) URL", label)
	}
	return nil
}

func validateRating(rating int, required bool) error {
	if rating == 0 && !required {
		return nil
	}
	if rating < MinRating || rating > MaxRating {
		return validationErrorf("rating must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

func (p *Profile) Validate() error {
	if err := validateText("name", p.Name, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateText("title", p.Title, MaxTitleLength, true); err != nil {
		return err
	}
	if err := validateText("bio", p.Bio, MaxTextLength, true); err != nil {
		return err
	}
	if err := validateEmail("email", p.Email, true); err != nil {
		return err
	}
	if err := validateText("phone", p.Phone, MaxNameLength, false); err != nil {
		return err
	}
	if err := validateText("location", p.Location, MaxNameLength, false); err != nil {
		return err
	}
	return validateURL("image_url", p.ImageURL)
}

func (e *Experience) Validate() error {
	if err := validateText("title", e.Title, MaxTitleLength, true); err != nil {
		return err
	}
	if err := validateText("company", e.Company, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateText("description", e.Description, MaxTextLength, true); err != nil {
		return err
	}
	if err := validateText("duration", e.Duration, MaxNameLength, true); err != nil {
		return err
	}
	return validateURL("logo_url", e.LogoURL)
}

func (tech *Technology) Validate() error {
	if err := validateText("name", tech.Name, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateText("icon_name", tech.IconName, MaxNameLength, true); err != nil {
		return err
	}
	return validateText("category", tech.Category, MaxNameLength, false)
}

func (p *Project) Validate() error {
	if err := validateText("title", p.Title, MaxTitleLength, true); err != nil {
		return err
	}
	if err := validateText("description", p.Description, MaxTextLength, true); err != nil {
		return err
	}
	for _, field := range []struct{ label, value string }{
		{"image_url", p.ImageURL},
		{"project_url", p.ProjectURL},
		{"github_url", p.GithubURL},
	} {
		if err := validateURL(field.label, field.value); err != nil {
			return err
		}
	}
	return nil
}

func (f *FunFact) Validate() error {
	if err := validateText("category", f.Category, MaxNameLength, true); err != nil {
		return err
	}
	return validateText("name", f.Name, MaxTitleLength, true)
}

func (e *Education) Validate() error {
	if err := validateText("degree", e.Degree, MaxTitleLength, true); err != nil {
		return err
	}
	if err := validateText("institution", e.Institution, MaxNameLength, true); err != nil {
		return err
	}
	return validateText("description", e.Description, MaxTextLength, false)
}

func (c *Certification) Validate() error {
	if err := validateText("name", c.Name, MaxTitleLength, true); err != nil {
		return err
	}
	if err := validateText("platform", c.Platform, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateURL("logo_url", c.LogoURL); err != nil {
		return err
	}
	return validateURL("certificate_url", c.CertificateURL)
}

func (t *Testimonial) Validate() error {
	if err := validateText("name", t.Name, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateText("role", t.Role, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateText("content", t.Content, MaxTextLength, true); err != nil {
		return err
	}
	if err := validateRating(t.Rating, false); err != nil {
		return err
	}
	return validateURL("avatar_url", t.AvatarURL)
}

func (c *Connection) Validate() error {
	if err := validateText("name", c.Name, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateEmail("email", c.Email, true); err != nil {
		return err
	}
	if err := validateText("subject", c.Subject, MaxSubjectLength, true); err != nil {
		return err
	}
	return validateText("message", c.Message, MaxTextLength, true)
}

// ValidStatus reports whether s is a known connection status.
func (Connection) ValidStatus(s ConnectionStatus) bool {
	switch s {
	case ConnectionUnread, ConnectionRead, ConnectionReplied, ConnectionArchived:
		return true
	}
	return false
}

func (r *Review) Validate() error {
	if err := validateText("name", r.Name, MaxNameLength, true); err != nil {
		return err
	}
	if err := validateEmail("email", r.Email, true); err != nil {
		return err
	}
	if err := validateText("content", r.Content, MaxTextLength, true); err != nil {
		return err
	}
	if err := validateRating(r.Rating, false); err != nil {
		return err
	}
	return validateURL("avatar_url", r.AvatarURL)
}

// ValidStatus reports whether s is a known review status.
func (Review) ValidStatus(s ReviewStatus) bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

func (f *Feedback) Validate() error {
	if err := validateText("name", f.Name, MaxNameLength, false); err != nil {
		return err
	}
	if err := validateText("type", f.Type, MaxNameLength, false); err != nil {
		return err
	}
	if err := validateEmail("email", f.Email, false); err != nil {
		return err
	}
	if err := validateText("subject", f.Subject, MaxSubjectLength, false); err != nil {
		return err
	}
	if err := validateText("content", f.Content, MaxTextLength, true); err != nil {
		return err
	}
	if f.Priority != "" {
		switch f.Priority {
		case PriorityLow, PriorityMedium, PriorityHigh:
		default:
			return validationErrorf("invalid priority %q", f.Priority)
		}
	}
	return nil
}

// ValidStatus reports whether s is a known feedback status.
func (Feedback) ValidStatus(s FeedbackStatus) bool {
	switch s {
	case FeedbackNew, FeedbackReviewed, FeedbackResolved, FeedbackArchived:
		return true
	}
	return false
}

func (s *Stat) Validate() error {
	return validateText("metric_name", s.MetricName, MaxNameLength, true)
}
