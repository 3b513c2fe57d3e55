package content

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jmcleod/folio/storage"
)

// profileID is the fixed identity of the singleton profile record.
const profileID = "profile"

// doc is satisfied by every record type through its embedded Meta.
type doc interface {
	docID() string
	setDocID(id string)
	touch(now time.Time)
}

// Store provides typed access to portfolio records over a generic
// document repository.
type Store struct {
	repo  storage.Repository
	now   func() time.Time
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, used by tests for deterministic
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a Store backed by repo.
func NewStore(repo storage.Repository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func saveDoc[T any, P interface {
	*T
	doc
}](s *Store, collection string, record P) error {
	if record.docID() == "" {
		record.setDocID(s.newID())
	}
	record.touch(s.now().UTC())

	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", collection, err)
	}
	return s.repo.Put(collection, record.docID(), raw)
}

func getDoc[T any](s *Store, collection, id string) (*T, error) {
	raw, err := s.repo.Get(collection, id)
	if err != nil {
		return nil, err
	}
	var record T
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decoding %s record %s: %w", collection, id, err)
	}
	return &record, nil
}

func listDocs[T any](s *Store, collection string) ([]T, error) {
	raws, err := s.repo.List(collection)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0, len(raws))
	for id, raw := range raws {
		var record T
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("decoding %s record %s: %w", collection, id, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// sortOrdered sorts records by their sort order, falling back to creation
// time so freshly added records keep a stable position.
func sortOrdered[T any](records []T, order func(T) int, created func(T) time.Time) {
	sort.SliceStable(records, func(i, j int) bool {
		if a, b := order(records[i]), order(records[j]); a != b {
			return a < b
		}
		return created(records[i]).Before(created(records[j]))
	})
}

// Profile returns the singleton profile record.
func (s *Store) Profile() (*Profile, error) {
	return getDoc[Profile](s, CollectionProfiles, profileID)
}

// SaveProfile validates and persists the singleton profile record.
func (s *Store) SaveProfile(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.ID = profileID
	return saveDoc(s, CollectionProfiles, p)
}

// Experiences returns all work-history entries in display order.
func (s *Store) Experiences() ([]Experience, error) {
	records, err := listDocs[Experience](s, CollectionExperiences)
	if err != nil {
		return nil, err
	}
	sortOrdered(records,
		func(e Experience) int { return e.SortOrder },
		func(e Experience) time.Time { return e.CreatedAt })
	return records, nil
}

// SaveExperience validates and persists an experience, assigning an ID if
// the record is new.
func (s *Store) SaveExperience(e *Experience) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionExperiences, e)
}

// DeleteExperience removes an experience by ID.
func (s *Store) DeleteExperience(id string) error {
	return s.repo.Delete(CollectionExperiences, id)
}

// Technologies returns all technology records sorted by name.
func (s *Store) Technologies() ([]Technology, error) {
	records, err := listDocs[Technology](s, CollectionTechnologies)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	return records, nil
}

// SaveTechnology validates and persists a technology.
func (s *Store) SaveTechnology(t *Technology) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionTechnologies, t)
}

// DeleteTechnology removes a technology by ID.
func (s *Store) DeleteTechnology(id string) error {
	return s.repo.Delete(CollectionTechnologies, id)
}

// Projects returns all projects in display order.
func (s *Store) Projects() ([]Project, error) {
	records, err := listDocs[Project](s, CollectionProjects)
	if err != nil {
		return nil, err
	}
	sortOrdered(records,
		func(p Project) int { return p.SortOrder },
		func(p Project) time.Time { return p.CreatedAt })
	return records, nil
}

// FeaturedProjects returns only projects flagged as featured, in display
// order.
func (s *Store) FeaturedProjects() ([]Project, error) {
	records, err := s.Projects()
	if err != nil {
		return nil, err
	}
	featured := records[:0]
	for _, p := range records {
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}
	return featured, nil
}

// SaveProject validates and persists a project.
func (s *Store) SaveProject(p *Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionProjects, p)
}

// DeleteProject removes a project by ID.
func (s *Store) DeleteProject(id string) error {
	return s.repo.Delete(CollectionProjects, id)
}

// FunFacts returns all fun facts in display order.
func (s *Store) FunFacts() ([]FunFact, error) {
	records, err := listDocs[FunFact](s, CollectionFunFacts)
	if err != nil {
		return nil, err
	}
	sortOrdered(records,
		func(f FunFact) int { return f.SortOrder },
		func(f FunFact) time.Time { return f.CreatedAt })
	return records, nil
}

// SaveFunFact validates and persists a fun fact.
func (s *Store) SaveFunFact(f *FunFact) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionFunFacts, f)
}

// DeleteFunFact removes a fun fact by ID.
func (s *Store) DeleteFunFact(id string) error {
	return s.repo.Delete(CollectionFunFacts, id)
}

// EducationEntries returns the education timeline in display order.
func (s *Store) EducationEntries() ([]Education, error) {
	records, err := listDocs[Education](s, CollectionEducation)
	if err != nil {
		return nil, err
	}
	sortOrdered(records,
		func(e Education) int { return e.SortOrder },
		func(e Education) time.Time { return e.CreatedAt })
	return records, nil
}

// SaveEducation validates and persists an education entry.
func (s *Store) SaveEducation(e *Education) error {
	if err := e.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionEducation, e)
}

// DeleteEducation removes an education entry by ID.
func (s *Store) DeleteEducation(id string) error {
	return s.repo.Delete(CollectionEducation, id)
}

// Certifications returns all certifications in display order.
func (s *Store) Certifications() ([]Certification, error) {
	records, err := listDocs[Certification](s, CollectionCertifications)
	if err != nil {
		return nil, err
	}
	sortOrdered(records,
		func(c Certification) int { return c.SortOrder },
		func(c Certification) time.Time { return c.CreatedAt })
	return records, nil
}

// SaveCertification validates and persists a certification.
func (s *Store) SaveCertification(c *Certification) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionCertifications, c)
}

// DeleteCertification removes a certification by ID.
func (s *Store) DeleteCertification(id string) error {
	return s.repo.Delete(CollectionCertifications, id)
}

// Testimonials returns every testimonial, including unapproved ones, in
// display order. Intended for the admin surface.
func (s *Store) Testimonials() ([]Testimonial, error) {
	records, err := listDocs[Testimonial](s, CollectionTestimonials)
	if err != nil {
		return nil, err
	}
	sortOrdered(records,
		func(t Testimonial) int { return t.SortOrder },
		func(t Testimonial) time.Time { return t.CreatedAt })
	return records, nil
}

// ApprovedTestimonials returns only testimonials cleared for public
// display.
func (s *Store) ApprovedTestimonials() ([]Testimonial, error) {
	records, err := s.Testimonials()
	if err != nil {
		return nil, err
	}
	approved := records[:0]
	for _, t := range records {
		if t.IsApproved {
			approved = append(approved, t)
		}
	}
	return approved, nil
}

// SaveTestimonial validates and persists a testimonial.
func (s *Store) SaveTestimonial(t *Testimonial) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return saveDoc(s, CollectionTestimonials, t)
}

// DeleteTestimonial removes a testimonial by ID.
func (s *Store) DeleteTestimonial(id string) error {
	return s.repo.Delete(CollectionTestimonials, id)
}

// Stats returns every portfolio metric sorted by name.
func (s *Store) Stats() ([]Stat, error) {
	records, err := listDocs[Stat](s, CollectionStats)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].MetricName < records[j].MetricName })
	return records, nil
}

// UpsertStat validates and persists a metric, keyed by metric name so
// repeated writes update the same record.
func (s *Store) UpsertStat(stat *Stat) error {
	if err := stat.Validate(); err != nil {
		return err
	}
	stat.ID = stat.MetricName
	return saveDoc(s, CollectionStats, stat)
}

// DeleteStat removes a metric by its name.
func (s *Store) DeleteStat(metricName string) error {
	return s.repo.Delete(CollectionStats, metricName)
}

// SubmitConnection validates and stores a contact-form message. New
// messages always start unread regardless of what the caller supplied.
func (s *Store) SubmitConnection(c *Connection) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.ID = ""
	c.Status = ConnectionUnread
	return saveDoc(s, CollectionConnections, c)
}

// Connections returns every contact message, newest first.
func (s *Store) Connections() ([]Connection, error) {
	records, err := listDocs[Connection](s, CollectionConnections)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

// UpdateConnectionStatus moves a contact message to a new moderation
// state.
func (s *Store) UpdateConnectionStatus(id string, status ConnectionStatus) error {
	if !(Connection{}).ValidStatus(status) {
		return validationErrorf("invalid connection status %q", status)
	}
	record, err := getDoc[Connection](s, CollectionConnections, id)
	if err != nil {
		return err
	}
	record.Status = status
	return saveDoc(s, CollectionConnections, record)
}

// DeleteConnection removes a contact message by ID.
func (s *Store) DeleteConnection(id string) error {
	return s.repo.Delete(CollectionConnections, id)
}

// SubmitReview validates and stores a visitor review. Submissions always
// enter the moderation queue as pending.
func (s *Store) SubmitReview(r *Review) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.ID = ""
	r.Status = ReviewPending
	return saveDoc(s, CollectionReviews, r)
}

// Reviews returns every review regardless of status, newest first.
// Intended for the admin surface.
func (s *Store) Reviews() ([]Review, error) {
	records, err := listDocs[Review](s, CollectionReviews)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

// ApprovedReviews returns only reviews cleared for public display.
func (s *Store) ApprovedReviews() ([]Review, error) {
	records, err := s.Reviews()
	if err != nil {
		return nil, err
	}
	approved := records[:0]
	for _, r := range records {
		if r.Status == ReviewApproved {
			approved = append(approved, r)
		}
	}
	return approved, nil
}

// UpdateReviewStatus moves a review to a new moderation state.
func (s *Store) UpdateReviewStatus(id string, status ReviewStatus) error {
	if !(Review{}).ValidStatus(status) {
		return validationErrorf("invalid review status %q", status)
	}
	record, err := getDoc[Review](s, CollectionReviews, id)
	if err != nil {
		return err
	}
	record.Status = status
	return saveDoc(s, CollectionReviews, record)
}

// DeleteReview removes a review by ID.
func (s *Store) DeleteReview(id string) error {
	return s.repo.Delete(CollectionReviews, id)
}

// SubmitFeedback validates and stores a feedback submission. New
// submissions start in the new state with a medium priority unless the
// submitter picked one.
func (s *Store) SubmitFeedback(f *Feedback) error {
	if err := f.Validate(); err != nil {
		return err
	}
	f.ID = ""
	f.Status = FeedbackNew
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	return saveDoc(s, CollectionFeedback, f)
}

// FeedbackEntries returns every feedback submission, newest first.
func (s *Store) FeedbackEntries() ([]Feedback, error) {
	records, err := listDocs[Feedback](s, CollectionFeedback)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].CreatedAt.After(records[j].CreatedAt) })
	return records, nil
}

// UpdateFeedbackStatus moves a feedback submission to a new triage state.
func (s *Store) UpdateFeedbackStatus(id string, status FeedbackStatus) error {
	if !(Feedback{}).ValidStatus(status) {
		return validationErrorf("invalid feedback status %q", status)
	}
	record, err := getDoc[Feedback](s, CollectionFeedback, id)
	if err != nil {
		return err
	}
	record.Status = status
	return saveDoc(s, CollectionFeedback, record)
}

// DeleteFeedback removes a feedback submission by ID.
func (s *Store) DeleteFeedback(id string) error {
	return s.repo.Delete(CollectionFeedback, id)
}
