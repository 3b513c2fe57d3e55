package content

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcleod/folio/storage"
	"github.com/jmcleod/folio/storage/memory"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	return NewStore(memory.NewRepository(), WithClock(clock.Now)), clock
}

func TestProfileRoundTrip(t *testing.T) {
	s, clock := newTestStore(t)

	_, err := s.Profile()
	assert.ErrorIs(t, err, storage.ErrNotFound)

	p := &Profile{
		Name:  "Jordan McLeod",
		Title: "Software Engineer",
		Bio:   "Builds things for the web.",
		Email: "jordan@example.com",
	}
	require.NoError(t, s.SaveProfile(p))
	assert.Equal(t, clock.Now(), p.CreatedAt)

	got, err := s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jordan McLeod", got.Name)

	// Saving again updates the same singleton record.
	clock.Advance(time.Hour)
	got.Title = "Staff Engineer"
	require.NoError(t, s.SaveProfile(got))

	got, err = s.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.Title)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
}

func TestProfileValidation(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.SaveProfile(&Profile{Name: "x", Title: "y", Bio: "z", Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.SaveProfile(&Profile{Title: "y", Bio: "z", Email: "a@b.co"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.SaveProfile(&Profile{
		Name: "x", Title: "y", Email: "a@b.co",
		Bio: strings.Repeat("a", MaxTextLength+1),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestExperiencesSortedByDisplayOrder(t *testing.T) {
	s, clock := newTestStore(t)

	for i, order := range []int{3, 1, 2} {
		clock.Advance(time.Minute)
		e := &Experience{
			Title:       "Engineer",
			Company:     "Co " + string(rune('A'+i)),
			Description: "Worked on systems.",
			Duration:    "2020 - 2021",
			SortOrder:   order,
		}
		require.NoError(t, s.SaveExperience(e))
		assert.NotEmpty(t, e.ID)
	}

	got, err := s.Experiences()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{got[0].SortOrder, got[1].SortOrder, got[2].SortOrder})
}

func TestSaveExperiencePreservesID(t *testing.T) {
	s, _ := newTestStore(t)

	e := &Experience{Title: "Engineer", Company: "Co", Description: "d", Duration: "2020"}
	require.NoError(t, s.SaveExperience(e))
	id := e.ID

	e.Company = "Other Co"
	require.NoError(t, s.SaveExperience(e))
	assert.Equal(t, id, e.ID)

	got, err := s.Experiences()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Other Co", got[0].Company)
}

func TestDeleteExperience(t *testing.T) {
	s, _ := newTestStore(t)

	e := &Experience{Title: "Engineer", Company: "Co", Description: "d", Duration: "2020"}
	require.NoError(t, s.SaveExperience(e))
	require.NoError(t, s.DeleteExperience(e.ID))

	got, err := s.Experiences()
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.ErrorIs(t, s.DeleteExperience(e.ID), storage.ErrNotFound)
}

func TestFeaturedProjects(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveProject(&Project{Title: "A", Description: "d", IsFeatured: true, SortOrder: 2}))
	require.NoError(t, s.SaveProject(&Project{Title: "B", Description: "d", SortOrder: 1}))
	require.NoError(t, s.SaveProject(&Project{Title: "C", Description: "d", IsFeatured: true, SortOrder: 1}))

	all, err := s.Projects()
	require.NoError(t, err)
	assert.Len(t, all, 3)

	featured, err := s.FeaturedProjects()
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "C", featured[0].Title)
	assert.Equal(t, "A", featured[1].Title)
}

func TestProjectURLValidation(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.SaveProject(&Project{Title: "A", Description: "d", ProjectURL: "javascript:alert(1)"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.SaveProject(&Project{Title: "A", Description: "d", GithubURL: "not a url"})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, s.SaveProject(&Project{
		Title: "A", Description: "d",
		ProjectURL: "https://folio.example.com",
	}))
}

func TestApprovedTestimonials(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.SaveTestimonial(&Testimonial{Name: "A", Role: "CTO", Content: "Great.", IsApproved: true}))
	require.NoError(t, s.SaveTestimonial(&Testimonial{Name: "B", Role: "PM", Content: "Fine."}))

	approved, err := s.ApprovedTestimonials()
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "A", approved[0].Name)

	all, err := s.Testimonials()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestTestimonialRatingBounds(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.SaveTestimonial(&Testimonial{Name: "A", Role: "CTO", Content: "c", Rating: 6})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, s.SaveTestimonial(&Testimonial{Name: "A", Role: "CTO", Content: "c", Rating: 5}))
	require.NoError(t, s.SaveTestimonial(&Testimonial{Name: "B", Role: "CTO", Content: "c"}))
}

func TestUpsertStatKeyedByMetricName(t *testing.T) {
	s, _ := newTestStore(t)

	require.NoError(t, s.UpsertStat(&Stat{MetricName: "visitors", MetricValue: 10}))
	require.NoError(t, s.UpsertStat(&Stat{MetricName: "visitors", MetricValue: 25}))
	require.NoError(t, s.UpsertStat(&Stat{MetricName: "stars", MetricValue: 3}))

	stats, err := s.Stats()
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "stars", stats[0].MetricName)
	assert.Equal(t, "visitors", stats[1].MetricName)
	assert.Equal(t, 25.0, stats[1].MetricValue)
}

func TestSubmitConnectionForcesUnread(t *testing.T) {
	s, clock := newTestStore(t)

	c := &Connection{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Subject: "Hello",
		Message: "Love the site.",
		Status:  ConnectionReplied,
	}
	require.NoError(t, s.SubmitConnection(c))
	assert.Equal(t, ConnectionUnread, c.Status)
	assert.NotEmpty(t, c.ID)

	clock.Advance(time.Minute)
	require.NoError(t, s.SubmitConnection(&Connection{
		Name: "Second", Email: "second@example.com", Subject: "Hi", Message: "m",
	}))

	got, err := s.Connections()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Second", got[0].Name)
}

func TestUpdateConnectionStatus(t *testing.T) {
	s, _ := newTestStore(t)

	c := &Connection{Name: "V", Email: "v@example.com", Subject: "s", Message: "m"}
	require.NoError(t, s.SubmitConnection(c))

	require.NoError(t, s.UpdateConnectionStatus(c.ID, ConnectionReplied))
	got, err := s.Connections()
	require.NoError(t, err)
	assert.Equal(t, ConnectionReplied, got[0].Status)

	assert.ErrorIs(t, s.UpdateConnectionStatus(c.ID, "bogus"), ErrValidation)
	assert.ErrorIs(t, s.UpdateConnectionStatus("missing", ConnectionRead), storage.ErrNotFound)
}

func TestReviewModeration(t *testing.T) {
	s, _ := newTestStore(t)

	r := &Review{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Content: "Nice work.",
		Rating:  4,
		Status:  ReviewApproved,
	}
	require.NoError(t, s.SubmitReview(r))
	assert.Equal(t, ReviewPending, r.Status, "submissions must enter the queue pending")

	approved, err := s.ApprovedReviews()
	require.NoError(t, err)
	assert.Empty(t, approved)

	require.NoError(t, s.UpdateReviewStatus(r.ID, ReviewApproved))
	approved, err = s.ApprovedReviews()
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Visitor", approved[0].Name)

	require.NoError(t, s.UpdateReviewStatus(r.ID, ReviewRejected))
	approved, err = s.ApprovedReviews()
	require.NoError(t, err)
	assert.Empty(t, approved)
}

func TestSubmitFeedbackDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	f := &Feedback{Content: "The dark theme is broken on mobile."}
	require.NoError(t, s.SubmitFeedback(f))
	assert.Equal(t, FeedbackNew, f.Status)
	assert.Equal(t, PriorityMedium, f.Priority)

	high := &Feedback{Content: "Contact form rejects my address.", Priority: PriorityHigh}
	require.NoError(t, s.SubmitFeedback(high))
	assert.Equal(t, PriorityHigh, high.Priority)

	err := s.SubmitFeedback(&Feedback{Content: "c", Priority: "urgent"})
	assert.ErrorIs(t, err, ErrValidation)

	err = s.SubmitFeedback(&Feedback{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateFeedbackStatus(t *testing.T) {
	s, _ := newTestStore(t)

	f := &Feedback{Content: "c"}
	require.NoError(t, s.SubmitFeedback(f))

	require.NoError(t, s.UpdateFeedbackStatus(f.ID, FeedbackResolved))
	got, err := s.FeedbackEntries()
	require.NoError(t, err)
	assert.Equal(t, FeedbackResolved, got[0].Status)

	assert.ErrorIs(t, s.UpdateFeedbackStatus(f.ID, "done"), ErrValidation)
}

func TestTextValidationRejectsControlCharacters(t *testing.T) {
	s, _ := newTestStore(t)

	err := s.SubmitConnection(&Connection{
		Name: "V\x00", Email: "v@example.com", Subject: "s", Message: "m",
	})
	assert.ErrorIs(t, err, ErrValidation)

	// Newlines and tabs are fine in message bodies.
	require.NoError(t, s.SubmitConnection(&Connection{
		Name: "V", Email: "v@example.com", Subject: "s", Message: "line one\nline two\t.",
	}))
}
