package api

import (
	"log/slog"
	"net/http"

	"github.com/jmcleod/folio/content"
)

// GetProfile handles GET /profile.
func (a *API) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := a.store.Profile()
	if err != nil {
		mapError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// listHandler builds a GET handler that serializes the result of list.
func listHandler[T any](list func() ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := list()
		if err != nil {
			mapError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

// ListExperiences handles GET /experiences.
func (a *API) ListExperiences(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Experiences)(w, r)
}

// ListTechnologies handles GET /technologies.
func (a *API) ListTechnologies(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Technologies)(w, r)
}

// ListProjects handles GET /projects.
func (a *API) ListProjects(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Projects)(w, r)
}

// ListFeaturedProjects handles GET /projects/featured.
func (a *API) ListFeaturedProjects(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.FeaturedProjects)(w, r)
}

// ListFunFacts handles GET /fun-facts.
func (a *API) ListFunFacts(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.FunFacts)(w, r)
}

// ListEducation handles GET /education.
func (a *API) ListEducation(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.EducationEntries)(w, r)
}

// ListCertifications handles GET /certifications.
func (a *API) ListCertifications(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Certifications)(w, r)
}

// ListTestimonials handles GET /testimonials. Only approved
// testimonials are visible publicly.
func (a *API) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.ApprovedTestimonials)(w, r)
}

// ListApprovedReviews handles GET /reviews. Pending and rejected
// reviews never leave the moderation queue.
func (a *API) ListApprovedReviews(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.ApprovedReviews)(w, r)
}

// ListStats handles GET /stats.
func (a *API) ListStats(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Stats)(w, r)
}

// SubmitContact handles POST /contact.
func (a *API) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if !a.throttle(w, r, contactPolicy) {
		return
	}
	record, ok := decodeJSON[content.Connection](w, r, maxContentBodySize)
	if !ok {
		return
	}
	if err := a.store.SubmitConnection(&record); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditSubmissionStored, r,
		slog.String("kind", "contact"),
		slog.String("record_id", record.ID))
	writeJSON(w, http.StatusCreated, SubmissionResponse{ID: record.ID})
}

// SubmitReview handles POST /reviews.
func (a *API) SubmitReview(w http.ResponseWriter, r *http.Request) {
	if !a.throttle(w, r, reviewPolicy) {
		return
	}
	record, ok := decodeJSON[content.Review](w, r, maxContentBodySize)
	if !ok {
		return
	}
	if err := a.store.SubmitReview(&record); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditSubmissionStored, r,
		slog.String("kind", "review"),
		slog.String("record_id", record.ID))
	writeJSON(w, http.StatusCreated, SubmissionResponse{ID: record.ID})
}

// SubmitFeedback handles POST /feedback.
func (a *API) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	if !a.throttle(w, r, feedbackPolicy) {
		return
	}
	record, ok := decodeJSON[content.Feedback](w, r, maxContentBodySize)
	if !ok {
		return
	}
	if err := a.store.SubmitFeedback(&record); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditSubmissionStored, r,
		slog.String("kind", "feedback"),
		slog.String("record_id", record.ID))
	writeJSON(w, http.StatusCreated, SubmissionResponse{ID: record.ID})
}
