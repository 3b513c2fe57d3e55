package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jmcleod/folio/content"
)

// adminSave decodes a record, applies the URL ID when updating an
// existing record, and persists it through save. The meta accessor
// gives the helper access to the record's identity fields.
func adminSave[T any](a *API, w http.ResponseWriter, r *http.Request, kind string,
	save func(*T) error, meta func(*T) *content.Meta) {
	record, ok := decodeJSON[T](w, r, maxContentBodySize)
	if !ok {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		meta(&record).ID = id
	}
	if err := save(&record); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentSaved, r,
		slog.String("kind", kind),
		slog.String("record_id", meta(&record).ID))

	status := http.StatusOK
	if r.Method == http.MethodPost {
		status = http.StatusCreated
	}
	writeJSON(w, status, record)
}

// adminDelete removes the record named by the URL ID.
func (a *API) adminDelete(w http.ResponseWriter, r *http.Request, kind string, del func(string) error) {
	id := chi.URLParam(r, "id")
	if err := del(id); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentDeleted, r,
		slog.String("kind", kind),
		slog.String("record_id", id))
	writeJSON(w, http.StatusOK, struct{}{})
}

// adminUpdateStatus applies a moderation state change to the record
// named by the URL ID.
func (a *API) adminUpdateStatus(w http.ResponseWriter, r *http.Request, kind string, update func(id, status string) error) {
	req, ok := decodeJSON[StatusUpdateRequest](w, r, maxAuthBodySize)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if err := update(id, req.Status); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditModerationUpdated, r,
		slog.String("kind", kind),
		slog.String("record_id", id),
		slog.String("status", req.Status))
	writeJSON(w, http.StatusOK, struct{}{})
}

// AdminSaveProfile handles PUT /admin/profile.
func (a *API) AdminSaveProfile(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeJSON[content.Profile](w, r, maxContentBodySize)
	if !ok {
		return
	}
	if err := a.store.SaveProfile(&record); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentSaved, r, slog.String("kind", "profile"))
	writeJSON(w, http.StatusOK, record)
}

// AdminSaveExperience handles POST /admin/experiences and
// PUT /admin/experiences/{id}.
func (a *API) AdminSaveExperience(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "experience", a.store.SaveExperience,
		func(e *content.Experience) *content.Meta { return &e.Meta })
}

// AdminDeleteExperience handles DELETE /admin/experiences/{id}.
func (a *API) AdminDeleteExperience(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "experience", a.store.DeleteExperience)
}

// AdminSaveTechnology handles POST /admin/technologies and
// PUT /admin/technologies/{id}.
func (a *API) AdminSaveTechnology(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "technology", a.store.SaveTechnology,
		func(t *content.Technology) *content.Meta { return &t.Meta })
}

// AdminDeleteTechnology handles DELETE /admin/technologies/{id}.
func (a *API) AdminDeleteTechnology(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "technology", a.store.DeleteTechnology)
}

// AdminSaveProject handles POST /admin/projects and
// PUT /admin/projects/{id}.
func (a *API) AdminSaveProject(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "project", a.store.SaveProject,
		func(p *content.Project) *content.Meta { return &p.Meta })
}

// AdminDeleteProject handles DELETE /admin/projects/{id}.
func (a *API) AdminDeleteProject(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "project", a.store.DeleteProject)
}

// AdminSaveFunFact handles POST /admin/fun-facts and
// PUT /admin/fun-facts/{id}.
func (a *API) AdminSaveFunFact(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "fun_fact", a.store.SaveFunFact,
		func(f *content.FunFact) *content.Meta { return &f.Meta })
}

// AdminDeleteFunFact handles DELETE /admin/fun-facts/{id}.
func (a *API) AdminDeleteFunFact(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "fun_fact", a.store.DeleteFunFact)
}

// AdminSaveEducation handles POST /admin/education and
// PUT /admin/education/{id}.
func (a *API) AdminSaveEducation(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "education", a.store.SaveEducation,
		func(e *content.Education) *content.Meta { return &e.Meta })
}

// AdminDeleteEducation handles DELETE /admin/education/{id}.
func (a *API) AdminDeleteEducation(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "education", a.store.DeleteEducation)
}

// AdminSaveCertification handles POST /admin/certifications and
// PUT /admin/certifications/{id}.
func (a *API) AdminSaveCertification(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "certification", a.store.SaveCertification,
		func(c *content.Certification) *content.Meta { return &c.Meta })
}

// AdminDeleteCertification handles DELETE /admin/certifications/{id}.
func (a *API) AdminDeleteCertification(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "certification", a.store.DeleteCertification)
}

// AdminSaveTestimonial handles POST /admin/testimonials and
// PUT /admin/testimonials/{id}.
func (a *API) AdminSaveTestimonial(w http.ResponseWriter, r *http.Request) {
	adminSave(a, w, r, "testimonial", a.store.SaveTestimonial,
		func(t *content.Testimonial) *content.Meta { return &t.Meta })
}

// AdminDeleteTestimonial handles DELETE /admin/testimonials/{id}.
func (a *API) AdminDeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "testimonial", a.store.DeleteTestimonial)
}

// AdminUpsertStat handles PUT /admin/stats.
func (a *API) AdminUpsertStat(w http.ResponseWriter, r *http.Request) {
	record, ok := decodeJSON[content.Stat](w, r, maxContentBodySize)
	if !ok {
		return
	}
	if err := a.store.UpsertStat(&record); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentSaved, r,
		slog.String("kind", "stat"),
		slog.String("metric", record.MetricName))
	writeJSON(w, http.StatusOK, record)
}

// AdminDeleteStat handles DELETE /admin/stats/{metric}.
func (a *API) AdminDeleteStat(w http.ResponseWriter, r *http.Request) {
	metric := chi.URLParam(r, "metric")
	if err := a.store.DeleteStat(metric); err != nil {
		mapError(w, err)
		return
	}
	a.audit.log(AuditContentDeleted, r,
		slog.String("kind", "stat"),
		slog.String("metric", metric))
	writeJSON(w, http.StatusOK, struct{}{})
}

// AdminListConnections handles GET /admin/connections.
func (a *API) AdminListConnections(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Connections)(w, r)
}

// AdminUpdateConnectionStatus handles PUT /admin/connections/{id}/status.
func (a *API) AdminUpdateConnectionStatus(w http.ResponseWriter, r *http.Request) {
	a.adminUpdateStatus(w, r, "connection", func(id, status string) error {
		return a.store.UpdateConnectionStatus(id, content.ConnectionStatus(status))
	})
}

// AdminDeleteConnection handles DELETE /admin/connections/{id}.
func (a *API) AdminDeleteConnection(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "connection", a.store.DeleteConnection)
}

// AdminListReviews handles GET /admin/reviews. Unlike the public list,
// this includes pending and rejected reviews.
func (a *API) AdminListReviews(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.Reviews)(w, r)
}

// AdminUpdateReviewStatus handles PUT /admin/reviews/{id}/status.
func (a *API) AdminUpdateReviewStatus(w http.ResponseWriter, r *http.Request) {
	a.adminUpdateStatus(w, r, "review", func(id, status string) error {
		return a.store.UpdateReviewStatus(id, content.ReviewStatus(status))
	})
}

// AdminDeleteReview handles DELETE /admin/reviews/{id}.
func (a *API) AdminDeleteReview(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "review", a.store.DeleteReview)
}

// AdminListFeedback handles GET /admin/feedback.
func (a *API) AdminListFeedback(w http.ResponseWriter, r *http.Request) {
	listHandler(a.store.FeedbackEntries)(w, r)
}

// AdminUpdateFeedbackStatus handles PUT /admin/feedback/{id}/status.
func (a *API) AdminUpdateFeedbackStatus(w http.ResponseWriter, r *http.Request) {
	a.adminUpdateStatus(w, r, "feedback", func(id, status string) error {
		return a.store.UpdateFeedbackStatus(id, content.FeedbackStatus(status))
	})
}

// AdminDeleteFeedback handles DELETE /admin/feedback/{id}.
func (a *API) AdminDeleteFeedback(w http.ResponseWriter, r *http.Request) {
	a.adminDelete(w, r, "feedback", a.store.DeleteFeedback)
}
