// Package httpserver exposes the workflow actions over HTTP JSON.
//
// All routes expect an x-user-id header forwarded by the gateway; it becomes
// the AuthContext actor for the mutation. Every response body is the uniform
// action Result — callers check the success flag, the HTTP status is 200 for
// any handled request.
//
// Routes:
//
//	GET  /candidates                      → list candidates
//	POST /candidates                      → register candidate
//	GET  /jobs                            → list postings
//	POST /jobs                            → create posting
//	PUT  /jobs/{id}                       → update posting
//	DELETE /jobs/{id}                     → delete posting
//	POST /jobs/{id}/status                → set posting status
//	POST /jobs/{id}/recount               → repair applicants counter
//	GET|POST /applications, PUT|DELETE /applications/{id},
//	POST /applications/{id}/status        → application CRUD + transition
//	GET|POST /pipelines, PUT|DELETE /pipelines/{id},
//	POST /pipelines/{id}/stage|next|previous, GET /pipelines/board
//	GET|POST /interviews, PUT|DELETE /interviews/{id},
//	POST /interviews/{id}/status
//	GET|POST /offers, PUT|DELETE /offers/{id}, POST /offers/{id}/status
package httpserver

import (
	"encoding/json"
	"net/http"

	"talenthub/pipeline-service/internal/workflow"
)

// Handler holds the action surface every route delegates to.
type Handler struct {
	actions *workflow.Actions
}

// NewHandler returns a configured Handler.
func NewHandler(actions *workflow.Actions) *Handler {
	return &Handler{actions: actions}
}

// RegisterRoutes mounts all pipeline-service routes on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /candidates", h.listCandidates)
	mux.HandleFunc("POST /candidates", h.withAuth(h.createCandidate))

	mux.HandleFunc("GET /jobs", h.listJobs)
	mux.HandleFunc("POST /jobs", h.withAuth(h.createJob))
	mux.HandleFunc("PUT /jobs/{id}", h.withAuth(h.updateJob))
	mux.HandleFunc("DELETE /jobs/{id}", h.withAuth(h.deleteJob))
	mux.HandleFunc("POST /jobs/{id}/status", h.withAuth(h.updateJobStatus))
	mux.HandleFunc("POST /jobs/{id}/recount", h.withAuth(h.recountJob))

	mux.HandleFunc("GET /applications", h.listApplications)
	mux.HandleFunc("POST /applications", h.withAuth(h.createApplication))
	mux.HandleFunc("PUT /applications/{id}", h.withAuth(h.updateApplication))
	mux.HandleFunc("DELETE /applications/{id}", h.withAuth(h.deleteApplication))
	mux.HandleFunc("POST /applications/{id}/status", h.withAuth(h.updateApplicationStatus))

	mux.HandleFunc("GET /pipelines", h.listPipelines)
	mux.HandleFunc("GET /pipelines/board", h.pipelineBoard)
	mux.HandleFunc("POST /pipelines", h.withAuth(h.createPipeline))
	mux.HandleFunc("PUT /pipelines/{id}", h.withAuth(h.updatePipeline))
	mux.HandleFunc("DELETE /pipelines/{id}", h.withAuth(h.deletePipeline))
	mux.HandleFunc("POST /pipelines/{id}/stage", h.withAuth(h.updatePipelineStage))
	mux.HandleFunc("POST /pipelines/{id}/next", h.withAuth(h.movePipelineNext))
	mux.HandleFunc("POST /pipelines/{id}/previous", h.withAuth(h.movePipelinePrevious))

	mux.HandleFunc("GET /interviews", h.listInterviews)
	mux.HandleFunc("POST /interviews", h.withAuth(h.createInterview))
	mux.HandleFunc("PUT /interviews/{id}", h.withAuth(h.updateInterview))
	mux.HandleFunc("DELETE /interviews/{id}", h.withAuth(h.deleteInterview))
	mux.HandleFunc("POST /interviews/{id}/status", h.withAuth(h.updateInterviewStatus))

	mux.HandleFunc("GET /offers", h.listOffers)
	mux.HandleFunc("POST /offers", h.withAuth(h.createOffer))
	mux.HandleFunc("PUT /offers/{id}", h.withAuth(h.updateOffer))
	mux.HandleFunc("DELETE /offers/{id}", h.withAuth(h.deleteOffer))
	mux.HandleFunc("POST /offers/{id}/status", h.withAuth(h.updateOfferStatus))
}

// ─── Middleware ──────────────────────────────────────────────────────────────

type authedHandler func(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext)

// withAuth requires the x-user-id header and hands it to the handler as the
// acting identity.
func (h *Handler) withAuth(fn authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := r.Header.Get("x-user-id")
		if actor == "" {
			writeError(w, "missing x-user-id header", http.StatusUnauthorized)
			return
		}
		fn(w, r, workflow.AuthContext{ActorID: actor})
	}
}

// ─── Candidate handlers ──────────────────────────────────────────────────────

func (h *Handler) listCandidates(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetCandidates(r.Context()))
}

func (h *Handler) createCandidate(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.CreateCandidateInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.CreateCandidate(r.Context(), auth, in))
}

// ─── JobPosting handlers ─────────────────────────────────────────────────────

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetJobPostings(r.Context()))
}

func (h *Handler) createJob(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.JobPostingInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.CreateJobPosting(r.Context(), auth, in))
}

func (h *Handler) updateJob(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.JobPostingInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.UpdateJobPosting(r.Context(), auth, r.PathValue("id"), in))
}

func (h *Handler) deleteJob(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.DeleteJobPosting(r.Context(), auth, r.PathValue("id")))
}

func (h *Handler) updateJobStatus(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}
	writeResult(w, h.actions.UpdateJobStatus(r.Context(), auth, r.PathValue("id"), status))
}

func (h *Handler) recountJob(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.RecountApplicants(r.Context(), auth, r.PathValue("id")))
}

// ─── Application handlers ────────────────────────────────────────────────────

func (h *Handler) listApplications(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetApplications(r.Context()))
}

func (h *Handler) createApplication(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.ApplicationInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.CreateApplication(r.Context(), auth, in))
}

func (h *Handler) updateApplication(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.ApplicationInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.UpdateApplication(r.Context(), auth, r.PathValue("id"), in))
}

func (h *Handler) deleteApplication(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.DeleteApplication(r.Context(), auth, r.PathValue("id")))
}

func (h *Handler) updateApplicationStatus(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}
	writeResult(w, h.actions.UpdateApplicationStatus(r.Context(), auth, r.PathValue("id"), status))
}

// ─── Pipeline handlers ───────────────────────────────────────────────────────

func (h *Handler) listPipelines(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetPipelines(r.Context()))
}

func (h *Handler) pipelineBoard(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetPipelineBoard(r.Context()))
}

func (h *Handler) createPipeline(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.PipelineInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.CreatePipeline(r.Context(), auth, in))
}

func (h *Handler) updatePipeline(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.PipelineInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.UpdatePipeline(r.Context(), auth, r.PathValue("id"), in))
}

func (h *Handler) deletePipeline(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.DeletePipeline(r.Context(), auth, r.PathValue("id")))
}

func (h *Handler) updatePipelineStage(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var body struct {
		Stage string `json:"stage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Stage == "" {
		writeError(w, "body must contain stage", http.StatusBadRequest)
		return
	}
	writeResult(w, h.actions.UpdatePipelineStage(r.Context(), auth, r.PathValue("id"), body.Stage))
}

func (h *Handler) movePipelineNext(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.MovePipelineNext(r.Context(), auth, r.PathValue("id")))
}

func (h *Handler) movePipelinePrevious(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.MovePipelinePrevious(r.Context(), auth, r.PathValue("id")))
}

// ─── Interview handlers ──────────────────────────────────────────────────────

func (h *Handler) listInterviews(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetInterviews(r.Context()))
}

func (h *Handler) createInterview(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.InterviewInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.CreateInterview(r.Context(), auth, in))
}

func (h *Handler) updateInterview(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.InterviewInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.UpdateInterview(r.Context(), auth, r.PathValue("id"), in))
}

func (h *Handler) deleteInterview(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.DeleteInterview(r.Context(), auth, r.PathValue("id")))
}

func (h *Handler) updateInterviewStatus(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}
	writeResult(w, h.actions.UpdateInterviewStatus(r.Context(), auth, r.PathValue("id"), status))
}

// ─── Offer handlers ──────────────────────────────────────────────────────────

func (h *Handler) listOffers(w http.ResponseWriter, r *http.Request) {
	writeResult(w, h.actions.GetOffers(r.Context()))
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.OfferInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.CreateOffer(r.Context(), auth, in))
}

func (h *Handler) updateOffer(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	var in workflow.OfferInput
	if !decode(w, r, &in) {
		return
	}
	writeResult(w, h.actions.UpdateOffer(r.Context(), auth, r.PathValue("id"), in))
}

func (h *Handler) deleteOffer(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	writeResult(w, h.actions.DeleteOffer(r.Context(), auth, r.PathValue("id")))
}

func (h *Handler) updateOfferStatus(w http.ResponseWriter, r *http.Request, auth workflow.AuthContext) {
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}
	writeResult(w, h.actions.UpdateOfferStatus(r.Context(), auth, r.PathValue("id"), status))
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, "invalid JSON body", http.StatusBadRequest)
		return false
	}
	return true
}

func decodeStatus(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		writeError(w, "body must contain status", http.StatusBadRequest)
		return "", false
	}
	return body.Status, true
}

func writeResult(w http.ResponseWriter, res workflow.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(res)
}

func writeError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(workflow.Result{Success: false, Error: msg})
}
