package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/quantslearn/quantslearn/internal/explain"
	"github.com/quantslearn/quantslearn/internal/llm"
	"github.com/quantslearn/quantslearn/internal/maplayout"
	"github.com/quantslearn/quantslearn/internal/progress"
	"github.com/quantslearn/quantslearn/internal/review"
	"github.com/quantslearn/quantslearn/internal/store"
	"github.com/quantslearn/quantslearn/internal/topicgraph"
	"github.com/quantslearn/quantslearn/internal/vectorstore"
)

// recommendLimit caps dashboard recommendations.
const recommendLimit = 3

// PassageSearcher is the slice of the vector store the explain handler
// needs.
type PassageSearcher interface {
	Search(ctx context.Context, vector []float32, opts vectorstore.SearchOptions) ([]vectorstore.Result, error)
}

// Explainer generates topic explanations.
type Explainer interface {
	Explain(ctx context.Context, input explain.Input) (*explain.Explanation, error)
}

// Handler serves the HTTP API.
type Handler struct {
	graph       *topicgraph.Graph
	layout      *maplayout.Layout
	edges       []maplayout.Edge
	stages      []topicgraph.Stage
	completions store.CompletionRepo
	activity    store.ActivityRepo
	reviews     store.ReviewRepo
	explainer   Explainer
	embedder    llm.Embedder
	searcher    PassageSearcher
	log         *zap.SugaredLogger
}

// NewHandler builds the API handler. The topic graph is static for the
// process lifetime, so the stage layout is computed once here.
// The explainer, embedder, and searcher may be nil; the endpoints that
// need them degrade accordingly.
func NewHandler(
	graph *topicgraph.Graph,
	spacing maplayout.Spacing,
	completions store.CompletionRepo,
	activity store.ActivityRepo,
	reviews store.ReviewRepo,
	explainer Explainer,
	embedder llm.Embedder,
	searcher PassageSearcher,
	log *zap.SugaredLogger,
) (*Handler, error) {
	stages := graph.Stages()
	layout, err := maplayout.Compute(stages, spacing)
	if err != nil {
		return nil, err
	}

	return &Handler{
		graph:       graph,
		layout:      layout,
		edges:       maplayout.Edges(graph, layout),
		stages:      stages,
		completions: completions,
		activity:    activity,
		reviews:     reviews,
		explainer:   explainer,
		embedder:    embedder,
		searcher:    searcher,
		log:         log,
	}, nil
}

// Healthcheck reports liveness.
func (h *Handler) Healthcheck(c *gin.Context) {
	respondOK(c, gin.H{"status": "ok"})
}

type topicView struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	Category      string              `json:"category"`
	CategoryName  string              `json:"category_name"`
	Prerequisites []string            `json:"prerequisites,omitempty"`
	Difficulty    int                 `json:"difficulty"`
	Priority      string              `json:"priority"`
	State         string              `json:"state"`
	Position      *maplayout.Position `json:"position,omitempty"`
}

// topicView renders a topic with its derived state. A non-nil layout
// attaches the topic's position.
func (h *Handler) topicView(t topicgraph.Topic, completed map[string]bool, layout *maplayout.Layout) topicView {
	v := topicView{
		ID:            t.ID,
		Name:          t.Name,
		Description:   t.Description,
		Category:      string(t.Category),
		CategoryName:  topicgraph.CategoryDisplayName(t.Category),
		Prerequisites: t.Prerequisites,
		Difficulty:    t.Difficulty,
		Priority:      string(t.Priority),
		State:         h.graph.State(t.ID, completed).String(),
	}
	if layout != nil {
		if pos, ok := layout.Positions[t.ID]; ok {
			v.Position = &pos
		}
	}
	return v
}

type stageView struct {
	Index  int         `json:"index"`
	Name   string      `json:"name"`
	Topics []topicView `json:"topics"`
}

// Mindmap returns the staged layout: every topic with its position and
// state, plus the dependency curves to draw between them. Spacing can
// be overridden per request with stage_gap, topic_gap, and node_size
// query parameters.
func (h *Handler) Mindmap(c *gin.Context) {
	layout, edges := h.layout, h.edges

	if spacing, ok, err := spacingFromQuery(c); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_spacing", err)
		return
	} else if ok {
		custom, err := maplayout.Compute(h.stages, spacing)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid_spacing", err)
			return
		}
		layout = custom
		edges = maplayout.Edges(h.graph, custom)
	}

	completed, err := h.completions.CompletedSet(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}

	stages := make([]stageView, len(h.stages))
	for i, s := range h.stages {
		sv := stageView{Index: s.Index, Name: s.Name, Topics: make([]topicView, len(s.Topics))}
		for j, t := range s.Topics {
			sv.Topics[j] = h.topicView(t, completed, layout)
		}
		stages[i] = sv
	}

	respondOK(c, gin.H{
		"bounds": layout.Bounds,
		"stages": stages,
		"edges":  edges,
	})
}

// spacingFromQuery reads optional spacing overrides. The second return
// is false when no override parameter is present; unset parameters fall
// back to the defaults.
func spacingFromQuery(c *gin.Context) (maplayout.Spacing, bool, error) {
	spacing := maplayout.DefaultSpacing()
	overridden := false

	for param, field := range map[string]*float64{
		"stage_gap": &spacing.StageGap,
		"topic_gap": &spacing.TopicGap,
		"node_size": &spacing.NodeSize,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return spacing, false, fmt.Errorf("parse %s: %w", param, err)
		}
		*field = v
		overridden = true
	}

	return spacing, overridden, nil
}

// ListTopics returns every topic with its current state, in registry
// order.
func (h *Handler) ListTopics(c *gin.Context) {
	completed, err := h.completions.CompletedSet(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}

	topics := h.graph.Topics()
	views := make([]topicView, len(topics))
	for i, t := range topics {
		views[i] = h.topicView(t, completed, nil)
	}
	respondOK(c, gin.H{"topics": views})
}

// CompleteTopic marks a topic completed and reports any topics the
// completion unlocked.
func (h *Handler) CompleteTopic(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	topic, err := h.graph.Topic(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "unknown_topic", err)
		return
	}

	before, err := h.completions.CompletedSet(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}

	if err := h.completions.MarkCompleted(ctx, topic.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	if !before[topic.ID] {
		if err := h.activity.Record(ctx, topic.ID, store.EventCompleted); err != nil {
			h.log.Warnw("record completion event", "topic", topic.ID, "error", err)
		}
		if err := h.reviews.Upsert(ctx, review.Initial(topic.ID, time.Now().UTC())); err != nil {
			h.log.Warnw("schedule review", "topic", topic.ID, "error", err)
		}
	}

	after := make(map[string]bool, len(before)+1)
	for k := range before {
		after[k] = true
	}
	after[topic.ID] = true

	var unlocked []string
	for _, dep := range h.graph.Dependents(topic.ID) {
		if !h.graph.IsUnlocked(dep.ID, before) && h.graph.IsUnlocked(dep.ID, after) {
			unlocked = append(unlocked, dep.ID)
		}
	}

	respondOK(c, gin.H{
		"topic_id": topic.ID,
		"state":    topicgraph.StateCompleted.String(),
		"unlocked": unlocked,
	})
}

// UncompleteTopic removes a completion.
func (h *Handler) UncompleteTopic(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	topic, err := h.graph.Topic(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "unknown_topic", err)
		return
	}

	before, err := h.completions.CompletedSet(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}

	if err := h.completions.Unmark(ctx, topic.ID); err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	if before[topic.ID] {
		if err := h.activity.Record(ctx, topic.ID, store.EventUncompleted); err != nil {
			h.log.Warnw("record uncompletion event", "topic", topic.ID, "error", err)
		}
		if err := h.reviews.Delete(ctx, topic.ID); err != nil {
			h.log.Warnw("drop review schedule", "topic", topic.ID, "error", err)
		}
	}

	delete(before, topic.ID)
	respondOK(c, gin.H{
		"topic_id": topic.ID,
		"state":    h.graph.State(topic.ID, before).String(),
	})
}

type activityView struct {
	TopicID   string    `json:"topic_id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Dashboard aggregates progress, streak, readiness, recent activity,
// and recommendations into one payload.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	completed, err := h.completions.CompletedSet(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}

	topics := h.graph.Topics()
	overall := progress.Overall(topics, completed)
	byCategory := progress.ByCategory(topics, completed)

	days, err := h.activity.ActiveDays(ctx, time.Now().AddDate(-1, 0, 0))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	streak := store.StudyStreak(days, time.Now())

	recent, err := h.activity.Recent(ctx, 10)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	recentViews := make([]activityView, len(recent))
	for i, e := range recent {
		recentViews[i] = activityView{TopicID: e.TopicID, Kind: e.Kind, CreatedAt: e.CreatedAt}
	}

	recommended := progress.Recommend(h.graph, topics, completed, recommendLimit)
	recViews := make([]topicView, len(recommended))
	for i, t := range recommended {
		recViews[i] = h.topicView(t, completed, nil)
	}

	states, err := h.reviews.All(ctx)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	due := h.reviewViews(review.DueTopics(states, time.Now()))

	respondOK(c, gin.H{
		"overall":             overall,
		"categories":          byCategory,
		"streak_days":         streak,
		"interview_readiness": interviewReadiness(topics, completed),
		"recent_activity":     recentViews,
		"recommended":         recViews,
		"due_for_review":      due,
	})
}

type reviewView struct {
	TopicID      string    `json:"topic_id"`
	Name         string    `json:"name"`
	Stage        int       `json:"stage"`
	Graduated    bool      `json:"graduated"`
	NextReviewAt time.Time `json:"next_review_at"`
	OverdueDays  float64   `json:"overdue_days"`
}

func (h *Handler) reviewViews(states []review.State) []reviewView {
	now := time.Now()
	views := make([]reviewView, 0, len(states))
	for _, s := range states {
		topic, err := h.graph.Topic(s.TopicID)
		if err != nil {
			// Catalog changed under the stored schedule; skip it.
			continue
		}
		views = append(views, reviewView{
			TopicID:      s.TopicID,
			Name:         topic.Name,
			Stage:        s.Stage,
			Graduated:    s.Graduated(),
			NextReviewAt: s.NextReviewAt,
			OverdueDays:  s.OverdueDays(now),
		})
	}
	return views
}

type reviewRequest struct {
	Result string `json:"result"`
}

// ReviewTopic records the outcome of a review session. A passing
// review advances the schedule to the next interval; a failing one
// restarts it.
func (h *Handler) ReviewTopic(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	topic, err := h.graph.Topic(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "unknown_topic", err)
		return
	}

	// The body is optional; an empty body means a passing review.
	req := reviewRequest{Result: "pass"}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		if req.Result == "" {
			req.Result = "pass"
		}
	}
	if req.Result != "pass" && req.Result != "fail" {
		respondError(c, http.StatusBadRequest, "invalid_result",
			errors.New(`result must be "pass" or "fail"`))
		return
	}

	state, ok, err := h.reviews.Get(ctx, topic.ID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	if !ok {
		respondError(c, http.StatusConflict, "not_scheduled",
			errors.New("topic has no review schedule; complete it first"))
		return
	}

	now := time.Now().UTC()
	if req.Result == "pass" {
		state = review.Advance(state, now)
	} else {
		state = review.Reset(state, now)
	}
	if err := h.reviews.Upsert(ctx, state); err != nil {
		respondError(c, http.StatusInternalServerError, "storage_error", err)
		return
	}
	if err := h.activity.Record(ctx, topic.ID, store.EventReviewed); err != nil {
		h.log.Warnw("record review event", "topic", topic.ID, "error", err)
	}

	respondOK(c, gin.H{
		"topic_id":       topic.ID,
		"stage":          state.Stage,
		"graduated":      state.Graduated(),
		"next_review_at": state.NextReviewAt,
	})
}

// interviewReadiness is the completion percentage over high-priority
// topics only.
func interviewReadiness(topics []topicgraph.Topic, completed map[string]bool) float64 {
	total, done := 0, 0
	for _, t := range topics {
		if t.Priority != topicgraph.PriorityHigh {
			continue
		}
		total++
		if completed[t.ID] {
			done++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(done) / float64(total) * 100
}

type explainRequest struct {
	TopicID string `json:"topic_id" binding:"required"`
	Level   string `json:"level"`
}

// Explain generates an explanation for a topic, grounded on passages
// retrieved from the vector store when one is configured.
func (h *Handler) Explain(c *gin.Context) {
	ctx := c.Request.Context()

	if h.explainer == nil {
		respondError(c, http.StatusServiceUnavailable, "explain_unavailable",
			errors.New("no model provider configured"))
		return
	}

	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	topic, err := h.graph.Topic(req.TopicID)
	if err != nil {
		respondError(c, http.StatusNotFound, "unknown_topic", err)
		return
	}

	input := explain.Input{
		Topic:         topic,
		Level:         explain.Level(req.Level),
		Prerequisites: h.graph.Prerequisites(topic.ID),
		Passages:      h.retrievePassages(ctx, topic),
	}

	result, err := h.explainer.Explain(ctx, input)
	if err != nil {
		status, code := http.StatusBadGateway, "generation_failed"
		var unknown *llm.ErrProviderUnavailable
		if errors.As(err, &unknown) {
			status, code = http.StatusServiceUnavailable, "provider_unavailable"
		}
		if !explain.Level(req.Level).Valid() && req.Level != "" {
			status, code = http.StatusBadRequest, "invalid_level"
		}
		respondError(c, status, code, err)
		return
	}

	if err := h.activity.Record(ctx, topic.ID, store.EventExplained); err != nil {
		h.log.Warnw("record explain event", "topic", topic.ID, "error", err)
	}

	respondOK(c, result)
}

// retrievePassages embeds the topic and searches the vector store.
// Retrieval failures degrade to an ungrounded explanation.
func (h *Handler) retrievePassages(ctx context.Context, topic topicgraph.Topic) []explain.Passage {
	if h.embedder == nil || h.searcher == nil {
		return nil
	}

	vectors, err := h.embedder.Embed(ctx, []string{topic.Name + "\n" + topic.Description})
	if err != nil || len(vectors) == 0 {
		h.log.Warnw("embed topic for retrieval", "topic", topic.ID, "error", err)
		return nil
	}

	results, err := h.searcher.Search(ctx, vectors[0], vectorstore.SearchOptions{
		TopicID: topic.ID,
		Limit:   4,
	})
	if err != nil {
		h.log.Warnw("passage search", "topic", topic.ID, "error", err)
		return nil
	}

	passages := make([]explain.Passage, len(results))
	for i, r := range results {
		passages[i] = explain.Passage{
			Source:  r.Passage.Source,
			Title:   r.Passage.Title,
			Content: r.Passage.Content,
		}
	}
	return passages
}
