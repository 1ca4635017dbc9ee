package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/stratyx-planner/internal/a2a"
	"github.com/BerylCAtieno/stratyx-planner/internal/api"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/planner"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/local"
	"github.com/BerylCAtieno/stratyx-planner/internal/store/storetest"
)

type fakeGenerator struct{ plan models.MarketingPlan }

func (f *fakeGenerator) GeneratePlan(context.Context, models.BusinessProfile) (*models.MarketingPlan, error) {
	plan := f.plan
	return &plan, nil
}

func (f *fakeGenerator) ExtendPlan(context.Context, planner.ExtendRequest) ([]models.PostItem, error) {
	return nil, errors.New("offline")
}

func (f *fakeGenerator) ExtractPalette(context.Context, string) ([]string, error) {
	return nil, errors.New("offline")
}

func startServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend, err := local.New(t.TempDir())
	require.NoError(t, err)
	log := zap.NewNop().Sugar()
	gen := &fakeGenerator{plan: storetest.Project("x", "x", time.Now()).Plan}

	r := gin.New()
	h := a2a.NewA2AHandler(gen, log)
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.POST("/a2a/planner", h.HandlePlanner)
	api.NewHandler(backend, gen, log).Register(r)
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "OK") })

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestClientHealthAndCard(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))
	card, err := c.AgentCard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "STRATYX Marketing Planner", card["name"])
}

func TestClientProjectLifecycle(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	const ns = "a@x.com"

	profile := storetest.Profile("Loja X")
	plan, err := c.GeneratePlan(ctx, profile)
	require.NoError(t, err)

	saved, err := c.SaveProject(ctx, ns, models.Project{Profile: profile, Plan: *plan}, "Loja X")
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	projects, err := c.ListProjects(ctx, ns)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	toggled, err := c.TogglePost(ctx, ns, saved.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPosted, toggled.Plan.Calendar[0].Status)

	data, filename, err := c.Export(ctx, ns, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "plan-stratyx-loja-x.json", filename)
	assert.Contains(t, string(data), saved.ID)

	doc, err := c.Print(ctx, ns, saved.ID)
	require.NoError(t, err)
	assert.Contains(t, doc, "# Loja X")

	require.NoError(t, c.DeleteProject(ctx, ns, saved.ID))
	_, err = c.GetProject(ctx, ns, saved.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClientSurfacesGeneratorFailure(t *testing.T) {
	c := startServer(t)
	ctx := context.Background()
	const ns = "a@x.com"

	saved, err := c.SaveProject(ctx, ns, storetest.Project("", "", time.Now()), "Loja X")
	require.NoError(t, err)

	_, err = c.ExtendCalendar(ctx, ns, saved.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestClientAskAgent(t *testing.T) {
	c := startServer(t)

	result, err := c.AskAgent(context.Background(), "Padaria artesanal em Curitiba")
	require.NoError(t, err)
	assert.Equal(t, a2a.StateCompleted, result.Status.State)
	require.Len(t, result.Artifacts, 1)
}
