package a2a

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/stratyx-planner/internal/agent"
	"github.com/BerylCAtieno/stratyx-planner/internal/export"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/planner"
	"github.com/BerylCAtieno/stratyx-planner/internal/workspace"
)

const askForProfile = "Descreva seu negócio (nome, o que você faz, público e região) ou envie um perfil completo como dado."

type A2AHandler struct {
	generator planner.Generator
	log       *zap.SugaredLogger
}

func NewA2AHandler(generator planner.Generator, log *zap.SugaredLogger) *A2AHandler {
	return &A2AHandler{
		generator: generator,
		log:       log,
	}
}

// HandlePlanner processes A2A JSON-RPC messages.
func (h *A2AHandler) HandlePlanner(c *gin.Context) {
	var rpcReq JSONRPCRequest
	if err := c.ShouldBindJSON(&rpcReq); err != nil {
		h.log.Warnw("failed to decode JSON-RPC request", "error", err)
		h.sendErrorResponse(c, "", "Invalid request format", CodeParseError)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.log.Warnw("invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.log.Warnw("unknown method", "method", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.log.Warnw("failed to unmarshal params", "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	profile, ok := extractProfile(msgParams.Message)
	if !ok {
		h.sendSuccessResponse(c, rpcReq.ID, statusResult(rpcReq.ID, StateInputRequired, askForProfile))
		return
	}
	if err := profile.Validate(); err != nil {
		h.sendSuccessResponse(c, rpcReq.ID, statusResult(rpcReq.ID, StateInputRequired, err.Error()))
		return
	}

	h.log.Infow("generating plan", "task", rpcReq.ID, "business", profile.Name)
	plan, err := h.generator.GeneratePlan(c.Request.Context(), profile)
	if err != nil {
		h.log.Errorw("plan generation failed", "task", rpcReq.ID, "error", err)
		h.sendSuccessResponse(c, rpcReq.ID, statusResult(rpcReq.ID, StateFailed, workspace.GenerationFailedMessage))
		return
	}

	result, err := completedResult(rpcReq.ID, profile, plan)
	if err != nil {
		h.log.Errorw("failed to encode plan artifact", "task", rpcReq.ID, "error", err)
		h.sendSuccessResponse(c, rpcReq.ID, statusResult(rpcReq.ID, StateFailed, workspace.GenerationFailedMessage))
		return
	}
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// ServeAgentCard serves the agent card using Gin
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if err := agent.LoadAgentCard(); err != nil {
		h.log.Errorw("error loading agent card", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", agent.AgentCardData)
}

// extractProfile prefers a data part carrying a BusinessProfile and falls
// back to the text parts as a free-form description.
func extractProfile(msg A2AMessage) (models.BusinessProfile, bool) {
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "data":
			profile := models.NewBusinessProfile()
			if err := json.Unmarshal(part.Data, &profile); err == nil && profile.Name != "" {
				return profile, true
			}
		case "text":
			text := strings.TrimSpace(part.Text)
			if text != "" {
				texts = append(texts, text)
			}
		}
	}
	if len(texts) == 0 {
		return models.BusinessProfile{}, false
	}
	return profileFromText(strings.Join(texts, " ")), true
}

// profileFromText builds a profile around a free-form description; the model
// infers the rest.
func profileFromText(text string) models.BusinessProfile {
	profile := models.NewBusinessProfile()
	profile.Name = "Seu negócio"
	profile.BusinessType = text
	profile.ProductDescription = text
	profile.TargetAudience = "clientes locais"
	profile.Region = "Brasil"
	return profile
}

func statusResult(taskID, state, text string) TaskResult {
	return TaskResult{
		ID:   taskID,
		Kind: "task",
		Status: TaskStatus{
			State:     state,
			Timestamp: Timestamp(),
			Message: &A2AMessage{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.New().String(),
				TaskID:    taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
	}
}

func completedResult(taskID string, profile models.BusinessProfile, plan *models.MarketingPlan) (TaskResult, error) {
	if plan == nil {
		return TaskResult{}, errors.New("no plan generated")
	}
	data, err := DataPart(plan)
	if err != nil {
		return TaskResult{}, err
	}
	doc := export.PrintDocument(models.Project{ProjectName: profile.Name, Profile: profile, Plan: *plan})

	result := statusResult(taskID, StateCompleted, plan.Summary)
	result.Artifacts = []Artifact{{
		ArtifactID: uuid.New().String(),
		Name:       "Marketing Plan",
		Parts:      []MessagePart{TextPart(doc), data},
	}}
	return result, nil
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id string, result any) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id string, message string, code int) {
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	})
}
